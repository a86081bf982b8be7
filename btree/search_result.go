package btree

// searchResult is the outcome of searchKey within one node. It is either
// found (index is the slot of the key) or notFound (index is where the key
// would be inserted, which is also the child to descend into).
type searchResult interface {
	isSearchResult()
}

type found[V any] struct {
	index int
	value V
}

type notFound struct {
	index int
}

func (found[V]) isSearchResult() {}
func (notFound) isSearchResult() {}
