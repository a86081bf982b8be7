package btree

import "github.com/cockroachdb/errors"

// assertf panics when a structural precondition does not hold. These are
// programming errors in the tree maintenance code, never user errors.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(errors.AssertionFailedf(format, args...))
	}
}

func unknownResult(r searchResult) error {
	return errors.AssertionFailedf("unknown search result %T", r)
}
