package types

const (
	DefaultPageSize = 4096 // 4KB page, the reference heap file layout
	DefaultFiller   = 'X'  // pad byte written when a record would straddle a page

	LocatorSize = 16 // page(4) + start(8) + length(4)
)
