package paginator

// Defaults applied by DefaultOptions.
const (
	DefaultCurrentPage   = 1
	DefaultTotalItems    = 1
	DefaultItemsPerPage  = 1
	DefaultSiblingsCount = 1
	DefaultBoundaries    = 1
)

// Options configures a single pagination computation.
type Options struct {
	CurrentPage   int `json:"currentPage" yaml:"current_page"`
	TotalItems    int `json:"totalItems" yaml:"total_items"`
	ItemsPerPage  int `json:"itemsPerPage" yaml:"items_per_page"`
	SiblingsCount int `json:"siblingsCount" yaml:"siblings_count"`
	Boundaries    int `json:"boundaries" yaml:"boundaries"`
}

// DefaultOptions returns Options populated with the package defaults.
func DefaultOptions() Options {
	return Options{
		CurrentPage:   DefaultCurrentPage,
		TotalItems:    DefaultTotalItems,
		ItemsPerPage:  DefaultItemsPerPage,
		SiblingsCount: DefaultSiblingsCount,
		Boundaries:    DefaultBoundaries,
	}
}

// PageEntry is a single page indicator.
type PageEntry struct {
	PageNo   int  `json:"pageNo"`
	IsActive bool `json:"isActive"`
}

// Result describes which page indicators a pagination control shows.
//
// Items are split into three ascending groups. A separator flag is set when
// at least one page number is skipped between two neighbouring groups.
type Result struct {
	LeftItems      []PageEntry `json:"leftItems"`
	LeftSeparator  bool        `json:"leftSeparator"`
	CenterItems    []PageEntry `json:"centerItems"`
	RightSeparator bool        `json:"rightSeparator"`
	RightItems     []PageEntry `json:"rightItems"`
	NextPage       int         `json:"nextPage"`
	PrevPage       int         `json:"prevPage"`
	FirstPage      int         `json:"firstPage"`
	LastPage       int         `json:"lastPage"`
}

// Pages returns every entry of the result in display order.
func (r Result) Pages() []PageEntry {
	out := make([]PageEntry, 0, len(r.LeftItems)+len(r.CenterItems)+len(r.RightItems))
	out = append(out, r.LeftItems...)
	out = append(out, r.CenterItems...)
	out = append(out, r.RightItems...)
	return out
}

// Empty reports whether the result covers no pages at all. This happens when
// there are zero items; LastPage is then 0 while FirstPage stays 1.
func (r Result) Empty() bool {
	return r.LastPage < r.FirstPage
}

// Paginator describes the behaviour required from a pagination calculator.
type Paginator interface {
	Compute(opts Options) (Result, error)
}
