package paginator

// Option field names as reported in ArgumentError.Field.
const (
	FieldCurrentPage   = "currentPage"
	FieldTotalItems    = "totalItems"
	FieldItemsPerPage  = "itemsPerPage"
	FieldSiblingsCount = "siblingsCount"
	FieldBoundaries    = "boundaries"
)

type windowPaginator struct{}

// New creates a stateless Paginator.
func New() Paginator {
	return windowPaginator{}
}

func (windowPaginator) Compute(opts Options) (Result, error) {
	return Compute(opts)
}

// Compute returns the page indicators for opts.
//
// Pages are laid out as a left boundary group, a window of siblings around
// the current page and a right boundary group. Groups that would touch or
// overlap are merged and the separator between them is dropped.
func Compute(opts Options) (Result, error) {
	if err := validate(opts); err != nil {
		return Result{}, err
	}

	current := opts.CurrentPage
	siblings := opts.SiblingsCount
	boundaries := opts.Boundaries
	totalPages := pageCount(opts.TotalItems, opts.ItemsPerPage)

	res := Result{
		LeftItems:      []PageEntry{},
		LeftSeparator:  true,
		CenterItems:    []PageEntry{},
		RightSeparator: true,
		RightItems:     []PageEntry{},
		NextPage:       totalPages,
		PrevPage:       1,
		FirstPage:      1,
		LastPage:       totalPages,
	}
	if current < totalPages-1 {
		res.NextPage = current + 1
	}
	if current > 2 {
		res.PrevPage = current - 1
	}

	if fitsWithoutSeparators(totalPages, siblings, boundaries) {
		return collapse(res, totalPages, current), nil
	}

	// merged groups hold the boundary, both sibling wings, the current page
	// and the page that would otherwise hide behind a separator
	merged := boundaries + 2*siblings + 2

	intersectsLeft := current-siblings-1 <= boundaries
	intersectsRight := current > totalPages-2*siblings-boundaries-1
	if intersectsLeft && intersectsRight {
		return collapse(res, totalPages, current), nil
	}

	if intersectsLeft {
		res.LeftSeparator = false
		res.LeftItems = pageRange(1, merged, current)
	}
	if intersectsRight {
		res.RightSeparator = false
		res.RightItems = pageRange(totalPages-merged+1, merged, current)
	}

	if res.LeftSeparator && res.RightSeparator {
		res.CenterItems = pageRange(current-siblings, 2*siblings+1, current)
	}
	if res.LeftSeparator {
		res.LeftItems = pageRange(1, boundaries, current)
	}
	if res.RightSeparator {
		res.RightItems = pageRange(totalPages-boundaries+1, boundaries, current)
	}

	return res, nil
}

func validate(opts Options) error {
	switch {
	case opts.ItemsPerPage <= 0:
		return invalid(FieldItemsPerPage, opts.ItemsPerPage, "must be a positive integer")
	case opts.TotalItems < 0:
		return invalid(FieldTotalItems, opts.TotalItems, "must be a non-negative integer")
	case opts.SiblingsCount < 0:
		return invalid(FieldSiblingsCount, opts.SiblingsCount, "must be a non-negative integer")
	case opts.Boundaries < 0:
		return invalid(FieldBoundaries, opts.Boundaries, "must be a non-negative integer")
	case opts.CurrentPage < 1:
		return invalid(FieldCurrentPage, opts.CurrentPage, "must be at least 1")
	}
	return nil
}

// pageCount is ceil(items/perPage) without the overflow of items+perPage-1.
func pageCount(items, perPage int) int {
	pages := items / perPage
	if items%perPage != 0 {
		pages++
	}
	return pages
}

// fitsWithoutSeparators reports totalPages <= 2*siblings+2*boundaries+2
// without overflowing for large siblings or boundaries. Once it is false every
// group is shorter than totalPages.
func fitsWithoutSeparators(totalPages, siblings, boundaries int) bool {
	if totalPages <= 2 || siblings >= totalPages || boundaries >= totalPages {
		return true
	}
	// siblings+boundaries >= ceil((totalPages-2)/2)
	return siblings >= (totalPages-1)/2-boundaries
}

func collapse(res Result, totalPages, current int) Result {
	res.LeftSeparator = false
	res.RightSeparator = false
	res.LeftItems = pageRange(1, totalPages, current)
	res.CenterItems = []PageEntry{}
	res.RightItems = []PageEntry{}
	return res
}

func pageRange(start, count, current int) []PageEntry {
	if count <= 0 {
		return []PageEntry{}
	}
	out := make([]PageEntry, count)
	for i := range out {
		pageNo := start + i
		out[i] = PageEntry{PageNo: pageNo, IsActive: pageNo == current}
	}
	return out
}
