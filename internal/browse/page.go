package browse

import "github.com/faithmap/faithmap/internal/model"

// DefaultPageSize is the number of list rows per page.
const DefaultPageSize = 20

// Page is one slice of a filtered list.
type Page struct {
	Items     []model.Facility
	Page      int
	Size      int
	PageCount int
	Total     int
}

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Page < p.PageCount }

// HasPrev reports whether a preceding page exists.
func (p Page) HasPrev() bool { return p.Page > 1 }

// PageCount returns ceil(total/size).
func PageCount(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate returns the 1-based page of list. Pages outside the range yield
// an empty Items slice.
func Paginate(list []model.Facility, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	p := Page{
		Items:     []model.Facility{},
		Page:      page,
		Size:      size,
		PageCount: PageCount(len(list), size),
		Total:     len(list),
	}
	if page < 1 || page > p.PageCount {
		return p
	}
	start := (page - 1) * size
	end := min(start+size, len(list))
	p.Items = list[start:end]
	return p
}
