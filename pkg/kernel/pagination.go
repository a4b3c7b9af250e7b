package kernel

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationOptions are the 1-indexed page request parameters
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize fills in defaults for missing values. A page size above
// maxSize is capped rather than reset.
func (p PaginationOptions) Normalize(defaultSize, maxSize int) PaginationOptions {
	if defaultSize < 1 {
		defaultSize = DefaultPageSize
	}
	if maxSize < defaultSize {
		maxSize = defaultSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	if p.PageSize > maxSize {
		p.PageSize = maxSize
	}
	return p
}

// Offset returns the index of the first item of the page
func (p PaginationOptions) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is the pagination metadata attached to a result slice
type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// Paginated wraps one page of items with its metadata
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

// TotalPages computes ceil(total / size); zero items means zero pages
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
