package dto

// ListQuery is the shared paginated listing filter.
type ListQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Category string `form:"category"`
	Province string `form:"province"`
	Level    string `form:"level"`
	Year     int    `form:"year"`
}

// Normalize applies the listing defaults.
func (q *ListQuery) Normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = 10
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}
}

func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	PageSize    int   `json:"page_size"`
}

// Paginated wraps a page of rows with its meta block.
type Paginated[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginated computes total pages from the row count.
func NewPaginated[T any](rows []T, total int64, q ListQuery) *Paginated[T] {
	if rows == nil {
		rows = []T{}
	}

	totalPages := int(total) / q.PageSize
	if int(total)%q.PageSize != 0 {
		totalPages++
	}

	return &Paginated[T]{
		Data: rows,
		Meta: PaginationMeta{
			CurrentPage: q.Page,
			TotalPages:  totalPages,
			TotalItems:  total,
			PageSize:    q.PageSize,
		},
	}
}
