package pagination

import "gorm.io/gorm"

// Pagination is the caller-supplied page request. Pages are zero-indexed and
// carry no server-side session state.
type Pagination struct {
	Page int `form:"page"`
	Size int `form:"size,default=10" validate:"gte=1,lte=250"` // Min 1, Max 250
}

const (
	DefaultSize = 10
	MaxSize     = 250
)

// Normalize clamps the request to sane bounds.
func (p Pagination) Normalize() Pagination {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Offset returns the row offset for the requested page.
func (p Pagination) Offset() int {
	return p.Page * p.Size
}

// Page is an offset-paginated result. TotalElements always reflects the full
// filtered count regardless of the requested page.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

// NewPage assembles a page response from a slice and the filtered total.
func NewPage[T any](content []T, p Pagination, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := int(total) / p.Size
	if int(total)%p.Size != 0 {
		totalPages++
	}
	return Page[T]{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalPages:    totalPages,
		TotalElements: total,
	}
}

// Scope applies LIMIT/OFFSET for the request.
func Scope(p Pagination) func(*gorm.DB) *gorm.DB {
	return func(stmt *gorm.DB) *gorm.DB {
		return stmt.Offset(p.Offset()).Limit(p.Size)
	}
}
