package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/rationbook/pkg/db/pagination"
)

type CreateRequest struct {
	Title   string
	Content string
}

type UpdateRequest struct {
	ID      string
	Title   string
	Content string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Announcement, error)
	Update(ctx context.Context, req UpdateRequest) (Announcement, error)
	Delete(ctx context.Context, id string) error

	// List pages announcements newest first.
	List(ctx context.Context, page pagination.Pagination) (pagination.Page[Announcement], error)
}

var (
	ErrInvalidTitle   = errors.New("invalid_title")
	ErrInvalidContent = errors.New("invalid_content")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)
