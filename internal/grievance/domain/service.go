package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/rationbook/pkg/db/pagination"
)

type CreateRequest struct {
	Subject     string
	Content     string
	ContactInfo string
	EvidenceURL string
}

type ListRequest struct {
	Filter StatusFilter
	Page   pagination.Pagination
}

type Service interface {
	// Create files a grievance with a fresh tracking id and status New.
	Create(ctx context.Context, req CreateRequest) (Grievance, error)

	// SetStatus moves the grievance to the given status. Any transition
	// within the closed set is allowed; last writer wins.
	SetStatus(ctx context.Context, id string, status string) (Grievance, error)

	// AddComment appends an admin note. The status is untouched.
	AddComment(ctx context.Context, id string, content string) (Comment, error)

	// QueryByTrackingID is the public lookup. Malformed and unknown ids both
	// come back ErrNotFound.
	QueryByTrackingID(ctx context.Context, trackingID string) (Grievance, error)

	// ListForAdmin pages grievances newest first, optionally sliced to the
	// active or resolved subset.
	ListForAdmin(ctx context.Context, req ListRequest) (pagination.Page[Grievance], error)
}

var (
	ErrInvalidSubject      = errors.New("invalid_subject")
	ErrInvalidContent      = errors.New("invalid_content")
	ErrInvalidComment      = errors.New("invalid_comment")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidStatusFilter = errors.New("invalid_status_filter")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
