package domain

import (
	"context"
	"errors"
)

type ResolveOrCreateRequest struct {
	ContactNumber string
	HeadName      string
	VillageName   string
	MemberCount   int
}

type UpdateFamilyRequest struct {
	ID          string
	HeadName    string
	VillageName string
	MemberCount int
}

type Service interface {
	// ResolveOrCreate returns the family for the contact number, creating it
	// from the candidate fields when absent. An existing family is returned
	// unchanged: repeated submissions never overwrite registry state. The
	// bool reports whether a new family was created.
	ResolveOrCreate(ctx context.Context, req ResolveOrCreateRequest) (Family, bool, error)

	// LookupByContact supports the public auto-fill flow. Absence is
	// reported as ErrNotFound, not a failure.
	LookupByContact(ctx context.Context, contactNumber string) (Family, error)

	// Update is the admin correction path. The contact number is immutable.
	Update(ctx context.Context, req UpdateFamilyRequest) (Family, error)
}

var (
	ErrInvalidContactNumber = errors.New("invalid_contact_number")
	ErrInvalidHeadName      = errors.New("invalid_head_name")
	ErrInvalidVillageName   = errors.New("invalid_village_name")
	ErrInvalidMemberCount   = errors.New("invalid_member_count")
	ErrInvalidID            = errors.New("invalid_id")
	ErrNotFound             = errors.New("not_found")
	ErrConflict             = errors.New("conflict")
)
