package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/rationbook/pkg/db/pagination"
)

type SubmitRequest struct {
	ContactNumber    string
	HeadName         string
	VillageName      string
	MemberCount      int
	RiceReceivedKg   decimal.Decimal
	DistributionDate time.Time
}

// ListRecordsRequest filters the admin record listing. Month is a two-level
// cascade under Year: without a year ("all") the month criterion is ignored
// even when supplied. Search matches head name and village case-insensitively
// and the contact number literally, all as substrings.
type ListRecordsRequest struct {
	Year   *int
	Month  *int
	Search string
	Page   pagination.Pagination
}

type Service interface {
	// Submit resolves the family, computes entitlement and deficit, and
	// appends an immutable record.
	Submit(ctx context.Context, req SubmitRequest) (RecordView, error)

	// List returns a page of records, newest submission first, with
	// totals covering the full filtered set.
	List(ctx context.Context, req ListRecordsRequest) (pagination.Page[RecordView], error)

	// HistoryForFamily returns the family's full audit trail, ascending by
	// distribution date.
	HistoryForFamily(ctx context.Context, familyID string) ([]RecordView, error)
}

// DateWindow turns the year/month cascade into an inclusive date window.
// A month without a year is discarded, matching the cascading filter
// contract ("all" years ignores any month criterion).
func DateWindow(year, month *int) (*time.Time, *time.Time, error) {
	if year == nil {
		return nil, nil, nil
	}
	if *year < 1900 || *year > 9999 {
		return nil, nil, ErrInvalidYear
	}

	var from, to time.Time
	if month != nil {
		if *month < 1 || *month > 12 {
			return nil, nil, ErrInvalidMonth
		}
		from = time.Date(*year, time.Month(*month), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, -1)
	} else {
		from = time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to = time.Date(*year, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return &from, &to, nil
}

var (
	ErrInvalidRiceReceived = errors.New("invalid_rice_received")
	ErrInvalidDate         = errors.New("invalid_distribution_date")
	ErrInvalidMonth        = errors.New("invalid_month")
	ErrInvalidYear         = errors.New("invalid_year")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
