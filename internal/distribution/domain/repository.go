package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/rationbook/pkg/db/pagination"
	"gorm.io/gorm"
)

// Filter is the storage-level record filter. From/To bound the distribution
// date inclusively; Search is a raw substring.
type Filter struct {
	From   *time.Time
	To     *time.Time
	Search string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *Record) error
	// List returns a page of matching records plus the full filtered count.
	List(ctx context.Context, db *gorm.DB, filter Filter, page pagination.Pagination) ([]*Record, int64, error)
	ListByFamily(ctx context.Context, db *gorm.DB, familyID snowflake.ID) ([]*Record, error)
}
