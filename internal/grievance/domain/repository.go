package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/rationbook/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, grievance *Grievance) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Grievance, error)
	FindByTrackingID(ctx context.Context, db *gorm.DB, trackingID string) (*Grievance, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status, at time.Time) (int64, error)
	InsertComment(ctx context.Context, db *gorm.DB, comment *Comment) error
	List(ctx context.Context, db *gorm.DB, statuses []Status, page pagination.Pagination) ([]*Grievance, int64, error)
}
