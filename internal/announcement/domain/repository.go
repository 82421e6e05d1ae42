package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/rationbook/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, announcement *Announcement) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Announcement, error)
	Update(ctx context.Context, db *gorm.DB, announcement *Announcement) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*Announcement, int64, error)
}
