package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, family *Family) error
	FindByContact(ctx context.Context, db *gorm.DB, contactNumber string) (*Family, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Family, error)
	Update(ctx context.Context, db *gorm.DB, family *Family) error
}
