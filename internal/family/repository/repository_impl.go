package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/rationbook/internal/family/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, family *domain.Family) error {
	return db.WithContext(ctx).Create(family).Error
}

func (r *repo) FindByContact(ctx context.Context, db *gorm.DB, contactNumber string) (*domain.Family, error) {
	var family domain.Family
	err := db.WithContext(ctx).
		Where("contact_number = ?", contactNumber).
		First(&family).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &family, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Family, error) {
	var family domain.Family
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&family).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &family, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, family *domain.Family) error {
	return db.WithContext(ctx).
		Model(&domain.Family{}).
		Where("id = ?", family.ID).
		Updates(map[string]any{
			"head_name":    family.HeadName,
			"village_name": family.VillageName,
			"member_count": family.MemberCount,
		}).Error
}
