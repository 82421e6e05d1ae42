package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/rationbook/internal/announcement/domain"
	"github.com/smallbiznis/rationbook/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, announcement *domain.Announcement) error {
	return db.WithContext(ctx).Create(announcement).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Announcement, error) {
	var announcement domain.Announcement
	err := db.WithContext(ctx).First(&announcement, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &announcement, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, announcement *domain.Announcement) error {
	return db.WithContext(ctx).
		Model(&domain.Announcement{}).
		Where("id = ?", announcement.ID).
		Updates(map[string]any{
			"title":      announcement.Title,
			"content":    announcement.Content,
			"updated_at": announcement.UpdatedAt,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	result := db.WithContext(ctx).Delete(&domain.Announcement{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*domain.Announcement, int64, error) {
	base := db.WithContext(ctx).Model(&domain.Announcement{}).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var announcements []*domain.Announcement
	err := base.
		Order("id desc").
		Scopes(pagination.Scope(page)).
		Find(&announcements).Error
	if err != nil {
		return nil, 0, err
	}
	return announcements, total, nil
}
