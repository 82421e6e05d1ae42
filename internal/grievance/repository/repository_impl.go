package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/rationbook/internal/grievance/domain"
	"github.com/smallbiznis/rationbook/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, grievance *domain.Grievance) error {
	return db.WithContext(ctx).Omit("Comments").Create(grievance).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Grievance, error) {
	var grievance domain.Grievance
	err := db.WithContext(ctx).
		Preload("Comments", commentOrder).
		First(&grievance, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &grievance, nil
}

func (r *repo) FindByTrackingID(ctx context.Context, db *gorm.DB, trackingID string) (*domain.Grievance, error) {
	var grievance domain.Grievance
	err := db.WithContext(ctx).
		Preload("Comments", commentOrder).
		First(&grievance, "tracking_id = ?", trackingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &grievance, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.Status, at time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Model(&domain.Grievance{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": at})
	return result.RowsAffected, result.Error
}

func (r *repo) InsertComment(ctx context.Context, db *gorm.DB, comment *domain.Comment) error {
	return db.WithContext(ctx).Create(comment).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, statuses []domain.Status, page pagination.Pagination) ([]*domain.Grievance, int64, error) {
	base := db.WithContext(ctx).Model(&domain.Grievance{})
	if len(statuses) > 0 {
		base = base.Where("status IN ?", statuses)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var grievances []*domain.Grievance
	err := base.
		Preload("Comments", commentOrder).
		Order("id desc").
		Scopes(pagination.Scope(page)).
		Find(&grievances).Error
	if err != nil {
		return nil, 0, err
	}
	return grievances, total, nil
}

// commentOrder keeps preloaded comments in conversation order.
func commentOrder(db *gorm.DB) *gorm.DB {
	return db.Order("grievance_comments.created_at asc, grievance_comments.id asc")
}
