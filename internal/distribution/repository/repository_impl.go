package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/rationbook/internal/distribution/domain"
	"github.com/smallbiznis/rationbook/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.Record) error {
	return db.WithContext(ctx).Omit("Family").Create(record).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.Filter, page pagination.Pagination) ([]*domain.Record, int64, error) {
	base := applyFilter(db.WithContext(ctx).Model(&domain.Record{}), filter).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []*domain.Record
	err := base.
		Preload("Family").
		Order("distribution_records.id desc").
		Scopes(pagination.Scope(page)).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *repo) ListByFamily(ctx context.Context, db *gorm.DB, familyID snowflake.ID) ([]*domain.Record, error) {
	var records []*domain.Record
	err := db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Preload("Family").
		Order("distribution_date asc, id asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func applyFilter(stmt *gorm.DB, filter domain.Filter) *gorm.DB {
	if filter.From != nil {
		stmt = stmt.Where("distribution_records.distribution_date >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("distribution_records.distribution_date <= ?", *filter.To)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		fuzzy := "%" + strings.ToLower(search) + "%"
		stmt = stmt.
			Joins("JOIN families ON families.id = distribution_records.family_id").
			Where("LOWER(families.head_name) LIKE ? OR LOWER(families.village_name) LIKE ? OR families.contact_number LIKE ?",
				fuzzy, fuzzy, "%"+search+"%")
	}
	return stmt
}
