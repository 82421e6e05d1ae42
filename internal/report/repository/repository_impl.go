package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	distributiondomain "github.com/smallbiznis/rationbook/internal/distribution/domain"
	"github.com/smallbiznis/rationbook/internal/report/domain"
	"gorm.io/gorm"
)

type Repository interface {
	Rows(ctx context.Context, db *gorm.DB, filter domain.Filter) ([]domain.Row, error)
}

type repo struct{}

func Provide() Repository {
	return &repo{}
}

// rowScan mirrors domain.Row with the gorm column mapping for the projection.
type rowScan struct {
	DistributionDate time.Time       `gorm:"column:distribution_date"`
	RiceReceivedKg   decimal.Decimal `gorm:"column:rice_received_kg"`
	EntitlementKg    decimal.Decimal `gorm:"column:entitlement_kg"`
	DeficitKg        decimal.Decimal `gorm:"column:deficit_kg"`
	ContactNumber    string          `gorm:"column:contact_number"`
}

func (r *repo) Rows(ctx context.Context, db *gorm.DB, filter domain.Filter) ([]domain.Row, error) {
	stmt := db.WithContext(ctx).
		Model(&distributiondomain.Record{}).
		Select("distribution_records.distribution_date, distribution_records.rice_received_kg, distribution_records.entitlement_kg, distribution_records.deficit_kg, families.contact_number").
		Joins("JOIN families ON families.id = distribution_records.family_id")
	if filter.From != nil {
		stmt = stmt.Where("distribution_records.distribution_date >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("distribution_records.distribution_date <= ?", *filter.To)
	}

	var scans []rowScan
	if err := stmt.Order("distribution_records.distribution_date asc").Scan(&scans).Error; err != nil {
		return nil, err
	}

	rows := make([]domain.Row, 0, len(scans))
	for _, s := range scans {
		rows = append(rows, domain.Row{
			DistributionDate: s.DistributionDate,
			RiceReceivedKg:   s.RiceReceivedKg,
			EntitlementKg:    s.EntitlementKg,
			DeficitKg:        s.DeficitKg,
			ContactNumber:    s.ContactNumber,
		})
	}
	return rows, nil
}
