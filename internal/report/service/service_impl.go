package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	distributiondomain "github.com/smallbiznis/rationbook/internal/distribution/domain"
	"github.com/smallbiznis/rationbook/internal/report/domain"
	"github.com/smallbiznis/rationbook/internal/report/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo repository.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo repository.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("report.service"),
		repo: p.Repo,
	}
}

// Summary aggregates the filtered ledger in one pass. Buckets and totals are
// derived from the same row set, so the chart always sums back to the cards.
func (s *Service) Summary(ctx context.Context, req domain.SummaryRequest) (domain.Summary, error) {
	from, to, err := distributiondomain.DateWindow(req.Year, req.Month)
	if err != nil {
		return domain.Summary{}, err
	}

	rows, err := s.repo.Rows(ctx, s.db, domain.Filter{From: from, To: to})
	if err != nil {
		return domain.Summary{}, err
	}

	var (
		distributed = decimal.Zero
		deficit     = decimal.Zero
		surplus     = decimal.Zero
		families    = make(map[string]struct{})
		buckets     = make(map[string]*monthlyBucket)
	)
	for _, row := range rows {
		distributed = distributed.Add(row.RiceReceivedKg)
		deficit = deficit.Add(row.DeficitKg)
		if over := row.RiceReceivedKg.Sub(row.EntitlementKg); over.IsPositive() {
			surplus = surplus.Add(over)
		}
		families[row.ContactNumber] = struct{}{}

		key := row.DistributionDate.UTC().Format("2006-01")
		bucket, ok := buckets[key]
		if !ok {
			bucket = &monthlyBucket{}
			buckets[key] = bucket
		}
		bucket.count++
		bucket.distributed = bucket.distributed.Add(row.RiceReceivedKg)
		bucket.deficit = bucket.deficit.Add(row.DeficitKg)
	}

	return domain.Summary{
		TotalRecords:       int64(len(rows)),
		TotalDistributedKg: roundKg(distributed),
		TotalDeficitKg:     roundKg(deficit),
		TotalSurplusKg:     roundKg(surplus),
		UniqueFamilyCount:  int64(len(families)),
		ChartSeries:        chartSeries(buckets),
	}, nil
}

type monthlyBucket struct {
	count       int64
	distributed decimal.Decimal
	deficit     decimal.Decimal
}

func chartSeries(buckets map[string]*monthlyBucket) []domain.MonthlyPoint {
	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Strings(months)

	series := make([]domain.MonthlyPoint, 0, len(months))
	for _, month := range months {
		bucket := buckets[month]
		series = append(series, domain.MonthlyPoint{
			Month:         month,
			RecordCount:   bucket.count,
			DistributedKg: roundKg(bucket.distributed),
			DeficitKg:     roundKg(bucket.deficit),
		})
	}
	return series
}

func roundKg(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
