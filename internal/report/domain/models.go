package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	distributiondomain "github.com/smallbiznis/rationbook/internal/distribution/domain"
)

// Summary is the dashboard roll-up. Every figure, including the chart
// series, is computed over the same fully filtered record set: counts and
// sums never disagree about scope.
type Summary struct {
	TotalRecords       int64          `json:"totalRecords"`
	TotalDistributedKg float64        `json:"totalDistributedKg"`
	TotalDeficitKg     float64        `json:"totalDeficitKg"`
	TotalSurplusKg     float64        `json:"totalSurplusKg"`
	UniqueFamilyCount  int64          `json:"uniqueFamilyCount"`
	ChartSeries        []MonthlyPoint `json:"chartSeries"`
}

// MonthlyPoint is one month's bucket of the chart series.
type MonthlyPoint struct {
	Month         string  `json:"month"` // YYYY-MM
	RecordCount   int64   `json:"recordCount"`
	DistributedKg float64 `json:"distributedKg"`
	DeficitKg     float64 `json:"deficitKg"`
}

type SummaryRequest struct {
	Year  *int
	Month *int
}

type Service interface {
	Summary(ctx context.Context, req SummaryRequest) (Summary, error)
}

// Row is the minimal projection the aggregator consumes.
type Row struct {
	DistributionDate time.Time
	RiceReceivedKg   decimal.Decimal
	EntitlementKg    decimal.Decimal
	DeficitKg        decimal.Decimal
	ContactNumber    string
}

// Filter reuses the ledger's date-window semantics.
type Filter = distributiondomain.Filter
