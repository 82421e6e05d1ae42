package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/rationbook/internal/clock"
	"github.com/smallbiznis/rationbook/internal/distribution/domain"
	"github.com/smallbiznis/rationbook/internal/entitlement"
	familydomain "github.com/smallbiznis/rationbook/internal/family/domain"
	"github.com/smallbiznis/rationbook/internal/observability/metrics"
	"github.com/smallbiznis/rationbook/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	GenID    *snowflake.Node
	Calc     entitlement.Calculator
	Repo     domain.Repository
	Families familydomain.Service
	Metrics  *metrics.PortalMetrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	genID    *snowflake.Node
	calc     entitlement.Calculator
	repo     domain.Repository
	families familydomain.Service
	metrics  *metrics.PortalMetrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("distribution.service"),
		clock:    p.Clock,
		genID:    p.GenID,
		calc:     p.Calc,
		repo:     p.Repo,
		families: p.Families,
		metrics:  p.Metrics,
	}
}

func (s *Service) Submit(ctx context.Context, req domain.SubmitRequest) (domain.RecordView, error) {
	if req.RiceReceivedKg.IsNegative() {
		return domain.RecordView{}, domain.ErrInvalidRiceReceived
	}
	if req.DistributionDate.IsZero() {
		return domain.RecordView{}, domain.ErrInvalidDate
	}

	family, created, err := s.families.ResolveOrCreate(ctx, familydomain.ResolveOrCreateRequest{
		ContactNumber: req.ContactNumber,
		HeadName:      req.HeadName,
		VillageName:   req.VillageName,
		MemberCount:   req.MemberCount,
	})
	if err != nil {
		return domain.RecordView{}, err
	}
	if created {
		s.metrics.FamilyCreated()
	}

	// Entitlement is fixed by the registered member count at submission
	// time, not by whatever the form carried.
	entitled, err := s.calc.Entitlement(family.MemberCount)
	if err != nil {
		return domain.RecordView{}, familydomain.ErrInvalidMemberCount
	}

	record := domain.Record{
		ID:               s.genID.Generate(),
		FamilyID:         family.ID,
		DistributionDate: datatypes.Date(req.DistributionDate),
		RiceReceivedKg:   req.RiceReceivedKg.Round(2),
		EntitlementKg:    entitled,
		DeficitKg:        entitlement.Deficit(entitled, req.RiceReceivedKg),
		CreatedAt:        s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, &record); err != nil {
		return domain.RecordView{}, err
	}
	s.metrics.RecordSubmitted()

	s.log.Info("distribution record appended",
		zap.String("record_id", record.ID.String()),
		zap.String("family_id", family.ID.String()),
		zap.String("deficit_kg", record.DeficitKg.String()),
	)

	record.Family = &family
	return record.View(), nil
}

func (s *Service) List(ctx context.Context, req domain.ListRecordsRequest) (pagination.Page[domain.RecordView], error) {
	filter, err := buildFilter(req.Year, req.Month, req.Search)
	if err != nil {
		return pagination.Page[domain.RecordView]{}, err
	}

	page := req.Page.Normalize()
	records, total, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		return pagination.Page[domain.RecordView]{}, err
	}

	views := make([]domain.RecordView, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		views = append(views, record.View())
	}
	return pagination.NewPage(views, page, total), nil
}

func (s *Service) HistoryForFamily(ctx context.Context, familyID string) ([]domain.RecordView, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(familyID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidID
	}

	records, err := s.repo.ListByFamily(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	views := make([]domain.RecordView, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		views = append(views, record.View())
	}
	return views, nil
}

func buildFilter(year, month *int, search string) (domain.Filter, error) {
	from, to, err := domain.DateWindow(year, month)
	if err != nil {
		return domain.Filter{}, err
	}
	return domain.Filter{From: from, To: to, Search: search}, nil
}
