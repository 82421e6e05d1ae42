package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/smallbiznis/rationbook/internal/clock"
	"github.com/smallbiznis/rationbook/internal/grievance/domain"
	"github.com/smallbiznis/rationbook/internal/observability/metrics"
	"github.com/smallbiznis/rationbook/pkg/db"
	"github.com/smallbiznis/rationbook/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// trackingAttempts bounds tracking-id regeneration when an insert collides
// on the unique tracking index.
const trackingAttempts = 5

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	GenID   *snowflake.Node
	Repo    domain.Repository
	Metrics *metrics.PortalMetrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	genID   *snowflake.Node
	repo    domain.Repository
	metrics *metrics.PortalMetrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("grievance.service"),
		clock:   p.Clock,
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Grievance, error) {
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return domain.Grievance{}, domain.ErrInvalidSubject
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return domain.Grievance{}, domain.ErrInvalidContent
	}

	now := s.clock.Now()
	grievance := domain.Grievance{
		ID:          s.genID.Generate(),
		Subject:     subject,
		Content:     content,
		ContactInfo: strings.TrimSpace(req.ContactInfo),
		EvidenceURL: req.EvidenceURL,
		Status:      domain.StatusNew,
		Comments:    []domain.Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var err error
	for attempt := 0; attempt < trackingAttempts; attempt++ {
		grievance.TrackingID = newTrackingID()
		if err = s.repo.Insert(ctx, s.db, &grievance); err == nil {
			s.metrics.GrievanceCreated()
			s.log.Info("grievance filed",
				zap.String("grievance_id", grievance.ID.String()),
				zap.String("tracking_id", grievance.TrackingID),
			)
			return grievance, nil
		}
		if !db.IsDuplicateKeyErr(err) {
			return domain.Grievance{}, err
		}
	}
	return domain.Grievance{}, err
}

func (s *Service) SetStatus(ctx context.Context, id string, status string) (domain.Grievance, error) {
	grievanceID, err := s.parseID(id)
	if err != nil {
		return domain.Grievance{}, err
	}
	next, err := domain.ParseStatus(status)
	if err != nil {
		return domain.Grievance{}, err
	}

	affected, err := s.repo.UpdateStatus(ctx, s.db, grievanceID, next, s.clock.Now())
	if err != nil {
		return domain.Grievance{}, err
	}
	if affected == 0 {
		return domain.Grievance{}, domain.ErrNotFound
	}
	s.metrics.StatusChanged(string(next))

	grievance, err := s.repo.FindByID(ctx, s.db, grievanceID)
	if err != nil {
		return domain.Grievance{}, err
	}
	if grievance == nil {
		return domain.Grievance{}, domain.ErrNotFound
	}
	return *grievance, nil
}

func (s *Service) AddComment(ctx context.Context, id string, content string) (domain.Comment, error) {
	grievanceID, err := s.parseID(id)
	if err != nil {
		return domain.Comment{}, err
	}
	text := strings.TrimSpace(content)
	if text == "" {
		return domain.Comment{}, domain.ErrInvalidComment
	}

	grievance, err := s.repo.FindByID(ctx, s.db, grievanceID)
	if err != nil {
		return domain.Comment{}, err
	}
	if grievance == nil {
		return domain.Comment{}, domain.ErrNotFound
	}

	comment := domain.Comment{
		ID:          s.genID.Generate(),
		GrievanceID: grievanceID,
		Content:     text,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.InsertComment(ctx, s.db, &comment); err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

func (s *Service) QueryByTrackingID(ctx context.Context, trackingID string) (domain.Grievance, error) {
	code := strings.ToUpper(strings.TrimSpace(trackingID))
	if code == "" {
		// Malformed ids get the same answer as unknown ones.
		return domain.Grievance{}, domain.ErrNotFound
	}

	grievance, err := s.repo.FindByTrackingID(ctx, s.db, code)
	if err != nil {
		return domain.Grievance{}, err
	}
	if grievance == nil {
		return domain.Grievance{}, domain.ErrNotFound
	}
	return *grievance, nil
}

func (s *Service) ListForAdmin(ctx context.Context, req domain.ListRequest) (pagination.Page[domain.Grievance], error) {
	statuses, err := req.Filter.Statuses()
	if err != nil {
		return pagination.Page[domain.Grievance]{}, err
	}

	page := req.Page.Normalize()
	grievances, total, err := s.repo.List(ctx, s.db, statuses, page)
	if err != nil {
		return pagination.Page[domain.Grievance]{}, err
	}

	items := make([]domain.Grievance, 0, len(grievances))
	for _, grievance := range grievances {
		if grievance == nil {
			continue
		}
		items = append(items, *grievance)
	}
	return pagination.NewPage(items, page, total), nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func newTrackingID() string {
	return "GRV-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
