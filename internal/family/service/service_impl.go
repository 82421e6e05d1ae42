package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/smallbiznis/rationbook/internal/clock"
	"github.com/smallbiznis/rationbook/internal/family/domain"
	"github.com/smallbiznis/rationbook/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("family.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) ResolveOrCreate(ctx context.Context, req domain.ResolveOrCreateRequest) (domain.Family, bool, error) {
	contact := strings.TrimSpace(req.ContactNumber)
	if !domain.ValidContactNumber(contact) {
		return domain.Family{}, false, domain.ErrInvalidContactNumber
	}

	if existing, err := s.repo.FindByContact(ctx, s.db, contact); err != nil {
		return domain.Family{}, false, err
	} else if existing != nil {
		// Identity is fixed at first registration; candidate fields from
		// later submissions are ignored.
		return *existing, false, nil
	}

	head := strings.TrimSpace(req.HeadName)
	if head == "" {
		return domain.Family{}, false, domain.ErrInvalidHeadName
	}
	village := strings.TrimSpace(req.VillageName)
	if village == "" {
		return domain.Family{}, false, domain.ErrInvalidVillageName
	}
	if req.MemberCount <= 0 {
		return domain.Family{}, false, domain.ErrInvalidMemberCount
	}

	family := domain.Family{
		ID:            s.genID.Generate(),
		PublicCode:    newPublicCode(),
		HeadName:      head,
		ContactNumber: contact,
		VillageName:   village,
		MemberCount:   req.MemberCount,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, &family); err != nil {
		if db.IsDuplicateKeyErr(err) {
			// Lost a first-submission race; the unique constraint on
			// contact_number guarantees the winner is canonical.
			winner, findErr := s.repo.FindByContact(ctx, s.db, contact)
			if findErr != nil {
				return domain.Family{}, false, findErr
			}
			if winner == nil {
				return domain.Family{}, false, domain.ErrConflict
			}
			return *winner, false, nil
		}
		return domain.Family{}, false, err
	}

	s.log.Info("family registered",
		zap.String("family_id", family.ID.String()),
		zap.String("village", family.VillageName),
	)
	return family, true, nil
}

func (s *Service) LookupByContact(ctx context.Context, contactNumber string) (domain.Family, error) {
	contact := strings.TrimSpace(contactNumber)
	if !domain.ValidContactNumber(contact) {
		// Malformed and unknown numbers are indistinguishable to callers.
		return domain.Family{}, domain.ErrNotFound
	}

	family, err := s.repo.FindByContact(ctx, s.db, contact)
	if err != nil {
		return domain.Family{}, err
	}
	if family == nil {
		return domain.Family{}, domain.ErrNotFound
	}
	return *family, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateFamilyRequest) (domain.Family, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Family{}, err
	}

	head := strings.TrimSpace(req.HeadName)
	if head == "" {
		return domain.Family{}, domain.ErrInvalidHeadName
	}
	village := strings.TrimSpace(req.VillageName)
	if village == "" {
		return domain.Family{}, domain.ErrInvalidVillageName
	}
	if req.MemberCount <= 0 {
		return domain.Family{}, domain.ErrInvalidMemberCount
	}

	family, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Family{}, err
	}
	if family == nil {
		return domain.Family{}, domain.ErrNotFound
	}

	family.HeadName = head
	family.VillageName = village
	family.MemberCount = req.MemberCount
	if err := s.repo.Update(ctx, s.db, family); err != nil {
		return domain.Family{}, err
	}

	return *family, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func newPublicCode() string {
	return "FAM-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
