package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/rationbook/internal/announcement/domain"
	"github.com/smallbiznis/rationbook/internal/clock"
	"github.com/smallbiznis/rationbook/pkg/db/pagination"
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
		log:   p.Log.Named("announcement.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Announcement, error) {
	title, content, err := validate(req.Title, req.Content)
	if err != nil {
		return domain.Announcement{}, err
	}

	now := s.clock.Now()
	announcement := domain.Announcement{
		ID:        s.genID.Generate(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, &announcement); err != nil {
		return domain.Announcement{}, err
	}

	s.log.Info("announcement published", zap.String("announcement_id", announcement.ID.String()))
	return announcement, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.Announcement, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Announcement{}, err
	}
	title, content, err := validate(req.Title, req.Content)
	if err != nil {
		return domain.Announcement{}, err
	}

	announcement, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Announcement{}, err
	}
	if announcement == nil {
		return domain.Announcement{}, domain.ErrNotFound
	}

	announcement.Title = title
	announcement.Content = content
	announcement.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, announcement); err != nil {
		return domain.Announcement{}, err
	}
	return *announcement, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	announcementID, err := s.parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, s.db, announcementID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) (pagination.Page[domain.Announcement], error) {
	page = page.Normalize()
	announcements, total, err := s.repo.List(ctx, s.db, page)
	if err != nil {
		return pagination.Page[domain.Announcement]{}, err
	}

	items := make([]domain.Announcement, 0, len(announcements))
	for _, announcement := range announcements {
		if announcement == nil {
			continue
		}
		items = append(items, *announcement)
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

func validate(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", domain.ErrInvalidTitle
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "", "", domain.ErrInvalidContent
	}
	return title, content, nil
}
