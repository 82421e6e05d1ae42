package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/rationbook/internal/clock"
	"github.com/smallbiznis/rationbook/internal/grievance/domain"
	"github.com/smallbiznis/rationbook/internal/grievance/repository"
	"github.com/smallbiznis/rationbook/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var dbSeq int

func newTestService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()

	dbSeq++
	dsn := fmt.Sprintf("file:grievance_test_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Grievance{}, &domain.Comment{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fixed := clock.NewFakeClock(time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC))

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: fixed,
		GenID: node,
		Repo:  repository.Provide(),
	}), fixed
}

func file(t *testing.T, svc domain.Service, subject string) domain.Grievance {
	t.Helper()
	grievance, err := svc.Create(context.Background(), domain.CreateRequest{
		Subject: subject,
		Content: "Content for " + subject,
	})
	require.NoError(t, err)
	return grievance
}

var trackingPattern = regexp.MustCompile(`^GRV-[0-9A-F]{8}$`)

func TestCreateAssignsTrackingIDAndNewStatus(t *testing.T) {
	svc, _ := newTestService(t)

	grievance, err := svc.Create(context.Background(), domain.CreateRequest{
		Subject:     "  Missing ration  ",
		Content:     " We received only half the quota. ",
		ContactInfo: " 9000000001 ",
	})
	require.NoError(t, err)
	assert.Regexp(t, trackingPattern, grievance.TrackingID)
	assert.Equal(t, domain.StatusNew, grievance.Status)
	assert.Equal(t, "Missing ration", grievance.Subject)
	assert.Equal(t, "We received only half the quota.", grievance.Content)
	assert.Equal(t, "9000000001", grievance.ContactInfo)
	assert.Empty(t, grievance.Comments)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Subject: "   ", Content: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidSubject)

	_, err = svc.Create(ctx, domain.CreateRequest{Subject: "x", Content: "\t\n"})
	assert.ErrorIs(t, err, domain.ErrInvalidContent)
}

func TestTrackingIDsUniqueAndWellFormed(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := newTrackingID()
		require.Regexp(t, trackingPattern, id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate tracking id %s", id)
		seen[id] = struct{}{}
	}
}

func TestSetStatusAllTransitions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	transitions := []struct{ from, to domain.Status }{
		{domain.StatusNew, domain.StatusInProgress},
		{domain.StatusNew, domain.StatusResolved},
		{domain.StatusInProgress, domain.StatusNew},
		{domain.StatusInProgress, domain.StatusResolved},
		{domain.StatusResolved, domain.StatusNew},
		{domain.StatusResolved, domain.StatusInProgress},
	}
	for _, tc := range transitions {
		grievance := file(t, svc, fmt.Sprintf("transition %s to %s", tc.from, tc.to))
		if tc.from != domain.StatusNew {
			_, err := svc.SetStatus(ctx, grievance.ID.String(), string(tc.from))
			require.NoError(t, err)
		}
		updated, err := svc.SetStatus(ctx, grievance.ID.String(), string(tc.to))
		require.NoError(t, err)
		assert.Equal(t, tc.to, updated.Status)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService(t)

	grievance := file(t, svc, "bad status")
	_, err := svc.SetStatus(context.Background(), grievance.ID.String(), "Closed")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestSetStatusUnknownID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SetStatus(context.Background(), "123456789", string(domain.StatusResolved))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.SetStatus(context.Background(), "not-a-number", string(domain.StatusResolved))
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestSetStatusTouchesUpdatedAt(t *testing.T) {
	svc, fixed := newTestService(t)

	grievance := file(t, svc, "timestamps")
	fixed.Advance(2 * time.Hour)

	updated, err := svc.SetStatus(context.Background(), grievance.ID.String(), string(domain.StatusInProgress))
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(grievance.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(grievance.CreatedAt))
}

func TestAddCommentAppendsInOrder(t *testing.T) {
	svc, fixed := newTestService(t)
	ctx := context.Background()

	grievance := file(t, svc, "comments")
	_, err := svc.AddComment(ctx, grievance.ID.String(), "Looking into it.")
	require.NoError(t, err)
	fixed.Advance(time.Minute)
	_, err = svc.AddComment(ctx, grievance.ID.String(), "Depot confirmed shortfall.")
	require.NoError(t, err)

	found, err := svc.QueryByTrackingID(ctx, grievance.TrackingID)
	require.NoError(t, err)
	require.Len(t, found.Comments, 2)
	assert.Equal(t, "Looking into it.", found.Comments[0].Content)
	assert.Equal(t, "Depot confirmed shortfall.", found.Comments[1].Content)
	// commenting never moves the workflow
	assert.Equal(t, domain.StatusNew, found.Status)
}

func TestAddCommentValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	grievance := file(t, svc, "empty comment")
	_, err := svc.AddComment(ctx, grievance.ID.String(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidComment)

	_, err = svc.AddComment(ctx, "424242", "orphan")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQueryByTrackingID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	grievance := file(t, svc, "lookup")

	found, err := svc.QueryByTrackingID(ctx, grievance.TrackingID)
	require.NoError(t, err)
	assert.Equal(t, grievance.ID, found.ID)

	// case-insensitive on the public handle
	found, err = svc.QueryByTrackingID(ctx, "  "+strings.ToLower(grievance.TrackingID)+" ")
	require.NoError(t, err)
	assert.Equal(t, grievance.ID, found.ID)

	// unknown and malformed are indistinguishable
	_, err = svc.QueryByTrackingID(ctx, "GRV-00000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.QueryByTrackingID(ctx, "not a tracking id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.QueryByTrackingID(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListForAdminFiltersAndOrders(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := file(t, svc, "first")
	second := file(t, svc, "second")
	third := file(t, svc, "third")

	_, err := svc.SetStatus(ctx, second.ID.String(), string(domain.StatusInProgress))
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, third.ID.String(), string(domain.StatusResolved))
	require.NoError(t, err)

	page, err := svc.ListForAdmin(ctx, domain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, page.Content, 3)
	// newest first
	assert.Equal(t, third.ID, page.Content[0].ID)
	assert.Equal(t, first.ID, page.Content[2].ID)

	page, err = svc.ListForAdmin(ctx, domain.ListRequest{Filter: domain.FilterActive})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, second.ID, page.Content[0].ID)
	assert.Equal(t, first.ID, page.Content[1].ID)

	page, err = svc.ListForAdmin(ctx, domain.ListRequest{Filter: domain.FilterResolved})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, third.ID, page.Content[0].ID)

	_, err = svc.ListForAdmin(ctx, domain.ListRequest{Filter: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusFilter)
}

func TestListForAdminPaginationTotals(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		file(t, svc, fmt.Sprintf("grievance %d", i))
	}

	page, err := svc.ListForAdmin(ctx, domain.ListRequest{Page: pagination.Pagination{Page: 0, Size: 2}})
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.EqualValues(t, 5, page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)

	page, err = svc.ListForAdmin(ctx, domain.ListRequest{Page: pagination.Pagination{Page: 9, Size: 2}})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.EqualValues(t, 5, page.TotalElements)
}
