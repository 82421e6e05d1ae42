package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	grievancedomain "github.com/smallbiznis/rationbook/internal/grievance/domain"
	"github.com/smallbiznis/rationbook/internal/providers/storage"
	"github.com/smallbiznis/rationbook/pkg/db/pagination"
)

type fakeGrievanceService struct {
	createCalls int
	lastCreate  grievancedomain.CreateRequest
	createErr   error

	lastFilter grievancedomain.StatusFilter
}

func (f *fakeGrievanceService) Create(ctx context.Context, req grievancedomain.CreateRequest) (grievancedomain.Grievance, error) {
	f.createCalls++
	f.lastCreate = req
	_ = ctx
	if f.createErr != nil {
		return grievancedomain.Grievance{}, f.createErr
	}
	return grievancedomain.Grievance{
		TrackingID: "GRV-0A1B2C3D",
		Subject:    req.Subject,
		Status:     grievancedomain.StatusNew,
	}, nil
}

func (f *fakeGrievanceService) SetStatus(ctx context.Context, id string, status string) (grievancedomain.Grievance, error) {
	_ = ctx
	_ = id
	next, err := grievancedomain.ParseStatus(status)
	if err != nil {
		return grievancedomain.Grievance{}, err
	}
	return grievancedomain.Grievance{Status: next}, nil
}

func (f *fakeGrievanceService) AddComment(ctx context.Context, id string, content string) (grievancedomain.Comment, error) {
	_ = ctx
	_ = id
	return grievancedomain.Comment{Content: content}, nil
}

func (f *fakeGrievanceService) QueryByTrackingID(ctx context.Context, trackingID string) (grievancedomain.Grievance, error) {
	_ = ctx
	_ = trackingID
	return grievancedomain.Grievance{}, grievancedomain.ErrNotFound
}

func (f *fakeGrievanceService) ListForAdmin(ctx context.Context, req grievancedomain.ListRequest) (pagination.Page[grievancedomain.Grievance], error) {
	_ = ctx
	f.lastFilter = req.Filter
	statuses, err := req.Filter.Statuses()
	if err != nil {
		return pagination.Page[grievancedomain.Grievance]{}, err
	}
	_ = statuses
	return pagination.NewPage([]grievancedomain.Grievance{}, req.Page.Normalize(), 0), nil
}

type fakeStorage struct {
	saveCalls   int
	removeCalls int
	lastRemoved string
}

func (f *fakeStorage) Save(ctx context.Context, originalName string, r io.Reader) (storage.Stored, error) {
	f.saveCalls++
	_ = ctx
	_, _ = io.Copy(io.Discard, r)
	return storage.Stored{Ref: "01ARZ3NDEKTSV4RRFFQ69G5FAV.jpg", URL: "/uploads/01ARZ3NDEKTSV4RRFFQ69G5FAV.jpg"}, nil
}

func (f *fakeStorage) Remove(ctx context.Context, ref string) error {
	f.removeCalls++
	f.lastRemoved = ref
	_ = ctx
	return nil
}

func newGrievanceRouter(svc grievancedomain.Service, uploads storage.Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	srv := &Server{grievanceSvc: svc, uploads: uploads}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/api/grievances", srv.CreateGrievance)
	router.GET("/api/grievances/track/:trackingId", srv.TrackGrievance)
	router.GET("/admin/grievances", srv.ListGrievances)
	router.PATCH("/admin/grievances/:id/status", srv.UpdateGrievanceStatus)
	return router
}

func TestCreateGrievanceHandlerJSON(t *testing.T) {
	svc := &fakeGrievanceService{}
	router := newGrievanceRouter(svc, &fakeStorage{})

	body := `{"subject":"Short ration","content":"Received 5kg less","contactInfo":"9000000001"}`
	req := httptest.NewRequest(http.MethodPost, "/api/grievances", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	if svc.createCalls != 1 {
		t.Fatalf("expected one create call, got %d", svc.createCalls)
	}
	if svc.lastCreate.EvidenceURL != "" {
		t.Fatalf("expected no evidence url, got %q", svc.lastCreate.EvidenceURL)
	}
}

func TestCreateGrievanceHandlerMultipartWithEvidence(t *testing.T) {
	svc := &fakeGrievanceService{}
	uploads := &fakeStorage{}
	router := newGrievanceRouter(svc, uploads)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("subject", "Short ration")
	_ = writer.WriteField("content", "Photo attached")
	part, err := writer.CreateFormFile("evidence", "proof.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write([]byte("jpeg-bytes"))
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/grievances", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	if uploads.saveCalls != 1 {
		t.Fatalf("expected one save call, got %d", uploads.saveCalls)
	}
	if svc.lastCreate.EvidenceURL != "/uploads/01ARZ3NDEKTSV4RRFFQ69G5FAV.jpg" {
		t.Fatalf("unexpected evidence url %q", svc.lastCreate.EvidenceURL)
	}
}

func TestCreateGrievanceHandlerRemovesEvidenceOnFailure(t *testing.T) {
	svc := &fakeGrievanceService{createErr: errors.New("insert failed")}
	uploads := &fakeStorage{}
	router := newGrievanceRouter(svc, uploads)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("subject", "Short ration")
	_ = writer.WriteField("content", "Photo attached")
	part, _ := writer.CreateFormFile("evidence", "proof.jpg")
	_, _ = part.Write([]byte("jpeg-bytes"))
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/grievances", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
	if uploads.removeCalls != 1 {
		t.Fatalf("expected stored file to be removed, got %d remove calls", uploads.removeCalls)
	}
	if uploads.lastRemoved != "01ARZ3NDEKTSV4RRFFQ69G5FAV.jpg" {
		t.Fatalf("unexpected removed ref %q", uploads.lastRemoved)
	}
}

func TestCreateGrievanceHandlerMapsValidation(t *testing.T) {
	svc := &fakeGrievanceService{createErr: grievancedomain.ErrInvalidSubject}
	router := newGrievanceRouter(svc, &fakeStorage{})

	body := `{"subject":"  ","content":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/api/grievances", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestTrackGrievanceHandlerUnknownIs404(t *testing.T) {
	router := newGrievanceRouter(&fakeGrievanceService{}, &fakeStorage{})

	req := httptest.NewRequest(http.MethodGet, "/api/grievances/track/GRV-FFFFFFFF", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestListGrievancesHandlerFilter(t *testing.T) {
	svc := &fakeGrievanceService{}
	router := newGrievanceRouter(svc, &fakeStorage{})

	req := httptest.NewRequest(http.MethodGet, "/admin/grievances?status=Active", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	if svc.lastFilter != grievancedomain.FilterActive {
		t.Fatalf("unexpected filter %q", svc.lastFilter)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/grievances?status=archived", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestUpdateGrievanceStatusHandlerRejectsUnknownStatus(t *testing.T) {
	router := newGrievanceRouter(&fakeGrievanceService{}, &fakeStorage{})

	req := httptest.NewRequest(http.MethodPatch, "/admin/grievances/42/status", bytes.NewBufferString(`{"status":"Closed"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}
