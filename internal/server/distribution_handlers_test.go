package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	distributiondomain "github.com/smallbiznis/rationbook/internal/distribution/domain"
	familydomain "github.com/smallbiznis/rationbook/internal/family/domain"
	"github.com/smallbiznis/rationbook/pkg/db/pagination"
)

type fakeDistributionService struct {
	submitCalls int
	lastSubmit  distributiondomain.SubmitRequest
	submitErr   error

	listCalls int
	lastList  distributiondomain.ListRecordsRequest
}

func (f *fakeDistributionService) Submit(ctx context.Context, req distributiondomain.SubmitRequest) (distributiondomain.RecordView, error) {
	f.submitCalls++
	f.lastSubmit = req
	_ = ctx
	if f.submitErr != nil {
		return distributiondomain.RecordView{}, f.submitErr
	}
	return distributiondomain.RecordView{
		DistributionDate: req.DistributionDate.Format(distributiondomain.DateLayout),
		RiceReceivedKg:   req.RiceReceivedKg.InexactFloat64(),
	}, nil
}

func (f *fakeDistributionService) List(ctx context.Context, req distributiondomain.ListRecordsRequest) (pagination.Page[distributiondomain.RecordView], error) {
	f.listCalls++
	f.lastList = req
	_ = ctx
	return pagination.NewPage([]distributiondomain.RecordView{}, req.Page.Normalize(), 0), nil
}

func (f *fakeDistributionService) HistoryForFamily(ctx context.Context, familyID string) ([]distributiondomain.RecordView, error) {
	_ = ctx
	_ = familyID
	return nil, distributiondomain.ErrNotFound
}

func newRecordsRouter(svc distributiondomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	srv := &Server{distributionSvc: svc}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/api/records", srv.SubmitRecord)
	router.GET("/admin/records", srv.ListRecords)
	router.GET("/admin/families/:id/history", srv.GetFamilyHistory)
	return router
}

func TestSubmitRecordHandler(t *testing.T) {
	svc := &fakeDistributionService{}
	router := newRecordsRouter(svc)

	body := `{"familyHeadName":"Ramesh","contactNumber":"9000000001","villageName":"Chandpur","numMembers":4,"riceReceivedKg":15,"distributionDate":"2025-03-05"}`
	req := httptest.NewRequest(http.MethodPost, "/api/records", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	if svc.submitCalls != 1 {
		t.Fatalf("expected one submit call, got %d", svc.submitCalls)
	}
	if svc.lastSubmit.ContactNumber != "9000000001" {
		t.Fatalf("unexpected contact number %q", svc.lastSubmit.ContactNumber)
	}
	if got := svc.lastSubmit.RiceReceivedKg.InexactFloat64(); got != 15 {
		t.Fatalf("expected rice amount 15, got %v", got)
	}
}

func TestSubmitRecordHandlerRejectsBadDate(t *testing.T) {
	svc := &fakeDistributionService{}
	router := newRecordsRouter(svc)

	body := `{"familyHeadName":"Ramesh","contactNumber":"9000000001","villageName":"Chandpur","numMembers":4,"riceReceivedKg":15,"distributionDate":"05-03-2025"}`
	req := httptest.NewRequest(http.MethodPost, "/api/records", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if svc.submitCalls != 0 {
		t.Fatal("expected submit service not to be called")
	}

	var payload struct {
		Error struct {
			Type   string `json:"type"`
			Errors []struct {
				Field string `json:"field"`
				Code  string `json:"code"`
			} `json:"errors"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if payload.Error.Type != "validation_error" {
		t.Fatalf("expected validation_error, got %q", payload.Error.Type)
	}
	if len(payload.Error.Errors) != 1 || payload.Error.Errors[0].Field != "distributionDate" {
		t.Fatalf("unexpected field errors %+v", payload.Error.Errors)
	}
}

func TestSubmitRecordHandlerMapsDomainValidation(t *testing.T) {
	svc := &fakeDistributionService{submitErr: familydomain.ErrInvalidContactNumber}
	router := newRecordsRouter(svc)

	body := `{"familyHeadName":"Ramesh","contactNumber":"123","villageName":"Chandpur","numMembers":4,"riceReceivedKg":15,"distributionDate":"2025-03-05"}`
	req := httptest.NewRequest(http.MethodPost, "/api/records", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestListRecordsHandlerParsesFilters(t *testing.T) {
	svc := &fakeDistributionService{}
	router := newRecordsRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/admin/records?year=2025&month=3&search=ramesh&page=1&size=20", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	if svc.lastList.Year == nil || *svc.lastList.Year != 2025 {
		t.Fatalf("unexpected year %+v", svc.lastList.Year)
	}
	if svc.lastList.Month == nil || *svc.lastList.Month != 3 {
		t.Fatalf("unexpected month %+v", svc.lastList.Month)
	}
	if svc.lastList.Search != "ramesh" {
		t.Fatalf("unexpected search %q", svc.lastList.Search)
	}
	if svc.lastList.Page.Page != 1 || svc.lastList.Page.Size != 20 {
		t.Fatalf("unexpected pagination %+v", svc.lastList.Page)
	}
}

func TestListRecordsHandlerRejectsBadYear(t *testing.T) {
	svc := &fakeDistributionService{}
	router := newRecordsRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/admin/records?year=twenty", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if svc.listCalls != 0 {
		t.Fatal("expected list service not to be called")
	}
}

func TestFamilyHistoryHandlerMapsNotFound(t *testing.T) {
	svc := &fakeDistributionService{}
	router := newRecordsRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/admin/families/42/history", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
