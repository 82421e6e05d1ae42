package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	distributiondomain "github.com/smallbiznis/rationbook/internal/distribution/domain"
	"github.com/smallbiznis/rationbook/pkg/db/pagination"
)

type submitRecordRequest struct {
	HeadName         string  `json:"familyHeadName"`
	ContactNumber    string  `json:"contactNumber"`
	VillageName      string  `json:"villageName"`
	MemberCount      int     `json:"numMembers"`
	RiceReceivedKg   float64 `json:"riceReceivedKg"`
	DistributionDate string  `json:"distributionDate"`
}

func (s *Server) SubmitRecord(c *gin.Context) {
	var req submitRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := time.Parse(distributiondomain.DateLayout, strings.TrimSpace(req.DistributionDate))
	if err != nil {
		AbortWithError(c, newValidationError("distributionDate", "invalid_distribution_date", "invalid value"))
		return
	}

	record, err := s.distributionSvc.Submit(c.Request.Context(), distributiondomain.SubmitRequest{
		ContactNumber:    req.ContactNumber,
		HeadName:         req.HeadName,
		VillageName:      req.VillageName,
		MemberCount:      req.MemberCount,
		RiceReceivedKg:   decimal.NewFromFloat(req.RiceReceivedKg),
		DistributionDate: date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": record})
}

func (s *Server) ListRecords(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Year   string `form:"year"`
		Month  string `form:"month"`
		Search string `form:"search"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	year, err := parseOptionalInt(query.Year)
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid value"))
		return
	}
	month, err := parseOptionalInt(query.Month)
	if err != nil {
		AbortWithError(c, newValidationError("month", "invalid_month", "invalid value"))
		return
	}

	page, err := s.distributionSvc.List(c.Request.Context(), distributiondomain.ListRecordsRequest{
		Year:   year,
		Month:  month,
		Search: query.Search,
		Page:   query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": page})
}

func isDistributionValidationError(err error) bool {
	switch err {
	case distributiondomain.ErrInvalidRiceReceived,
		distributiondomain.ErrInvalidDate,
		distributiondomain.ErrInvalidMonth,
		distributiondomain.ErrInvalidYear,
		distributiondomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
