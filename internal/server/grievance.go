package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	grievancedomain "github.com/smallbiznis/rationbook/internal/grievance/domain"
	"github.com/smallbiznis/rationbook/pkg/db/pagination"
)

// maxEvidenceBytes caps grievance evidence uploads.
const maxEvidenceBytes = 5 << 20

type createGrievanceRequest struct {
	Subject     string `json:"subject" form:"subject"`
	Content     string `json:"content" form:"content"`
	ContactInfo string `json:"contactInfo" form:"contactInfo"`
}

// CreateGrievance accepts JSON or multipart form submissions; multipart may
// carry an optional evidence image. The stored file is removed again when the
// grievance row cannot be created, so no orphaned reference survives.
func (s *Server) CreateGrievance(c *gin.Context) {
	var req createGrievanceRequest
	evidenceURL := ""
	evidenceRef := ""

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}

		header, err := c.FormFile("evidence")
		if err == nil && header != nil {
			if header.Size > maxEvidenceBytes {
				AbortWithError(c, newValidationError("evidence", "invalid_evidence", "file too large"))
				return
			}
			if contentType := header.Header.Get("Content-Type"); contentType != "" && !strings.HasPrefix(contentType, "image/") {
				AbortWithError(c, newValidationError("evidence", "invalid_evidence", "invalid value"))
				return
			}

			f, err := header.Open()
			if err != nil {
				AbortWithError(c, err)
				return
			}
			stored, err := s.uploads.Save(c.Request.Context(), header.Filename, f)
			f.Close()
			if err != nil {
				AbortWithError(c, err)
				return
			}
			evidenceURL = stored.URL
			evidenceRef = stored.Ref
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	grievance, err := s.grievanceSvc.Create(c.Request.Context(), grievancedomain.CreateRequest{
		Subject:     req.Subject,
		Content:     req.Content,
		ContactInfo: req.ContactInfo,
		EvidenceURL: evidenceURL,
	})
	if err != nil {
		if evidenceRef != "" {
			_ = s.uploads.Remove(c.Request.Context(), evidenceRef)
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": grievance})
}

func (s *Server) TrackGrievance(c *gin.Context) {
	grievance, err := s.grievanceSvc.QueryByTrackingID(c.Request.Context(), c.Param("trackingId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": grievance})
}

func (s *Server) ListGrievances(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	page, err := s.grievanceSvc.ListForAdmin(c.Request.Context(), grievancedomain.ListRequest{
		Filter: grievancedomain.StatusFilter(strings.ToLower(strings.TrimSpace(query.Status))),
		Page:   query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": page})
}

type updateGrievanceStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) UpdateGrievanceStatus(c *gin.Context) {
	var req updateGrievanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	grievance, err := s.grievanceSvc.SetStatus(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.Status))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": grievance})
}

type addGrievanceCommentRequest struct {
	Content string `json:"content"`
}

func (s *Server) AddGrievanceComment(c *gin.Context) {
	var req addGrievanceCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	comment, err := s.grievanceSvc.AddComment(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": comment})
}

func isGrievanceValidationError(err error) bool {
	switch err {
	case grievancedomain.ErrInvalidSubject,
		grievancedomain.ErrInvalidContent,
		grievancedomain.ErrInvalidComment,
		grievancedomain.ErrInvalidStatus,
		grievancedomain.ErrInvalidStatusFilter,
		grievancedomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
