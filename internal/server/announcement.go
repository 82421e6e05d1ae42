package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	announcementdomain "github.com/smallbiznis/rationbook/internal/announcement/domain"
	"github.com/smallbiznis/rationbook/pkg/db/pagination"
)

type announcementRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *Server) ListAnnouncements(c *gin.Context) {
	var query pagination.Pagination
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	page, err := s.announcementSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": page})
}

func (s *Server) CreateAnnouncement(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	announcement, err := s.announcementSvc.Create(c.Request.Context(), announcementdomain.CreateRequest{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": announcement})
}

func (s *Server) UpdateAnnouncement(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	announcement, err := s.announcementSvc.Update(c.Request.Context(), announcementdomain.UpdateRequest{
		ID:      c.Param("id"),
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": announcement})
}

func (s *Server) DeleteAnnouncement(c *gin.Context) {
	if err := s.announcementSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func isAnnouncementValidationError(err error) bool {
	switch err {
	case announcementdomain.ErrInvalidTitle,
		announcementdomain.ErrInvalidContent,
		announcementdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
