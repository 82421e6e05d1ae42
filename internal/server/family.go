package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	familydomain "github.com/smallbiznis/rationbook/internal/family/domain"
)

// LookupFamilyByContact backs the public form auto-fill: a known contact
// number returns the registered family so repeat submitters do not retype
// their details.
func (s *Server) LookupFamilyByContact(c *gin.Context) {
	contact := strings.TrimSpace(c.Param("contactNumber"))

	family, err := s.familySvc.LookupByContact(c.Request.Context(), contact)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": family})
}

type updateFamilyRequest struct {
	HeadName    string `json:"familyHeadName"`
	VillageName string `json:"villageName"`
	MemberCount int    `json:"numMembers"`
}

func (s *Server) UpdateFamily(c *gin.Context) {
	var req updateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	family, err := s.familySvc.Update(c.Request.Context(), familydomain.UpdateFamilyRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		HeadName:    req.HeadName,
		VillageName: req.VillageName,
		MemberCount: req.MemberCount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": family})
}

func (s *Server) GetFamilyHistory(c *gin.Context) {
	history, err := s.distributionSvc.HistoryForFamily(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": history})
}

func isFamilyValidationError(err error) bool {
	switch err {
	case familydomain.ErrInvalidContactNumber,
		familydomain.ErrInvalidHeadName,
		familydomain.ErrInvalidVillageName,
		familydomain.ErrInvalidMemberCount,
		familydomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
