package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eurouni/eurostudy/internal/services"
)

// AdminHandler exposes read-only lookups for support staff.
type AdminHandler struct {
	profiles services.ProfileService
	resumes  services.ResumeService
}

func NewAdminHandler(profiles services.ProfileService, resumes services.ResumeService) *AdminHandler {
	return &AdminHandler{profiles: profiles, resumes: resumes}
}

func (h *AdminHandler) GetProfile(c *gin.Context) {
	p, err := h.profiles.GetMe(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AdminHandler) ListResumes(c *gin.Context) {
	list, err := h.resumes.ListAll(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumes": list})
}
