package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/services"
	"github.com/eurouni/eurostudy/internal/utils"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.svc.GetMe(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

type UpdateProfileRequest struct {
	GPA     *float64 `json:"gpa,omitempty"`
	IELTS   *float64 `json:"ielts,omitempty"`
	Budget  *float64 `json:"budget,omitempty"`
	Country *string  `json:"country,omitempty"`
	Field   *string  `json:"field,omitempty"`

	// JSONB field (raw)
	Preferences *json.RawMessage `json:"preferences,omitempty"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.Update", "invalid request body", err))
		return
	}

	// Load existing (if not found => create new)
	existing, err := h.svc.GetMe(c.Request.Context(), userID)
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			existing = &models.StudentProfile{UserID: userID}
		} else {
			writeError(c, err)
			return
		}
	}

	// Apply partial updates
	if req.GPA != nil {
		existing.GPA = *req.GPA
	}
	if req.IELTS != nil {
		existing.IELTS = *req.IELTS
	}
	if req.Budget != nil {
		existing.Budget = *req.Budget
	}
	if req.Country != nil {
		existing.Country = *req.Country
	}
	if req.Field != nil {
		existing.Field = *req.Field
	}
	if req.Preferences != nil {
		existing.Preferences = datatypes.JSON(*req.Preferences)
	}

	existing.UpdatedAt = time.Now().UTC()

	if err := h.svc.Upsert(c.Request.Context(), existing); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, existing)
}
