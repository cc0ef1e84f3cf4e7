package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eurouni/eurostudy/internal/services"
	"github.com/eurouni/eurostudy/internal/utils"
)

type VisaHandler struct {
	svc services.VisaService
}

func NewVisaHandler(svc services.VisaService) *VisaHandler {
	return &VisaHandler{svc: svc}
}

func (h *VisaHandler) Countries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"countries": h.svc.Countries()})
}

func (h *VisaHandler) Requirements(c *gin.Context) {
	reqs, err := h.svc.Requirements(c.Param("country"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, reqs)
}

func (h *VisaHandler) Progress(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.svc.Progress(c.Request.Context(), userID, c.Param("country"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

type SetCheckedRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}

func (h *VisaHandler) SetChecked(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req SetCheckedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "VisaHandler.SetChecked", "invalid request body", err))
		return
	}

	p, err := h.svc.SetChecked(c.Request.Context(), userID, c.Param("country"), c.Param("item_id"), *req.Checked)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
