package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eurouni/eurostudy/internal/advisor"
	"github.com/eurouni/eurostudy/internal/services"
	"github.com/eurouni/eurostudy/internal/utils"
)

// AdvisorHandler fronts the ML advisor backend. Request bodies override the
// stored student profile field by field; zero values fall back to it.
type AdvisorHandler struct {
	svc services.AdvisorService
}

func NewAdvisorHandler(svc services.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{svc: svc}
}

func (h *AdvisorHandler) Predict(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req advisor.StudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdvisorHandler.Predict", "invalid request body", err))
		return
	}

	out, err := h.svc.Predict(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", out)
}

func (h *AdvisorHandler) Recommend(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req advisor.StudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdvisorHandler.Recommend", "invalid request body", err))
		return
	}

	out, err := h.svc.Recommend(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", out)
}

func (h *AdvisorHandler) CostAnalysis(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req advisor.CostAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdvisorHandler.CostAnalysis", "invalid request body", err))
		return
	}

	out, err := h.svc.CostAnalysis(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", out)
}

func (h *AdvisorHandler) Scholarships(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req advisor.ScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdvisorHandler.Scholarships", "invalid request body", err))
		return
	}

	out, err := h.svc.Scholarships(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", out)
}

func (h *AdvisorHandler) FindAffordable(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req advisor.StudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdvisorHandler.FindAffordable", "invalid request body", err))
		return
	}

	out, err := h.svc.FindAffordable(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", out)
}

type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// Query forwards a free-form question to the backend's NLP answerer.
func (h *AdvisorHandler) Query(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdvisorHandler.Query", "invalid request body", err))
		return
	}

	out, err := h.svc.Query(c.Request.Context(), req.Query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", out)
}

// GenerateSOP drafts a statement of purpose for a university application.
func (h *AdvisorHandler) GenerateSOP(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req advisor.SOPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdvisorHandler.GenerateSOP", "invalid request body", err))
		return
	}

	out, err := h.svc.GenerateSOP(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", out)
}

func (h *AdvisorHandler) Universities(c *gin.Context) {
	out, err := h.svc.Universities(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", out)
}

func (h *AdvisorHandler) ScholarshipList(c *gin.Context) {
	out, err := h.svc.ScholarshipList(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", out)
}

func (h *AdvisorHandler) ScholarshipsByCountry(c *gin.Context) {
	out, err := h.svc.ScholarshipsByCountry(c.Request.Context(), c.Param("country"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", out)
}

func (h *AdvisorHandler) ScholarshipStatistics(c *gin.Context) {
	out, err := h.svc.ScholarshipStatistics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", out)
}

func (h *AdvisorHandler) FilterScholarships(c *gin.Context) {
	f := advisor.ScholarshipFilter{
		Country:  c.Query("country"),
		Coverage: c.Query("coverage"),
	}
	if v := c.Query("min_amount"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, "AdvisorHandler.FilterScholarships", "invalid min_amount", err))
			return
		}
		f.MinAmount = n
	}
	if v := c.Query("max_amount"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, "AdvisorHandler.FilterScholarships", "invalid max_amount", err))
			return
		}
		f.MaxAmount = n
	}

	out, err := h.svc.FilterScholarships(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", out)
}
