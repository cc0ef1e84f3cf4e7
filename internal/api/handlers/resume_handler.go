package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eurouni/eurostudy/internal/preview"
	"github.com/eurouni/eurostudy/internal/resume"
	"github.com/eurouni/eurostudy/internal/services"
	"github.com/eurouni/eurostudy/internal/utils"
)

type ResumeHandler struct {
	svc    services.ResumeService
	export services.ExportService
}

func NewResumeHandler(svc services.ResumeService, export services.ExportService) *ResumeHandler {
	return &ResumeHandler{svc: svc, export: export}
}

type CreateResumeRequest struct {
	Name string `json:"name"`
}

func (h *ResumeHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.Create", "invalid request body", err))
		return
	}

	r, err := h.svc.CreateNew(c.Request.Context(), userID, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, r)
}

func (h *ResumeHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	list, err := h.svc.ListAll(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resumes": list})
}

func (h *ResumeHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	r, err := h.svc.GetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var patch resume.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.Update", "invalid request body", err))
		return
	}

	r, err := h.svc.Save(c.Request.Context(), userID, c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ResumeHandler) AddEducation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in resume.EducationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.AddEducation", "invalid request body", err))
		return
	}

	r, err := h.svc.AddEducation(c.Request.Context(), userID, c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) UpdateEducation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in resume.EducationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.UpdateEducation", "invalid request body", err))
		return
	}

	r, err := h.svc.UpdateEducation(c.Request.Context(), userID, c.Param("id"), c.Param("entryID"), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) DeleteEducation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	r, err := h.svc.DeleteEducation(c.Request.Context(), userID, c.Param("id"), c.Param("entryID"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) AddExperience(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in resume.ExperienceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.AddExperience", "invalid request body", err))
		return
	}

	r, err := h.svc.AddExperience(c.Request.Context(), userID, c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) UpdateExperience(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in resume.ExperienceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.UpdateExperience", "invalid request body", err))
		return
	}

	r, err := h.svc.UpdateExperience(c.Request.Context(), userID, c.Param("id"), c.Param("entryID"), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) DeleteExperience(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	r, err := h.svc.DeleteExperience(c.Request.Context(), userID, c.Param("id"), c.Param("entryID"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) AddLanguage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in resume.LanguageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.AddLanguage", "invalid request body", err))
		return
	}

	r, err := h.svc.AddLanguage(c.Request.Context(), userID, c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) UpdateLanguage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in resume.LanguageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.UpdateLanguage", "invalid request body", err))
		return
	}

	r, err := h.svc.UpdateLanguage(c.Request.Context(), userID, c.Param("id"), c.Param("entryID"), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) DeleteLanguage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	r, err := h.svc.DeleteLanguage(c.Request.Context(), userID, c.Param("id"), c.Param("entryID"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) AddCertification(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in resume.CertificationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.AddCertification", "invalid request body", err))
		return
	}

	r, err := h.svc.AddCertification(c.Request.Context(), userID, c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) UpdateCertification(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in resume.CertificationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.UpdateCertification", "invalid request body", err))
		return
	}

	r, err := h.svc.UpdateCertification(c.Request.Context(), userID, c.Param("id"), c.Param("entryID"), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) DeleteCertification(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	r, err := h.svc.DeleteCertification(c.Request.Context(), userID, c.Param("id"), c.Param("entryID"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) AddProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in resume.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.AddProject", "invalid request body", err))
		return
	}

	r, err := h.svc.AddProject(c.Request.Context(), userID, c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) UpdateProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in resume.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.UpdateProject", "invalid request body", err))
		return
	}

	r, err := h.svc.UpdateProject(c.Request.Context(), userID, c.Param("id"), c.Param("entryID"), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) DeleteProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	r, err := h.svc.DeleteProject(c.Request.Context(), userID, c.Param("id"), c.Param("entryID"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

type AddSkillRequest struct {
	Skill string `json:"skill" binding:"required"`
}

func (h *ResumeHandler) AddSkill(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.AddSkill", "invalid request body", err))
		return
	}

	r, err := h.svc.AddSkill(c.Request.Context(), userID, c.Param("id"), c.Param("type"), req.Skill)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ResumeHandler) RemoveSkill(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	r, err := h.svc.RemoveSkill(c.Request.Context(), userID, c.Param("id"), c.Param("type"), c.Param("skill"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

// Preview returns the projected document for a stored resume. Live drafts go
// through the editor websocket instead.
func (h *ResumeHandler) Preview(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	r, err := h.svc.GetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, preview.Project(r))
}

func (h *ResumeHandler) ExportPDF(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fileName, data, err := h.export.ExportPDF(c.Request.Context(), userID, c.Param("id"), c.Query("file_name"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *ResumeHandler) GenerateSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	r, err := h.svc.GenerateSummary(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

type SuggestionsQuery struct {
	Section string `json:"section" form:"section"`
}

func (h *ResumeHandler) AISuggestions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var q SuggestionsQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.AISuggestions", "invalid request body", err))
		return
	}

	out, err := h.svc.AISuggestions(c.Request.Context(), userID, c.Param("id"), q.Section)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", out)
}

type SkillGapQuery struct {
	UniversityID string `json:"university_id" binding:"required"`
}

func (h *ResumeHandler) SkillGapAnalysis(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var q SkillGapQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.SkillGapAnalysis", "invalid request body", err))
		return
	}

	out, err := h.svc.SkillGapAnalysis(c.Request.Context(), userID, c.Param("id"), q.UniversityID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", out)
}
