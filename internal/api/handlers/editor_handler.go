package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eurouni/eurostudy/internal/resume"
	"github.com/eurouni/eurostudy/internal/services"
	"github.com/eurouni/eurostudy/internal/utils"
)

type EditorHandler struct {
	svc services.EditorService
}

func NewEditorHandler(svc services.EditorService) *EditorHandler {
	return &EditorHandler{svc: svc}
}

func (h *EditorHandler) Start(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	state, err := h.svc.Start(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *EditorHandler) ApplySection(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var patch resume.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "EditorHandler.ApplySection", "invalid request body", err))
		return
	}

	state, err := h.svc.ApplySection(c.Request.Context(), userID, c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *EditorHandler) Save(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	state, err := h.svc.Save(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *EditorHandler) Status(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	state, err := h.svc.Status(userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *EditorHandler) Close(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Close(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
