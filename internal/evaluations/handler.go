package evaluations

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"seedrowz-backend/internal/shared/auth"
	"seedrowz-backend/internal/shared/server/middleware"
	"seedrowz-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts the evaluation routes. rg must carry middleware.Authenticate.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/evaluate-idea", h.submit)
	rg.GET("/evaluation/:resultId", h.get)
	rg.GET("/evaluations", middleware.RequireAuth(), h.list)
}

func (h *Handler) submit(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return
	}

	var principal *auth.Principal
	if p, ok := middleware.PrincipalFromContext(c); ok {
		principal = &p
	}

	result, err := h.Svc.Submit(c.Request.Context(), req, principal)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", gin.H{"fields": vErr.Fields})
		case errors.Is(err, ErrAINotConfigured):
			respond.Error(c, http.StatusInternalServerError, "ai_not_configured", "AI service not configured", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to evaluate idea", nil)
		}
		return
	}

	c.Set("resultId", result.ResultID)
	if result.FallbackReason != FallbackNone {
		c.Set("fallbackReason", result.FallbackReason)
	}
	respond.OK(c, gin.H{
		"success":    true,
		"resultId":   result.ResultID,
		"evaluation": result.Evaluation,
	})
}

func (h *Handler) get(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	id, err := strconv.ParseInt(c.Param("resultId"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resultId must be a positive integer", nil)
		return
	}

	evaluation, err := h.Svc.FetchByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Evaluation not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch evaluation", nil)
		return
	}
	c.Set("resultId", id)
	respond.OK(c, evaluation)
}

func (h *Handler) list(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, err := h.Svc.ListForUser(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to load evaluations", nil)
		return
	}
	respond.OK(c, items)
}
