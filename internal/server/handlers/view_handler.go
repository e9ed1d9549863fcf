package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/query"
	"github.com/mamadbah2/stockroom/internal/service/views"
)

// Runner executes a spec over one list view.
type Runner func(spec query.Spec) (any, error)

// ViewHandler stores per-session view criteria and runs them on demand.
type ViewHandler struct {
	sessions *views.SessionManager
	runners  map[string]Runner
	logger   *zap.Logger
}

// NewViewHandler constructs the view session HTTP adapter. runners maps each
// view name to the list it runs over.
func NewViewHandler(sessions *views.SessionManager, runners map[string]Runner, logger *zap.Logger) *ViewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewHandler{sessions: sessions, runners: runners, logger: logger}
}

func (h *ViewHandler) runner(c *gin.Context) (Runner, bool) {
	run, ok := h.runners[c.Param("view")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown view " + c.Param("view")})
	}
	return run, ok
}

// Get answers GET /api/sessions/:sid/views/:view.
func (h *ViewHandler) Get(c *gin.Context) {
	if _, ok := h.runner(c); !ok {
		return
	}
	c.JSON(http.StatusOK, h.sessions.GetView(c.Param("sid"), c.Param("view")))
}

// Put answers PUT /api/sessions/:sid/views/:view. The query spec is checked
// against the view before it is kept.
func (h *ViewHandler) Put(c *gin.Context) {
	run, ok := h.runner(c)
	if !ok {
		return
	}

	var spec query.Spec
	if err := c.ShouldBindJSON(&spec); err != nil {
		h.logger.Warn("invalid view payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if _, err := run(spec); err != nil {
		respondError(c, h.logger, "view rejected", err)
		return
	}

	h.sessions.UpdateView(c.Param("sid"), c.Param("view"), spec)
	c.JSON(http.StatusOK, spec)
}

// Delete answers DELETE /api/sessions/:sid/views/:view.
func (h *ViewHandler) Delete(c *gin.Context) {
	if _, ok := h.runner(c); !ok {
		return
	}
	h.sessions.ClearView(c.Param("sid"), c.Param("view"))
	c.Status(http.StatusNoContent)
}

// DeleteSession answers DELETE /api/sessions/:sid.
func (h *ViewHandler) DeleteSession(c *gin.Context) {
	h.sessions.ClearSession(c.Param("sid"))
	c.Status(http.StatusNoContent)
}

// Results answers GET /api/sessions/:sid/views/:view/results.
func (h *ViewHandler) Results(c *gin.Context) {
	run, ok := h.runner(c)
	if !ok {
		return
	}

	spec := h.sessions.GetView(c.Param("sid"), c.Param("view"))
	data, err := run(spec)
	if err != nil {
		respondError(c, h.logger, "view results failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spec": spec, "data": data})
}
