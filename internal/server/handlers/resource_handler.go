package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/query"
	"github.com/mamadbah2/stockroom/internal/store"
)

// ResourceHandler exposes one record store as a REST collection.
type ResourceHandler[T store.Record[T]] struct {
	store  *store.Store[T]
	schema query.Schema[T]
	now    func() time.Time
	logger *zap.Logger
}

// NewResourceHandler constructs the HTTP adapter of a store.
func NewResourceHandler[T store.Record[T]](s *store.Store[T], schema query.Schema[T], now func() time.Time, logger *zap.Logger) *ResourceHandler[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &ResourceHandler[T]{store: s, schema: schema, now: now, logger: logger}
}

// Run executes spec over the current snapshot.
func (h *ResourceHandler[T]) Run(spec query.Spec) (any, error) {
	return h.store.Query(spec, h.schema, h.now())
}

// List answers GET /api/<resource>.
func (h *ResourceHandler[T]) List(c *gin.Context) {
	records, err := h.store.Query(specFromRequest(c), h.schema, h.now())
	if err != nil {
		respondError(c, h.logger, "list failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records, "count": len(records)})
}

// Get answers GET /api/<resource>/:id.
func (h *ResourceHandler[T]) Get(c *gin.Context) {
	record, ok := h.store.Get(c.Param("id"))
	if !ok {
		respondError(c, h.logger, "get failed", store.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Create answers POST /api/<resource>.
func (h *ResourceHandler[T]) Create(c *gin.Context) {
	var record T
	if err := c.ShouldBindJSON(&record); err != nil {
		h.logger.Warn("invalid create payload", zap.String("store", h.store.Name()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.store.Add(c.Request.Context(), record)
	if err != nil {
		respondError(c, h.logger, "create failed", err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// Update answers PUT /api/<resource>/:id.
func (h *ResourceHandler[T]) Update(c *gin.Context) {
	var record T
	if err := c.ShouldBindJSON(&record); err != nil {
		h.logger.Warn("invalid update payload", zap.String("store", h.store.Name()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.store.Update(c.Request.Context(), c.Param("id"), record)
	if err != nil {
		respondError(c, h.logger, "update failed", err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Delete answers DELETE /api/<resource>/:id.
func (h *ResourceHandler[T]) Delete(c *gin.Context) {
	if err := h.store.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "delete failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
