package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/query"
	"github.com/mamadbah2/stockroom/internal/store"
)

// statusOf maps a service error onto its HTTP status.
func statusOf(err error) int {
	var (
		validation *models.ValidationError
		badQuery   *query.Error
		remote     *store.RemoteWriteError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &badQuery):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateID):
		return http.StatusConflict
	case errors.As(err, &remote):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, zap.Error(err))
	} else {
		logger.Warn(msg, zap.Int("status", status), zap.Error(err))
	}

	body := gin.H{"error": err.Error()}
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		body["field"] = validation.Field
	}
	var badQuery *query.Error
	if errors.As(err, &badQuery) {
		body["param"] = badQuery.Param
	}
	c.JSON(status, body)
}
