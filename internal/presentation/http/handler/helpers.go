package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kontorhq/kontor-api/pkg/apperror"
)

// parseUUIDParam parses a UUID path parameter.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NewBadRequestError("invalid " + name + " parameter")
	}
	return id, nil
}

// parseIntParam parses an integer path parameter.
func parseIntParam(c *gin.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, apperror.NewBadRequestError("invalid " + name + " parameter")
	}
	return v, nil
}

// parseDateQuery parses a required YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, apperror.NewBadRequestError("missing " + name + " parameter")
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperror.NewBadRequestError(name + " must be formatted as YYYY-MM-DD")
	}
	return t, nil
}
