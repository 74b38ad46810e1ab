package controller

import (
	"strconv"

	apperrors "github.com/autopartshop/autoparts-backend/internal/errors"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a uint path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// parseUintQuery reads an optional uint query parameter. Missing or blank
// values return (0, true); malformed values return (0, false).
func parseUintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(v), true
}

// parseIntQuery reads an optional int query parameter.
func parseIntQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid "+name+" parameter")
		return 0, false
	}
	return v, true
}
