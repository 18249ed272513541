package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/shared/errors"
)

// ParseUintParam parses a positive numeric path parameter.
func ParseUintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, errors.NewValidationError("bad_id", name+" must be a positive integer")
	}
	return uint(v), nil
}

// QueryInt reads an integer query value, falling back to def and clamping
// to max when max > 0.
func QueryInt(c *gin.Context, name string, def, max int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v <= 0 {
		v = def
	}
	if max > 0 && v > max {
		v = max
	}
	return v
}

// QueryUint reads an optional numeric query value.
func QueryUint(c *gin.Context, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return nil
	}
	u := uint(v)
	return &u
}
