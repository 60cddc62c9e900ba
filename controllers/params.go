// Package controllers holds helpers shared by the HTTP handlers.
package controllers

import (
	"strconv"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/gin-gonic/gin"
)

// IDParam parses a numeric path parameter. A malformed id can never match a
// row, so it is reported as NotFound with the caller's message.
func IDParam(c *gin.Context, name, notFoundMsg string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.NotFound("%s", notFoundMsg)
	}
	return uint(id), nil
}

// BindJSON binds the request body and wraps validation failures as
// InvalidInput.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.InvalidInput("Invalid input: %v", err)
	}
	return nil
}
