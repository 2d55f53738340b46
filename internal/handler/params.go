package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
)

// intParam parses a numeric path parameter.
func intParam(c *gin.Context, name string) (int, error) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil || value <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, name+" must be a positive integer")
	}
	return value, nil
}
