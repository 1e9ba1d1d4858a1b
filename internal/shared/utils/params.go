package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// QueryInt64 parses an optional integer query parameter.
// present is false when the parameter is absent or empty.
func QueryInt64(c *gin.Context, key string) (value int64, present bool, err error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return 0, false, nil
	}

	value, err = strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, true, fmt.Errorf("%s must be an integer", key)
	}
	return value, true, nil
}

// OptionalQueryInt64 is QueryInt64 returning a pointer, nil when absent
func OptionalQueryInt64(c *gin.Context, key string) (*int64, error) {
	value, present, err := QueryInt64(c, key)
	if err != nil || !present {
		return nil, err
	}
	return &value, nil
}
