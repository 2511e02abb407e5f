package util

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type Pagination struct {
	Limit  int
	Offset int
}

// NewPagination 校验 limit(1..200) 与 offset(>=0)
func NewPagination(limit, offset int) (Pagination, error) {
	if limit < 1 || limit > MaxLimit {
		return Pagination{}, NewValidationError("Invalid limit (1..200)", "limit")
	}
	if offset < 0 {
		return Pagination{}, NewValidationError("Invalid offset (>=0)", "offset")
	}
	return Pagination{Limit: limit, Offset: offset}, nil
}

// ParsePagination 从 query 读取 limit/offset，缺省时使用 defaultLimit
func ParsePagination(c *gin.Context, defaultLimit int) (Pagination, error) {
	limit := defaultLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Pagination{}, NewValidationError("Invalid limit (1..200)", "limit")
		}
		limit = n
	}

	offset := 0
	if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Pagination{}, NewValidationError("Invalid offset (>=0)", "offset")
		}
		offset = n
	}

	return NewPagination(limit, offset)
}
