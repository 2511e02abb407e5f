package util

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseIDParam 读取路径中的正整数 id，失败返回 "Invalid <name>"
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := ParseID(c.Param(name))
	if err != nil {
		return 0, NewValidationError("Invalid "+name, name)
	}
	return id, nil
}

// ParseOptionalID 空字符串返回 0
func ParseOptionalID(raw, name string) (uint, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	id, err := ParseID(raw)
	if err != nil {
		return 0, NewValidationError("Invalid "+name, name)
	}
	return id, nil
}

func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, strconv.ErrRange
	}
	return uint(id), nil
}
