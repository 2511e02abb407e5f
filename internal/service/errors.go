package service

import (
	"errors"

	"gorm.io/gorm"
)

// notFoundOr 记录不存在时返回 replacement，其它错误原样返回
func notFoundOr(err error, replacement error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return replacement
	}
	return err
}
