package repository

import (
	"errors"
	"regexp"
	"school_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

var (
	sqliteUniqueRe = regexp.MustCompile(`UNIQUE constraint failed: ([A-Za-z0-9_]+)\.([A-Za-z0-9_]+)`)
	mysqlDupRe     = regexp.MustCompile(`Duplicate entry '.*' for key '(?:([A-Za-z0-9_]+)\.)?([A-Za-z0-9_]+)'`)
)

// mapDBError 把 SQLite / MySQL 的约束错误转换为 util.AppError，其它错误原样返回
func mapDBError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := util.AsAppError(err); ok {
		return err
	}

	msg := err.Error()
	switch {
	case sqliteUniqueRe.MatchString(msg):
		m := sqliteUniqueRe.FindStringSubmatch(msg)
		return util.NewUniqueViolationError(m[1], m[2], err)
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return util.NewUniqueViolationError("", "", err)
	case mysqlDupRe.MatchString(msg):
		m := mysqlDupRe.FindStringSubmatch(msg)
		return util.NewUniqueViolationError(m[1], fieldFromIndex(m[2]), err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return util.NewUniqueViolationError("", "", err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "a foreign key constraint fails"),
		errors.Is(err, gorm.ErrForeignKeyViolated):
		return util.NewForeignKeyError(err)
	case strings.Contains(msg, "CHECK constraint failed"),
		strings.Contains(msg, "Error 3819"),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return util.NewDBConflictError("Check constraint failed", err)
	}
	return err
}

// idx_users_email -> email
func fieldFromIndex(index string) string {
	parts := strings.Split(index, "_")
	if len(parts) >= 3 && parts[0] == "idx" {
		return strings.Join(parts[2:], "_")
	}
	return index
}
