package util

import (
	"errors"
	"net/http"
)

// ErrorKind 领域错误的封闭分类
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeUnique       = "UNIQUE_VIOLATION"
	CodeForeignKey   = "FOREIGN_KEY_CONSTRAINT"
	CodeDBConflict   = "DB_CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError 服务层返回的类型化错误，由 HandleError 统一转换为响应
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Meta    map[string]interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// WithMeta 返回带附加字段的副本
func (e *AppError) WithMeta(key string, value interface{}) *AppError {
	cp := *e
	cp.Meta = make(map[string]interface{}, len(e.Meta)+1)
	for k, v := range e.Meta {
		cp.Meta[k] = v
	}
	cp.Meta[key] = value
	return &cp
}

func newAppError(kind ErrorKind, code, message string, meta map[string]interface{}) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Meta: meta}
}

// NewValidationError field 为空时不附带 meta
func NewValidationError(message, field string) *AppError {
	var meta map[string]interface{}
	if field != "" {
		meta = map[string]interface{}{"field": field}
	}
	return newAppError(KindValidation, CodeValidation, message, meta)
}

func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Unauthorized"
	}
	return newAppError(KindUnauthorized, CodeUnauthorized, message, nil)
}

func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "Forbidden"
	}
	return newAppError(KindForbidden, CodeForbidden, message, nil)
}

func NewNotFoundError(message string, meta map[string]interface{}) *AppError {
	if message == "" {
		message = "Not found"
	}
	return newAppError(KindNotFound, CodeNotFound, message, meta)
}

func NewUniqueViolationError(table, field string, err error) *AppError {
	meta := map[string]interface{}{}
	if table != "" {
		meta["table"] = table
	}
	if field != "" {
		meta["field"] = field
	}
	e := newAppError(KindConflict, CodeUnique, "Unique constraint violated", meta)
	e.Err = err
	return e
}

func NewForeignKeyError(err error) *AppError {
	e := newAppError(KindConflict, CodeForeignKey, "Foreign key constraint failed", nil)
	e.Err = err
	return e
}

func NewDBConflictError(message string, err error) *AppError {
	if message == "" {
		message = "Database constraint failed"
	}
	e := newAppError(KindConflict, CodeDBConflict, message, nil)
	e.Err = err
	return e
}

// AsAppError 从错误链中取出 AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsKind(err error, kind ErrorKind) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == kind
}

var (
	ErrInvalidCredentials = NewUnauthorizedError("Invalid credentials")
	ErrUserNotFound       = NewNotFoundError("User not found", nil)
	ErrCourseNotFound     = NewNotFoundError("Course not found", nil)
	ErrQuizNotFound       = NewNotFoundError("Quiz not found", nil)
	ErrNotEnrolled        = NewNotFoundError("Not enrolled in this course", nil)
	ErrNotCourseOwner     = NewForbiddenError("Only the course owner can modify this course")
)
