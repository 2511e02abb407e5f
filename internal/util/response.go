package util

import (
	"net/http"
	"school_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	Items  interface{} `json:"items"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

func NewPageResponse(items interface{}, total int64, page Pagination) PageResponse {
	return PageResponse{
		Items:  items,
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    "OK",
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    "CREATED",
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, status int, code, message string, meta interface{}) {
	resp := Response{
		Code:    code,
		Message: message,
	}
	if m, ok := meta.(map[string]interface{}); !ok || len(m) > 0 {
		resp.Meta = meta
	}
	c.AbortWithStatusJSON(status, resp)
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, CodeUnauthorized, "Unauthorized", nil)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "Internal server error", nil)
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString(RequestIDKey)),
	)
	InternalServerError(c)
}

// HandleError 把服务层错误转换为 JSON 错误响应
func HandleError(c *gin.Context, err error) {
	if appErr, ok := AsAppError(err); ok {
		var meta interface{}
		if len(appErr.Meta) > 0 {
			meta = appErr.Meta
		}
		Error(c, appErr.Status(), appErr.Code, appErr.Message, meta)
		return
	}
	LogInternalError(c, err)
}
