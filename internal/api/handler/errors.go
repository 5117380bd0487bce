package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/blog-service/internal/service"
	"github.com/d60-Lab/blog-service/internal/upload"
	"github.com/d60-Lab/blog-service/pkg/logger"
	"github.com/d60-Lab/blog-service/pkg/response"
)

// handleServiceError 把 service 哨兵错误映射为 HTTP 状态码
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidCategory):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotAuthor):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrPostNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, upload.ErrUploadFailed):
		logger.Error("image upload failed", zap.Error(err))
		response.InternalError(c, upload.ErrUploadFailed)
	default:
		logger.Error("unhandled service error", zap.Error(err))
		response.InternalError(c, errors.New("something went wrong"))
	}
}
