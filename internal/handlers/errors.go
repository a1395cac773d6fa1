package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/railway_station/internal/auth"
	"github.com/railway_station/internal/models"
	"github.com/railway_station/internal/services"
	"github.com/railway_station/pkg/utils"
)

// errorStatus 将服务层错误映射为 HTTP 状态码和对外消息
func errorStatus(err error) (int, string) {
	var (
		vErr   *services.ValidationError
		dupErr *services.DuplicateKeyError
	)
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Message
	case errors.As(err, &dupErr):
		return http.StatusConflict, dupErr.Error()
	case errors.Is(err, services.ErrInvalidField),
		errors.Is(err, services.ErrInvalidFilterCombination),
		errors.Is(err, services.ErrInvalidSortKey):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrSelfRoleChangeForbidden):
		return http.StatusForbidden, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondServiceError 以统一的错误响应格式返回服务层错误
func respondServiceError(c *gin.Context, err error) {
	status, message := errorStatus(err)
	var (
		vErr   *services.ValidationError
		dupErr *services.DuplicateKeyError
	)
	switch status {
	case http.StatusInternalServerError:
		slog.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		utils.RespondInternalServerError(c, message)
	case http.StatusNotFound:
		utils.RespondNotFoundError(c, message)
	case http.StatusForbidden:
		utils.RespondForbiddenError(c, message)
	case http.StatusConflict:
		if errors.As(err, &dupErr) {
			utils.RespondConflictError(c, message, gin.H{"field": dupErr.Field})
			return
		}
		utils.RespondConflictError(c, message)
	default:
		if errors.As(err, &vErr) {
			utils.RespondAPIError(c, status, message, gin.H{"field": vErr.Field, "rule": vErr.Rule})
			return
		}
		utils.RespondAPIError(c, status, message, nil)
	}
}

// parseID 解析路径参数中的正整数 ID
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondValidationError(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// parseOptionalDate 空字符串表示未填写
func parseOptionalDate(raw string) (*models.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// viewData 为页面模板补充当前用户信息
func viewData(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["Username"] = auth.CurrentUsername(c)
	data["IsAdmin"] = auth.CurrentRole(c) == models.RoleAdmin
	return data
}
