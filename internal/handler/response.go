// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"qa-service-go/internal/errorz"
	"qa-service-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// writeError 把服务层错误统一映射为 HTTP 响应：
// 校验失败 422，记录不存在 404，约束冲突 409，其他 500。
func writeError(c *gin.Context, op string, err error) {
	var validationErr *errorz.ValidationError
	var constraintErr *errorz.ConstraintViolation

	switch {
	case errors.As(err, &validationErr):
		log.Warnf("%s: invalid request, error: %v", op, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":    http.StatusUnprocessableEntity,
			"message": "validation failed",
			"errors":  validationErr.Fields,
		})
	case errors.Is(err, errorz.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"code":    http.StatusNotFound,
			"message": err.Error(),
		})
	case errors.As(err, &constraintErr):
		log.Warnf("%s: constraint violation, error: %v", op, err)
		c.JSON(http.StatusConflict, gin.H{
			"code":       http.StatusConflict,
			"message":    "storage constraint violated",
			"kind":       constraintErr.Kind,
			"constraint": constraintErr.Constraint,
		})
	default:
		log.Errorw("unexpected error", "op", op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "internal server error",
		})
	}
}

// bindError 处理请求体或查询参数无法解析的情况。
func bindError(c *gin.Context, op, field string, err error) {
	writeError(c, op, errorz.NewValidationError(field, err.Error()))
}

// parseID 从路径参数中解析 int64 ID，失败时写出 422 并返回 false。
func parseID(c *gin.Context, op, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		writeError(c, op, errorz.NewValidationError(name, "must be an integer"))
		return 0, false
	}
	return id, true
}
