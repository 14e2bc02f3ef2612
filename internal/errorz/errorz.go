// Package errorz 定义了服务中对外可区分的三类错误：
// 校验失败、记录不存在、存储层约束冲突。
package errorz

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound 表示引用的问题或回答不存在。
var ErrNotFound = errors.New("not found")

// NotFound 返回包装了实体名的 ErrNotFound，例如 "question not found"。
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// FieldError 描述单个字段的校验失败。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 表示请求在触达存储之前就被拒绝。
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError 用单个字段错误构造 ValidationError。
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ConstraintKind 区分被违反的约束类型。
type ConstraintKind string

const (
	ForeignKey ConstraintKind = "foreign_key"
	Check      ConstraintKind = "check"
	Unique     ConstraintKind = "unique"
)

// ConstraintViolation 表示通过了校验但仍被数据库拒绝的写入，
// 例如父问题在存在性检查之后被并发删除。不会自动重试。
type ConstraintViolation struct {
	Kind       ConstraintKind
	Constraint string
	Err        error
}

func (e *ConstraintViolation) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%s constraint %q violated: %v", e.Kind, e.Constraint, e.Err)
	}
	return fmt.Sprintf("%s constraint violated: %v", e.Kind, e.Err)
}

func (e *ConstraintViolation) Unwrap() error {
	return e.Err
}

// IsValidation 判断 err 链中是否包含 ValidationError。
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConstraint 判断 err 链中是否包含 ConstraintViolation。
func IsConstraint(err error) bool {
	var cv *ConstraintViolation
	return errors.As(err, &cv)
}
