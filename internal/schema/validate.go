// Package schema 定义了 API 的请求与响应结构，并负责在触达存储之前
// 对请求做规范化和校验。
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"qa-service-go/internal/errorz"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 错误中使用 JSON/表单字段名而不是 Go 字段名
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			name, _, _ := strings.Cut(field.Tag.Get(key), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})
	return v
}

// check 对结构体执行 validate 标签校验，失败时返回 *errorz.ValidationError。
func check(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	ve := &errorz.ValidationError{}
	for _, fe := range fieldErrs {
		ve.Fields = append(ve.Fields, errorz.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return ve
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}
