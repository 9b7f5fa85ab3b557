package global

import (
	"errors"
	"fmt"
	"strings"

	"quickart/internal/common"

	"github.com/go-playground/validator/v10"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"onmouseover=",
		"eval(",
		"document.cookie",
		"document.write",
		"innerhtml",
		"fromcharcode",
		"window.location",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// ValidateStruct validate input theo tag `validate`.
// Lỗi trả về là ValidationError, Details chứa danh sách field vi phạm.
func ValidateStruct(input interface{}) error {
	if Validate == nil {
		InitValidator()
	}

	err := Validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return common.NewValidationError(common.MsgValidationError, err)
	}

	fields := make([]string, 0, len(fieldErrs))
	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
		details[fe.Field()] = fe.Tag()
	}
	return common.NewValidationError(fmt.Sprintf("Invalid input: %s", strings.Join(fields, ", ")), details)
}
