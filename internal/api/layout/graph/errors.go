package graph

import (
	"context"
	"errors"

	"quickart/internal/common"
	"quickart/internal/logger"

	"github.com/99designs/gqlgen/graphql/errcode"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Mã lỗi giao thức, không thuộc danh mục lỗi nghiệp vụ
const (
	CodeBadRequest          = "BAD_REQUEST"
	CodeOperationNotAllowed = "OPERATION_NOT_ALLOWED"
	CodeInternal            = "SYS_001"
)

const msgInternal = "Internal server error"

// fieldError là lỗi resolver trả cho client. graphql-go chép Extensions() vào extensions của lỗi.
type fieldError struct {
	message    string
	extensions map[string]interface{}
}

func (e *fieldError) Error() string {
	return e.message
}

func (e *fieldError) Extensions() map[string]interface{} {
	return e.extensions
}

func (e *fieldError) code() string {
	code, _ := e.extensions["code"].(string)
	return code
}

// resolverError chuyển lỗi từ service thành lỗi GraphQL của root field
func resolverError(ctx context.Context, field string, err error) *fieldError {
	var customErr *common.Error
	if !errors.As(err, &customErr) {
		// Lỗi không được chuẩn hóa: log đầy đủ, trả message chung cho client
		logger.WithContext(ctx).WithError(err).WithField("field", field).Error("Resolver failed")
		return &fieldError{
			message:    msgInternal,
			extensions: map[string]interface{}{"code": common.ErrCodeInternalServer.Code},
		}
	}

	fe := &fieldError{
		message:    customErr.Message,
		extensions: map[string]interface{}{"code": customErr.Code.Code},
	}
	if details, ok := customErr.Details.(map[string]string); ok {
		fe.extensions["details"] = details
	}
	if customErr.Code.Code == common.ErrCodeDatabase.Code || customErr.Code.Code == common.ErrCodeDatabaseConnection.Code {
		logger.WithContext(ctx).WithError(err).WithField("field", field).Error("Store failure")
	}
	return fe
}

// requestError tạo lỗi cấp request (không gắn field)
func requestError(code, format string, args ...interface{}) *gqlerror.Error {
	err := gqlerror.Errorf(format, args...)
	errcode.Set(err, code)
	return err
}

// markList gán cùng một mã cho toàn bộ danh sách lỗi của gqlparser
func markList(list gqlerror.List, code string) gqlerror.List {
	for _, err := range list {
		errcode.Set(err, code)
	}
	return list
}

// executionErrors đổi lỗi của graphql-go sang gqlerror. Lỗi không mang mã
// (panic trong resolver, vi phạm non-null) bị che message và gắn SYS_001.
func executionErrors(ctx context.Context, list []*gqlerrors.QueryError) gqlerror.List {
	if len(list) == 0 {
		return nil
	}
	out := make(gqlerror.List, 0, len(list))
	for _, qe := range list {
		err := &gqlerror.Error{
			Message:    qe.Message,
			Path:       toPath(qe.Path),
			Extensions: qe.Extensions,
		}
		for _, loc := range qe.Locations {
			err.Locations = append(err.Locations, gqlerror.Location{Line: loc.Line, Column: loc.Column})
		}
		if _, ok := err.Extensions["code"]; !ok {
			logger.WithContext(ctx).WithField("path", err.Path.String()).Errorf("GraphQL execution failed: %s", qe.Message)
			err.Message = msgInternal
			errcode.Set(err, CodeInternal)
		}
		out = append(out, err)
	}
	return out
}

// rejectedErrors giữ nguyên message của lỗi validate từ graphql-go và gắn VALIDATION_FAILED
func rejectedErrors(list []*gqlerrors.QueryError) gqlerror.List {
	out := make(gqlerror.List, 0, len(list))
	for _, qe := range list {
		err := &gqlerror.Error{Message: qe.Message}
		for _, loc := range qe.Locations {
			err.Locations = append(err.Locations, gqlerror.Location{Line: loc.Line, Column: loc.Column})
		}
		errcode.Set(err, errcode.ValidationFailed)
		out = append(out, err)
	}
	return out
}

func toPath(path []interface{}) ast.Path {
	if len(path) == 0 {
		return nil
	}
	out := make(ast.Path, 0, len(path))
	for _, el := range path {
		switch v := el.(type) {
		case string:
			out = append(out, ast.PathName(v))
		case int:
			out = append(out, ast.PathIndex(v))
		}
	}
	return out
}
