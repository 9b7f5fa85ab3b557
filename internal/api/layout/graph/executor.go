package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"quickart/internal/logger"
	"quickart/internal/metrics"

	"github.com/99designs/gqlgen/graphql/errcode"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// maxQueryDepth giới hạn độ sâu selection; sâu nhất hợp lệ là getMap > aisle > bays
const maxQueryDepth = 8

// Request là payload GraphQL chuẩn (POST body hoặc query string của GET)
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`

	// ReadOnly chặn mutation (request GET)
	ReadOnly bool `json:"-"`
}

// Response là kết quả GraphQL. Data rỗng nghĩa là request không được thực thi.
type Response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors gqlerror.List   `json:"errors,omitempty"`

	status int
}

// StatusCode trả về HTTP status tương ứng với kết quả
func (r *Response) StatusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// ErrorResponse tạo response lỗi cấp request, không có data
func ErrorResponse(status int, code, message string) *Response {
	return &Response{
		Errors: gqlerror.List{requestError(code, "%s", message)},
		status: status,
	}
}

// Executor kiểm tra request bằng gqlparser rồi thực thi trên schema graphql-go
// đã gắn Resolver. Mutation chạy tuần tự theo thứ tự trong document.
type Executor struct {
	doc     *ast.Schema
	schema  *graphql.Schema
	metrics *metrics.Metrics
}

// NewExecutor parse schema và gắn resolver; lỗi nếu thiếu resolver cho field nào đó
func NewExecutor(resolver *Resolver, m *metrics.Metrics) (*Executor, error) {
	doc, err := LoadSchema()
	if err != nil {
		return nil, err
	}
	schema, err := graphql.ParseSchema(schemaSource, resolver,
		graphql.MaxDepth(maxQueryDepth),
		graphql.Logger(panicLogger{}),
	)
	if err != nil {
		return nil, fmt.Errorf("bind graphql resolvers: %w", err)
	}
	return &Executor{doc: doc, schema: schema, metrics: m}, nil
}

// Execute parse, validate rồi thực thi request
func (e *Executor) Execute(ctx context.Context, req *Request) *Response {
	if strings.TrimSpace(req.Query) == "" {
		return ErrorResponse(http.StatusBadRequest, CodeBadRequest, "no query provided")
	}

	if _, err := parser.ParseQuery(&ast.Source{Name: "request", Input: req.Query}); err != nil {
		var gqlErr *gqlerror.Error
		if !errors.As(err, &gqlErr) {
			gqlErr = gqlerror.Errorf("%s", err.Error())
		}
		errcode.Set(gqlErr, errcode.ParseFailed)
		return &Response{Errors: gqlerror.List{gqlErr}, status: http.StatusUnprocessableEntity}
	}

	query, listErr := gqlparser.LoadQuery(e.doc, req.Query)
	if len(listErr) > 0 {
		return &Response{Errors: markList(listErr, errcode.ValidationFailed), status: http.StatusUnprocessableEntity}
	}

	op := query.Operations.ForName(req.OperationName)
	if op == nil {
		if req.OperationName == "" {
			return ErrorResponse(http.StatusUnprocessableEntity, CodeBadRequest, "operation name is required when the document has several operations")
		}
		return ErrorResponse(http.StatusUnprocessableEntity, CodeBadRequest, fmt.Sprintf("operation %s not found", req.OperationName))
	}

	switch {
	case op.Operation == ast.Subscription:
		return ErrorResponse(http.StatusBadRequest, CodeBadRequest, "subscription operations are not supported")
	case req.ReadOnly && op.Operation == ast.Mutation:
		return ErrorResponse(http.StatusMethodNotAllowed, CodeOperationNotAllowed, "GET requests only allow query operations")
	}

	if _, err := validator.VariableValues(e.doc, op, req.Variables); err != nil {
		var gqlErr *gqlerror.Error
		if !errors.As(err, &gqlErr) {
			gqlErr = gqlerror.Errorf("%s", err.Error())
		}
		errcode.Set(gqlErr, errcode.ValidationFailed)
		return &Response{Errors: gqlerror.List{gqlErr}, status: http.StatusUnprocessableEntity}
	}

	opName := op.Name
	if opName == "" {
		opName = string(op.Operation)
	}
	ctx = context.WithValue(ctx, logger.OperationKey, opName)

	result := e.schema.Exec(ctx, req.Query, op.Name, req.Variables)
	if len(result.Data) == 0 && len(result.Errors) > 0 {
		// graphql-go từ chối trước khi thực thi (ví dụ vượt maxQueryDepth)
		e.metrics.ObserveRequest(string(op.Operation), true)
		return &Response{Errors: rejectedErrors(result.Errors), status: http.StatusUnprocessableEntity}
	}

	errs := executionErrors(ctx, result.Errors)
	e.metrics.ObserveRequest(string(op.Operation), len(errs) > 0)
	return &Response{Data: result.Data, Errors: errs}
}

// panicLogger ghi panic của resolver qua logrus; graphql-go tự recover và trả lỗi cho field
type panicLogger struct{}

func (panicLogger) LogPanic(ctx context.Context, value interface{}) {
	logger.WithContext(ctx).Errorf("GraphQL resolver panic: %v", value)
}
