package layouthdl

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	basehdl "quickart/internal/api/base/handler"
	"quickart/internal/api/layout/graph"
	"quickart/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// GraphQLHandler nhận request GraphQL qua HTTP (POST JSON hoặc GET query string)
type GraphQLHandler struct {
	executor *graph.Executor
}

// NewGraphQLHandler tạo handler trên executor đã dựng sẵn
func NewGraphQLHandler(executor *graph.Executor) *GraphQLHandler {
	return &GraphQLHandler{executor: executor}
}

// HandlePost xử lý POST body {query, operationName, variables}
func (h *GraphQLHandler) HandlePost(c fiber.Ctx) error {
	return basehdl.RecoverWith(c, respondPanic, func() error {
		var req graph.Request
		if err := decodeJSON(c.Body(), &req); err != nil {
			logger.WithRequest(c).WithError(err).Debug("Invalid GraphQL body")
			return basehdl.JSONResponse(c, http.StatusBadRequest, graph.ErrorResponse(http.StatusBadRequest, graph.CodeBadRequest, "request body must be a JSON object"))
		}
		return h.execute(c, &req)
	})
}

// HandleGet xử lý GET ?query=&operationName=&variables=; chỉ cho phép query
func (h *GraphQLHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.RecoverWith(c, respondPanic, func() error {
		req := graph.Request{
			Query:         c.Query("query"),
			OperationName: c.Query("operationName"),
			ReadOnly:      true,
		}
		if raw := c.Query("variables"); raw != "" {
			if err := decodeJSON([]byte(raw), &req.Variables); err != nil {
				return basehdl.JSONResponse(c, http.StatusBadRequest, graph.ErrorResponse(http.StatusBadRequest, graph.CodeBadRequest, "variables must be a JSON object"))
			}
		}
		return h.execute(c, &req)
	})
}

// decodeJSON đọc đúng một giá trị JSON; số giữ dạng float64 như graphql-go mong đợi
func decodeJSON(data []byte, dst interface{}) error {
	return json.NewDecoder(bytes.NewReader(data)).Decode(dst)
}

// respondPanic trả lỗi theo định dạng GraphQL, không kèm giá trị panic
func respondPanic(c fiber.Ctx) error {
	return basehdl.JSONResponse(c, http.StatusInternalServerError,
		graph.ErrorResponse(http.StatusInternalServerError, graph.CodeInternal, "Internal server error"))
}

func (h *GraphQLHandler) execute(c fiber.Ctx, req *graph.Request) error {
	ctx := context.WithValue(c.Context(), logger.RequestIDKey, logger.RequestID(c))

	resp := h.executor.Execute(ctx, req)
	if len(resp.Errors) > 0 {
		logger.WithRequest(c).WithFields(map[string]interface{}{
			"status": resp.StatusCode(),
			"errors": len(resp.Errors),
		}).Debug("GraphQL request finished with errors")
	}
	return basehdl.JSONResponse(c, resp.StatusCode(), resp)
}
