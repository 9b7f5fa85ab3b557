package basehdl

import (
	"errors"

	"quickart/internal/common"
	"quickart/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set(fiber.HeaderContentType, "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// PanicResponder ghi response cho client khi handler panic
type PanicResponder func(c fiber.Ctx) error

// RecoverWith bọc handler với recover; respond ghi response lỗi theo định dạng của route.
// Giá trị panic chỉ được ghi log, không trả cho client.
func RecoverWith(c fiber.Ctx, respond PanicResponder, handler func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).Errorf("Handler panic: %v", r)
			err = respond(c)
		}
	}()
	return handler()
}

// SafeHandler bọc handler REST với recover để server luôn trả response cho client, kể cả khi có panic
func SafeHandler(c fiber.Ctx, handler func() error) error {
	return RecoverWith(c, func(c fiber.Ctx) error {
		return HandleResponse(c, nil, common.NewError(
			common.ErrCodeInternalServer,
			"Lỗi hệ thống không mong muốn",
			common.StatusInternalServerError,
			nil,
		))
	}, handler)
}

// HandleResponse chuẩn hóa response REST: {code, message, data|details, status}
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			return JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": customErr.Details,
				"status":  "error",
			})
		}
		// Nếu không phải custom error, trả về internal server error
		return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeInternalServer.Code,
			"message": err.Error(),
			"status":  "error",
		})
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}
