package basehdl

import (
	"context"
	"sync"
	"time"

	"quickart/internal/common"

	"github.com/gofiber/fiber/v3"
)

// HealthCheck kiểm tra một dependency (MongoDB, Redis, ...); trả về lỗi khi dependency không dùng được
type HealthCheck func(ctx context.Context) error

// SystemHandler xử lý các route liên quan đến system operations
type SystemHandler struct {
	mu     sync.RWMutex
	names  []string
	checks map[string]HealthCheck
}

// NewSystemHandler tạo một instance mới của SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{checks: map[string]HealthCheck{}}
}

// AddCheck đăng ký health check theo tên dịch vụ
func (h *SystemHandler) AddCheck(name string, check HealthCheck) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.checks[name]; !exists {
		h.names = append(h.names, name)
	}
	h.checks[name] = check
}

// HandleHealth kiểm tra tình trạng hệ thống
// @Summary Kiểm tra tình trạng hệ thống
// @Description Kiểm tra trạng thái của API và các dependency
// @Produce json
// @Success 200 {object} map[string]interface{} "Hệ thống hoạt động bình thường"
// @Failure 503 {object} map[string]interface{} "Hệ thống đang gặp sự cố"
// @Router /health [get]
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		return h.health(c)
	})
}

func (h *SystemHandler) health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	services := fiber.Map{"api": "ok"}
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  services,
	}

	h.mu.RLock()
	names := append([]string(nil), h.names...)
	h.mu.RUnlock()

	healthy := true
	for _, name := range names {
		h.mu.RLock()
		check := h.checks[name]
		h.mu.RUnlock()

		if err := check(ctx); err != nil {
			healthy = false
			services[name] = "error"
			healthData[name+"_error"] = err.Error()
			continue
		}
		services[name] = "ok"
	}

	if !healthy {
		healthData["status"] = "degraded"
		return JSONResponse(c, common.StatusServiceUnavailable, fiber.Map{
			"code":    common.StatusServiceUnavailable,
			"message": "Hệ thống đang gặp sự cố",
			"data":    healthData,
			"status":  "error",
		})
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    healthData,
		"status":  "success",
	})
}
