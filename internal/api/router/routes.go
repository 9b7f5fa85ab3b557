package router

import (
	"net/http"

	basehdl "quickart/internal/api/base/handler"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// NewRouter tạo router trên app Fiber
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(root fiber.Router, r *Router) error

// SystemRoutes gom các endpoint vận hành
type SystemRoutes struct {
	Health  *basehdl.SystemHandler
	Metrics http.Handler // nil thì không mount /metrics
}

// RegisterSystem mount /health và /metrics
func RegisterSystem(sys SystemRoutes) RegisterFunc {
	return func(root fiber.Router, _ *Router) error {
		if sys.Health != nil {
			root.Get("/health", sys.Health.HandleHealth)
		}
		if sys.Metrics != nil {
			root.Get("/metrics", adaptor.HTTPHandler(sys.Metrics))
		}
		return nil
	}
}

// SetupRoutes thiết lập tất cả các route cho ứng dụng. Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(app, r); err != nil {
			return err
		}
	}
	return nil
}
