package layoutrouter

import (
	"strings"

	layouthdl "quickart/internal/api/layout/handler"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

// Config cấu hình route GraphQL
type Config struct {
	Path       string // đường dẫn cố định, ví dụ /graphql
	Playground bool   // mount playground tại Path + "/playground"
}

// Register đăng ký endpoint GraphQL (POST/GET) và playground
func Register(r fiber.Router, cfg Config, h *layouthdl.GraphQLHandler) {
	path := "/" + strings.Trim(cfg.Path, "/")

	r.Post(path, h.HandlePost)
	r.Get(path, h.HandleGet)

	if cfg.Playground {
		r.Get(path+"/playground", adaptor.HTTPHandler(playground.Handler("QuicKart store layout", path)))
	}
}
