package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quickart/internal/database"
	"quickart/internal/global"
	"quickart/internal/logger"
)

// Hàm main
func main() {
	initLogger()
	defer logger.Close()

	log := logger.GetAppLogger()

	// Khởi tạo các biến toàn cục
	if err := InitGlobal(); err != nil {
		log.Fatalf("Failed to initialize globals: %v", err)
	}
	defer func() { _ = database.CloseInstance(global.MongoDB_Session) }()

	// Khởi tạo registry
	if err := InitRegistry(); err != nil {
		log.Fatalf("Failed to initialize registry: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := global.MongoDB_ServerConfig
	deps, err := InitDependencies(ctx, cfg, global.MongoDB_Session)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer deps.Close()

	app, err := InitFiberApp(cfg, deps.Routes(cfg)...)
	if err != nil {
		log.Fatalf("Failed to initialize Fiber app: %v", err)
	}

	// Dừng server khi nhận tín hiệu
	go func() {
		<-ctx.Done()
		log.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Error during server shutdown")
		}
	}()

	address := cfg.ListenAddress()
	log.WithFields(map[string]interface{}{
		"address": address,
		"graphql": cfg.GraphQL_Path,
		"store":   cfg.StoreDriver,
	}).Info("Starting server with HTTP")

	if err := app.Listen(address); err != nil {
		log.WithError(err).Error("Error in Fiber Listen")
	}
	log.Info("Server stopped")
}
