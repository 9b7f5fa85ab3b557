package main

import (
	"fmt"

	"quickart/config"
	"quickart/internal/database"
	"quickart/internal/global"
	"quickart/internal/logger"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc biến môi trường LOG_* để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// InitGlobal khởi tạo các biến toàn cục
func InitGlobal() error {
	initValidator() // Khởi tạo validator
	if err := initConfig(); err != nil {
		return err
	}
	return initDatabase_MongoDB() // Khởi tạo kết nối database (bỏ qua khi STORE_DRIVER=memory)
}

// Hàm khởi tạo validator (đăng ký custom validator no_xss)
func initValidator() {
	global.InitValidator()
	logger.GetAppLogger().Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	global.MongoDB_ServerConfig = cfg
	logger.GetAppLogger().WithField("store", cfg.StoreDriver).Info("Initialized server config")
	return nil
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() error {
	if global.MongoDB_ServerConfig.UsesMemoryStore() {
		logger.GetAppLogger().Warn("STORE_DRIVER=memory: data is kept in process memory only")
		return nil
	}

	client, err := database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	global.MongoDB_Session = client
	logger.GetAppLogger().Info("Connected to MongoDB")
	return nil
}
