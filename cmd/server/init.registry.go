package main

import (
	"context"
	"fmt"
	"time"

	"quickart/config"
	"quickart/internal/api/layout/models"
	"quickart/internal/database"
	"quickart/internal/global"
	"quickart/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

// collectionModels ánh xạ collection với model mang tag index
func collectionModels() map[string]interface{} {
	names := global.MongoDB_ColNames
	return map[string]interface{}{
		names.Items:       models.Item{},
		names.Aisles:      models.Aisle{},
		names.Checkouts:   models.Checkout{},
		names.Maps:        models.StoreMap{},
		names.Inventories: models.Inventory{},
	}
}

// InitRegistry đảm bảo collection/index và đăng ký collection vào registry
func InitRegistry() error {
	if global.MongoDB_Session == nil {
		logger.GetAppLogger().Info("No MongoDB session, skipping collection registry")
		return nil
	}

	if err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig); err != nil {
		return fmt.Errorf("failed to initialize collections: %w", err)
	}
	logger.GetAppLogger().Info("Initialized collection registry")
	return nil
}

// InitCollections tạo collection còn thiếu, đồng bộ index theo tag của model rồi đăng ký vào registry
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	colModels := collectionModels()
	colNames := make([]string, 0, len(colModels))
	for name := range colModels {
		colNames = append(colNames, name)
	}

	if err := database.EnsureDatabaseAndCollections(ctx, client, cfg.MongoDB_DBName, colNames); err != nil {
		return err
	}

	db := client.Database(cfg.MongoDB_DBName)
	log := logger.GetAppLogger()

	// Đăng ký lại từ đầu để registry chỉ chứa collection của database hiện tại
	if cleared, err := global.RegistryCollections.ClearAll(nil); err != nil {
		return fmt.Errorf("clear collection registry: %w", err)
	} else if cleared > 0 {
		log.Warnf("Cleared %d previously registered collections", cleared)
	}

	for name, model := range colModels {
		collection := db.Collection(name)
		if err := database.CreateIndexes(ctx, collection, model); err != nil {
			return fmt.Errorf("create indexes for %s: %w", name, err)
		}

		if _, err := global.RegistryCollections.Register(name, collection); err != nil {
			log.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}
	}
	log.WithField("collections", global.RegistryCollections.Names()).Info("Collections registered")
	return nil
}
