package layoutsvc

import (
	"context"
	"errors"
	"fmt"

	basesvc "quickart/internal/api/base/service"
	layoutdto "quickart/internal/api/layout/dto"
	"quickart/internal/api/layout/models"
	"quickart/internal/common"
	"quickart/internal/global"
	"quickart/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
)

// InventoryService quản lý kho hàng
type InventoryService struct {
	inventories basesvc.BaseService[models.Inventory]
	items       basesvc.BaseService[models.Item]
}

// NewInventoryService tạo InventoryService
func NewInventoryService(inventories basesvc.BaseService[models.Inventory], items basesvc.BaseService[models.Item]) *InventoryService {
	return &InventoryService{inventories: inventories, items: items}
}

// Create chụp toàn bộ Item hiện có và lưu thành kho hàng mới với id do client cung cấp
func (s *InventoryService) Create(ctx context.Context, input layoutdto.CreateInventoryInput) (*models.Inventory, error) {
	if err := global.ValidateStruct(input); err != nil {
		return nil, err
	}

	items, err := s.items.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}

	created, err := s.inventories.InsertOne(ctx, models.Inventory{
		InventoryID: input.ID,
		Title:       input.Title,
		Items:       items,
	})
	if err != nil {
		return nil, fmt.Errorf("insert inventory: %w", err)
	}

	logger.LogAction(ctx, "createInventory", "inventory", fmt.Sprint(created.InventoryID), map[string]interface{}{
		"title": created.Title,
		"items": len(created.Items),
	})
	return &created, nil
}

// Get tìm kho hàng theo id nghiệp vụ; trả về ErrInventoryNotFound khi không có
func (s *InventoryService) Get(ctx context.Context, id int) (*models.Inventory, error) {
	inv, err := s.inventories.FindOne(ctx, bson.M{"id": id})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInventoryNotFound
		}
		return nil, fmt.Errorf("find inventory %d: %w", id, err)
	}
	return &inv, nil
}

// Items trả về bản chụp Item của kho hàng
func (s *InventoryService) Items(ctx context.Context, id int) ([]models.Item, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Items == nil {
		return []models.Item{}, nil
	}
	return inv.Items, nil
}
