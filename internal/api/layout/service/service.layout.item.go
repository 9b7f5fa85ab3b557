package layoutsvc

import (
	"context"
	"fmt"

	basesvc "quickart/internal/api/base/service"
	layoutdto "quickart/internal/api/layout/dto"
	"quickart/internal/api/layout/models"
	"quickart/internal/global"
	"quickart/internal/logger"
)

// ItemService quản lý mặt hàng
type ItemService struct {
	store basesvc.BaseService[models.Item]
}

// NewItemService tạo ItemService
func NewItemService(store basesvc.BaseService[models.Item]) *ItemService {
	return &ItemService{store: store}
}

// List trả về toàn bộ mặt hàng theo thứ tự lưu
func (s *ItemService) List(ctx context.Context) ([]models.Item, error) {
	return s.store.FindAll(ctx)
}

// Get tìm mặt hàng theo id; trả về nil khi không có
func (s *ItemService) Get(ctx context.Context, id string) (*models.Item, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, nil
	}
	return findOptional(s.store.FindOneById(ctx, oid))
}

// Create lưu mặt hàng mới. Không kiểm tra aisle/bay có tồn tại hay không.
func (s *ItemService) Create(ctx context.Context, input layoutdto.CreateItemInput) (*models.Item, error) {
	if err := global.ValidateStruct(input); err != nil {
		return nil, err
	}

	created, err := s.store.InsertOne(ctx, models.Item{
		Name:  input.Name,
		Aisle: input.Aisle,
		Bay:   input.Bay,
		Price: input.Price,
		XVal:  input.XVal,
		YVal:  input.YVal,
	})
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	logger.LogAction(ctx, "createItem", "item", created.ID.Hex(), map[string]interface{}{"name": created.Name})
	return &created, nil
}
