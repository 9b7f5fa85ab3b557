// Package layoutsvc chứa logic nghiệp vụ của sơ đồ cửa hàng: tính ô kệ, kiểm tra kích thước sơ đồ, chụp snapshot.
package layoutsvc

import (
	"fmt"

	basesvc "quickart/internal/api/base/service"
	"quickart/internal/api/layout/models"
	"quickart/internal/global"
)

// Stores gom adapter lưu trữ của năm collection
type Stores struct {
	Items       basesvc.BaseService[models.Item]
	Aisles      basesvc.BaseService[models.Aisle]
	Checkouts   basesvc.BaseService[models.Checkout]
	Maps        basesvc.BaseService[models.StoreMap]
	Inventories basesvc.BaseService[models.Inventory]
}

// NewMongoStores lấy các collection đã đăng ký trong global.RegistryCollections
func NewMongoStores() (*Stores, error) {
	names := global.MongoDB_ColNames
	itemCol, err := global.RegistryCollections.MustGet(names.Items)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", names.Items, err)
	}
	aisleCol, err := global.RegistryCollections.MustGet(names.Aisles)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", names.Aisles, err)
	}
	checkoutCol, err := global.RegistryCollections.MustGet(names.Checkouts)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", names.Checkouts, err)
	}
	mapCol, err := global.RegistryCollections.MustGet(names.Maps)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", names.Maps, err)
	}
	inventoryCol, err := global.RegistryCollections.MustGet(names.Inventories)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", names.Inventories, err)
	}

	return &Stores{
		Items:       basesvc.NewBaseServiceMongo[models.Item](itemCol),
		Aisles:      basesvc.NewBaseServiceMongo[models.Aisle](aisleCol),
		Checkouts:   basesvc.NewBaseServiceMongo[models.Checkout](checkoutCol),
		Maps:        basesvc.NewBaseServiceMongo[models.StoreMap](mapCol),
		Inventories: basesvc.NewBaseServiceMongo[models.Inventory](inventoryCol),
	}, nil
}

// NewMemoryStores tạo các collection trong bộ nhớ (STORE_DRIVER=memory và test)
func NewMemoryStores() *Stores {
	names := global.MongoDB_ColNames
	return &Stores{
		Items:       basesvc.NewBaseServiceMemory[models.Item](names.Items),
		Aisles:      basesvc.NewBaseServiceMemory[models.Aisle](names.Aisles),
		Checkouts:   basesvc.NewBaseServiceMemory[models.Checkout](names.Checkouts),
		Maps:        basesvc.NewBaseServiceMemory[models.StoreMap](names.Maps),
		Inventories: basesvc.NewBaseServiceMemory[models.Inventory](names.Inventories),
	}
}
