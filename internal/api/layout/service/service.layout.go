package layoutsvc

import (
	"errors"

	"quickart/internal/cache"
	"quickart/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Services gom các service của domain layout
type Services struct {
	Item      *ItemService
	Aisle     *AisleService
	Checkout  *CheckoutService
	Map       *MapService
	Inventory *InventoryService
}

// New tạo các service trên cùng bộ Stores. mapCache có thể nil (tắt cache).
func New(stores *Stores, mapCache *cache.Cache) *Services {
	return &Services{
		Item:      NewItemService(stores.Items),
		Aisle:     NewAisleService(stores.Aisles),
		Checkout:  NewCheckoutService(stores.Checkouts),
		Map:       NewMapService(stores.Maps, stores.Aisles, stores.Checkouts, mapCache),
		Inventory: NewInventoryService(stores.Inventories, stores.Items),
	}
}

// parseObjectID trả về ok=false khi id không phải ObjectID hex hợp lệ: không bản ghi nào có thể khớp
func parseObjectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// findOptional chuyển common.ErrNotFound thành kết quả rỗng (nil, nil)
func findOptional[T any](doc T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}
