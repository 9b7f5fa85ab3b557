package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inventory là bản chụp toàn bộ Item tại thời điểm tạo, tra cứu theo InventoryID do client cung cấp
type Inventory struct {
	ID          primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	InventoryID int                `json:"id" bson:"id" index:"single"` // ID nghiệp vụ do client cung cấp
	Title       string             `json:"title" bson:"title"`
	Items       []Item             `json:"items" bson:"items"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
