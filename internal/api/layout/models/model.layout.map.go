package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoreMap là sơ đồ cửa hàng. Aisle và Checkout là bản sao tại thời điểm tạo,
// không cập nhật theo các bản ghi gốc.
type StoreMap struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	LegacyID    interface{}        `json:"-" bson:"id,omitempty"`
	Title       string             `json:"title" bson:"title" index:"unique"` // Tên sơ đồ (duy nhất)
	Description string             `json:"description" bson:"description"`
	Width       int                `json:"width" bson:"width"`   // > 0
	Length      int                `json:"length" bson:"length"` // > 0
	Aisle       []Aisle            `json:"aisle" bson:"aisle"`
	Checkout    []Checkout         `json:"checkout" bson:"checkout"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
