package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item là một mặt hàng với vị trí trên kệ và giá bán.
// Aisle là nhãn tự do, không tham chiếu tới Aisle.ID.
type Item struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID do store cấp
	LegacyID interface{}        `json:"-" bson:"id,omitempty"`             // ID tường minh của bản ghi cũ (nếu có)
	Name     string             `json:"name" bson:"name"`                  // Tên mặt hàng
	Aisle    string             `json:"aisle" bson:"aisle"`                // Nhãn dãy kệ
	Bay      string             `json:"bay" bson:"bay"`                    // Nhãn ô kệ
	Price    float64            `json:"price" bson:"price"`                // Giá (>= 0)
	XVal     int                `json:"xVal" bson:"xVal"`                  // Tọa độ x
	YVal     int                `json:"yVal" bson:"yVal"`                  // Tọa độ y

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
