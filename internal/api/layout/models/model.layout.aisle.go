package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bay là một đoạn tọa độ [start, end] (bao gồm hai đầu) của dãy kệ
type Bay [2]int

// Aisle là dãy kệ có khung tọa độ và ba ô kệ được tính khi tạo
type Aisle struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	LegacyID  interface{}        `json:"-" bson:"id,omitempty"`
	Number    int                `json:"number" bson:"number"`
	Name      string             `json:"name" bson:"name"`
	Bays      []Bay              `json:"bays" bson:"bays"` // Luôn có đúng 3 phần tử khi tạo qua API
	XStartVal int                `json:"xStartVal" bson:"xStartVal"`
	XEndVal   int                `json:"xEndVal" bson:"xEndVal"`
	YStartVal int                `json:"yStartVal" bson:"yStartVal"`
	YEndVal   int                `json:"yEndVal" bson:"yEndVal"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
