package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Checkout là quầy thanh toán. Số lane không bắt buộc duy nhất.
type Checkout struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	LegacyID  interface{}        `json:"-" bson:"id,omitempty"`
	Lane      int                `json:"lane" bson:"lane"`
	XStartVal int                `json:"xStartVal" bson:"xStartVal"`
	XEndVal   int                `json:"xEndVal" bson:"xEndVal"`
	YStartVal int                `json:"yStartVal" bson:"yStartVal"`
	YEndVal   int                `json:"yEndVal" bson:"yEndVal"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
