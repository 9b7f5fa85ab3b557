package layoutdto

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShapeID tính id công khai của một bản ghi: ưu tiên _id do store cấp,
// chỉ dùng id tường minh khi bản ghi không có _id.
func ShapeID(storeID primitive.ObjectID, explicit interface{}) string {
	if !storeID.IsZero() {
		return storeID.Hex()
	}
	switch v := explicit.(type) {
	case nil:
		return ""
	case string:
		return v
	case primitive.ObjectID:
		if v.IsZero() {
			return ""
		}
		return v.Hex()
	default:
		return fmt.Sprint(v)
	}
}
