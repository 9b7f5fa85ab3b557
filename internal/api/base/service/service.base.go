// package basesvc cung cấp adapter lưu trữ dùng chung cho các collection: MongoDB và bộ nhớ.
package basesvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BaseService là hợp đồng tối thiểu của một collection.
// Dữ liệu chỉ được tạo mới: không có update hay delete.
// Type Parameters:
//   - Model: Kiểu dữ liệu của model
type BaseService[Model any] interface {
	// Name trả về tên collection
	Name() string

	// InsertOne lưu bản ghi mới (thêm createdAt/updatedAt) và trả về document vừa tạo đọc lại từ store
	InsertOne(ctx context.Context, data Model) (Model, error)

	// FindOne tìm một document theo filter so khớp bằng; trả về common.ErrNotFound khi không có
	FindOne(ctx context.Context, filter interface{}) (Model, error)
	// Find tìm tất cả document khớp filter theo thứ tự lưu; không bao giờ trả về nil slice
	Find(ctx context.Context, filter interface{}) ([]Model, error)
	// FindAll đọc toàn bộ collection (dùng để chụp snapshot)
	FindAll(ctx context.Context) ([]Model, error)
	// FindOneById tìm document theo _id
	FindOneById(ctx context.Context, id primitive.ObjectID) (Model, error)

	// DocumentExists kiểm tra có document nào khớp filter
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
}
