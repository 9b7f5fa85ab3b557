// Package events phát sự kiện khi adapter lưu trữ ghi dữ liệu mới.
// Các service không tự phát event: BaseServiceMongoImpl / BaseServiceMemoryImpl phát sau mỗi insert thành công.
// Logic phản ứng (metrics, warm cache, ...) đăng ký qua OnDataChanged.
package events

import (
	"context"
	"reflect"
	"sync"

	"quickart/internal/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OpInsert là thao tác duy nhất được phát: dữ liệu chỉ được tạo, không sửa hay xóa.
const OpInsert = "insert"

// DataChangeEvent mô tả sự kiện thay đổi dữ liệu.
// Document là bản ghi vừa được lưu (đọc lại từ store).
type DataChangeEvent struct {
	CollectionName string
	Operation      string
	Document       interface{}
}

// DataChangeHandler xử lý sự kiện thay đổi dữ liệu.
type DataChangeHandler func(ctx context.Context, e DataChangeEvent)

var (
	handlers   []DataChangeHandler
	handlersMu sync.RWMutex
)

// OnDataChanged đăng ký handler. Gọi khi khởi động server.
func OnDataChanged(h DataChangeHandler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers = append(handlers, h)
}

// Reset xóa toàn bộ handler đã đăng ký
func Reset() {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers = nil
}

// EmitDataChanged phát sự kiện. Mỗi handler chạy trong goroutine riêng với context tách khỏi request
// (request có thể kết thúc trước handler), panic được recover để không ảnh hưởng handler khác.
func EmitDataChanged(ctx context.Context, e DataChangeEvent) {
	handlersMu.RLock()
	list := make([]DataChangeHandler, len(handlers))
	copy(list, handlers)
	handlersMu.RUnlock()

	detached := context.WithoutCancel(ctx)
	for _, h := range list {
		go func(fn DataChangeHandler) {
			defer func() {
				if r := recover(); r != nil {
					logger.GetAppLogger().WithField("collection", e.CollectionName).Errorf("Data change handler panic: %v", r)
				}
			}()
			fn(detached, e)
		}(h)
	}
}

// GetObjectIDField lấy giá trị primitive.ObjectID của field từ document (dùng reflection).
// Trả về NilObjectID nếu document không có field đó.
func GetObjectIDField(doc interface{}, fieldName string) primitive.ObjectID {
	if doc == nil {
		return primitive.NilObjectID
	}
	val := reflect.ValueOf(doc)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return primitive.NilObjectID
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return primitive.NilObjectID
	}
	f := val.FieldByName(fieldName)
	if !f.IsValid() || !f.CanInterface() {
		return primitive.NilObjectID
	}
	switch v := f.Interface().(type) {
	case primitive.ObjectID:
		return v
	case *primitive.ObjectID:
		if v != nil {
			return *v
		}
	}
	return primitive.NilObjectID
}
