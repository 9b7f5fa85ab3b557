package basesvc

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"quickart/internal/api/events"
	"quickart/internal/common"
	"quickart/internal/database"
	"quickart/internal/utility"
)

// BaseServiceMemoryImpl triển khai BaseService trong bộ nhớ.
// Document được lưu dưới dạng BSON nên mỗi lần đọc trả về một bản sao độc lập.
// Unique index được đọc từ tag `index:"unique"` của model giống như khi tạo index trên MongoDB.
type BaseServiceMemoryImpl[T any] struct {
	name   string
	unique []string

	mu   sync.RWMutex
	docs []bson.Raw
}

var _ BaseService[struct{}] = (*BaseServiceMemoryImpl[struct{}])(nil)

// NewBaseServiceMemory tạo collection trong bộ nhớ với tên name
func NewBaseServiceMemory[T any](name string) *BaseServiceMemoryImpl[T] {
	var model T
	return &BaseServiceMemoryImpl[T]{
		name:   name,
		unique: database.UniqueFields(model),
	}
}

// Name trả về tên collection
func (s *BaseServiceMemoryImpl[T]) Name() string {
	return s.name
}

// InsertOne tạo mới một bản ghi, gán _id nếu chưa có và kiểm tra unique index
func (s *BaseServiceMemoryImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	dataMap, err := utility.ToMap(data)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}
	if _, ok := dataMap["_id"]; !ok {
		dataMap["_id"] = primitive.NewObjectID()
	}
	now := utility.CurrentTimeInMilli()
	dataMap["createdAt"] = now
	dataMap["updatedAt"] = now

	raw, err := bson.Marshal(dataMap)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	s.mu.Lock()
	keys := append([]string{"_id"}, s.unique...)
	for _, key := range keys {
		want, err := bson.Raw(raw).LookupErr(key)
		if err != nil {
			continue
		}
		for _, doc := range s.docs {
			if got, err := doc.LookupErr(key); err == nil && valuesEqual(got, want) {
				s.mu.Unlock()
				return zero, common.NewError(common.ErrCodeDatabaseQuery, common.MsgMongoDuplicate, common.StatusConflict,
					fmt.Errorf("duplicate key %s in %s: %w", key, s.name, common.ErrDuplicate))
			}
		}
	}
	s.docs = append(s.docs, raw)
	s.mu.Unlock()

	var created T
	if err := bson.Unmarshal(raw, &created); err != nil {
		return zero, common.ErrInvalidFormat
	}

	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: s.name,
		Operation:      events.OpInsert,
		Document:       created,
	})
	return created, nil
}

// FindOne tìm document đầu tiên khớp filter
func (s *BaseServiceMemoryImpl[T]) FindOne(ctx context.Context, filter interface{}) (T, error) {
	var zero T

	results, err := s.find(ctx, filter, 1)
	if err != nil {
		return zero, err
	}
	if len(results) == 0 {
		return zero, common.ErrNotFound
	}
	return results[0], nil
}

// Find tìm tất cả document khớp filter theo thứ tự chèn
func (s *BaseServiceMemoryImpl[T]) Find(ctx context.Context, filter interface{}) ([]T, error) {
	return s.find(ctx, filter, 0)
}

// FindAll đọc toàn bộ collection
func (s *BaseServiceMemoryImpl[T]) FindAll(ctx context.Context) ([]T, error) {
	return s.find(ctx, nil, 0)
}

// FindOneById tìm một document theo ObjectId
func (s *BaseServiceMemoryImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id})
}

// DocumentExists kiểm tra xem một document có tồn tại không
func (s *BaseServiceMemoryImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	results, err := s.find(ctx, filter, 1)
	if err != nil {
		return false, err
	}
	return len(results) > 0, nil
}

// find trả về tối đa limit document khớp filter (limit = 0: không giới hạn)
func (s *BaseServiceMemoryImpl[T]) find(ctx context.Context, filter interface{}, limit int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conds, err := compileFilter(filter)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []T{}
	for _, doc := range s.docs {
		if !matches(doc, conds) {
			continue
		}
		var item T
		if err := bson.Unmarshal(doc, &item); err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusInternalServerError, err)
		}
		results = append(results, item)
		if limit > 0 && len(results) == limit {
			break
		}
	}
	return results, nil
}

type condition struct {
	path  []string
	value bson.RawValue
}

// compileFilter chuyển filter so khớp bằng (bson.M, bson.D, map) thành danh sách điều kiện.
// Toán tử MongoDB ($in, $gt, ...) không được hỗ trợ.
func compileFilter(filter interface{}) ([]condition, error) {
	if filter == nil {
		return nil, nil
	}

	var pairs bson.D
	switch f := filter.(type) {
	case bson.D:
		pairs = f
	case bson.M:
		for k, v := range f {
			pairs = append(pairs, bson.E{Key: k, Value: v})
		}
	case map[string]interface{}:
		for k, v := range f {
			pairs = append(pairs, bson.E{Key: k, Value: v})
		}
	default:
		return nil, common.NewError(common.ErrCodeValidationInput, "Filter không được hỗ trợ", common.StatusBadRequest, fmt.Sprintf("%T", filter))
	}

	conds := make([]condition, 0, len(pairs))
	for _, pair := range pairs {
		if strings.HasPrefix(pair.Key, "$") {
			return nil, common.NewError(common.ErrCodeValidationInput, "Toán tử filter không được hỗ trợ", common.StatusBadRequest, pair.Key)
		}
		raw, err := bson.Marshal(bson.D{{Key: "v", Value: pair.Value}})
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err)
		}
		value := bson.Raw(raw).Lookup("v")
		if value.Type == bsontype.EmbeddedDocument {
			if key, _ := value.Document().IndexErr(0); key != nil && strings.HasPrefix(key.Key(), "$") {
				return nil, common.NewError(common.ErrCodeValidationInput, "Toán tử filter không được hỗ trợ", common.StatusBadRequest, key.Key())
			}
		}
		conds = append(conds, condition{path: strings.Split(pair.Key, "."), value: value})
	}
	return conds, nil
}

func matches(doc bson.Raw, conds []condition) bool {
	for _, cond := range conds {
		got, err := doc.LookupErr(cond.path...)
		if err != nil {
			// Field không tồn tại chỉ khớp với filter null
			if cond.value.Type == bsontype.Null {
				continue
			}
			return false
		}
		if !valuesEqual(got, cond.value) {
			return false
		}
	}
	return true
}

// valuesEqual so sánh hai giá trị BSON; các kiểu số (int32, int64, double) so sánh theo giá trị
func valuesEqual(a, b bson.RawValue) bool {
	if a.Type == b.Type {
		return bytes.Equal(a.Value, b.Value)
	}
	x, okA := numeric(a)
	y, okB := numeric(b)
	return okA && okB && x == y
}

func numeric(v bson.RawValue) (float64, bool) {
	switch v.Type {
	case bsontype.Int32:
		return float64(v.Int32()), true
	case bsontype.Int64:
		return float64(v.Int64()), true
	case bsontype.Double:
		return v.Double(), true
	}
	return 0, false
}
