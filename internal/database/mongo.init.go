package database

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"quickart/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureDatabaseAndCollections tạo các collection còn thiếu trong database dbName.
// MongoDB tự tạo database khi collection đầu tiên được tạo.
func EnsureDatabaseAndCollections(ctx context.Context, client *mongo.Client, dbName string, collections []string) error {
	db := client.Database(dbName)

	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, name := range collections {
		if slices.Contains(existing, name) {
			continue
		}
		logger.GetAppLogger().Infof("Collection %s chưa tồn tại, tạo mới.", name)
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}

	logger.GetAppLogger().Infof("Database and collections are ensured in database: %s", dbName)
	return nil
}

// IndexSpec mô tả một index sinh ra từ tag `index` của model
type IndexSpec struct {
	Name    string
	Keys    bson.D
	Options *options.IndexOptions
}

// parseOrder: Trích xuất thứ tự sắp xếp từ tag (1 hoặc -1)
func parseOrder(tag string) int {
	if strings.Contains(tag, "order:-1") {
		return -1
	}
	return 1
}

// parseIndexTag phân tách tag index: các cấu hình cách nhau bởi ';', các phần trong một cấu hình cách nhau bởi ','.
// Ví dụ: `index:"unique,sparse;single,order:-1"`
func parseIndexTag(tag string) []map[string]string {
	result := []map[string]string{}

	for _, part := range strings.Split(tag, ";") {
		entry := map[string]string{}
		for _, subPart := range strings.Split(part, ",") {
			subPart = strings.TrimSpace(subPart)
			if subPart == "" {
				continue
			}
			key, value, _ := strings.Cut(subPart, ":")
			entry[key] = value
		}
		if len(entry) > 0 {
			result = append(result, entry)
		}
	}

	return result
}

// bsonName lấy tên field trong bson tag (bỏ các option như omitempty)
func bsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("bson"), ",")
	return name
}

func modelType(model interface{}) reflect.Type {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// IndexSpecs đọc tag `index` của model và trả về danh sách index cần có
func IndexSpecs(model interface{}) ([]IndexSpec, error) {
	t := modelType(model)

	var specs []IndexSpec
	compoundKeys := map[string]bson.D{}
	compoundOpts := map[string]*options.IndexOptions{}
	var compoundOrder []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		name := bsonName(field)
		if name == "" || name == "-" {
			continue
		}

		for _, cfg := range parseIndexTag(tag) {
			if _, ok := cfg["text"]; ok {
				indexName := name + "_text"
				specs = append(specs, IndexSpec{indexName, bson.D{{Key: name, Value: "text"}}, options.Index().SetName(indexName)})
			}
			if _, ok := cfg["single"]; ok {
				indexName := name + "_single"
				specs = append(specs, IndexSpec{indexName, bson.D{{Key: name, Value: parseOrder(tag)}}, options.Index().SetName(indexName)})
			}
			if _, ok := cfg["unique"]; ok {
				indexName := name + "_unique"
				opts := options.Index().SetName(indexName).SetUnique(true)
				if _, sparse := cfg["sparse"]; sparse {
					opts.SetSparse(true)
				}
				specs = append(specs, IndexSpec{indexName, bson.D{{Key: name, Value: 1}}, opts})
			}
			if ttlValue, ok := cfg["ttl"]; ok {
				ttl, err := strconv.Atoi(ttlValue)
				if err != nil {
					return nil, fmt.Errorf("TTL không hợp lệ cho field %s: %w", name, err)
				}
				indexName := name + "_ttl"
				specs = append(specs, IndexSpec{indexName, bson.D{{Key: name, Value: 1}}, options.Index().SetName(indexName).SetExpireAfterSeconds(int32(ttl))})
			}
			if group, ok := cfg["compound"]; ok {
				if _, seen := compoundOpts[group]; !seen {
					compoundOpts[group] = options.Index().SetName(group)
					compoundOrder = append(compoundOrder, group)
				}
				compoundKeys[group] = append(compoundKeys[group], bson.E{Key: name, Value: parseOrder(tag)})
				// Tên group chứa "_unique" thì index là unique
				if strings.Contains(group, "_unique") {
					compoundOpts[group].SetUnique(true)
				}
			}
		}
	}

	for _, group := range compoundOrder {
		specs = append(specs, IndexSpec{group, compoundKeys[group], compoundOpts[group]})
	}
	return specs, nil
}

// UniqueFields trả về tên bson của các field có index unique đơn
func UniqueFields(model interface{}) []string {
	specs, err := IndexSpecs(model)
	if err != nil {
		return nil
	}
	var fields []string
	for _, spec := range specs {
		if spec.Options.Unique != nil && *spec.Options.Unique && len(spec.Keys) == 1 {
			fields = append(fields, spec.Keys[0].Key)
		}
	}
	return fields
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

// compareIndex so sánh index đang có trong MongoDB với cấu hình mới
func compareIndex(existingIndex bson.M, spec IndexSpec) bool {
	existingKeys, ok := existingIndex["key"].(bson.M)
	if !ok || len(existingKeys) != len(spec.Keys) {
		return false
	}

	for _, key := range spec.Keys {
		existingValue, exists := existingKeys[key.Key]
		if !exists {
			return false
		}
		if want, isInt := key.Value.(int); isInt {
			got, ok := toInt(existingValue)
			if !ok || got != want {
				return false
			}
		} else if existingValue != key.Value {
			return false
		}
	}

	wantUnique := spec.Options.Unique != nil && *spec.Options.Unique
	gotUnique, _ := existingIndex["unique"].(bool)
	if wantUnique != gotUnique {
		return false
	}

	if spec.Options.ExpireAfterSeconds != nil {
		ttl, ok := toInt(existingIndex["expireAfterSeconds"])
		if !ok || ttl != int(*spec.Options.ExpireAfterSeconds) {
			return false
		}
	}

	return true
}

// checkAndReplaceIndex tạo index, hoặc xóa rồi tạo lại nếu cấu hình hiện có không khớp
func checkAndReplaceIndex(ctx context.Context, collection *mongo.Collection, existingIndexes map[string]bson.M, spec IndexSpec) error {
	log := logger.GetAppLogger().WithField("collection", collection.Name())

	if existingIndex, exists := existingIndexes[spec.Name]; exists {
		if compareIndex(existingIndex, spec) {
			log.Debugf("Index %s đã tồn tại và đúng cấu hình, bỏ qua...", spec.Name)
			return nil
		}
		if _, err := collection.Indexes().DropOne(ctx, spec.Name); err != nil {
			return fmt.Errorf("không thể xóa index %s: %w", spec.Name, err)
		}
		log.Infof("Đã xóa index cũ: %s", spec.Name)
	}

	if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: spec.Keys, Options: spec.Options}); err != nil {
		return fmt.Errorf("không thể tạo index %s: %w", spec.Name, err)
	}
	log.Infof("Đã tạo index: %s", spec.Name)
	return nil
}

// CreateIndexes đồng bộ index của collection theo tag `index` của model
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	specs, err := IndexSpecs(model)
	if err != nil {
		return err
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("không thể lấy danh sách index: %w", err)
	}
	defer cursor.Close(ctx)

	existingIndexes := map[string]bson.M{}
	for cursor.Next(ctx) {
		var indexInfo bson.M
		if err := cursor.Decode(&indexInfo); err != nil {
			return fmt.Errorf("không thể giải mã thông tin index: %w", err)
		}
		if name, ok := indexInfo["name"].(string); ok {
			existingIndexes[name] = indexInfo
		}
	}

	for _, spec := range specs {
		if err := checkAndReplaceIndex(ctx, collection, existingIndexes, spec); err != nil {
			return err
		}
	}

	// Xóa các unique index {field}_unique không còn được định nghĩa trong model
	wanted := UniqueFields(model)
	for indexName, indexInfo := range existingIndexes {
		field, isUnique := strings.CutSuffix(indexName, "_unique")
		if !isUnique || slices.Contains(wanted, field) {
			continue
		}
		if unique, _ := indexInfo["unique"].(bool); !unique {
			continue
		}
		if _, err := collection.Indexes().DropOne(ctx, indexName); err != nil {
			logger.GetAppLogger().WithError(err).Warnf("Không thể xóa index %s", indexName)
			continue
		}
		logger.GetAppLogger().Infof("Đã xóa index không còn được định nghĩa: %s", indexName)
	}

	return nil
}
