package global

import (
	"quickart/config"
	"quickart/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Items       string // Tên collection cho mặt hàng
	Aisles      string // Tên collection cho dãy kệ
	Checkouts   string // Tên collection cho quầy thanh toán
	Maps        string // Tên collection cho sơ đồ cửa hàng
	Inventories string // Tên collection cho kho hàng
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB (nil khi STORE_DRIVER=memory)
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server

// Tên các collection. Giữ nguyên tên cũ để dùng chung dữ liệu với các client hiện có.
var MongoDB_ColNames = MongoDB_CollectionName{
	Items:       "Item",
	Aisles:      "Aisles",
	Checkouts:   "Checkout",
	Maps:        "Map",
	Inventories: "Inventory",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
