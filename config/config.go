package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Driver của tầng lưu trữ
const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`             // Port hoặc địa chỉ server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI"`                // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME"`                        // Tên cơ sở dữ liệu
	StoreDriver           string `env:"STORE_DRIVER" envDefault:"mongo"`       // mongo | memory
	GraphQL_Path          string `env:"GRAPHQL_PATH" envDefault:"/graphql"`    // Đường dẫn endpoint GraphQL
	GraphQL_Playground    bool   `env:"GRAPHQL_PLAYGROUND" envDefault:"true"`  // Bật playground tại GRAPHQL_PATH/playground
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`           // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`       // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`     // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`  // Bật/tắt rate limiting
	Metrics_Enabled       bool   `env:"METRICS_ENABLED" envDefault:"true"`     // Expose /metrics
	Redis_Addr            string `env:"REDIS_ADDR"`                            // Địa chỉ Redis cho cache map (rỗng = tắt cache)
	Redis_Password        string `env:"REDIS_PASSWORD"`                        // Mật khẩu Redis
	Redis_DB              int    `env:"REDIS_DB" envDefault:"0"`               // Database index của Redis
	MapCache_TTL          int    `env:"MAP_CACHE_TTL" envDefault:"600"`        // Thời gian sống của cache map (giây)
	Map_MaxCoords         int    `env:"MAP_MAX_COORDS" envDefault:"1000000"`   // Số tọa độ tối đa getAllMapCoords trả về
}

// ListenAddress trả về địa chỉ cho app.Listen; ADDRESS chỉ có port thì thêm dấu ":"
func (c *Configuration) ListenAddress() string {
	if strings.Contains(c.Address, ":") {
		return c.Address
	}
	return ":" + c.Address
}

// UsesMemoryStore cho biết server chạy với store trong bộ nhớ (không cần MongoDB)
func (c *Configuration) UsesMemoryStore() bool {
	return strings.EqualFold(c.StoreDriver, StoreDriverMemory)
}

// Validate kiểm tra các giá trị bắt buộc và giá trị hợp lệ
func (c *Configuration) Validate() error {
	switch strings.ToLower(c.StoreDriver) {
	case StoreDriverMongo:
		var missing []string
		if c.MongoDB_ConnectionURI == "" {
			missing = append(missing, "MONGODB_CONNECTION_URI")
		}
		if c.MongoDB_DBName == "" {
			missing = append(missing, "MONGODB_DBNAME")
		}
		if len(missing) > 0 {
			return fmt.Errorf("thiếu biến môi trường bắt buộc: %s", strings.Join(missing, ", "))
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER không hợp lệ: %q", c.StoreDriver)
	}

	if !strings.HasPrefix(c.GraphQL_Path, "/") {
		return errors.New("GRAPHQL_PATH phải bắt đầu bằng /")
	}
	if c.RateLimit_Window <= 0 {
		return errors.New("RATE_LIMIT_WINDOW phải lớn hơn 0")
	}
	return nil
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env từ thư mục hiện tại đi lên
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình từ file env (nếu có) rồi từ biến môi trường.
// Biến môi trường đã set sẵn không bị file env ghi đè.
func NewConfig() (*Configuration, error) {
	if envPath := getEnvPath(); envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("không thể load file env tại %s: %w", envPath, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("lỗi khi parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
