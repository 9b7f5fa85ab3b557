package layoutsvc

import (
	"context"
	"fmt"

	basesvc "quickart/internal/api/base/service"
	layoutdto "quickart/internal/api/layout/dto"
	"quickart/internal/api/layout/models"
	"quickart/internal/cache"
	"quickart/internal/common"
	"quickart/internal/global"
	"quickart/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
)

// MapService quản lý sơ đồ cửa hàng
type MapService struct {
	maps      basesvc.BaseService[models.StoreMap]
	aisles    basesvc.BaseService[models.Aisle]
	checkouts basesvc.BaseService[models.Checkout]
	cache     *cache.Cache
	maxCoords int
}

// DefaultMaxCoords là số tọa độ tối đa getAllMapCoords được phép liệt kê
const DefaultMaxCoords = 1_000_000

// NewMapService tạo MapService. mapCache nil thì luôn đọc từ store.
func NewMapService(
	maps basesvc.BaseService[models.StoreMap],
	aisles basesvc.BaseService[models.Aisle],
	checkouts basesvc.BaseService[models.Checkout],
	mapCache *cache.Cache,
) *MapService {
	return &MapService{
		maps:      maps,
		aisles:    aisles,
		checkouts: checkouts,
		cache:     mapCache,
		maxCoords: DefaultMaxCoords,
	}
}

// SetCoordLimit đổi giới hạn số tọa độ của Coords; n <= 0 giữ giá trị hiện tại
func (s *MapService) SetCoordLimit(n int) {
	if n > 0 {
		s.maxCoords = n
	}
}

// withinBounds kiểm tra [start, end] nằm trọn trong [0, limit]
func withinBounds(start, end, limit int) bool {
	return start >= 0 && end <= limit && start <= end
}

// Create kiểm tra rồi lưu sơ đồ mới kèm bản chụp toàn bộ aisle và checkout.
// Thứ tự kiểm tra: trùng title, kích thước, aisle, checkout. Lỗi ở bước nào thì không lưu gì.
func (s *MapService) Create(ctx context.Context, input layoutdto.CreateMapInput) (*models.StoreMap, error) {
	if err := global.ValidateStruct(input); err != nil {
		return nil, err
	}

	exists, err := s.maps.DocumentExists(ctx, bson.M{"title": input.Title})
	if err != nil {
		return nil, fmt.Errorf("check map title: %w", err)
	}
	if exists {
		return nil, common.ErrMapExists
	}

	if input.Width <= 0 || input.Length <= 0 {
		return nil, common.ErrInvalidDimensions
	}

	aisles, err := s.aisles.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aisles: %w", err)
	}
	checkouts, err := s.checkouts.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load checkouts: %w", err)
	}

	for _, a := range aisles {
		if !withinBounds(a.XStartVal, a.XEndVal, input.Width) || !withinBounds(a.YStartVal, a.YEndVal, input.Length) {
			return nil, common.ErrAisleOutOfBounds
		}
	}
	for _, c := range checkouts {
		if !withinBounds(c.XStartVal, c.XEndVal, input.Width) || !withinBounds(c.YStartVal, c.YEndVal, input.Length) {
			return nil, common.ErrCheckoutOutOfBound
		}
	}

	created, err := s.maps.InsertOne(ctx, models.StoreMap{
		Title:       input.Title,
		Description: input.Description,
		Width:       input.Width,
		Length:      input.Length,
		Aisle:       aisles,
		Checkout:    checkouts,
	})
	if err != nil {
		// Hai request cùng title chạy song song: unique index chặn request thứ hai
		if common.IsDuplicate(err) {
			return nil, common.ErrMapExists
		}
		return nil, fmt.Errorf("insert map: %w", err)
	}

	logger.LogAction(ctx, "createMap", "map", created.ID.Hex(), map[string]interface{}{
		"title":     created.Title,
		"aisles":    len(created.Aisle),
		"checkouts": len(created.Checkout),
	})
	return &created, nil
}

// Get tìm sơ đồ theo id (qua cache nếu có); trả về nil khi không có
func (s *MapService) Get(ctx context.Context, id string) (*models.StoreMap, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, nil
	}
	key := oid.Hex()

	var cached models.StoreMap
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		// Cache lỗi không làm hỏng request: đọc từ store
		logger.WithContext(ctx).WithError(err).Warn("Map cache unavailable")
	}
	if found {
		return &cached, nil
	}

	m, err := findOptional(s.maps.FindOneById(ctx, oid))
	if err != nil || m == nil {
		return m, err
	}
	s.Remember(ctx, *m)
	return m, nil
}

// Remember ghi sơ đồ vào cache. Sơ đồ không bao giờ bị sửa nên bản cache luôn đúng.
func (s *MapService) Remember(ctx context.Context, m models.StoreMap) {
	if err := s.cache.Set(ctx, m.ID.Hex(), m); err != nil {
		logger.WithContext(ctx).WithError(err).Warn("Failed to cache map")
	}
}

// Coords liệt kê mọi tọa độ nguyên [x, y] với 0 <= x < width, 0 <= y < length,
// vòng ngoài theo x, vòng trong theo y. Sơ đồ không tồn tại thì trả lỗi "Map not found";
// lưới vượt giới hạn số tọa độ thì trả ErrMapTooLarge, không cấp phát.
func (s *MapService) Coords(ctx context.Context, id string) ([][2]int, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, common.ErrMapNotFound
	}
	if !fitsGrid(m.Width, m.Length, s.maxCoords) {
		return nil, common.ErrMapTooLarge
	}
	return GridCoords(m.Width, m.Length), nil
}

// fitsGrid kiểm tra width*length <= limit mà không tính tích (tránh tràn số)
func fitsGrid(width, length, limit int) bool {
	if width <= 0 || length <= 0 {
		return true
	}
	return width <= limit/length
}

// GridCoords sinh lưới tọa độ width x length theo thứ tự hàng (x ngoài, y trong)
func GridCoords(width, length int) [][2]int {
	if width <= 0 || length <= 0 {
		return [][2]int{}
	}
	coords := make([][2]int, 0, width*length)
	for x := 0; x < width; x++ {
		for y := 0; y < length; y++ {
			coords = append(coords, [2]int{x, y})
		}
	}
	return coords
}
