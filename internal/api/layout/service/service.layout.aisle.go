package layoutsvc

import (
	"context"
	"fmt"

	basesvc "quickart/internal/api/base/service"
	layoutdto "quickart/internal/api/layout/dto"
	"quickart/internal/api/layout/models"
	"quickart/internal/global"
	"quickart/internal/logger"
)

// ComputeBays chia dãy kệ thành 3 ô theo chiều dài hơn.
// width = xEnd-xStart+1, length = yEnd-yStart+1; width > length thì chia theo x, ngược lại chia theo y.
// Độ dài ô dùng phép chia nguyên; ô cuối luôn kết thúc tại xEnd/yEnd nên nhận phần dư.
func ComputeBays(xStart, xEnd, yStart, yEnd int) []models.Bay {
	width := xEnd - xStart + 1
	length := yEnd - yStart + 1

	start, end, span := yStart, yEnd, length
	if width > length {
		start, end, span = xStart, xEnd, width
	}
	bayLen := span / 3

	return []models.Bay{
		{start, start + bayLen - 1},
		{start + bayLen, start + 2*bayLen - 1},
		{start + 2*bayLen, end},
	}
}

// AisleService quản lý dãy kệ
type AisleService struct {
	store basesvc.BaseService[models.Aisle]
}

// NewAisleService tạo AisleService
func NewAisleService(store basesvc.BaseService[models.Aisle]) *AisleService {
	return &AisleService{store: store}
}

// Get tìm dãy kệ theo id; trả về nil khi không có
func (s *AisleService) Get(ctx context.Context, id string) (*models.Aisle, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, nil
	}
	return findOptional(s.store.FindOneById(ctx, oid))
}

// Create tính bays rồi lưu dãy kệ mới
func (s *AisleService) Create(ctx context.Context, input layoutdto.CreateAisleInput) (*models.Aisle, error) {
	if err := global.ValidateStruct(input); err != nil {
		return nil, err
	}

	created, err := s.store.InsertOne(ctx, models.Aisle{
		Number:    input.Number,
		Name:      input.Name,
		Bays:      ComputeBays(input.XStartVal, input.XEndVal, input.YStartVal, input.YEndVal),
		XStartVal: input.XStartVal,
		XEndVal:   input.XEndVal,
		YStartVal: input.YStartVal,
		YEndVal:   input.YEndVal,
	})
	if err != nil {
		return nil, fmt.Errorf("insert aisle: %w", err)
	}

	logger.LogAction(ctx, "createAisle", "aisle", created.ID.Hex(), map[string]interface{}{"number": created.Number})
	return &created, nil
}
