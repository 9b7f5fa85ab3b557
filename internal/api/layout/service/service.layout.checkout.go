package layoutsvc

import (
	"context"
	"fmt"

	basesvc "quickart/internal/api/base/service"
	layoutdto "quickart/internal/api/layout/dto"
	"quickart/internal/api/layout/models"
	"quickart/internal/logger"
)

// CheckoutService quản lý quầy thanh toán
type CheckoutService struct {
	store basesvc.BaseService[models.Checkout]
}

// NewCheckoutService tạo CheckoutService
func NewCheckoutService(store basesvc.BaseService[models.Checkout]) *CheckoutService {
	return &CheckoutService{store: store}
}

// Get tìm quầy theo id; trả về nil khi không có
func (s *CheckoutService) Get(ctx context.Context, id string) (*models.Checkout, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, nil
	}
	return findOptional(s.store.FindOneById(ctx, oid))
}

// Create lưu nguyên dữ liệu quầy thanh toán
func (s *CheckoutService) Create(ctx context.Context, input layoutdto.CreateCheckoutInput) (*models.Checkout, error) {
	created, err := s.store.InsertOne(ctx, models.Checkout{
		Lane:      input.Lane,
		XStartVal: input.XStartVal,
		XEndVal:   input.XEndVal,
		YStartVal: input.YStartVal,
		YEndVal:   input.YEndVal,
	})
	if err != nil {
		return nil, fmt.Errorf("insert checkout: %w", err)
	}

	logger.LogAction(ctx, "createCheckout", "checkout", created.ID.Hex(), map[string]interface{}{"lane": created.Lane})
	return &created, nil
}
