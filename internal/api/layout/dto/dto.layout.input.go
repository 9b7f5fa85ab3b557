package layoutdto

// CreateItemInput dữ liệu đầu vào khi tạo mặt hàng
type CreateItemInput struct {
	Name  string  `json:"name" validate:"no_xss"`
	Aisle string  `json:"aisle" validate:"no_xss"`
	Bay   string  `json:"bay" validate:"no_xss"`
	Price float64 `json:"price" validate:"gte=0"`
	XVal  int     `json:"xVal"`
	YVal  int     `json:"yVal"`
}

// CreateAisleInput dữ liệu đầu vào khi tạo dãy kệ. Bays được tính, không nhận từ client.
type CreateAisleInput struct {
	Number    int    `json:"number"`
	Name      string `json:"name" validate:"no_xss"`
	XStartVal int    `json:"xStartVal"`
	XEndVal   int    `json:"xEndVal"`
	YStartVal int    `json:"yStartVal"`
	YEndVal   int    `json:"yEndVal"`
}

// CreateCheckoutInput dữ liệu đầu vào khi tạo quầy thanh toán
type CreateCheckoutInput struct {
	Lane      int `json:"lane"`
	XStartVal int `json:"xStartVal"`
	XEndVal   int `json:"xEndVal"`
	YStartVal int `json:"yStartVal"`
	YEndVal   int `json:"yEndVal"`
}

// CreateMapInput dữ liệu đầu vào khi tạo sơ đồ.
// Width/Length được kiểm tra trong service, sau bước kiểm tra trùng title.
type CreateMapInput struct {
	Title       string `json:"title" validate:"no_xss"`
	Description string `json:"description" validate:"no_xss"`
	Width       int    `json:"width"`
	Length      int    `json:"length"`
}

// CreateInventoryInput dữ liệu đầu vào khi tạo kho hàng
type CreateInventoryInput struct {
	ID    int    `json:"id"`
	Title string `json:"title" validate:"no_xss"`
}
