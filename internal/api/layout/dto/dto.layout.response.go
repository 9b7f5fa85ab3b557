package layoutdto

import (
	"quickart/internal/api/layout/models"
)

// ItemResponse là Item trả về cho client
type ItemResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Aisle string  `json:"aisle"`
	Bay   string  `json:"bay"`
	Price float64 `json:"price"`
	XVal  int     `json:"xVal"`
	YVal  int     `json:"yVal"`
}

// AisleResponse là Aisle trả về cho client
type AisleResponse struct {
	ID        string   `json:"id"`
	Number    int      `json:"number"`
	Name      string   `json:"name"`
	Bays      [][2]int `json:"bays"`
	XStartVal int      `json:"xStartVal"`
	XEndVal   int      `json:"xEndVal"`
	YStartVal int      `json:"yStartVal"`
	YEndVal   int      `json:"yEndVal"`
}

// CheckoutResponse là Checkout trả về cho client
type CheckoutResponse struct {
	ID        string `json:"id"`
	Lane      int    `json:"lane"`
	XStartVal int    `json:"xStartVal"`
	XEndVal   int    `json:"xEndVal"`
	YStartVal int    `json:"yStartVal"`
	YEndVal   int    `json:"yEndVal"`
}

// StoreMapResponse là StoreMap trả về cho client, kèm bản chụp aisle/checkout
type StoreMapResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Width       int                `json:"width"`
	Length      int                `json:"length"`
	Aisle       []AisleResponse    `json:"aisle"`
	Checkout    []CheckoutResponse `json:"checkout"`
}

// InventoryResponse là Inventory trả về cho client; id là id nghiệp vụ
type InventoryResponse struct {
	ID    int            `json:"id"`
	Title string         `json:"title"`
	Items []ItemResponse `json:"items"`
}

func NewItemResponse(m models.Item) ItemResponse {
	return ItemResponse{
		ID:    ShapeID(m.ID, m.LegacyID),
		Name:  m.Name,
		Aisle: m.Aisle,
		Bay:   m.Bay,
		Price: m.Price,
		XVal:  m.XVal,
		YVal:  m.YVal,
	}
}

func NewItemResponses(items []models.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, m := range items {
		out = append(out, NewItemResponse(m))
	}
	return out
}

func NewAisleResponse(m models.Aisle) AisleResponse {
	bays := make([][2]int, 0, len(m.Bays))
	for _, b := range m.Bays {
		bays = append(bays, [2]int(b))
	}
	return AisleResponse{
		ID:        ShapeID(m.ID, m.LegacyID),
		Number:    m.Number,
		Name:      m.Name,
		Bays:      bays,
		XStartVal: m.XStartVal,
		XEndVal:   m.XEndVal,
		YStartVal: m.YStartVal,
		YEndVal:   m.YEndVal,
	}
}

func NewCheckoutResponse(m models.Checkout) CheckoutResponse {
	return CheckoutResponse{
		ID:        ShapeID(m.ID, m.LegacyID),
		Lane:      m.Lane,
		XStartVal: m.XStartVal,
		XEndVal:   m.XEndVal,
		YStartVal: m.YStartVal,
		YEndVal:   m.YEndVal,
	}
}

func NewStoreMapResponse(m models.StoreMap) StoreMapResponse {
	aisles := make([]AisleResponse, 0, len(m.Aisle))
	for _, a := range m.Aisle {
		aisles = append(aisles, NewAisleResponse(a))
	}
	checkouts := make([]CheckoutResponse, 0, len(m.Checkout))
	for _, c := range m.Checkout {
		checkouts = append(checkouts, NewCheckoutResponse(c))
	}
	return StoreMapResponse{
		ID:          ShapeID(m.ID, m.LegacyID),
		Title:       m.Title,
		Description: m.Description,
		Width:       m.Width,
		Length:      m.Length,
		Aisle:       aisles,
		Checkout:    checkouts,
	}
}

func NewInventoryResponse(m models.Inventory) InventoryResponse {
	return InventoryResponse{
		ID:    m.InventoryID,
		Title: m.Title,
		Items: NewItemResponses(m.Items),
	}
}
