package graph

import (
	layoutdto "quickart/internal/api/layout/dto"

	graphql "github.com/graph-gophers/graphql-go"
)

// Int của GraphQL là số 32 bit; giá trị đều đến từ argument Int nên không tràn.

type ItemResolver struct {
	item layoutdto.ItemResponse
}

func newItemResolvers(items []layoutdto.ItemResponse) []*ItemResolver {
	out := make([]*ItemResolver, 0, len(items))
	for _, item := range items {
		out = append(out, &ItemResolver{item: item})
	}
	return out
}

func (r *ItemResolver) ID() graphql.ID { return graphql.ID(r.item.ID) }
func (r *ItemResolver) Name() string   { return r.item.Name }
func (r *ItemResolver) Aisle() string  { return r.item.Aisle }
func (r *ItemResolver) Bay() string    { return r.item.Bay }
func (r *ItemResolver) Price() float64 { return r.item.Price }
func (r *ItemResolver) XVal() int32    { return int32(r.item.XVal) }
func (r *ItemResolver) YVal() int32    { return int32(r.item.YVal) }

type AisleResolver struct {
	aisle layoutdto.AisleResponse
}

func (r *AisleResolver) ID() graphql.ID   { return graphql.ID(r.aisle.ID) }
func (r *AisleResolver) Number() int32    { return int32(r.aisle.Number) }
func (r *AisleResolver) Name() string     { return r.aisle.Name }
func (r *AisleResolver) Bays() [][]int32  { return pairs(r.aisle.Bays) }
func (r *AisleResolver) XStartVal() int32 { return int32(r.aisle.XStartVal) }
func (r *AisleResolver) XEndVal() int32   { return int32(r.aisle.XEndVal) }
func (r *AisleResolver) YStartVal() int32 { return int32(r.aisle.YStartVal) }
func (r *AisleResolver) YEndVal() int32   { return int32(r.aisle.YEndVal) }

type CheckoutResolver struct {
	checkout layoutdto.CheckoutResponse
}

func (r *CheckoutResolver) ID() graphql.ID   { return graphql.ID(r.checkout.ID) }
func (r *CheckoutResolver) Lane() int32      { return int32(r.checkout.Lane) }
func (r *CheckoutResolver) XStartVal() int32 { return int32(r.checkout.XStartVal) }
func (r *CheckoutResolver) XEndVal() int32   { return int32(r.checkout.XEndVal) }
func (r *CheckoutResolver) YStartVal() int32 { return int32(r.checkout.YStartVal) }
func (r *CheckoutResolver) YEndVal() int32   { return int32(r.checkout.YEndVal) }

// StoreMapResolver trả sơ đồ kèm bản chụp aisle/checkout lúc tạo
type StoreMapResolver struct {
	m layoutdto.StoreMapResponse
}

func (r *StoreMapResolver) ID() graphql.ID      { return graphql.ID(r.m.ID) }
func (r *StoreMapResolver) Title() string       { return r.m.Title }
func (r *StoreMapResolver) Description() string { return r.m.Description }
func (r *StoreMapResolver) Width() int32        { return int32(r.m.Width) }
func (r *StoreMapResolver) Length() int32       { return int32(r.m.Length) }

func (r *StoreMapResolver) Aisle() []*AisleResolver {
	out := make([]*AisleResolver, 0, len(r.m.Aisle))
	for _, a := range r.m.Aisle {
		out = append(out, &AisleResolver{aisle: a})
	}
	return out
}

func (r *StoreMapResolver) Checkout() []*CheckoutResolver {
	out := make([]*CheckoutResolver, 0, len(r.m.Checkout))
	for _, c := range r.m.Checkout {
		out = append(out, &CheckoutResolver{checkout: c})
	}
	return out
}

// InventoryResolver: id là id nghiệp vụ kiểu Int, không phải _id
type InventoryResolver struct {
	inv layoutdto.InventoryResponse
}

func (r *InventoryResolver) ID() int32              { return int32(r.inv.ID) }
func (r *InventoryResolver) Title() string          { return r.inv.Title }
func (r *InventoryResolver) Items() []*ItemResolver { return newItemResolvers(r.inv.Items) }

// pairs đổi cặp [a, b] sang list Int của GraphQL
func pairs(in [][2]int) [][]int32 {
	out := make([][]int32, 0, len(in))
	for _, p := range in {
		out = append(out, []int32{int32(p[0]), int32(p[1])})
	}
	return out
}
