package graph

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	layoutdto "quickart/internal/api/layout/dto"
	layoutsvc "quickart/internal/api/layout/service"
	"quickart/internal/metrics"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphql
var schemaSource string

// LoadSchema parse schema store layout được nhúng trong binary
func LoadSchema() (*ast.Schema, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSource})
	if err != nil {
		return nil, fmt.Errorf("load graphql schema: %w", err)
	}
	return schema, nil
}

// Resolver là root resolver: mỗi method ứng với một field của Query hoặc Mutation
type Resolver struct {
	svc     *layoutsvc.Services
	metrics *metrics.Metrics
}

// NewResolver tạo resolver từ bộ service; metrics có thể nil
func NewResolver(svc *layoutsvc.Services, m *metrics.Metrics) *Resolver {
	return &Resolver{svc: svc, metrics: m}
}

// New dựng executor với đầy đủ root field của schema
func New(svc *layoutsvc.Services, m *metrics.Metrics) (*Executor, error) {
	return NewExecutor(NewResolver(svc, m), m)
}

// resolve đo thời gian một root field và chuẩn hóa lỗi trả về
func resolve[T any](ctx context.Context, r *Resolver, field string, fn func() (T, error)) (T, error) {
	start := time.Now()
	value, err := fn()
	if err != nil {
		fe := resolverError(ctx, field, err)
		r.metrics.ObserveField(field, time.Since(start), fe.code())
		var zero T
		return zero, fe
	}
	r.metrics.ObserveField(field, time.Since(start), "")
	return value, nil
}

type IDArgs struct {
	ID graphql.ID
}

type InventoryArgs struct {
	ID int32
}

type CreateItemArgs struct {
	Name  string
	Aisle string
	Bay   string
	Price float64
	XVal  int32
	YVal  int32
}

type CreateAisleArgs struct {
	Number    int32
	Name      string
	XStartVal int32
	XEndVal   int32
	YStartVal int32
	YEndVal   int32
}

type CreateCheckoutArgs struct {
	Lane      int32
	XStartVal int32
	XEndVal   int32
	YStartVal int32
	YEndVal   int32
}

type CreateMapArgs struct {
	Title       string
	Description string
	Width       int32
	Length      int32
}

type CreateInventoryArgs struct {
	ID    int32
	Title string
}

func (r *Resolver) Items(ctx context.Context) ([]*ItemResolver, error) {
	return resolve(ctx, r, "items", func() ([]*ItemResolver, error) {
		items, err := r.svc.Item.List(ctx)
		if err != nil {
			return nil, err
		}
		return newItemResolvers(layoutdto.NewItemResponses(items)), nil
	})
}

func (r *Resolver) GetItem(ctx context.Context, args IDArgs) (*ItemResolver, error) {
	return resolve(ctx, r, "getItem", func() (*ItemResolver, error) {
		item, err := r.svc.Item.Get(ctx, string(args.ID))
		if err != nil || item == nil {
			return nil, err
		}
		return &ItemResolver{item: layoutdto.NewItemResponse(*item)}, nil
	})
}

// GetInventory trả về danh sách item của bản chụp inventory
func (r *Resolver) GetInventory(ctx context.Context, args InventoryArgs) ([]*ItemResolver, error) {
	return resolve(ctx, r, "getInventory", func() ([]*ItemResolver, error) {
		items, err := r.svc.Inventory.Items(ctx, int(args.ID))
		if err != nil {
			return nil, err
		}
		return newItemResolvers(layoutdto.NewItemResponses(items)), nil
	})
}

func (r *Resolver) GetAisle(ctx context.Context, args IDArgs) (*AisleResolver, error) {
	return resolve(ctx, r, "getAisle", func() (*AisleResolver, error) {
		aisle, err := r.svc.Aisle.Get(ctx, string(args.ID))
		if err != nil || aisle == nil {
			return nil, err
		}
		return &AisleResolver{aisle: layoutdto.NewAisleResponse(*aisle)}, nil
	})
}

func (r *Resolver) GetCheckout(ctx context.Context, args IDArgs) (*CheckoutResolver, error) {
	return resolve(ctx, r, "getCheckout", func() (*CheckoutResolver, error) {
		checkout, err := r.svc.Checkout.Get(ctx, string(args.ID))
		if err != nil || checkout == nil {
			return nil, err
		}
		return &CheckoutResolver{checkout: layoutdto.NewCheckoutResponse(*checkout)}, nil
	})
}

func (r *Resolver) GetMap(ctx context.Context, args IDArgs) (*StoreMapResolver, error) {
	return resolve(ctx, r, "getMap", func() (*StoreMapResolver, error) {
		m, err := r.svc.Map.Get(ctx, string(args.ID))
		if err != nil || m == nil {
			return nil, err
		}
		return &StoreMapResolver{m: layoutdto.NewStoreMapResponse(*m)}, nil
	})
}

func (r *Resolver) GetAllMapCoords(ctx context.Context, args IDArgs) ([][]int32, error) {
	return resolve(ctx, r, "getAllMapCoords", func() ([][]int32, error) {
		coords, err := r.svc.Map.Coords(ctx, string(args.ID))
		if err != nil {
			return nil, err
		}
		return pairs(coords), nil
	})
}

func (r *Resolver) CreateItem(ctx context.Context, args CreateItemArgs) (*ItemResolver, error) {
	return resolve(ctx, r, "createItem", func() (*ItemResolver, error) {
		item, err := r.svc.Item.Create(ctx, layoutdto.CreateItemInput{
			Name:  args.Name,
			Aisle: args.Aisle,
			Bay:   args.Bay,
			Price: args.Price,
			XVal:  int(args.XVal),
			YVal:  int(args.YVal),
		})
		if err != nil {
			return nil, err
		}
		return &ItemResolver{item: layoutdto.NewItemResponse(*item)}, nil
	})
}

func (r *Resolver) CreateAisle(ctx context.Context, args CreateAisleArgs) (*AisleResolver, error) {
	return resolve(ctx, r, "createAisle", func() (*AisleResolver, error) {
		aisle, err := r.svc.Aisle.Create(ctx, layoutdto.CreateAisleInput{
			Number:    int(args.Number),
			Name:      args.Name,
			XStartVal: int(args.XStartVal),
			XEndVal:   int(args.XEndVal),
			YStartVal: int(args.YStartVal),
			YEndVal:   int(args.YEndVal),
		})
		if err != nil {
			return nil, err
		}
		return &AisleResolver{aisle: layoutdto.NewAisleResponse(*aisle)}, nil
	})
}

func (r *Resolver) CreateCheckout(ctx context.Context, args CreateCheckoutArgs) (*CheckoutResolver, error) {
	return resolve(ctx, r, "createCheckout", func() (*CheckoutResolver, error) {
		checkout, err := r.svc.Checkout.Create(ctx, layoutdto.CreateCheckoutInput{
			Lane:      int(args.Lane),
			XStartVal: int(args.XStartVal),
			XEndVal:   int(args.XEndVal),
			YStartVal: int(args.YStartVal),
			YEndVal:   int(args.YEndVal),
		})
		if err != nil {
			return nil, err
		}
		return &CheckoutResolver{checkout: layoutdto.NewCheckoutResponse(*checkout)}, nil
	})
}

func (r *Resolver) CreateMap(ctx context.Context, args CreateMapArgs) (*StoreMapResolver, error) {
	return resolve(ctx, r, "createMap", func() (*StoreMapResolver, error) {
		m, err := r.svc.Map.Create(ctx, layoutdto.CreateMapInput{
			Title:       args.Title,
			Description: args.Description,
			Width:       int(args.Width),
			Length:      int(args.Length),
		})
		if err != nil {
			return nil, err
		}
		return &StoreMapResolver{m: layoutdto.NewStoreMapResponse(*m)}, nil
	})
}

func (r *Resolver) CreateInventory(ctx context.Context, args CreateInventoryArgs) (*InventoryResolver, error) {
	return resolve(ctx, r, "createInventory", func() (*InventoryResolver, error) {
		inv, err := r.svc.Inventory.Create(ctx, layoutdto.CreateInventoryInput{
			ID:    int(args.ID),
			Title: args.Title,
		})
		if err != nil {
			return nil, err
		}
		return &InventoryResolver{inv: layoutdto.NewInventoryResponse(*inv)}, nil
	})
}
