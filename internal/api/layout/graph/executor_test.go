package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	layoutsvc "quickart/internal/api/layout/service"
	"quickart/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gqlResult struct {
	Data   map[string]interface{} `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Path       []interface{}          `json:"path"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func newTestExecutor(t *testing.T) *Executor {
	t.Helper()
	e, err := New(layoutsvc.New(layoutsvc.NewMemoryStores(), nil), metrics.New())
	require.NoError(t, err)
	return e
}

func run(t *testing.T, e *Executor, query string, vars map[string]interface{}) (*Response, gqlResult) {
	t.Helper()
	resp := e.Execute(context.Background(), &Request{Query: query, Variables: vars})
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var out gqlResult
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp, out
}

func TestNew_LoadsSchemaAndResolvers(t *testing.T) {
	e := newTestExecutor(t)
	assert.NotNil(t, e.schema)
	assert.NotNil(t, e.doc.Query.Fields.ForName("getAllMapCoords"))
	assert.NotNil(t, e.doc.Mutation.Fields.ForName("createInventory"))
}

func TestItem_CreateThenGet(t *testing.T) {
	e := newTestExecutor(t)

	resp, out := run(t, e, `mutation {
		createItem(name: "Milk", aisle: "A1", bay: "B2", price: 2.5, xVal: 3, yVal: 4) { id name aisle bay price xVal yVal }
	}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Empty(t, out.Errors)

	created := out.Data["createItem"].(map[string]interface{})
	id := created["id"].(string)
	assert.NotEmpty(t, id)

	_, out = run(t, e, `query($id: ID!) { getItem(id: $id) { id name aisle bay price xVal yVal } }`, map[string]interface{}{"id": id})
	require.Empty(t, out.Errors)
	assert.Equal(t, created, out.Data["getItem"])

	_, out = run(t, e, `{ items { name } }`, nil)
	assert.Equal(t, []interface{}{map[string]interface{}{"name": "Milk"}}, out.Data["items"])
}

func TestGetItem_MissingIsNull(t *testing.T) {
	e := newTestExecutor(t)

	_, out := run(t, e, `{ getItem(id: "5f1d7f3b2c8e4a0012345678") { id } }`, nil)
	assert.Empty(t, out.Errors)
	assert.Contains(t, out.Data, "getItem")
	assert.Nil(t, out.Data["getItem"])

	_, out = run(t, e, `{ getItem(id: "not-an-id") { id } }`, nil)
	assert.Empty(t, out.Errors)
	assert.Nil(t, out.Data["getItem"])
}

func TestAisle_BaysThroughGraphQL(t *testing.T) {
	e := newTestExecutor(t)

	_, out := run(t, e, `mutation {
		createAisle(number: 1, name: "Dairy", xStartVal: 0, xEndVal: 8, yStartVal: 0, yEndVal: 1) { id bays }
	}`, nil)
	require.Empty(t, out.Errors)

	aisle := out.Data["createAisle"].(map[string]interface{})
	assert.Equal(t, []interface{}{
		[]interface{}{float64(0), float64(2)},
		[]interface{}{float64(3), float64(5)},
		[]interface{}{float64(6), float64(8)},
	}, aisle["bays"])

	_, out = run(t, e, `query($id: ID!) { getAisle(id: $id) { id bays } }`, map[string]interface{}{"id": aisle["id"]})
	require.Empty(t, out.Errors)
	assert.Equal(t, aisle, out.Data["getAisle"])
}

func TestCreateMap_ErrorsAndSnapshot(t *testing.T) {
	e := newTestExecutor(t)

	_, out := run(t, e, `mutation {
		createCheckout(lane: 1, xStartVal: 0, xEndVal: 1, yStartVal: 0, yEndVal: 1) { id lane }
	}`, nil)
	require.Empty(t, out.Errors)
	checkoutID := out.Data["createCheckout"].(map[string]interface{})["id"]

	_, out = run(t, e, `mutation { createMap(title: "Main", description: "d", width: 0, length: 5) { id } }`, nil)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "Invalid dimensions", out.Errors[0].Message)
	assert.Equal(t, []interface{}{"createMap"}, out.Errors[0].Path)
	assert.Equal(t, "VAL_001", out.Errors[0].Extensions["code"])
	assert.Nil(t, out.Data)

	_, out = run(t, e, `mutation { createMap(title: "Main", description: "d", width: 4, length: 5) { id title checkout { id lane } aisle { id } } }`, nil)
	require.Empty(t, out.Errors)
	m := out.Data["createMap"].(map[string]interface{})
	assert.Equal(t, []interface{}{map[string]interface{}{"id": checkoutID, "lane": float64(1)}}, m["checkout"])
	assert.Equal(t, []interface{}{}, m["aisle"])

	// Trùng title được kiểm tra trước kích thước
	_, out = run(t, e, `mutation { createMap(title: "Main", description: "d", width: 0, length: 0) { id } }`, nil)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "Map already exists", out.Errors[0].Message)

	_, out = run(t, e, `query($id: ID!) { getMap(id: $id) { id title } getAllMapCoords(id: $id) }`, map[string]interface{}{"id": m["id"]})
	require.Empty(t, out.Errors)
	assert.Equal(t, "Main", out.Data["getMap"].(map[string]interface{})["title"])
	assert.Len(t, out.Data["getAllMapCoords"], 20)
}

func TestCreateMap_AisleOutOfBounds(t *testing.T) {
	e := newTestExecutor(t)

	_, out := run(t, e, `mutation { createAisle(number: 1, name: "Big", xStartVal: 0, xEndVal: 10, yStartVal: 0, yEndVal: 1) { id } }`, nil)
	require.Empty(t, out.Errors)

	_, out = run(t, e, `mutation { createMap(title: "Small", description: "", width: 5, length: 5) { id } }`, nil)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "Aisle dimensions exceed map dimensions", out.Errors[0].Message)
}

func TestGetAllMapCoords(t *testing.T) {
	e := newTestExecutor(t)

	_, out := run(t, e, `mutation { createMap(title: "Tiny", description: "", width: 2, length: 2) { id } }`, nil)
	require.Empty(t, out.Errors)
	id := out.Data["createMap"].(map[string]interface{})["id"]

	_, out = run(t, e, `query($id: ID!) { getAllMapCoords(id: $id) }`, map[string]interface{}{"id": id})
	require.Empty(t, out.Errors)
	assert.Equal(t, []interface{}{
		[]interface{}{float64(0), float64(0)},
		[]interface{}{float64(0), float64(1)},
		[]interface{}{float64(1), float64(0)},
		[]interface{}{float64(1), float64(1)},
	}, out.Data["getAllMapCoords"])

	_, out = run(t, e, `{ getAllMapCoords(id: "5f1d7f3b2c8e4a0012345678") }`, nil)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "Map not found", out.Errors[0].Message)
	assert.Nil(t, out.Data)
}

func TestInventory_SnapshotAndReferenceError(t *testing.T) {
	e := newTestExecutor(t)

	_, out := run(t, e, `mutation {
		a: createItem(name: "A", aisle: "1", bay: "1", price: 1, xVal: 0, yVal: 0) { id }
		b: createItem(name: "B", aisle: "1", bay: "2", price: 2, xVal: 0, yVal: 1) { id }
		inv: createInventory(id: 7, title: "Week 1") { id title items { name } }
		c: createItem(name: "C", aisle: "1", bay: "3", price: 3, xVal: 0, yVal: 2) { id }
	}`, nil)
	require.Empty(t, out.Errors)

	inv := out.Data["inv"].(map[string]interface{})
	assert.Equal(t, float64(7), inv["id"])
	assert.Len(t, inv["items"], 2)

	_, out = run(t, e, `{ getInventory(id: 7) { name } }`, nil)
	require.Empty(t, out.Errors)
	assert.Equal(t, []interface{}{
		map[string]interface{}{"name": "A"},
		map[string]interface{}{"name": "B"},
	}, out.Data["getInventory"])

	_, out = run(t, e, `{ getInventory(id: 99) { name } }`, nil)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "Inventory not found", out.Errors[0].Message)
	assert.Equal(t, "REF_001", out.Errors[0].Extensions["code"])
	assert.Nil(t, out.Data)
}

func TestMutation_NonNullFailureNullsData(t *testing.T) {
	e := newTestExecutor(t)

	_, out := run(t, e, `mutation {
		bad: createMap(title: "X", description: "", width: -1, length: 1) { id }
		item: createItem(name: "Later", aisle: "", bay: "", price: 1, xVal: 0, yVal: 0) { id }
	}`, nil)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, []interface{}{"bad"}, out.Errors[0].Path)
	assert.Equal(t, "Invalid dimensions", out.Errors[0].Message)
	assert.Nil(t, out.Data)
}

func TestValidationErrorFromInput(t *testing.T) {
	e := newTestExecutor(t)

	_, out := run(t, e, `mutation { createItem(name: "<script>x</script>", aisle: "", bay: "", price: -1, xVal: 0, yVal: 0) { id } }`, nil)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "VAL_001", out.Errors[0].Extensions["code"])
	assert.Equal(t, map[string]interface{}{"Name": "no_xss", "Price": "gte"}, out.Errors[0].Extensions["details"])
}

func TestEmptyTitlesAreAccepted(t *testing.T) {
	e := newTestExecutor(t)

	_, out := run(t, e, `mutation {
		item: createItem(name: "", aisle: "", bay: "", price: 0, xVal: 0, yVal: 0) { name }
		m: createMap(title: "", description: "", width: 1, length: 1) { title }
		inv: createInventory(id: 1, title: "") { title }
	}`, nil)
	require.Empty(t, out.Errors)
	assert.Equal(t, "", out.Data["m"].(map[string]interface{})["title"])

	// Title rỗng vẫn là title: tạo lần hai bị coi là trùng
	_, out = run(t, e, `mutation { createMap(title: "", description: "", width: 1, length: 1) { id } }`, nil)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "Map already exists", out.Errors[0].Message)
}

func TestGetAllMapCoords_TooLargeIsValidationError(t *testing.T) {
	e := newTestExecutor(t)

	_, out := run(t, e, `mutation { createMap(title: "Huge", description: "", width: 2147483647, length: 2147483647) { id } }`, nil)
	require.Empty(t, out.Errors)
	id := out.Data["createMap"].(map[string]interface{})["id"]

	assert.NotPanics(t, func() {
		_, out = run(t, e, `query($id: ID!) { getAllMapCoords(id: $id) }`, map[string]interface{}{"id": id})
	})
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "Map too large to enumerate", out.Errors[0].Message)
	assert.Equal(t, "VAL_001", out.Errors[0].Extensions["code"])
	assert.Nil(t, out.Data)
}

func TestResolverPanicIsHidden(t *testing.T) {
	// Services rỗng: resolver panic khi gọi service nil
	e, err := New(&layoutsvc.Services{}, nil)
	require.NoError(t, err)

	resp, out := run(t, e, `{ items { id } }`, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "Internal server error", out.Errors[0].Message)
	assert.Equal(t, CodeInternal, out.Errors[0].Extensions["code"])
	assert.Nil(t, out.Data)
}

func TestSelection_AliasesFragmentsDirectives(t *testing.T) {
	e := newTestExecutor(t)
	_, out := run(t, e, `mutation { createItem(name: "Eggs", aisle: "2", bay: "1", price: 3, xVal: 1, yVal: 1) { id } }`, nil)
	require.Empty(t, out.Errors)

	query := `query Q($hide: Boolean!) {
		__typename
		first: items { ...ItemFields }
		hidden: items @skip(if: $hide) { id }
		shown: items @include(if: true) { ... on Item { price } }
	}
	fragment ItemFields on Item { name __typename }`

	resp, out := run(t, e, query, map[string]interface{}{"hide": true})
	require.Empty(t, out.Errors)
	assert.Equal(t, "Query", out.Data["__typename"])
	assert.Equal(t, []interface{}{map[string]interface{}{"name": "Eggs", "__typename": "Item"}}, out.Data["first"])
	assert.NotContains(t, out.Data, "hidden")
	assert.Equal(t, []interface{}{map[string]interface{}{"price": float64(3)}}, out.Data["shown"])

	// Thứ tự key theo selection set
	assert.Equal(t, `{"__typename":"Query","first":[{"name":"Eggs","__typename":"Item"}],"shown":[{"price":3}]}`, string(resp.Data))
}

func TestExecute_ProtocolErrors(t *testing.T) {
	e := newTestExecutor(t)

	resp, out := run(t, e, ``, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	assert.Len(t, out.Errors, 1)

	resp, out = run(t, e, `{ items { id `, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode())
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "GRAPHQL_PARSE_FAILED", out.Errors[0].Extensions["code"])
	assert.Empty(t, resp.Data)

	resp, out = run(t, e, `{ unknownField }`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode())
	require.NotEmpty(t, out.Errors)
	assert.Equal(t, "GRAPHQL_VALIDATION_FAILED", out.Errors[0].Extensions["code"])

	resp, out = run(t, e, `query($id: ID!) { getItem(id: $id) { id } }`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode())
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "GRAPHQL_VALIDATION_FAILED", out.Errors[0].Extensions["code"])

	resp, _ = run(t, e, `query A { items { id } } query B { items { name } }`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode())
}

func TestExecute_OperationName(t *testing.T) {
	e := newTestExecutor(t)

	resp := e.Execute(context.Background(), &Request{
		Query:         `query A { items { id } } query B { __typename }`,
		OperationName: "B",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, `{"__typename":"Query"}`, string(resp.Data))
}

func TestExecute_ReadOnlyRejectsMutation(t *testing.T) {
	e := newTestExecutor(t)

	resp := e.Execute(context.Background(), &Request{
		Query:    `mutation { createMap(title: "M", description: "", width: 1, length: 1) { id } }`,
		ReadOnly: true,
	})
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode())
	assert.Empty(t, resp.Data)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, CodeOperationNotAllowed, resp.Errors[0].Extensions["code"])
}

func TestExecute_Introspection(t *testing.T) {
	e := newTestExecutor(t)

	_, out := run(t, e, `{ __schema { queryType { name } mutationType { name } } }`, nil)
	require.Empty(t, out.Errors)
	schema := out.Data["__schema"].(map[string]interface{})
	assert.Equal(t, "Query", schema["queryType"].(map[string]interface{})["name"])
	assert.Equal(t, "Mutation", schema["mutationType"].(map[string]interface{})["name"])
}

func TestExecute_SubscriptionRejected(t *testing.T) {
	e := newTestExecutor(t)

	resp := e.Execute(context.Background(), &Request{Query: `subscription { items { id } }`})
	assert.NotEqual(t, http.StatusOK, resp.StatusCode())
	assert.Empty(t, resp.Data)
	assert.NotEmpty(t, resp.Errors)
}
