package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skusync/config"
	cErr "skusync/internal/pkg/error"
	"skusync/internal/telemetry"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gqlTestServer 以假的 Admin GraphQL 端點回應固定 JSON，並側錄最後一個請求
type gqlTestServer struct {
	srv      *httptest.Server
	lastBody map[string]any
	lastPath string
	lastTok  string
	respond  func(w http.ResponseWriter)
}

func newGqlTestServer(t *testing.T) *gqlTestServer {
	t.Helper()
	g := &gqlTestServer{}
	g.srv = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.lastPath = r.URL.Path
		g.lastTok = r.Header.Get("X-Shopify-Access-Token")
		g.lastBody = map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&g.lastBody))
		w.Header().Set("Content-Type", "application/json")
		g.respond(w)
	}))
	t.Cleanup(g.srv.Close)
	return g
}

func (g *gqlTestServer) service() Service {
	conf := &config.Configuration{}
	conf.Shopify.Domain = strings.TrimPrefix(g.srv.URL, "https://")
	conf.Shopify.AccessToken = "shpat_test"
	conf.Shopify.APIVersion = "2024-10"
	return NewShopifyService(conf, &telemetry.Trace{}, &telemetry.Metric{}, g.srv.Client())
}

func (g *gqlTestServer) variables() map[string]any {
	vars, _ := g.lastBody["variables"].(map[string]any)
	return vars
}

func TestFindVariantBySKUHit(t *testing.T) {
	g := newGqlTestServer(t)
	g.respond = func(w http.ResponseWriter) {
		fmt.Fprint(w, `{"data":{"productVariants":{"nodes":[{
			"id":"gid://shopify/ProductVariant/2",
			"price":"19.90",
			"inventoryItem":{"id":"gid://shopify/InventoryItem/3"},
			"product":{"id":"gid://shopify/Product/1"}
		}]}}}`)
	}

	hit, err := g.service().FindVariantBySKU(context.Background(), "ABC-1")
	require.NoError(t, err)
	require.NotNil(t, hit)

	assert.Equal(t, "/admin/api/2024-10/graphql.json", g.lastPath)
	assert.Equal(t, "shpat_test", g.lastTok)
	assert.Equal(t, `sku:"ABC-1"`, g.variables()["query"])
	assert.Equal(t, "gid://shopify/Product/1", hit.ProductID)
	assert.Equal(t, "gid://shopify/ProductVariant/2", hit.VariantID)
	assert.Equal(t, "gid://shopify/InventoryItem/3", hit.InventoryItemID)
	assert.True(t, hit.Price.Equal(decimal.RequireFromString("19.90")))
}

func TestFindVariantBySKUMiss(t *testing.T) {
	g := newGqlTestServer(t)
	g.respond = func(w http.ResponseWriter) {
		fmt.Fprint(w, `{"data":{"productVariants":{"nodes":[]}}}`)
	}

	hit, err := g.service().FindVariantBySKU(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, hit)
}

func TestFindVariantBySKUEscapesQuotes(t *testing.T) {
	g := newGqlTestServer(t)
	g.respond = func(w http.ResponseWriter) {
		fmt.Fprint(w, `{"data":{"productVariants":{"nodes":[]}}}`)
	}

	_, err := g.service().FindVariantBySKU(context.Background(), `A"B`)
	require.NoError(t, err)
	assert.Equal(t, `sku:"A\"B"`, g.variables()["query"])
}

func TestCreateProduct(t *testing.T) {
	g := newGqlTestServer(t)
	g.respond = func(w http.ResponseWriter) {
		fmt.Fprint(w, `{"data":{"productSet":{"product":{"id":"gid://shopify/Product/7"},"userErrors":[]}}}`)
	}

	id, err := g.service().CreateProduct(context.Background(), NewProduct{
		Title:      "Widget",
		Vendor:     "Acme",
		SKU:        "W-1",
		Barcode:    "111",
		Price:      decimal.RequireFromString("5.5"),
		Quantity:   3,
		LocationID: "gid://shopify/Location/9",
	})
	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/Product/7", id)

	input, _ := g.variables()["input"].(map[string]any)
	require.NotNil(t, input)
	assert.Equal(t, "Widget", input["title"])
	assert.Equal(t, "Acme", input["vendor"])

	variants, _ := input["variants"].([]any)
	require.Len(t, variants, 1)
	variant, _ := variants[0].(map[string]any)
	assert.Equal(t, "W-1", variant["sku"])
	assert.Equal(t, "5.50", variant["price"])
	assert.Equal(t, "111", variant["barcode"])

	quantities, _ := variant["inventoryQuantities"].([]any)
	require.Len(t, quantities, 1)
	q, _ := quantities[0].(map[string]any)
	assert.Equal(t, "gid://shopify/Location/9", q["locationId"])
	assert.Equal(t, "on_hand", q["name"])
	assert.Equal(t, float64(3), q["quantity"])
}

func TestCreateProductTitleFallsBackToSKU(t *testing.T) {
	g := newGqlTestServer(t)
	g.respond = func(w http.ResponseWriter) {
		fmt.Fprint(w, `{"data":{"productSet":{"product":{"id":"gid://shopify/Product/8"},"userErrors":[]}}}`)
	}

	_, err := g.service().CreateProduct(context.Background(), NewProduct{
		SKU:        "NO-TITLE",
		LocationID: "gid://shopify/Location/9",
	})
	require.NoError(t, err)

	input, _ := g.variables()["input"].(map[string]any)
	assert.Equal(t, "NO-TITLE", input["title"])
}

func TestCreateProductUserErrors(t *testing.T) {
	g := newGqlTestServer(t)
	g.respond = func(w http.ResponseWriter) {
		fmt.Fprint(w, `{"data":{"productSet":{"product":null,"userErrors":[{"field":["input","variants"],"message":"sku taken"}]}}}`)
	}

	_, err := g.service().CreateProduct(context.Background(), NewProduct{SKU: "DUP-1"})
	require.Error(t, err)
	appErr, ok := err.(*cErr.Error)
	require.True(t, ok)
	assert.Equal(t, cErr.REMOTE_USER_ERROR, appErr.ErrorCode())
	assert.Contains(t, appErr.ErrorDesc(), "sku taken")
}

func TestSetOnHandQuantity(t *testing.T) {
	g := newGqlTestServer(t)
	g.respond = func(w http.ResponseWriter) {
		fmt.Fprint(w, `{"data":{"inventorySetOnHandQuantities":{"userErrors":[]}}}`)
	}

	err := g.service().SetOnHandQuantity(context.Background(), "gid://shopify/InventoryItem/3", "gid://shopify/Location/9", 42)
	require.NoError(t, err)

	input, _ := g.variables()["input"].(map[string]any)
	assert.Equal(t, "correction", input["reason"])
	quantities, _ := input["setQuantities"].([]any)
	require.Len(t, quantities, 1)
	q, _ := quantities[0].(map[string]any)
	assert.Equal(t, "gid://shopify/InventoryItem/3", q["inventoryItemId"])
	assert.Equal(t, float64(42), q["quantity"])
}

func TestUpdateVariantPrice(t *testing.T) {
	g := newGqlTestServer(t)
	g.respond = func(w http.ResponseWriter) {
		fmt.Fprint(w, `{"data":{"productVariantsBulkUpdate":{"userErrors":[]}}}`)
	}

	err := g.service().UpdateVariantPrice(context.Background(),
		"gid://shopify/Product/1", "gid://shopify/ProductVariant/2", decimal.RequireFromString("12.3"))
	require.NoError(t, err)

	assert.Equal(t, "gid://shopify/Product/1", g.variables()["productId"])
	variants, _ := g.variables()["variants"].([]any)
	require.Len(t, variants, 1)
	v, _ := variants[0].(map[string]any)
	assert.Equal(t, "12.30", v["price"])
}

func TestPostTopLevelGraphQLErrors(t *testing.T) {
	g := newGqlTestServer(t)
	g.respond = func(w http.ResponseWriter) {
		fmt.Fprint(w, `{"errors":[{"message":"Throttled"}]}`)
	}

	_, err := g.service().FindVariantBySKU(context.Background(), "X")
	require.Error(t, err)
	assert.Contains(t, err.(*cErr.Error).ErrorDesc(), "Throttled")
}

func TestPostNon2xx(t *testing.T) {
	g := newGqlTestServer(t)
	g.respond = func(w http.ResponseWriter) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"errors":"Invalid API key or access token"}`)
	}

	_, err := g.service().FindVariantBySKU(context.Background(), "X")
	require.Error(t, err)
	appErr, ok := err.(*cErr.Error)
	require.True(t, ok)
	assert.Equal(t, cErr.EXTERNAL_REQUEST_ERROR, appErr.ErrorCode())
}
