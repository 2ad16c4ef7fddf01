package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"skusync/config"
	"skusync/internal/core"
	cErr "skusync/internal/pkg/error"
	"skusync/internal/telemetry"

	"github.com/shopspring/decimal"
)

type ShopifyService struct {
	HTTPClient *http.Client
	conf       *config.Configuration
	trace      *telemetry.Trace
	metric     *telemetry.Metric
}

// NewShopifyService 建立 Admin GraphQL 目錄服務
func NewShopifyService(
	conf *config.Configuration,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	client *http.Client,
) Service {
	return &ShopifyService{HTTPClient: client, conf: conf, trace: trace, metric: metric}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// post 單一 GraphQL 呼叫：序列化、送出、檢查頂層 errors、解開 data。
// 失敗時依錯誤類型回傳：
//   - 請求送出/對方非 2xx：ExternalRequestError
//   - 回應解碼失敗：ExternalResponseFormatError
//   - 本地序列化/建請失敗：InternalServer
func (s *ShopifyService) post(ctx context.Context, operation string, req gqlRequest, out any) error {
	url := fmt.Sprintf("https://%s/admin/api/%s/graphql.json",
		s.conf.Shopify.Domain, s.conf.Shopify.APIVersion)
	ctx, span, end := s.trace.WithSpan(ctx, "shopify."+operation)
	defer end(nil)

	s.trace.ApplyTraceAttributes(span, core.TraceRemoteCallMeta{
		Operation: operation,
		URL:       url,
	})

	start := time.Now()

	payload, err := json.Marshal(req)
	if err != nil {
		end(err)
		return cErr.InternalServer("marshal graphql payload failed")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		end(err)
		return cErr.InternalServer("create http request failed")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Shopify-Access-Token", s.conf.Shopify.AccessToken)

	resp, err := s.HTTPClient.Do(httpReq)
	if err != nil {
		end(err)
		return cErr.ExternalRequestError("admin api request failed: " + err.Error())
	}
	defer resp.Body.Close()

	if s.metric.RemoteCallDuration != nil {
		s.metric.RemoteCallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
	s.trace.ApplyTraceAttributes(span, core.TraceRemoteCallMeta{
		Operation:  operation,
		URL:        url,
		StatusCode: resp.StatusCode,
	})

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(resp.Body)
		cause := fmt.Errorf("admin api non-2xx: %s (%d) %s", resp.Status, resp.StatusCode, strings.TrimSpace(string(b)))
		end(cause)
		return cErr.ExternalRequestError("admin api error: " + strings.TrimSpace(string(b)))
	}

	var envelope gqlEnvelope
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber() // 精度安全
	if err := dec.Decode(&envelope); err != nil {
		end(err)
		return cErr.ExternalResponseFormatError("decode admin api response failed")
	}
	if len(envelope.Errors) > 0 {
		cause := fmt.Errorf("graphql errors: %s", envelope.Errors[0].Message)
		end(cause)
		return cErr.ExternalRequestError("graphql: " + envelope.Errors[0].Message)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			end(err)
			return cErr.ExternalResponseFormatError("decode graphql data failed")
		}
	}
	return nil
}

// userErrorsToErr userErrors 非空就轉成一個 coded error
func userErrorsToErr(operation string, errs []UserError) error {
	if len(errs) == 0 {
		return nil
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		if len(e.Field) > 0 {
			parts = append(parts, strings.Join(e.Field, ".")+": "+e.Message)
			continue
		}
		parts = append(parts, e.Message)
	}
	return cErr.RemoteUserError(operation + ": " + strings.Join(parts, "; "))
}

const findVariantQuery = `query($query: String!) {
  productVariants(first: 1, query: $query) {
    nodes {
      id
      price
      inventoryItem { id }
      product { id }
    }
  }
}`

// FindVariantBySKU 以 sku: 搜尋語法找變體，查無回 (nil, nil)
func (s *ShopifyService) FindVariantBySKU(ctx context.Context, sku string) (*VariantHit, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, nil
	}
	req := gqlRequest{
		Query: findVariantQuery,
		Variables: map[string]any{
			"query": `sku:"` + strings.ReplaceAll(sku, `"`, `\"`) + `"`,
		},
	}
	var data struct {
		ProductVariants struct {
			Nodes []struct {
				ID            string `json:"id"`
				Price         string `json:"price"`
				InventoryItem struct {
					ID string `json:"id"`
				} `json:"inventoryItem"`
				Product struct {
					ID string `json:"id"`
				} `json:"product"`
			} `json:"nodes"`
		} `json:"productVariants"`
	}
	if err := s.post(ctx, "findVariantBySku", req, &data); err != nil {
		return nil, err
	}
	if len(data.ProductVariants.Nodes) == 0 {
		return nil, nil
	}
	node := data.ProductVariants.Nodes[0]
	price, err := decimal.NewFromString(node.Price)
	if err != nil {
		return nil, cErr.ExternalResponseFormatError("variant price not a decimal: " + node.Price)
	}
	return &VariantHit{
		ProductID:       node.Product.ID,
		VariantID:       node.ID,
		InventoryItemID: node.InventoryItem.ID,
		Price:           price,
	}, nil
}

const productSetMutation = `mutation($input: ProductSetInput!) {
  productSet(synchronous: true, input: $input) {
    product { id }
    userErrors { field message }
  }
}`

// CreateProduct 以 productSet 一次建立商品、變體與初始庫存
func (s *ShopifyService) CreateProduct(ctx context.Context, p NewProduct) (string, error) {
	title := p.Title
	if title == "" {
		title = p.SKU
	}
	variant := map[string]any{
		"sku":   p.SKU,
		"price": p.Price.StringFixed(2),
		"optionValues": []map[string]any{
			{"optionName": "Title", "name": "Default Title"},
		},
		"inventoryQuantities": []map[string]any{
			{"locationId": p.LocationID, "name": "on_hand", "quantity": p.Quantity},
		},
	}
	if p.Barcode != "" {
		variant["barcode"] = p.Barcode
	}
	input := map[string]any{
		"title": title,
		"productOptions": []map[string]any{
			{"name": "Title", "values": []map[string]any{{"name": "Default Title"}}},
		},
		"variants": []map[string]any{variant},
	}
	if p.Vendor != "" {
		input["vendor"] = p.Vendor
	}

	req := gqlRequest{
		Query:     productSetMutation,
		Variables: map[string]any{"input": input},
	}
	var data struct {
		ProductSet struct {
			Product struct {
				ID string `json:"id"`
			} `json:"product"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"productSet"`
	}
	if err := s.post(ctx, "productSet", req, &data); err != nil {
		return "", err
	}
	if err := userErrorsToErr("productSet", data.ProductSet.UserErrors); err != nil {
		return "", err
	}
	return data.ProductSet.Product.ID, nil
}

const setOnHandMutation = `mutation($input: InventorySetOnHandQuantitiesInput!) {
  inventorySetOnHandQuantities(input: $input) {
    userErrors { field message }
  }
}`

// SetOnHandQuantity 覆寫單一地點的現有庫存量
func (s *ShopifyService) SetOnHandQuantity(ctx context.Context, inventoryItemID, locationID string, quantity int) error {
	req := gqlRequest{
		Query: setOnHandMutation,
		Variables: map[string]any{
			"input": map[string]any{
				"reason": "correction",
				"setQuantities": []map[string]any{
					{
						"inventoryItemId": inventoryItemID,
						"locationId":      locationID,
						"quantity":        quantity,
					},
				},
			},
		},
	}
	var data struct {
		InventorySetOnHandQuantities struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"inventorySetOnHandQuantities"`
	}
	if err := s.post(ctx, "inventorySetOnHand", req, &data); err != nil {
		return err
	}
	return userErrorsToErr("inventorySetOnHand", data.InventorySetOnHandQuantities.UserErrors)
}

const updatePriceMutation = `mutation($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkUpdate(productId: $productId, variants: $variants) {
    userErrors { field message }
  }
}`

// UpdateVariantPrice 回寫變體價格
func (s *ShopifyService) UpdateVariantPrice(ctx context.Context, productID, variantID string, price decimal.Decimal) error {
	req := gqlRequest{
		Query: updatePriceMutation,
		Variables: map[string]any{
			"productId": productID,
			"variants": []map[string]any{
				{"id": variantID, "price": price.StringFixed(2)},
			},
		},
	}
	var data struct {
		ProductVariantsBulkUpdate struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"productVariantsBulkUpdate"`
	}
	if err := s.post(ctx, "variantPriceUpdate", req, &data); err != nil {
		return err
	}
	return userErrorsToErr("variantPriceUpdate", data.ProductVariantsBulkUpdate.UserErrors)
}
