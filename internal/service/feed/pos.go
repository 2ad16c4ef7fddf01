package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"skusync/config"
	"skusync/internal/core"
	cErr "skusync/internal/pkg/error"
	"skusync/internal/telemetry"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

const defaultPOSPageSize = 100

// posProduct POS API 回傳的商品 JSON。price 可能是數字或字串，
// decimal 兩種都吃
type posProduct struct {
	SKU     string          `json:"sku"`
	Name    string          `json:"name"`
	Vendor  string          `json:"vendor"`
	Barcode string          `json:"barcode"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock_on_hand"`
}

type POSService struct {
	HTTPClient *http.Client
	conf       *config.Configuration
	trace      *telemetry.Trace
}

// NewPOSService 建立 POS 饋送
func NewPOSService(
	conf *config.Configuration,
	trace *telemetry.Trace,
	client *http.Client,
) *POSService {
	return &POSService{HTTPClient: client, conf: conf, trace: trace}
}

func (s *POSService) Name() core.FeedName {
	return core.FeedPOS
}

// Fetch 逐頁拉取 /products，頁面短於 page size 即視為結束。
// 嚴格循序：同一時間只有一個請求在途
func (s *POSService) Fetch(ctx context.Context, emit func(Row) error) error {
	pageSize := s.conf.Source.POS.PageSize
	if pageSize <= 0 {
		pageSize = defaultPOSPageSize
	}

	for page := 1; ; page++ {
		products, err := s.fetchPage(ctx, page, pageSize)
		if err != nil {
			return err
		}
		for i, p := range products {
			row := Row{
				Line:     (page-1)*pageSize + i + 1,
				SKU:      strings.TrimSpace(p.SKU),
				Title:    strings.TrimSpace(p.Name),
				Vendor:   strings.TrimSpace(p.Vendor),
				Barcode:  strings.TrimSpace(p.Barcode),
				Price:    p.Price,
				Quantity: p.Stock,
			}
			if err := emit(row); err != nil {
				return err
			}
		}
		if len(products) < pageSize {
			return nil
		}
	}
}

func (s *POSService) fetchPage(ctx context.Context, page, limit int) ([]posProduct, error) {
	url := fmt.Sprintf("%s/products?page=%d&limit=%d",
		strings.TrimRight(s.conf.Source.POS.BaseURL, "/"), page, limit)
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanFeedFetch))
	defer end(nil)

	span.SetAttributes(
		attribute.String("feed.name", string(core.FeedPOS)),
		attribute.String("http.url", url),
		attribute.Int("feed.page", page),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		end(err)
		return nil, cErr.InternalServer("create pos request failed")
	}
	if token := s.conf.Source.POS.Token; token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.HTTPClient.Do(httpReq)
	if err != nil {
		end(err)
		return nil, cErr.ExternalRequestError("pos api request failed: " + err.Error())
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(resp.Body)
		cause := fmt.Errorf("pos non-2xx: %s (%d) %s", resp.Status, resp.StatusCode, strings.TrimSpace(string(b)))
		end(cause)
		return nil, cErr.ExternalRequestError("pos api error: " + strings.TrimSpace(string(b)))
	}

	var products []posProduct
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber() // 精度安全
	if err := dec.Decode(&products); err != nil {
		end(err)
		return nil, cErr.ExternalResponseFormatError("decode pos response failed")
	}

	return products, nil
}
