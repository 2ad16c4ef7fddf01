package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// VariantHit SKU 查詢命中的變體
type VariantHit struct {
	ProductID       string
	VariantID       string
	InventoryItemID string
	Price           decimal.Decimal
}

// NewProduct 建立商品所需的最小輸入，單一變體
type NewProduct struct {
	Title    string
	Vendor   string
	SKU      string
	Barcode  string
	Price    decimal.Decimal
	Quantity int
	// 初始庫存入帳的地點 GID
	LocationID string
}

// UserError mutation 層級的業務錯誤（HTTP 200 但沒成功）
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// Service 電商平台目錄的寫入端。
// 查無 SKU 回傳 (nil, nil)，找不到不是錯誤
type Service interface {
	FindVariantBySKU(ctx context.Context, sku string) (*VariantHit, error)
	CreateProduct(ctx context.Context, p NewProduct) (productID string, err error)
	SetOnHandQuantity(ctx context.Context, inventoryItemID, locationID string, quantity int) error
	UpdateVariantPrice(ctx context.Context, productID, variantID string, price decimal.Decimal) error
}
