package feed

import (
	"context"

	"skusync/internal/core"

	"github.com/shopspring/decimal"
)

// Row 正規化後的來源商品列。
// 不論來源是 POS API 還是供應商 CSV，進入同步管線前都先轉成這個形狀
type Row struct {
	// 來源內的列號（CSV 行數或分頁內序號），只用於錯誤訊息
	Line int
	// 比對鍵，空值的列由管線記為 skipped
	SKU     string
	Title   string
	Vendor  string
	Barcode string
	// 單價，decimal 避免浮點誤差
	Price decimal.Decimal
	// 現有庫存量
	Quantity int
}

// Service 單一來源饋送。Fetch 依來源順序逐列呼叫 emit，
// emit 回傳錯誤時中止整個讀取（致命錯誤才會發生，單列錯誤由管線自行吞掉）
type Service interface {
	Name() core.FeedName
	Fetch(ctx context.Context, emit func(Row) error) error
}
