package feed

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"skusync/config"
	"skusync/internal/core"
	cErr "skusync/internal/pkg/error"
	"skusync/utils/path"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// 各家供應商匯出檔的欄位名不一致，先到齊這張別名表再說。
// key 一律小寫比對
var csvHeaderAliases = map[string][]string{
	"sku":      {"sku", "artikelnummer", "item_no", "item no", "item number", "product code", "variant sku"},
	"title":    {"title", "name", "product name", "bezeichnung", "description"},
	"vendor":   {"vendor", "brand", "manufacturer", "hersteller"},
	"barcode":  {"barcode", "ean", "upc", "gtin"},
	"price":    {"price", "preis", "unit price", "retail price", "rrp"},
	"quantity": {"quantity", "qty", "stock", "on hand", "on_hand", "bestand", "available"},
}

type CSVService struct {
	conf   *config.Configuration
	logger *zap.Logger
}

// NewCSVService 建立供應商 CSV 饋送
func NewCSVService(conf *config.Configuration, logger *zap.Logger) *CSVService {
	return &CSVService{conf: conf, logger: logger}
}

func (s *CSVService) Name() core.FeedName {
	return core.FeedCSV
}

// Fetch 讀取整份 CSV。分隔符優先序：檔首 sep= 提示 > 設定值 > 標頭列嗅探。
// 格式壞掉的資料列記 warning 後跳過，不中斷整份檔案
func (s *CSVService) Fetch(ctx context.Context, emit func(Row) error) error {
	if ok, err := path.Exists(s.conf.Source.CSV.Path); err != nil {
		return cErr.FeedError("stat csv failed: " + err.Error())
	} else if !ok {
		return cErr.FeedError("csv file not found: " + s.conf.Source.CSV.Path)
	}
	f, err := os.Open(s.conf.Source.CSV.Path)
	if err != nil {
		return cErr.FeedError("open csv failed: " + err.Error())
	}
	defer f.Close()

	br := bufio.NewReader(f)

	// Excel 慣例：第一行 "sep=;" 宣告分隔符
	sep, hinted, err := readSepHint(br)
	if err != nil {
		return cErr.FeedError("read csv header failed: " + err.Error())
	}

	headerLine, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return cErr.FeedError("read csv header failed: " + err.Error())
	}
	headerLine = strings.TrimRight(headerLine, "\r\n")
	if headerLine == "" {
		return cErr.FeedError("csv is empty")
	}

	if !hinted {
		if d := s.conf.Source.CSV.Delimiter; d != "" {
			sep = rune(d[0])
		} else {
			sep = sniffDelimiter(headerLine)
		}
	}

	hr := csv.NewReader(strings.NewReader(headerLine))
	hr.Comma = sep
	header, err := hr.Read()
	if err != nil {
		return cErr.FeedError("parse csv header failed: " + err.Error())
	}

	cols, err := mapHeader(header)
	if err != nil {
		return err
	}

	r := csv.NewReader(br)
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			// 單列格式錯誤不值得整份放棄
			s.logger.Warn("malformed csv record, skipping",
				zap.Int("line", line),
				zap.Error(err),
			)
			continue
		}

		row, err := s.normalize(record, cols, line)
		if err != nil {
			s.logger.Warn("unparseable csv row, skipping",
				zap.Int("line", line),
				zap.Error(err),
			)
			continue
		}
		if err := emit(row); err != nil {
			return err
		}
	}
}

// normalize 一列 CSV 轉 Row
func (s *CSVService) normalize(record []string, cols map[string]int, line int) (Row, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := Row{
		Line:    line,
		SKU:     field("sku"),
		Title:   field("title"),
		Vendor:  field("vendor"),
		Barcode: field("barcode"),
	}

	if raw := field("price"); raw != "" {
		price, err := ParsePrice(raw)
		if err != nil {
			return Row{}, cErr.InvalidFeedRow("bad price " + strconv.Quote(raw))
		}
		row.Price = price
	}
	if raw := field("quantity"); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return Row{}, cErr.InvalidFeedRow("bad quantity " + strconv.Quote(raw))
		}
		row.Quantity = qty
	}
	return row, nil
}

// readSepHint 消化掉檔首的 "sep=X" 行（若存在）
func readSepHint(br *bufio.Reader) (rune, bool, error) {
	peek, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return 0, false, err
	}
	if len(peek) < 5 || !strings.EqualFold(string(peek[:4]), "sep=") {
		return 0, false, nil
	}
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, false, err
	}
	line = strings.TrimRight(line, "\r\n")
	if len(line) < 5 {
		// 空的 "sep=" 行：提示行已消化掉，分隔符照舊走設定/嗅探
		return 0, false, nil
	}
	return rune(line[4]), true, nil
}

// sniffDelimiter 標頭列分號多於逗號就當分號檔
func sniffDelimiter(headerLine string) rune {
	if strings.Count(headerLine, ";") > strings.Count(headerLine, ",") {
		return ';'
	}
	return ','
}

// mapHeader 依別名表對應欄位 → index，沒有 SKU 欄直接失敗
func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(csvHeaderAliases))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for canonical, aliases := range csvHeaderAliases {
			if _, done := cols[canonical]; done {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					cols[canonical] = i
					break
				}
			}
		}
	}
	if _, ok := cols["sku"]; !ok {
		return nil, cErr.FeedError("csv has no recognizable sku column")
	}
	return cols, nil
}

// ParsePrice 供應商價格欄常見歐陸千分位寫法（1.234,56），先正規化再交給 decimal
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimLeft(s, "€$£ ")
	s = strings.ReplaceAll(s, " ", "")

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		// 最後出現者為小數點，另一個是千分位
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}
