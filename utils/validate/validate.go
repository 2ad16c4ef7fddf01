package validate

import (
	"fmt"
	"reflect"
	"strings"

	"skusync/config"
	"skusync/internal/core"
	cErr "skusync/internal/pkg/error"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Configuration 啟動前檢查設定完整性。缺必填值視為致命錯誤，
// 由呼叫端決定要直接退出還是回覆 500
func Configuration(conf *config.Configuration) error {
	if err := validate.Struct(conf); err != nil {
		return cErr.InvalidConfig(validationErrorText(conf, err))
	}

	// oneof 之外的跨欄位規則，validator tag 表達不了
	switch core.FeedName(conf.Source.Mode) {
	case core.FeedPOS:
		if conf.Source.POS.BaseURL == "" {
			return cErr.InvalidConfig("SOURCE__POS__BASE_URL is required when SOURCE__MODE=pos")
		}
	case core.FeedCSV:
		if conf.Source.CSV.Path == "" {
			return cErr.InvalidConfig("SOURCE__CSV__PATH is required when SOURCE__MODE=csv")
		}
	}

	// 位置 ID 接受純數字或完整 GID，正規化後仍不合法就擋在啟動期
	if !core.IsGID(core.LocationGID(conf.Shopify.LocationID)) {
		return cErr.InvalidConfig("SHOPIFY__LOCATION_ID must be a numeric location id or gid://shopify/Location/<id>")
	}
	return nil
}

// 輸出格式化的 validator error（欄位 env 名/型別/規則列表）
func validationErrorText(obj interface{}, err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Sprintf("validation error: %s", err.Error())
	}
	var b strings.Builder
	b.WriteString("validation error:\n")
	for _, fe := range errs {
		b.WriteString(fmt.Sprintf(" - field \"%s\" failed the '%s' validation\n",
			envFieldName(obj, fe.StructNamespace()), fe.Tag()))
	}
	return b.String()
}

// envFieldName 依 mapstructure tag 回推環境變數名稱（__ 為巢狀分隔）
func envFieldName(obj interface{}, structNamespace string) string {
	parts := strings.Split(structNamespace, ".")
	if len(parts) < 2 {
		return structNamespace
	}
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var names []string
	for _, part := range parts[1:] {
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			names = append(names, strings.ToUpper(part))
			continue
		}
		f, ok := t.FieldByName(part)
		if !ok {
			names = append(names, strings.ToUpper(part))
			continue
		}
		tag := f.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			tag = strings.ToUpper(part)
		}
		names = append(names, strings.Split(tag, ",")[0])
		t = f.Type
	}
	return strings.Join(names, "__")
}
