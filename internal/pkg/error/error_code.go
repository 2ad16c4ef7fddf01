package error

const (
	// 0 ~ 999: 成功類別
	SUCCESS = 0 // 200 OK

	// 40000 ~ 49999: 用戶請求錯誤 (400 系列)
	BAD_REQUEST_BODY   = 40000 // 400 - 無效的請求體
	BAD_REQUEST_PARAMS = 40001 // 400 - 無效的請求參數
	INVALID_CONFIG     = 40002 // 400 - 缺少或無效的必要設定
	INVALID_FEED_ROW   = 40003 // 400 - 來源資料列格式錯誤

	// 40100 ~ 40399: 驗證與權限錯誤 (401 403 系列)
	UNAUTHORIZED         = 40100 // 401 - 未授權
	UNAUTHORIZED_API_KEY = 40300 // 403 - API Key 無權限

	// 40400 ~ 40499: 資源錯誤 (404 系列)
	NOT_FOUND = 40400 // 404 - 資源未找到

	// 40900 ~ 40999: 狀態衝突 (409 系列)
	SYNC_ALREADY_RUNNING = 40900 // 409 - 已有同步執行中

	// 50000 ~ 50199: 伺服器內部錯誤 (500 系列)
	INTERNAL_ERROR      = 50000 // 500 - 內部錯誤
	FEED_ERROR          = 50001 // 500 - 來源饋送讀取失敗
	SERVICE_UNAVAILABLE = 50002 // 503 - 服務暫停 (維護模式)

	// 50200 ~ 50499: 外部請求錯誤 (502 504 系列)
	EXTERNAL_REQUEST_ERROR         = 50200 // 502 - 遠端 API 請求錯誤
	EXTERNAL_RESPONSE_FORMAT_ERROR = 50201 // 502 - 遠端 API 回應格式錯誤
	REMOTE_USER_ERROR              = 50202 // 502 - 遠端 mutation userErrors
	GATEWAY_TIMEOUT                = 50400 // 504 - 遠端 API 超時
)
