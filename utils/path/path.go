package path

import (
	"os"
	"path/filepath"
	"runtime"
)

// RootPath 回傳模組根目錄的絕對路徑，供相對設定路徑定位用。
// 以 runtime.Caller 定位本檔，再從 utils/path/ 上推兩層
func RootPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("❌ 無法取得 caller 位置")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}

// Exists 檢查路徑是否存在（檔案或目錄皆可）
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
