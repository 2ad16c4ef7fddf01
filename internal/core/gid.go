package core

import (
	"fmt"
	"strconv"
	"strings"
)

// GID 為遠端平台的全域資源識別格式：gid://shopify/<Type>/<ID>

const gidPrefix = "gid://shopify/"

// LocationGID 把設定值正規化成 Location GID；已是 GID 就原樣回傳
func LocationGID(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, gidPrefix) {
		return id
	}
	return fmt.Sprintf("%sLocation/%s", gidPrefix, id)
}

// NumericID 取出 GID 的結尾數字 ID；非 GID 或非數字回傳 0
func NumericID(gid string) int64 {
	i := strings.LastIndex(gid, "/")
	if i < 0 {
		return 0
	}
	n, err := strconv.ParseInt(gid[i+1:], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// IsGID 是否為合法 GID 字串
func IsGID(s string) bool {
	return strings.HasPrefix(s, gidPrefix) && NumericID(s) > 0
}
