package service

import (
	"skusync/internal/core"
	"skusync/internal/service/feed"

	cErr "skusync/internal/pkg/error"
)

// Registry 依設定選擇啟用的來源饋送
type Registry struct {
	feeds map[core.FeedName]feed.Service
}

func (r *Registry) RegisterFeed(name core.FeedName, s feed.Service) {
	r.feeds[name] = s
}

// Feed 取出指定來源，沒註冊視為設定錯誤
func (r *Registry) Feed(name core.FeedName) (feed.Service, error) {
	s, ok := r.feeds[name]
	if !ok {
		return nil, cErr.InvalidConfig("unknown source mode: " + string(name))
	}
	return s, nil
}
