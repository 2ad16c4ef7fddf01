package dto

import (
	"time"

	"skusync/internal/core"
)

// SyncStatusDto /sync/status 回傳的執行快照
type SyncStatusDto struct {
	RunID       string        `json:"runID,omitempty"`
	Feed        core.FeedName `json:"feed,omitempty"`
	State       core.RunState `json:"state"`
	StartedAt   *time.Time    `json:"startedAt,omitempty"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	Total       int           `json:"total"`
	Created     int           `json:"created"`
	Updated     int           `json:"updated"`
	Skipped     int           `json:"skipped"`
	Failed      int           `json:"failed"`
	CurrentSKU  string        `json:"currentSKU,omitempty"`
	LastError   string        `json:"lastError,omitempty"`
}

// SyncStartedDto /sync/run 受理後的回應
type SyncStartedDto struct {
	RunID string        `json:"runID"`
	Feed  core.FeedName `json:"feed"`
}
