package core

// FeedName 來源種類
type FeedName string

const (
	FeedPOS FeedName = "pos"
	FeedCSV FeedName = "csv"
)

// RunState 同步執行狀態
type RunState string

const (
	RunStateIdle      RunState = "idle"
	RunStateRunning   RunState = "running"
	RunStateCompleted RunState = "completed"
	RunStateFailed    RunState = "failed"
)

// RowOutcome 單列處理結果，亦作為指標 label 值
type RowOutcome string

const (
	RowCreated RowOutcome = "created"
	RowUpdated RowOutcome = "updated"
	RowSkipped RowOutcome = "skipped"
	RowFailed  RowOutcome = "failed"
)
