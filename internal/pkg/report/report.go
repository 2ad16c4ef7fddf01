package report

import (
	"fmt"
	"io"
	"time"
)

// Counts 同步進行中的流水計數
type Counts struct {
	Total   int
	Created int
	Updated int
	Skipped int
	Failed  int
}

// Reporter 管線的進度輸出。serve 模式用 Nop，互動式 sync 指令用 Console
type Reporter interface {
	Step(c Counts, sku string)
	Done(c Counts, elapsed time.Duration)
}

// Console 進度列固定用 \r 原地覆寫，結束時換行輸出總結
type Console struct {
	w        io.Writer
	lastLine int
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Step(counts Counts, sku string) {
	line := fmt.Sprintf("[%d] created=%d updated=%d skipped=%d failed=%d  %s",
		counts.Total, counts.Created, counts.Updated, counts.Skipped, counts.Failed, sku)
	// 前一行比較長時用空白蓋掉殘字
	pad := c.lastLine - len(line)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(c.w, "\r%s%*s", line, pad, "")
	c.lastLine = len(line)
}

func (c *Console) Done(counts Counts, elapsed time.Duration) {
	line := fmt.Sprintf("sync finished: %d rows, %d created, %d updated, %d skipped, %d failed in %s",
		counts.Total, counts.Created, counts.Updated, counts.Skipped, counts.Failed,
		elapsed.Round(time.Millisecond))
	pad := c.lastLine - len(line)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(c.w, "\r%s%*s\n", line, pad, "")
	c.lastLine = 0
}

// Nop 背景執行時不輸出
type Nop struct{}

func (Nop) Step(Counts, string)        {}
func (Nop) Done(Counts, time.Duration) {}
