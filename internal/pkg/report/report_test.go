package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsoleStepOverwritesInPlace(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Step(Counts{Total: 1, Created: 1}, "SKU-LONG-0001")
	c.Step(Counts{Total: 2, Created: 1, Updated: 1}, "S-2")

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "\r"))
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, "[1] created=1 updated=0 skipped=0 failed=0  SKU-LONG-0001")
	assert.Contains(t, out, "[2] created=1 updated=1 skipped=0 failed=0  S-2")
}

func TestConsoleStepPadsShorterLine(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Step(Counts{Total: 1}, "A-VERY-LONG-SKU-VALUE")
	long := buf.Len()
	c.Step(Counts{Total: 2}, "B")

	// 第二行較短，需補空白蓋掉前一行殘字
	second := buf.String()[long:]
	assert.GreaterOrEqual(t, len(second), long-1)
}

func TestConsoleDoneEndsWithNewline(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Step(Counts{Total: 3}, "S-3")
	c.Done(Counts{Total: 3, Created: 1, Updated: 1, Skipped: 1}, 1500*time.Millisecond)

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, "sync finished: 3 rows, 1 created, 1 updated, 1 skipped, 0 failed in 1.5s")
}

func TestNopIsSilent(t *testing.T) {
	var n Nop
	n.Step(Counts{Total: 1}, "X")
	n.Done(Counts{}, time.Second)
}
