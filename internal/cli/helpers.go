package cli

import (
	"time"

	"github.com/mattn/go-runewidth"
)

var timeNow = time.Now

// truncate shortens s to maxLen terminal columns, never splitting a rune
func truncate(s string, maxLen int) string {
	return runewidth.Truncate(s, maxLen, "...")
}
