package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

const ansiReset = "\x1b[0m"

// truncate shortens s to w cells, marking the cut with an ellipsis.
func truncate(s string, w int) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return xansi.Cut(s, 0, w-1) + ansiReset + "…"
}

// padOrCut makes s exactly w cells wide.
func padOrCut(s string, w int) string {
	cur := xansi.StringWidth(s)
	switch {
	case cur < w:
		return s + strings.Repeat(" ", w-cur)
	case cur > w:
		return xansi.Cut(s, 0, w) + ansiReset
	default:
		return s
	}
}

// overlay writes over onto base starting at cell x, clipped to base's width.
func overlay(base, over string, x int) string {
	bw := xansi.StringWidth(base)
	ow := xansi.StringWidth(over)
	if x < 0 {
		over = xansi.Cut(over, -x, ow)
		ow += x
		x = 0
	}
	if ow <= 0 || x >= bw {
		return base
	}
	if x+ow > bw {
		over = xansi.Cut(over, 0, bw-x)
		ow = bw - x
	}
	return xansi.Cut(base, 0, x) + ansiReset + over + ansiReset + xansi.Cut(base, x+ow, bw)
}
