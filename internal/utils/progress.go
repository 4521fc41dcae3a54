package utils

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Standard progress bar descriptions
const (
	DescFetching   = "Fetching pages"
	DescRendering  = "Rendering"
	DescProcessing = "Processing"
)

// NewProgressBar creates a consistently styled progress bar writing to w.
//
// Use total -1 for unknown totals: the bar becomes a spinner that only shows
// the running count. Known totals also show iterations per second.
func NewProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts, progressbar.OptionShowIts())
	}

	return progressbar.NewOptions(total, opts...)
}

// IsTerminal reports whether f is attached to an interactive terminal
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
