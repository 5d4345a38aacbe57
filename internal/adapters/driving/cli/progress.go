package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
	"golang.org/x/time/rate"
)

const progressRedraw = 200 * time.Millisecond

// downloadProgress returns a callback that draws a progress bar on w.
// It returns nil when w is not a terminal or quiet output was requested;
// the fetch stage still logs the downloaded size.
func downloadProgress(w io.Writer, quiet bool) func(done, total int64) {
	if quiet || !isTerminal(w) {
		return nil
	}

	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	redraw := rate.Sometimes{Interval: progressRedraw}

	return func(done, total int64) {
		finished := total > 0 && done >= total
		if !finished {
			draw := false
			redraw.Do(func() { draw = true })
			if !draw {
				return
			}
		}
		fmt.Fprint(w, "\r"+renderProgress(bar, done, total))
		if finished {
			fmt.Fprintln(w)
		}
	}
}

// renderProgress formats one progress line. total is -1 when unknown.
func renderProgress(bar progress.Model, done, total int64) string {
	if total <= 0 {
		return fmt.Sprintf("Downloaded %s", humanize.IBytes(uint64(done)))
	}
	pct := float64(done) / float64(total)
	if pct > 1 {
		pct = 1
	}
	return fmt.Sprintf("%s %s / %s", bar.ViewAs(pct),
		humanize.IBytes(uint64(done)), humanize.IBytes(uint64(total)))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
