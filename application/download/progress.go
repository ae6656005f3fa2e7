package download

import (
	"fmt"
	"io"
	"strings"
)

const barWidth = 30

// progressBar draws "Downloading [#####.....]  42%" in place using carriage returns
type progressBar struct {
	out     io.Writer
	last    int
	started bool
}

func newProgressBar(out io.Writer) *progressBar {
	return &progressBar{out: out, last: -1}
}

// Update redraws the bar when the whole percentage changes
func (b *progressBar) Update(percent float64) {
	pct := int(percent)
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if pct == b.last {
		return
	}
	b.last = pct
	b.started = true

	filled := pct * barWidth / 100
	fmt.Fprintf(b.out, "\rDownloading [%s%s] %3d%%",
		strings.Repeat("#", filled), strings.Repeat(".", barWidth-filled), pct)
}

// Finish completes the bar on success and ends the line
func (b *progressBar) Finish(ok bool) {
	if ok && b.last < 100 {
		b.Update(100)
	}
	if b.started {
		fmt.Fprintln(b.out)
	}
}
