package shell

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vidbox/src/filter"
	"vidbox/src/jukebox"
	"vidbox/src/library"
	"vidbox/src/player"
)

var (
	colorFailure = lipgloss.Color("#C0392B")
	colorFlagged = lipgloss.Color("#D68910")
	colorPaused  = lipgloss.Color("#7F8C8D")
)

// printer renders the outcome of commands as lines of text. Styles are
// resolved against the output, a writer that is not a terminal receives plain
// text.
type printer struct {
	w io.Writer

	header  lipgloss.Style
	failure lipgloss.Style
	flagged lipgloss.Style
	paused  lipgloss.Style
	match   lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:       w,
		header:  r.NewStyle().Bold(true),
		failure: r.NewStyle().Foreground(colorFailure),
		flagged: r.NewStyle().Foreground(colorFlagged),
		paused:  r.NewStyle().Foreground(colorPaused),
		match:   r.NewStyle().Underline(true),
	}
}

func (p *printer) println(a ...interface{}) {
	fmt.Fprintln(p.w, a...)
}

func (p *printer) printf(format string, a ...interface{}) {
	fmt.Fprintf(p.w, format+"\n", a...)
}

func (p *printer) heading(format string, a ...interface{}) {
	p.println(p.header.Render(fmt.Sprintf(format, a...)))
}

func (p *printer) error(err error) {
	p.println(p.failure.Render(err.Error()))
}

// stopped reports a video that was stopped as a side effect.
func (p *printer) stopped(video *library.Video) {
	if video != nil {
		p.printf("Stopping video: %s", video.Title)
	}
}

// played reports the outcome of playing a video. A video that was stopped to
// make room is reported first, whether or not playing succeeded.
func (p *printer) played(res jukebox.PlayResult, err error) {
	p.stopped(res.Stopped)
	if err != nil {
		p.error(err)
		return
	}
	p.printf("Playing video: %s", res.Video.Title)
}

func (p *printer) listings(listings []jukebox.Listing) {
	for _, l := range listings {
		if l.Flag == nil {
			p.println(l.Video.String())
			continue
		}
		p.println(l.Video.String() + p.flagged.Render(fmt.Sprintf(" - FLAGGED (reason: %s)", l.Flag.Reason)))
	}
}

func (p *printer) status(status player.Status) {
	if status.Video == nil {
		p.println("No video is currently playing")
		return
	}
	line := "Currently playing: " + status.Video.String()
	if status.PlayState == player.PlayStatePaused {
		line += p.paused.Render(" - PAUSED")
	}
	p.println(line)
}

// results prints numbered search results with the matched portions of the
// title and tags highlighted.
func (p *printer) results(results []filter.SearchResult) {
	for i := range results {
		res := &results[i]
		p.printf("%d) %s (%s) [%s]", i+1, p.highlightAttr(res, "title"), res.ID, p.highlightAttr(res, "tags"))
	}
}

func (p *printer) highlightAttr(res *filter.SearchResult, attr string) string {
	value, _ := res.Attr(attr).(string)
	return p.highlight(value, res.Matches[attr])
}

func (p *printer) highlight(value string, matches []filter.SearchMatch) string {
	if len(matches) == 0 {
		return value
	}
	sorted := append([]filter.SearchMatch(nil), matches...)
	sort.Slice(sorted, func(a, b int) bool {
		return sorted[a].Start < sorted[b].Start
	})

	var sb strings.Builder
	pos := 0
	for _, m := range sorted {
		// Overlapping or stale spans are ignored.
		if m.Start < pos || m.End > len(value) || m.Start >= m.End {
			continue
		}
		sb.WriteString(value[pos:m.Start])
		sb.WriteString(p.match.Render(value[m.Start:m.End]))
		pos = m.End
	}
	sb.WriteString(value[pos:])
	return sb.String()
}
