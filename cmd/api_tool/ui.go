package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rackforge/hexdominion/internal/engine"
	"golang.org/x/term"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	accentColor  = lipgloss.Color("#10B981")
	warnColor    = lipgloss.Color("#F59E0B")
	errColor     = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#94A3B8")

	baseStyle = lipgloss.NewStyle()

	bannerStyle = baseStyle.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 2)

	headerStyle = baseStyle.Foreground(primaryColor).Bold(true)
	mutedStyle  = baseStyle.Foreground(mutedColor)
	accentStyle = baseStyle.Foreground(accentColor).Bold(true)
	warnStyle   = baseStyle.Foreground(warnColor)
	errorStyle  = baseStyle.Foreground(errColor).Bold(true)
)

// terminalWidth checks stdout, then stderr, then falls back to a
// fixed default if neither is a terminal (a replay piped to a file,
// for instance).
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if w, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// renderBanner shows the replayed seed, the step reached, and how far
// into the log that was relative to the full recording.
func renderBanner(g *engine.Game, doc *replayDocument, reached, failedAt int) string {
	title := headerStyle.Render(fmt.Sprintf("hexdominion replay — seed %s", g.Seed))
	lines := []string{title, ""}
	lines = append(lines, fmt.Sprintf("Age %s, round %s — %s",
		humanize.Ordinal(g.Age), humanize.Ordinal(g.Round), mutedStyle.Render(g.Mode.String())))
	lines = append(lines, fmt.Sprintf("Replayed %s of %s recorded actions",
		accentStyle.Render(humanize.Comma(int64(reached))), humanize.Comma(int64(len(doc.Actions)))))
	if g.Ended() {
		lines = append(lines, accentStyle.Render("game has ended"))
	}
	if failedAt < reached {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("replay stopped early at action %s", humanize.Ordinal(failedAt+1))))
	}
	width := terminalWidth() - 6
	if width < 20 {
		width = 20
	}
	return bannerStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// renderScoreboard renders each human player's score and rank, the
// latter via Rankings()'s "1 plus count of strictly-higher scores"
// definition (spec §6 rankings).
func renderScoreboard(g *engine.Game) string {
	scores := g.Scores()
	ranks := g.Rankings()

	var b strings.Builder
	b.WriteString(headerStyle.Render("Scoreboard") + "\n")
	for i, s := range scores {
		rank := "-"
		if i < len(ranks) {
			rank = humanize.Ordinal(ranks[i])
		}
		b.WriteString(fmt.Sprintf("  player %-3d %-6s %s\n", s.Player, rank, accentStyle.Render(fmt.Sprintf("%.1f VP", s.Points))))
	}
	return b.String()
}

// renderLog renders the public action log, most recent entries last,
// keeping only the 20 most recent entries so a long replay doesn't
// scroll its summary off screen.
func renderLog(g *engine.Game) string {
	const maxLines = 20
	start := 0
	if len(g.Log) > maxLines {
		start = len(g.Log) - maxLines
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Log") + "\n")
	if start > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  ... %s earlier entries omitted\n", humanize.Comma(int64(start)))))
	}
	for _, entry := range g.Log[start:] {
		b.WriteString(fmt.Sprintf("  [%d] %s\n", entry.Player, entry.Text))
	}
	return b.String()
}
