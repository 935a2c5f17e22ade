package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/cgtop/internal/cgroup"
	"github.com/rileyhilliard/cgtop/internal/tree"
)

// detailHeight is the fixed number of rows given to the detail pane.
const detailHeight = 9

// Frame carries everything one render needs. The coordinator assembles it
// from state it owns, so the renderer itself is stateless.
type Frame struct {
	State       *tree.State
	History     *tree.History
	Root        string
	IntervalSec float64
	Width       int
	Height      int
	ShowHelp    bool
	Fallback    bool
}

// Render produces one complete screen as a string, ready to be written to
// the alternate screen buffer.
func Render(f Frame) string {
	if f.Width < 20 {
		f.Width = 20
	}
	if f.Height < 6 {
		f.Height = 6
	}

	var b strings.Builder
	b.WriteString(renderHeader(f))
	b.WriteByte('\n')

	if f.ShowHelp {
		b.WriteString(renderHelp(f))
	} else {
		treeRows := f.Height - 2 - detailHeight
		if treeRows < 1 {
			treeRows = 1
		}
		f.State.SetHeight(treeRows)
		b.WriteString(renderTree(f, treeRows))
		b.WriteString(renderDetail(f))
	}

	b.WriteString(renderFooter(f))
	return b.String()
}

func renderHeader(f Frame) string {
	title := HeaderStyle.Render("cgtop")
	root := MutedStyle.Render(f.Root)
	groups := ""
	if snap := f.State.Snapshot(); snap != nil {
		groups = LabelStyle.Render(fmt.Sprintf("%d groups", snap.Len()))
	}

	left := lipgloss.JoinHorizontal(lipgloss.Top, title, " ", root, "  ", groups)
	if f.Fallback {
		badge := FallbackBadgeStyle.Render("FALLBACK DATA")
		gap := f.Width - lipgloss.Width(left) - lipgloss.Width(badge)
		if gap < 1 {
			gap = 1
		}
		return left + strings.Repeat(" ", gap) + badge
	}
	return left
}

func renderTree(f Frame, height int) string {
	rows := f.State.Rows()
	offset := f.State.ScrollOffset()

	var b strings.Builder
	for i := 0; i < height; i++ {
		idx := offset + i
		if idx < len(rows) {
			b.WriteString(renderRow(rows[idx], f.Width))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func renderRow(r tree.Row, width int) string {
	glyph := GlyphLeaf
	if r.HasChildren {
		if r.Expanded {
			glyph = GlyphExpanded
		} else {
			glyph = GlyphCollapsed
		}
	}

	indent := strings.Repeat("  ", r.Depth)
	name := r.Node.Name
	st := r.Node.Stats

	mem := FormatBytes(st.Memory.Current)
	pct := st.MemoryPercent()
	pids := FormatCount(st.Pids.Current)

	label := fmt.Sprintf("%s%s %s", indent, glyph, name)
	stats := fmt.Sprintf("%10s %8s %6s", mem, FormatPercent(pct), pids)

	gap := width - lipgloss.Width(label) - lipgloss.Width(stats) - 1
	if gap < 1 {
		gap = 1
	}

	if r.Selected {
		line := label + strings.Repeat(" ", gap) + stats
		return SelectedRowStyle.Render(padRight(line, width))
	}
	return TreeGlyphStyle.Render(indent+glyph) + " " +
		TreeNameStyle.Render(name) +
		strings.Repeat(" ", gap-1) +
		MetricStyle(pct).Render(stats)
}

func renderDetail(f Frame) string {
	n, ok := f.State.SelectedNode()
	if !ok {
		return strings.Repeat("\n", detailHeight)
	}

	sparkWidth := f.Width / 3
	if sparkWidth < 8 {
		sparkWidth = 8
	}
	barWidth := f.Width / 4
	if barWidth < 8 {
		barWidth = 8
	}

	st := n.Stats
	memPct := st.MemoryPercent()
	memHist := f.History.MemoryHistory(n.Path, sparkWidth)
	cpuHist := f.History.CPURateHistory(n.Path, sparkWidth, f.IntervalSec)
	readBps, writeBps := f.History.IORates(n.Path, f.IntervalSec)

	cpuNow := 0.0
	if len(cpuHist) > 0 {
		cpuNow = cpuHist[len(cpuHist)-1]
	}

	lines := []string{
		MutedStyle.Render(strings.Repeat("─", f.Width)),
		LabelStyle.Render("group ") + ValueStyle.Render(string(n.Path)),
		LabelStyle.Render("mem   ") +
			ValueStyle.Render(fmt.Sprintf("%s / %s (peak %s)  ",
				FormatBytes(st.Memory.Current), FormatLimit(st.Memory.Max), FormatBytes(st.Memory.Peak))) +
			ProgressBar(barWidth, memPct) + " " + RawSparkline(memHist, sparkWidth),
		LabelStyle.Render("cpu   ") +
			ValueStyle.Render(fmt.Sprintf("%s total, %s now  ",
				FormatCPUTime(st.CPU.UsageUsec), FormatPercent(cpuNow))) +
			PercentSparkline(cpuHist, sparkWidth),
		LabelStyle.Render("io    ") +
			ValueStyle.Render(fmt.Sprintf("read %s (%s)  write %s (%s)",
				FormatBytes(st.IO.Rbytes), FormatRate(readBps),
				FormatBytes(st.IO.Wbytes), FormatRate(writeBps))),
		LabelStyle.Render("pids  ") +
			ValueStyle.Render(fmt.Sprintf("%s / %s", FormatCount(st.Pids.Current), FormatCountLimit(st.Pids.Max))),
	}
	lines = append(lines, renderProcs(n.Procs, f.Width, detailHeight-len(lines))...)

	var b strings.Builder
	for i := 0; i < detailHeight; i++ {
		if i < len(lines) {
			b.WriteString(truncate(lines[i], f.Width))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// renderProcs lists the processes attached directly to the group, trimmed
// to the remaining detail rows.
func renderProcs(procs []cgroup.ProcessInfo, width, max int) []string {
	if max < 1 || len(procs) == 0 {
		return nil
	}

	lines := make([]string, 0, max)
	shown := len(procs)
	if shown > max {
		shown = max - 1
	}
	for _, p := range procs[:shown] {
		lines = append(lines, LabelStyle.Render(fmt.Sprintf("%7d ", p.PID))+
			ValueStyle.Render(truncate(p.Command, width-8)))
	}
	if rest := len(procs) - shown; rest > 0 {
		lines = append(lines, MutedStyle.Render(fmt.Sprintf("        … %d more", rest)))
	}
	return lines
}

func renderFooter(f Frame) string {
	help := "q quit  ↑/↓ move  enter/space toggle  ← collapse  p parent  r refresh  ? help"
	return FooterStyle.Render(truncate(help, f.Width))
}

func renderHelp(f Frame) string {
	bindings := [][2]string{
		{"↑ / k", "select previous group"},
		{"↓ / j", "select next group"},
		{"enter / space", "expand or collapse the selected group"},
		{"← / h", "collapse, or jump to parent if already collapsed"},
		{"p", "jump to parent group"},
		{"r", "refresh immediately"},
		{"?", "toggle this help"},
		{"q / ctrl-c", "quit"},
	}

	var b strings.Builder
	b.WriteString(HelpTitleStyle.Render("Keys"))
	b.WriteByte('\n')
	for _, kv := range bindings {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			HelpKeyStyle.Render(padRight(kv[0], 14)),
			MutedStyle.Render(kv[1])))
	}

	used := 2 + len(bindings)
	for i := used; i < f.Height-1; i++ {
		b.WriteByte('\n')
	}
	return b.String()
}

func padRight(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
