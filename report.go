package verity

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cloudcopper/verity/domain/models"
)

type reportStyles struct {
	title      lipgloss.Style
	ok         lipgloss.Style
	modified   lipgloss.Style
	new        lipgloss.Style
	deleted    lipgloss.Style
	unreadable lipgloss.Style
	faint      lipgloss.Style
}

func newReportStyles(w io.Writer, color bool) reportStyles {
	r := lipgloss.NewRenderer(w)
	plain := r.NewStyle()
	if !color {
		return reportStyles{plain, plain, plain, plain, plain, plain, plain}
	}
	return reportStyles{
		title:      plain.Bold(true),
		ok:         plain.Foreground(lipgloss.Color("2")),
		modified:   plain.Bold(true).Foreground(lipgloss.Color("1")),
		new:        plain.Bold(true).Foreground(lipgloss.Color("3")),
		deleted:    plain.Bold(true).Foreground(lipgloss.Color("5")),
		unreadable: plain.Bold(true).Foreground(lipgloss.Color("208")),
		faint:      plain.Faint(true),
	}
}

// RenderReport writes human readable report.
// Unchanged files are never listed.
func RenderReport(w io.Writer, report *models.Report, color bool) error {
	st := newReportStyles(w, color)
	s := "\n" + st.title.Render("--- Integrity Check Report ---") + "\n"

	list := func(style lipgloss.Style, heading string, paths []string) {
		if len(paths) == 0 {
			return
		}
		s += "\n" + style.Render(heading) + "\n"
		for _, path := range paths {
			s += fmt.Sprintf("  - %v\n", path)
		}
	}

	if !report.HasChanges() {
		s += st.ok.Render("✅  All files are OK. No changes detected.") + "\n"
	} else {
		list(st.modified, "🚨 MODIFIED FILES:", report.Modified)
		list(st.new, "✨ NEW FILES DETECTED:", report.New)
		list(st.deleted, "🗑️ DELETED FILES:", report.Deleted)
		unreadable := []string{}
		for _, u := range report.Unreadable {
			unreadable = append(unreadable, fmt.Sprintf("%v (%v)", u.Path, u.Reason))
		}
		list(st.unreadable, "⚠️ UNREADABLE FILES:", unreadable)
	}

	s += "----------------------------\n"
	s += st.faint.Render(fmt.Sprintf("checked %v files (%v) in %v, run %v",
		report.Files, report.Size, report.Elapsed.Round(time.Millisecond), report.RunID)) + "\n"

	_, err := io.WriteString(w, s)
	return err
}

// RenderHistory writes runs as table, newest first
func RenderHistory(w io.Writer, runs []*models.Run, color bool) error {
	if len(runs) == 0 {
		_, err := io.WriteString(w, "no runs recorded\n")
		return err
	}

	r := lipgloss.NewRenderer(w)
	header := r.NewStyle()
	if color {
		header = header.Bold(true)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return r.NewStyle()
		}).
		Headers("RUN", "STARTED", "TARGET", "ALGO", "FILES", "SIZE", "MODIFIED", "NEW", "DELETED", "UNREADABLE")
	for _, run := range runs {
		t.Row(
			run.RunID,
			time.Unix(run.StartedAt, 0).Format(time.DateTime),
			run.Target,
			run.Algo,
			strconv.Itoa(run.Files),
			run.Size.String(),
			strconv.Itoa(run.Modified),
			strconv.Itoa(run.New),
			strconv.Itoa(run.Deleted),
			strconv.Itoa(run.Unreadable),
		)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
