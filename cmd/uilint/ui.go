package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"uilint/internal/core/app"
	"uilint/internal/engine/model"
	"uilint/internal/engine/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
	severity    model.Severity
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type uiModel struct {
	list       list.Model
	result     app.Result
	lastUpdate time.Time
}

type updateMsg struct {
	result app.Result
}

func (m uiModel) Init() tea.Cmd {
	return nil
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.result = msg.result
		m.lastUpdate = time.Now()
		m.list.SetItems(findingItems(msg.result))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m uiModel) View() string {
	batch := m.result.Batch
	header := titleStyle("uilint")

	var verdict string
	if batch.Verdict == report.VerdictFail {
		verdict = errorStyle.Render("FAIL")
	} else {
		verdict = successStyle.Render("PASS")
	}

	status := statusStyle.Render(fmt.Sprintf(
		"%d files  %d findings (E%d/W%d/I%d)  last run %s",
		len(batch.Reports),
		batch.FindingCount(),
		batch.Totals[model.SeverityError],
		batch.Totals[model.SeverityWarning],
		batch.Totals[model.SeverityInfo],
		m.lastUpdate.Format("15:04:05"),
	))

	return docStyle.Render(header + "  " + verdict + "\n" + status + "\n\n" + m.list.View())
}

func findingItems(res app.Result) []list.Item {
	items := []list.Item{}
	for _, rep := range res.Batch.Reports {
		for _, f := range rep.Findings {
			title := f.RuleID
			switch f.Severity {
			case model.SeverityError:
				title = errorStyle.Render(f.RuleID)
			case model.SeverityWarning:
				title = warningStyle.Render(f.RuleID)
			}
			items = append(items, item{
				title:    title,
				desc:     fmt.Sprintf("%s:%d:%d  %s", f.Location.File, f.Location.Line, f.Location.Column, f.Message),
				severity: f.Severity,
			})
		}
	}
	for _, pf := range res.ParseFailures {
		items = append(items, item{
			title:    errorStyle.Render("parse-error"),
			desc:     fmt.Sprintf("%s  %v", pf.Path, pf.Err),
			severity: model.SeverityError,
		})
	}
	return items
}

func runUI(ctx context.Context, a *app.App, initial app.Result) int {
	l := list.New(findingItems(initial), list.NewDefaultDelegate(), 0, 0)
	l.Title = "Findings"
	l.SetShowStatusBar(false)

	m := uiModel{list: l, result: initial, lastUpdate: time.Now()}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	go func() {
		err := a.Watch(ctx, func(r app.Result) {
			p.Send(updateMsg{result: r})
		})
		if err != nil && ctx.Err() == nil {
			slog.Error("watch failed", "error", err)
		}
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		slog.Error("ui failed", "error", err)
		return exitFatalError
	}
	return exitPass
}
