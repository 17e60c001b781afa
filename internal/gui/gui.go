// Package gui implements an optional terminal dashboard shown instead of
// the plain PocketBase start banner when WITH_GUI is enabled. It renders
// server status, credential tracker throughput, and active cron jobs, and
// tails the application log file if file logging is on.
package gui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shashank-sharma/backend/internal/services/credentials"
)

// GUIStatus summarizes the server's high-level health for the dashboard header.
type GUIStatus struct {
	ServerRunning  bool
	MetricsEnabled bool
}

// CronJob is the display-only projection of a scheduled job.
type CronJob struct {
	Name     string
	Schedule string
}

// ServerMetadata carries the mostly-static information shown in the dashboard.
type ServerMetadata struct {
	ServerURL     string
	ServerVersion string
	Environment   string
	EnvVariables  map[string]any
	CronJobs      []CronJob
	StartTime     time.Time
	DataDirectory string
	APIEndpoints  []string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type statsMsg credentials.TrackerStats

type tickMsg time.Time

type logTailMsg struct {
	lines  []string
	offset int64
}

type model struct {
	status    GUIStatus
	meta      ServerMetadata
	tracker   credentials.UsageTracker
	logLines  []string
	logPath   string
	logOffset int64
	stats     credentials.TrackerStats
	statsSeen bool
	started   time.Time
	spinner   spinner.Model
}

// StartGUI blocks running the dashboard until the user quits (q/ctrl+c).
// Application.Start calls it on its own goroutine after starting the server
// in a background goroutine, so ServerRunning is already true by the time
// it renders.
func StartGUI(logFilePath string, status GUIStatus, meta ServerMetadata, tracker credentials.UsageTracker) error {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = okStyle

	m := model{
		status:  status,
		meta:    meta,
		tracker: tracker,
		logPath: logFilePath,
		started: time.Now(),
		spinner: sp,
	}

	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	return tea.Batch(pollStats(m.tracker), tick(), tailLogCmd(m.logPath, 0), m.spinner.Tick)
}

func pollStats(tracker credentials.UsageTracker) tea.Cmd {
	return func() tea.Msg {
		if tracker == nil {
			return statsMsg{}
		}
		return statsMsg(tracker.GetStats())
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// tailLog returns the lines appended to path since offset, and the new offset.
func tailLog(path string, offset int64) ([]string, int64) {
	if path == "" {
		return nil, offset
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, offset
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, offset
	}
	if info.Size() < offset {
		offset = 0 // file was rotated/truncated
	}

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, offset
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	return lines, info.Size()
}

func tailLogCmd(path string, offset int64) tea.Cmd {
	return func() tea.Msg {
		lines, newOffset := tailLog(path, offset)
		return logTailMsg{lines: lines, offset: newOffset}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case statsMsg:
		m.stats = credentials.TrackerStats(msg)
		m.statsSeen = true
	case tickMsg:
		return m, tea.Batch(pollStats(m.tracker), tick(), tailLogCmd(m.logPath, m.logOffset))
	case logTailMsg:
		m.logOffset = msg.offset
		m.logLines = append(m.logLines, msg.lines...)
		if len(m.logLines) > 10 {
			m.logLines = m.logLines[len(m.logLines)-10:]
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	fmt.Fprintln(&b, headerStyle.Render("credential usage telemetry server"))
	fmt.Fprintf(&b, "%s %s    %s %s\n",
		labelStyle.Render("url:"), m.meta.ServerURL,
		labelStyle.Render("env:"), m.meta.Environment)

	status := errStyle.Render("stopped")
	if m.status.ServerRunning {
		status = okStyle.Render("running")
	}
	fmt.Fprintf(&b, "%s %s    %s %s\n\n",
		labelStyle.Render("status:"), status,
		labelStyle.Render("uptime:"), time.Since(m.started).Round(time.Second))

	var statsBox string
	if !m.statsSeen {
		statsBox = fmt.Sprintf("%s waiting for first tracker poll...", m.spinner.View())
	} else {
		statsBox = fmt.Sprintf(
			"buffered: %d\nflushed:  %d\nerrors:   %d\noverflows: %d",
			m.stats.EventsBuffered, m.stats.EventsFlushed, m.stats.Errors, m.stats.BufferOverflows,
		)
	}
	b.WriteString(boxStyle.Render(statsBox))
	b.WriteString("\n\n")

	if len(m.meta.CronJobs) > 0 {
		fmt.Fprintln(&b, headerStyle.Render("cron jobs"))
		for _, job := range m.meta.CronJobs {
			fmt.Fprintf(&b, "  %-28s %s\n", job.Name, job.Schedule)
		}
		b.WriteString("\n")
	}

	if len(m.logLines) > 0 {
		fmt.Fprintln(&b, headerStyle.Render("log tail"))
		for _, line := range m.logLines {
			fmt.Fprintln(&b, "  "+line)
		}
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("press q to quit"))
	return b.String()
}
