// Package ui рисует интерактивный прогресс проверки дампов поверх bubbletea.
// Модель читает события драйвера из канала и показывает спиннер, общий
// прогресс-бар и статус каждого файла.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"ember/internal/driver"
)

const defaultBarWidth = 76

var titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

type fileItem struct {
	path   string
	status driver.Status
	stage  driver.Stage
}

type progressModel struct {
	title  string
	files  []fileItem
	index  map[string]int
	events <-chan driver.Event

	spin  spinner.Model
	prog  progress.Model
	width int
	done  bool
}

type eventMsg driver.Event

type doneMsg struct{}

// NewProgressModel собирает модель для списка файлов; events закрывает
// отправитель, когда проверка закончена.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, path := range files {
		items = append(items, fileItem{path: path, status: driver.StatusQueued})
		index[path] = i
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = defaultBarWidth

	return progressModel{
		title:  title,
		files:  items,
		index:  index,
		events: events,
		spin:   spin,
		prog:   prog,
		width:  defaultBarWidth + 4,
	}
}

func listenForEvent(events <-chan driver.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, listenForEvent(m.events))
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, listenForEvent(m.events))
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 4
		if w > defaultBarWidth {
			w = defaultBarWidth
		}
		if w > 0 {
			m.prog.Width = w
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	default:
		return m, nil
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		// Файл, которого не было в исходном списке. Добавляем строку,
		// чтобы событие не потерялось.
		idx = len(m.files)
		m.files = append(m.files, fileItem{path: ev.File})
		m.index[ev.File] = idx
	}
	m.files[idx].status = ev.Status
	m.files[idx].stage = ev.Stage

	if len(m.files) == 0 {
		return nil
	}
	total := 0.0
	for _, it := range m.files {
		switch it.status {
		case driver.StatusDone, driver.StatusError:
			total += 1.0
		case driver.StatusWorking:
			total += progressFromStage(it.stage)
		}
	}
	return m.prog.SetPercent(total / float64(len(m.files)))
}

func (m progressModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n\n")

	pathWidth := m.width - 20
	for _, it := range m.files {
		label := statusLabel(it.status, it.stage)
		b.WriteString(fmt.Sprintf(" %s %s  %s\n",
			m.spin.View(),
			styleStatus(it.status).Render(fmt.Sprintf("%12s", label)),
			truncate(it.path, pathWidth),
		))
	}
	if !m.done {
		b.WriteString("\nPress q to abort\n")
	}
	return b.String()
}

// progressFromStage переводит текущую фазу файла в долю готовности
// для общего прогресс-бара.
func progressFromStage(stage driver.Stage) float64 {
	switch stage {
	case driver.StageRead:
		return 0.2
	case driver.StageDecode:
		return 0.55
	case driver.StageCheck:
		return 0.85
	default:
		return 0.0
	}
}

func statusLabel(status driver.Status, stage driver.Stage) string {
	switch status {
	case driver.StatusDone:
		return "done"
	case driver.StatusError:
		return "error"
	case driver.StatusWorking:
		return stageLabel(stage)
	default:
		return "queued"
	}
}

func stageLabel(stage driver.Stage) string {
	switch stage {
	case driver.StageRead:
		return "reading"
	case driver.StageDecode:
		return "decoding"
	case driver.StageCheck:
		return "checking"
	default:
		return "working"
	}
}

func styleStatus(status driver.Status) lipgloss.Style {
	switch status {
	case driver.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case driver.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case driver.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
