package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/relyt871/heapkit/heap"
)

var (
	allocStyle = lipgloss.NewStyle().Background(lipgloss.Color("60")).Foreground(lipgloss.Color("230"))
	freeStyle  = lipgloss.NewStyle().Background(lipgloss.Color("22")).Foreground(lipgloss.Color("230"))
	headStyle  = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
	pauseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

const (
	minInterval     = 50 * time.Millisecond
	maxInterval     = 2 * time.Second
	defaultInterval = 400 * time.Millisecond
	intervalStep    = 50 * time.Millisecond
)

// tickMsg fires the next workload step; while running, the model re-arms it
// after every tick it processes so the interval can change between ticks. A
// tick that arrives while paused is dropped, and resuming arms a new one.
type tickMsg time.Time

type model struct {
	h    *heap.Heap
	live [][]byte
	rng  *rand.Rand
	last string

	paused   bool
	interval time.Duration
}

func newModel() model {
	ap := heap.NewSliceProvider(1 << 20)
	h, err := heap.New(ap, heap.DefaultConfig)
	if err != nil {
		panic(err)
	}
	return model{h: h, rng: rand.New(rand.NewSource(7)), interval: defaultInterval}
}

func (m model) Init() tea.Cmd {
	return tick(m.interval)
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.paused {
			return m, nil
		}
		m.step()
		return m, tick(m.interval)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "p", " ":
		m.paused = !m.paused
		if m.paused {
			m.last = "paused"
			return m, nil
		}
		m.last = "resumed"
		return m, tick(m.interval)
	case "s":
		if !m.paused {
			m.last = "step only works while paused"
			return m, nil
		}
		m.step()
		return m, nil
	case "+", "=":
		m.interval -= intervalStep
		if m.interval < minInterval {
			m.interval = minInterval
		}
		m.last = fmt.Sprintf("interval now %s", m.interval)
		return m, nil
	case "-", "_":
		m.interval += intervalStep
		if m.interval > maxInterval {
			m.interval = maxInterval
		}
		m.last = fmt.Sprintf("interval now %s", m.interval)
		return m, nil
	case "a":
		m.doAllocate()
		return m, nil
	case "f":
		m.doFree()
		return m, nil
	}
	return m, nil
}

// step performs one workload operation: allocate unless there's already
// something live and a coin flip says to free instead.
func (m *model) step() {
	if len(m.live) == 0 || m.rng.Intn(3) != 0 {
		m.doAllocate()
		return
	}
	m.doFree()
}

func (m *model) doAllocate() {
	n := m.rng.Intn(512) + 1
	p, err := m.h.Allocate(n)
	if err != nil {
		m.last = fmt.Sprintf("allocate(%d) failed: %v", n, err)
		return
	}
	m.live = append(m.live, p)
	m.last = fmt.Sprintf("allocate(%d) -> %d bytes usable", n, len(p))
}

func (m *model) doFree() {
	if len(m.live) == 0 {
		m.last = "nothing to free"
		return
	}
	idx := m.rng.Intn(len(m.live))
	victim := m.live[idx]
	m.live[idx] = m.live[len(m.live)-1]
	m.live = m.live[:len(m.live)-1]
	_ = m.h.Deallocate(victim)
	m.last = fmt.Sprintf("free(%d bytes)", len(victim))
}

func (m model) View() string {
	var b strings.Builder
	state := fmt.Sprintf("running @ %s/op", m.interval)
	if m.paused {
		state = pauseStyle.Render("paused")
	}
	b.WriteString(headStyle.Render("heapviz") + "  " + state + "\n")
	b.WriteString(helpStyle.Render("[p/space] pause  [s] step  [+/-] speed  [a] alloc  [f] free  [q] quit") + "\n\n")

	for _, blk := range m.h.Blocks() {
		style := freeStyle
		label := "free"
		if blk.Alloc {
			style = allocStyle
			label = "used"
		}
		width := int(blk.Size) / 8
		if width < 4 {
			width = 4
		}
		if width > 40 {
			width = 40
		}
		b.WriteString(style.Width(width).Render(fmt.Sprintf("%s %d", label, blk.Size)))
		b.WriteString("\n")
	}

	stats := m.h.Stats()
	b.WriteString(fmt.Sprintf("\nallocs=%d frees=%d splits=%d grows=%d\n", stats.AllocCalls, stats.FreeCalls, stats.SplitCount, stats.GrowCalls))
	if m.last != "" {
		b.WriteString(helpStyle.Render(m.last) + "\n")
	}
	return b.String()
}
