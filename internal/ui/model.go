package ui

import (
	"errors"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jview/internal/clipboard"
	"github.com/oakwood-commons/jview/internal/config"
	"github.com/oakwood-commons/jview/internal/document"
	"github.com/oakwood-commons/jview/internal/formatter"
	"github.com/oakwood-commons/jview/internal/label"
	"github.com/oakwood-commons/jview/internal/search"
)

const (
	// DefaultStatusTimeout is how long transient status messages stay up.
	DefaultStatusTimeout = 3 * time.Second

	doubleClickInterval = 400 * time.Millisecond
	wheelStep           = 3
	defaultWidth        = 80
	defaultHeight       = 24
	searchCharLimit     = 511
)

// Options configure a new Model.
type Options struct {
	ASCII         bool
	Mouse         bool
	NoColor       bool
	ColorScheme   string
	StatusTimeout time.Duration
	Keys          map[string][]string
	Schemes       map[string]config.SchemeConfig

	// SearchTerm starts the session with a key search.
	SearchTerm string
	// Level, when set, starts the session expanded to that level.
	Level *int
}

type promptMode int

const (
	promptNone promptMode = iota
	promptKeys
	promptValues
)

type statusExpiredMsg struct{ id int }

// Model is the interactive tree view.
type Model struct {
	Forest   document.Forest
	Sizes    label.Sizes
	Visible  []*document.Node
	Selected int
	Offset   int
	Search   *search.State

	Width  int
	Height int

	ASCII         bool
	Mouse         bool
	Keys          KeyMap
	Themes        []Theme
	SchemeIndex   int
	HelpVisible   bool
	StatusTimeout time.Duration

	prompt     textinput.Model
	promptMode promptMode
	matchSet   map[*document.Node]struct{}

	status   string
	statusID int

	lastClickRow     int
	lastClickAt      time.Time
	lastClickToggled bool
	now              func() time.Time

	quitting bool
}

// NewModel builds the view over forest. sizes supplies the per-input byte
// counts shown on root rows.
func NewModel(forest document.Forest, sizes label.Sizes, opts Options) (*Model, error) {
	keys := DefaultKeyMap()
	if err := keys.ApplyOverrides(opts.Keys); err != nil {
		return nil, err
	}

	prompt := textinput.New()
	prompt.CharLimit = searchCharLimit

	m := &Model{
		Forest:        forest,
		Sizes:         sizes,
		Width:         defaultWidth,
		Height:        defaultHeight,
		ASCII:         opts.ASCII,
		Mouse:         opts.Mouse,
		Keys:          keys,
		Themes:        BuildThemes(opts.Schemes, opts.NoColor),
		SchemeIndex:   schemeIndex(opts.ColorScheme),
		StatusTimeout: opts.StatusTimeout,
		prompt:        prompt,
		lastClickRow:  -1,
		now:           time.Now,
	}
	if m.StatusTimeout <= 0 {
		m.StatusTimeout = DefaultStatusTimeout
	}

	if opts.Level != nil {
		m.Forest.ExpandToLevel(*opts.Level)
	}
	m.refresh()
	if opts.SearchTerm != "" {
		m.runSearch(opts.SearchTerm, true, false)
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Current returns the selected node, or nil when nothing is visible.
func (m *Model) Current() *document.Node {
	if m.Selected < 0 || m.Selected >= len(m.Visible) {
		return nil
	}
	return m.Visible[m.Selected]
}

// Theme returns the active colour scheme.
func (m *Model) Theme() Theme {
	return m.Themes[m.SchemeIndex]
}

// Status returns the transient status message, if one is showing.
func (m *Model) Status() string {
	return m.status
}

// Prompting reports whether the search prompt is open.
func (m *Model) Prompting() bool {
	return m.promptMode != promptNone
}

// Quitting reports whether the user asked to quit.
func (m *Model) Quitting() bool {
	return m.quitting
}

func (m *Model) displayRows() int {
	return max(1, m.Height-1)
}

// refresh re-flattens the forest and keeps the selection and scroll offset
// in range.
func (m *Model) refresh() {
	m.Visible = m.Forest.Visible()
	m.clamp()
}

func (m *Model) clamp() {
	if m.Selected >= len(m.Visible) {
		m.Selected = len(m.Visible) - 1
	}
	if m.Selected < 0 {
		m.Selected = 0
	}
	rows := m.displayRows()
	if m.Selected < m.Offset {
		m.Offset = m.Selected
	}
	if m.Selected >= m.Offset+rows {
		m.Offset = m.Selected - rows + 1
	}
	if m.Offset < 0 {
		m.Offset = 0
	}
}

func (m *Model) selectNode(n *document.Node) {
	if i := document.IndexOf(m.Visible, n); i >= 0 {
		m.Selected = i
	}
	m.clamp()
}

// reveal expands the path to n and selects it.
func (m *Model) reveal(n *document.Node) {
	document.ExpandPath(n)
	m.refresh()
	m.selectNode(n)
}

func (m *Model) setSearch(s *search.State) {
	m.Search = s
	m.matchSet = nil
	if s.Empty() {
		return
	}
	m.matchSet = make(map[*document.Node]struct{}, len(s.Matches))
	for _, n := range s.Matches {
		m.matchSet[n] = struct{}{}
	}
}

func (m *Model) isMatch(n *document.Node) bool {
	_, ok := m.matchSet[n]
	return ok
}

// runSearch replaces the search state and jumps to the first match.
func (m *Model) runSearch(term string, keys, values bool) {
	m.setSearch(search.New(m.Forest, term, keys, values))
	if first := m.Search.Current(); first != nil {
		m.reveal(first)
	}
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusID++
	m.status = msg
	id := m.statusID
	return tea.Tick(m.StatusTimeout, func(time.Time) tea.Msg {
		return statusExpiredMsg{id: id}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.prompt.SetWidth(max(1, m.Width-len(m.prompt.Prompt)-1))
		m.clamp()
	case statusExpiredMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
	case tea.KeyPressMsg:
		cmd = m.handleKey(msg)
	case tea.MouseClickMsg:
		if m.Mouse {
			cmd = m.handleClick(msg.Mouse())
		}
	case tea.MouseWheelMsg:
		if m.Mouse && !m.Prompting() {
			m.handleWheel(msg.Mouse())
		}
	default:
		if m.Prompting() {
			m.prompt, cmd = m.prompt.Update(msg)
		}
	}
	return m, cmd
}

func (m *Model) openPrompt(mode promptMode) tea.Cmd {
	m.promptMode = mode
	if mode == promptValues {
		m.prompt.Prompt = "Search value: "
	} else {
		m.prompt.Prompt = "Search key: "
	}
	m.prompt.Reset()
	return m.prompt.Focus()
}

func (m *Model) closePrompt() {
	m.promptMode = promptNone
	m.prompt.Blur()
}

func (m *Model) handlePromptKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		mode := m.promptMode
		term := strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		m.runSearch(term, mode == promptKeys, mode == promptValues)
		return nil
	case "esc":
		m.closePrompt()
		return nil
	case "ctrl+c":
		m.quitting = true
		return tea.Quit
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.Prompting() {
		return m.handlePromptKey(msg)
	}
	if m.HelpVisible {
		m.HelpVisible = false
		return nil
	}
	if len(m.Visible) == 0 {
		if key.Matches(msg, m.Keys.Quit) {
			m.quitting = true
			return tea.Quit
		}
		return nil
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		m.expandToLevel(int(s[0] - '0'))
		return nil
	}

	switch {
	case key.Matches(msg, m.Keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.Selected+1 < len(m.Visible) {
			m.Selected++
		}
	case key.Matches(msg, m.Keys.PageUp):
		m.Selected = max(0, m.Selected-m.pageSize())
	case key.Matches(msg, m.Keys.PageDown):
		m.Selected = min(len(m.Visible)-1, m.Selected+m.pageSize())
	case key.Matches(msg, m.Keys.Home):
		m.Selected = 0
	case key.Matches(msg, m.Keys.End):
		m.Selected = len(m.Visible) - 1
	case key.Matches(msg, m.Keys.Collapse):
		m.collapseOrParent()
	case key.Matches(msg, m.Keys.Expand):
		if n := m.Current(); n.HasChildren() {
			n.Expanded = true
			m.refresh()
		}
	case key.Matches(msg, m.Keys.ExpandAll):
		sel := m.Current()
		m.Forest.ExpandAll()
		m.refresh()
		m.selectNode(sel)
	case key.Matches(msg, m.Keys.CollapseAll):
		sel := m.Current()
		m.Forest.CollapseAll(true)
		m.reveal(sel)
	case key.Matches(msg, m.Keys.SearchKey):
		return m.openPrompt(promptKeys)
	case key.Matches(msg, m.Keys.SearchValue):
		return m.openPrompt(promptValues)
	case key.Matches(msg, m.Keys.NextMatch):
		if m.Search.Active() && !m.Search.Empty() {
			m.reveal(m.Search.Next(m.Current()))
		}
	case key.Matches(msg, m.Keys.PrevMatch):
		if m.Search.Active() && !m.Search.Empty() {
			m.reveal(m.Search.Prev(m.Current()))
		}
	case key.Matches(msg, m.Keys.ClearSearch):
		m.setSearch(nil)
	case key.Matches(msg, m.Keys.CycleScheme):
		m.SchemeIndex = (m.SchemeIndex + 1) % len(m.Themes)
		return m.setStatus(m.Theme().StatusMessage())
	case key.Matches(msg, m.Keys.Copy):
		return m.copySelection()
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = true
	case key.Matches(msg, m.Keys.Quit):
		m.quitting = true
		return tea.Quit
	}
	m.clamp()
	return nil
}

func (m *Model) pageSize() int {
	return max(1, m.Height-2)
}

func (m *Model) collapseOrParent() {
	n := m.Current()
	if n.Expanded && n.HasChildren() {
		n.Expanded = false
		m.refresh()
		return
	}
	if n.Parent != nil {
		m.selectNode(n.Parent)
	}
}

// expandToLevel applies a level to every root, keeps the selection open
// when it sits within the new level, and falls back to the first row when
// it is hidden.
func (m *Model) expandToLevel(level int) {
	sel := m.Current()
	m.Forest.ExpandToLevel(level)
	if level == 0 || sel.Depth() <= level {
		document.ExpandPath(sel)
	}
	m.refresh()
	m.Selected = 0
	m.selectNode(sel)
}

func (m *Model) copySelection() tea.Cmd {
	n := m.Current()
	text := formatter.Pretty(n.Value, formatter.DefaultIndent)
	err := CopyToClipboard(text)
	msg := clipboard.StatusMessage(getenvFn)
	switch {
	case errors.Is(err, clipboard.ErrUnsupported):
	case errors.Is(err, clipboard.ErrPayloadTooLarge):
		msg = "Selection too large for clipboard"
	case errors.Is(err, clipboard.ErrNoTerminal):
		msg = "Clipboard not available: no terminal"
	case err != nil:
		msg = "Copy failed: " + err.Error()
	}
	return m.setStatus(msg)
}

func (m *Model) toggle(n *document.Node) bool {
	if !n.HasChildren() {
		return false
	}
	n.Expanded = !n.Expanded
	m.refresh()
	return true
}

func (m *Model) handleClick(ev tea.Mouse) tea.Cmd {
	if ev.Button != tea.MouseLeft || m.Prompting() {
		return nil
	}
	if m.HelpVisible {
		m.HelpVisible = false
		return nil
	}

	rows := m.displayRows()
	if ev.Y == rows {
		_, hints := m.statusLine()
		for _, h := range hints {
			if ev.X >= h.start && ev.X < h.end {
				return m.handleKey(keyPressFor(h.key))
			}
		}
		return nil
	}
	if ev.Y < 0 || ev.Y >= rows {
		return nil
	}
	idx := m.Offset + ev.Y
	if idx >= len(m.Visible) {
		return nil
	}

	now := m.now()
	double := idx == m.lastClickRow && now.Sub(m.lastClickAt) <= doubleClickInterval
	m.Selected = idx
	n := m.Visible[idx]

	if double {
		if !m.lastClickToggled {
			m.toggle(n)
		}
		m.lastClickRow = -1
		m.lastClickToggled = false
		m.clamp()
		return nil
	}

	toggled := false
	if ev.X < label.Width(label.Prefix(n, m.ASCII))+2 {
		toggled = m.toggle(n)
	}
	m.lastClickRow = idx
	m.lastClickAt = now
	m.lastClickToggled = toggled
	m.clamp()
	return nil
}

func (m *Model) handleWheel(ev tea.Mouse) {
	switch ev.Button {
	case tea.MouseWheelUp:
		m.Selected = max(0, m.Selected-wheelStep)
	case tea.MouseWheelDown:
		m.Selected = min(len(m.Visible)-1, m.Selected+wheelStep)
	}
	m.clamp()
}

// keyPressFor builds the key message a status bar hint stands for.
func keyPressFor(k string) tea.KeyPressMsg {
	if msgs, ok := keyMsgsFromToken("<" + k + ">"); ok && len(msgs) == 1 {
		return msgs[0]
	}
	r := []rune(k)
	if len(r) == 1 {
		return tea.KeyPressMsg{Code: r[0], Text: k}
	}
	return tea.KeyPressMsg{}
}
