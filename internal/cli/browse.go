package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/icview/pkg/errors"
	"github.com/matzehuels/icview/pkg/icdata"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse layers and their classified shapes interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer ws.Close()

			w := cmd.OutOrStdout()
			if len(ws.data.Layers()) == 0 {
				printWarning(w, "No layers matched the layer map")
				return nil
			}

			p := tea.NewProgram(NewLayerBrowserModel(ws.data), tea.WithContext(cmd.Context()), tea.WithOutput(w))
			finalModel, err := p.Run()
			if err != nil {
				return err
			}

			fm, ok := finalModel.(LayerBrowserModel)
			if !ok || fm.Selected == nil {
				printDetail(w, "No selection made")
				return nil
			}
			shapes, err := fm.Selected.Shapes()
			if err != nil {
				return err
			}
			fmt.Fprintln(w, StyleTitle.Render(fm.Selected.String()))
			printBuckets(w, shapes)
			return nil
		},
	}
}

// =============================================================================
// LayerBrowserModel - Interactive layer browser
// =============================================================================

// LayerBrowserModel is the bubbletea model for browsing classified layers.
//
// Keys: up/down select a layer, pgup/pgdown scroll the cell table, r
// re-classifies, s toggles label skipping, enter selects and quits.
type LayerBrowserModel struct {
	Data     *icdata.LayoutData
	Cursor   int
	Selected *icdata.LayerData
	Height   int
	Offset   int

	rows   [][]string
	cached bool
	err    error
}

// NewLayerBrowserModel creates a browser over d with the first layer loaded.
func NewLayerBrowserModel(d *icdata.LayoutData) LayerBrowserModel {
	m := LayerBrowserModel{Data: d, Height: 15}
	return m.load(false)
}

func (m LayerBrowserModel) current() *icdata.LayerData {
	layers := m.Data.Layers()
	if m.Cursor < 0 || m.Cursor >= len(layers) {
		return nil
	}
	return layers[m.Cursor]
}

// load classifies the current layer, or re-classifies it when refresh is
// set, and rebuilds the table rows.
func (m LayerBrowserModel) load(refresh bool) LayerBrowserModel {
	m.rows, m.err, m.Offset = nil, nil, 0
	l := m.current()
	if l == nil {
		return m
	}

	m.cached = l.Cached() && !refresh
	var (
		shapes map[string]*icdata.CellShapes
		err    error
	)
	if refresh {
		shapes, err = l.Refresh()
	} else {
		shapes, err = l.Shapes()
	}
	if err != nil {
		m.err = err
		return m
	}

	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cs := shapes[name]
		m.rows = append(m.rows, []string{
			name,
			strconv.Itoa(len(cs.Polygons)),
			strconv.Itoa(len(cs.Boxes)),
			strconv.Itoa(len(cs.Paths)),
			strconv.Itoa(len(cs.Labels)),
			strconv.Itoa(len(cs.Pins)),
			strconv.Itoa(len(cs.Nets)),
		})
	}
	return m
}

func (m LayerBrowserModel) Init() tea.Cmd {
	return nil
}

func (m LayerBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m = m.load(false)
			}
		case "down", "j":
			if m.Cursor < len(m.Data.Layers())-1 {
				m.Cursor++
				m = m.load(false)
			}
		case "pgdown":
			if m.Offset+m.Height < len(m.rows) {
				m.Offset += m.Height
			}
		case "pgup":
			m.Offset -= m.Height
			if m.Offset < 0 {
				m.Offset = 0
			}
		case "r":
			m = m.load(true)
		case "s":
			if l := m.current(); l != nil {
				l.SetSkipLabels(!l.SkipLabels())
				m = m.load(false)
			}
		case "enter":
			m.Selected = m.current()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m LayerBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layers"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ layer  pgup/pgdn cells  r refresh  s labels  ⏎ select  q quit"))
	b.WriteString("\n\n")

	var list strings.Builder
	for i, l := range m.Data.Layers() {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		list.WriteString(style.Render(cursor + l.String()))
		list.WriteString("\n")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", m.detailView()))
	b.WriteString("\n")
	return b.String()
}

func (m LayerBrowserModel) detailView() string {
	l := m.current()
	if l == nil {
		return ""
	}
	if m.err != nil {
		return listErrorStyle.Render(errors.UserMessage(m.err))
	}

	end := m.Offset + m.Height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	t := newTable("Cell", "Poly", "Box", "Path", "Label", "Pin", "Net").Rows(m.rows[m.Offset:end]...)

	labels := "labels kept"
	if l.SkipLabels() {
		labels = "labels skipped"
	}
	status := iconFresh
	if m.cached {
		status = iconCached
	}
	footer := listDimStyle.Render(fmt.Sprintf("  %s · %s · %s · cells %d-%d of %d",
		l.Purpose(), labels, status, min(m.Offset+1, end), end, len(m.rows)))

	return t.Render() + "\n" + footer
}
