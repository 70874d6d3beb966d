package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jthierer/bubblepack/pkg/dataset"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// DatasetListModel - Interactive dataset file selection
// =============================================================================

// DatasetEntry describes one candidate dataset file.
type DatasetEntry struct {
	Path    string
	Rows    int
	Sectors int
	Err     error // non-nil when the file could not be parsed
}

// DatasetListModel is the bubbletea model for interactive dataset selection.
type DatasetListModel struct {
	Entries  []DatasetEntry
	Cursor   int
	Selected *DatasetEntry
	Height   int
	Offset   int
}

// NewDatasetListModel creates a new dataset list model.
func NewDatasetListModel(entries []DatasetEntry) DatasetListModel {
	return DatasetListModel{
		Entries: entries,
		Height:  15,
	}
}

func (m DatasetListModel) Init() tea.Cmd {
	return nil
}

func (m DatasetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			entry := m.Entries[m.Cursor]
			if entry.Err != nil {
				return m, nil
			}
			m.Selected = &entry
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DatasetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Dataset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rowStr, sectorStr := "—", "—"
		if e.Err == nil {
			rowStr = fmt.Sprintf("%d", e.Rows)
			sectorStr = fmt.Sprintf("%d", e.Sectors)
		}

		rows = append(rows, []string{cursor, filepath.Base(e.Path), rowStr, sectorStr})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "File", "Rows", "Sectors").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			e := m.Entries[actualIdx]
			isCurrent := actualIdx == m.Cursor

			if e.Err != nil {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			if isCurrent {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// discoverDatasets lists JSON files in dir with their parse status.
func discoverDatasets(dir string) ([]DatasetEntry, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	entries := make([]DatasetEntry, 0, len(paths))
	for _, path := range paths {
		entry := DatasetEntry{Path: path}
		if d, err := dataset.LoadJSONFile(path); err != nil {
			entry.Err = err
		} else {
			entry.Rows = len(d)
			entry.Sectors = len(d.Sectors())
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// selectDataset runs the interactive picker and returns the chosen file.
func selectDataset() (string, error) {
	entries, err := discoverDatasets(".")
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no JSON files found in the current directory")
	}

	model := NewDatasetListModel(entries)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	final, err := program.Run()
	if err != nil {
		return "", err
	}

	result, ok := final.(DatasetListModel)
	if !ok || result.Selected == nil {
		return "", fmt.Errorf("no dataset selected")
	}
	return result.Selected.Path, nil
}
