package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// DeviceListModel - Interactive device selection
// =============================================================================

// DeviceListModel is the bubbletea model for picking a catalog device.
// Dynamic presets are only selectable once --qubits is set (or, for
// fully_connected, always).
type DeviceListModel struct {
	Devices  []deviceRow
	Cursor   int
	Selected *deviceRow
	Height   int
	Offset   int
}

// NewDeviceListModel creates a new device list model.
func NewDeviceListModel(devices []deviceRow) DeviceListModel {
	return DeviceListModel{
		Devices: devices,
		Height:  15,
	}
}

func (m DeviceListModel) Init() tea.Cmd {
	return nil
}

func (m DeviceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Devices)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Devices) == 0 {
				return m, nil
			}
			d := m.Devices[m.Cursor]
			m.Selected = &d
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m DeviceListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Device"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Devices))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		d := m.Devices[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, d.Name, d.Size, d.Description})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Device", "Size", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Devices) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if m.Devices[idx].Dynamic || col == 3 {
				base = base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Devices))))

	return b.String()
}
