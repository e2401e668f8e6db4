// ABOUTME: Interactive TUI wizard for configuring the RSSHub connection.
// ABOUTME: 2-step bubbletea model collecting the instance URL and data directory.
package tui

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harper/rsshub-mcp/internal/config"
)

// Step represents the current wizard step.
type Step int

const (
	StepInstance Step = iota
	StepDataDir
	StepDone
)

// SetupModel is the bubbletea model for the setup wizard.
type SetupModel struct {
	step     Step
	inputs   [2]textinput.Model
	errMsg   string
	quitting bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// defaultDataDir returns the default XDG data directory for rsshub-mcp.
func defaultDataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "rsshub-mcp")
}

// NewSetupModel creates a new setup wizard model, pre-filling with existing config values.
func NewSetupModel(instance, dataDir string) SetupModel {
	instanceInput := textinput.New()
	instanceInput.Placeholder = config.DefaultInstance
	instanceInput.Focus()
	instanceInput.Width = 50
	if instance != "" {
		instanceInput.SetValue(instance)
	}

	dataDirInput := textinput.New()
	dataDirInput.Placeholder = defaultDataDir()
	dataDirInput.Width = 50
	if dataDir != "" {
		dataDirInput.SetValue(dataDir)
	}

	return SetupModel{
		step:   StepInstance,
		inputs: [2]textinput.Model{instanceInput, dataDirInput},
	}
}

// Init implements tea.Model.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			return m, tea.Quit
		}

		if m.step == StepInstance || m.step == StepDataDir {
			return m.updateInput(msg)
		}
	default:
		// Forward other messages (e.g. cursor blink) to the active input
		if m.step == StepInstance || m.step == StepDataDir {
			idx := int(m.step)
			var cmd tea.Cmd
			m.inputs[idx], cmd = m.inputs[idx].Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		return m.handleEnter()
	}

	m.errMsg = ""
	idx := int(m.step)
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m SetupModel) handleEnter() (tea.Model, tea.Cmd) {
	idx := int(m.step)

	if m.step == StepInstance {
		val := strings.TrimSpace(m.inputs[0].Value())
		if val == "" {
			val = config.DefaultInstance
		}
		val = strings.TrimRight(val, "/")
		if !validInstanceURL(val) {
			m.errMsg = "enter an absolute http(s) URL, e.g. https://rsshub.example.net"
			return m, nil
		}
		m.inputs[0].SetValue(val)
	}

	if m.step == StepDataDir {
		val := strings.TrimSpace(m.inputs[1].Value())
		if val == "" {
			m.inputs[1].SetValue(defaultDataDir())
		}
	}

	m.errMsg = ""
	m.inputs[idx].Blur()

	switch m.step {
	case StepInstance:
		m.step = StepDataDir
		m.inputs[1].Focus()
		return m, textinput.Blink
	case StepDataDir:
		m.step = StepDone
		return m, tea.Quit
	}

	return m, nil
}

func validInstanceURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https")
}

// View implements tea.Model.
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   RSSHUB-MCP"))
	b.WriteString(titleStyle.Render(" Setup"))
	b.WriteString("\n\n")
	b.WriteString("Configure the RSSHub instance and data directory.\n\n")

	switch m.step {
	case StepInstance:
		b.WriteString(stepStyle.Render("Step 1 of 2: RSSHub Instance URL"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render(fmt.Sprintf("(press Enter for the public instance: %s)", config.DefaultInstance)))
		b.WriteString("\n")
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n")
		if m.errMsg != "" {
			b.WriteString(errStyle.Render(m.errMsg))
			b.WriteString("\n")
		}

	case StepDataDir:
		b.WriteString(fmt.Sprintf("  Instance: %s\n\n", m.inputs[0].Value()))
		b.WriteString(stepStyle.Render("Step 2 of 2: Data Directory"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render(fmt.Sprintf("(press Enter for default: %s)", defaultDataDir())))
		b.WriteString("\n")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n")

	case StepDone:
		b.WriteString(successStyle.Render("Setup complete!"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  Instance:        %s\n", m.inputs[0].Value()))
		b.WriteString(fmt.Sprintf("  Data directory:  %s\n", m.inputs[1].Value()))
		b.WriteString("\n")
	}

	return b.String()
}

// Result returns the entered values.
func (m SetupModel) Result() (instance, dataDir string) {
	return m.inputs[0].Value(), m.inputs[1].Value()
}

// ShouldSave returns true if the wizard completed and the user did not cancel.
func (m SetupModel) ShouldSave() bool {
	return m.step == StepDone && !m.quitting
}
