// Package tui holds the interactive terminal pieces of wanddns: the API key
// entry screen and the pre-apply countdown.
package tui

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/wanddns/internal/platform/providers"
	"nathanbeddoewebdev/wanddns/internal/services/auth"
	"nathanbeddoewebdev/wanddns/internal/tui/components"
	"nathanbeddoewebdev/wanddns/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Messages ---

type tokenSavedMsg struct{}

type tokenSaveErrorMsg struct {
	err error
}

// --- Auth login model ---

type authLoginModel struct {
	spec     providers.CredentialSpec
	store    auth.Store
	validate func(token string) error

	tokenInput textinput.Model

	width  int
	height int

	err      error
	saved    bool
	quitting bool
}

// AuthLoginResult holds the outcome of the login screen.
type AuthLoginResult struct {
	Saved bool
}

// RunAuthLogin shows a full-screen masked prompt for spec's API key and
// saves it to store. validate, if set, rejects a key before it is saved and
// its error is shown inline. A nil result means the user cancelled.
func RunAuthLogin(spec providers.CredentialSpec, store auth.Store, validate func(token string) error) (*AuthLoginResult, error) {
	m := newAuthLoginModel(spec, store, validate)

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run auth login: %w", err)
	}

	final := result.(authLoginModel)
	if final.quitting && !final.saved {
		return nil, nil
	}
	return &AuthLoginResult{Saved: final.saved}, nil
}

func newAuthLoginModel(spec providers.CredentialSpec, store auth.Store, validate func(string) error) authLoginModel {
	ti := textinput.New()
	ti.Placeholder = "paste your API key here"
	ti.Focus()
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.Width = 50

	return authLoginModel{
		spec:       spec,
		store:      store,
		validate:   validate,
		tokenInput: ti,
	}
}

func (m authLoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m authLoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tokenSavedMsg:
		m.saved = true
		return m, tea.Quit

	case tokenSaveErrorMsg:
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.tokenInput, cmd = m.tokenInput.Update(msg)
	return m, cmd
}

func (m authLoginModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		token := strings.TrimSpace(m.tokenInput.Value())
		if token == "" {
			m.err = fmt.Errorf("API key cannot be empty")
			return m, nil
		}
		if m.validate != nil {
			if err := m.validate(token); err != nil {
				m.err = err
				return m, nil
			}
		}
		m.err = nil
		return m, m.saveToken(token)
	}

	var cmd tea.Cmd
	m.tokenInput, cmd = m.tokenInput.Update(msg)
	m.err = nil
	return m, cmd
}

func (m authLoginModel) saveToken(token string) tea.Cmd {
	provider := m.spec.Provider
	store := m.store
	return func() tea.Msg {
		if err := store.SetToken(provider, token); err != nil {
			return tokenSaveErrorMsg{err: err}
		}
		return tokenSavedMsg{}
	}
}

func (m authLoginModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, m.spec.DisplayName, "auth", "login")
	footer := components.Footer(m.width,
		components.KeyBinding{Key: "enter", Desc: "save"},
		components.KeyBinding{Key: "esc", Desc: "cancel"},
	)

	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)

	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderContent(contentH), footer)
}

func (m authLoginModel) renderContent(height int) string {
	lines := []string{
		styles.Title.Render("API Key"),
		styles.MutedText.Render(m.spec.Prompt),
		"",
		m.tokenInput.View(),
	}
	if m.err != nil {
		lines = append(lines, "", styles.ErrorText.Render(m.err.Error()))
	}

	return lipgloss.Place(
		m.width, height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}
