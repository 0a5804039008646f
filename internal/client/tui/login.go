package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
)

// loginForm — поля формы входа.
type loginForm struct {
	username textinput.Model
	password textinput.Model
	focused  int
	busy     bool
}

func newLoginForm() loginForm {
	username := textinput.New()
	username.Placeholder = "Username"
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword

	return loginForm{username: username, password: password}
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.screen = screenCatalog
			m.clearStatus()
			return m, nil

		case "tab", "shift+tab", "up", "down":
			m.login.focused = (m.login.focused + 1) % 2
			if m.login.focused == 0 {
				m.login.username.Focus()
				m.login.password.Blur()
			} else {
				m.login.username.Blur()
				m.login.password.Focus()
			}
			return m, nil

		case "enter":
			return m.submitLogin()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.login.username, cmd = m.login.username.Update(msg)
	cmds = append(cmds, cmd)
	m.login.password, cmd = m.login.password.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	if m.login.busy {
		return m, nil
	}

	username := strings.TrimSpace(m.login.username.Value())
	password := m.login.password.Value()

	if username == "" {
		m.setStatus(e.ErrUsernameRequired.Error(), statusWarning)
		return m, nil
	}
	if password == "" {
		m.setStatus(e.ErrPasswordRequired.Error(), statusWarning)
		return m, nil
	}

	m.login.busy = true
	m.clearStatus()

	gw := m.authGw
	return m, func() tea.Msg {
		session, err := gw.Login(context.Background(), username, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{session: *session}
	}
}

func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false

	if msg.err != nil {
		m.logger.Warnf("login failed: %v", msg.err)
		m.setStatusFromErr(msg.err)
		return m, nil
	}

	if err := m.sessions.SaveSession(msg.session); err != nil {
		m.logger.Warnf("session save failed: %v", err)
	}

	m.session = msg.session
	m.screen = screenCatalog
	m.setStatus("Logged in successfully", statusInfo)

	// Корзина пользователя подтягивается сразу после входа
	return m, m.loadCartCmd()
}

// authGateway — операции входа и регистрации.
type authGateway interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Register(ctx context.Context, username, password string) error
}
