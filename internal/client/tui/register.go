package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DRSN-tech/go-storefront/pkg/e"
)

// registerForm — поля формы регистрации.
type registerForm struct {
	username textinput.Model
	password textinput.Model
	confirm  textinput.Model
	focused  int
	busy     bool
}

func newRegisterForm() registerForm {
	username := textinput.New()
	username.Placeholder = "Username"
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "Confirm password"
	confirm.EchoMode = textinput.EchoPassword

	return registerForm{username: username, password: password, confirm: confirm}
}

func (f *registerForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.username, &f.password, &f.confirm}
}

func (m Model) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.screen = screenCatalog
			m.clearStatus()
			return m, nil

		case "tab", "down":
			m.moveRegisterFocus(1)
			return m, nil

		case "shift+tab", "up":
			m.moveRegisterFocus(-1)
			return m, nil

		case "enter":
			return m.submitRegister()
		}
	}

	var cmds []tea.Cmd
	for _, input := range m.register.inputs() {
		var cmd tea.Cmd
		*input, cmd = input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) moveRegisterFocus(delta int) {
	inputs := m.register.inputs()
	m.register.focused = (m.register.focused + delta + len(inputs)) % len(inputs)
	for i, input := range inputs {
		if i == m.register.focused {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

// submitRegister проверяет поля локально и отправляет регистрацию.
// Правила те же, что и на сервере: имя и пароль не короче 6 символов.
func (m Model) submitRegister() (tea.Model, tea.Cmd) {
	if m.register.busy {
		return m, nil
	}

	username := strings.TrimSpace(m.register.username.Value())
	password := m.register.password.Value()
	confirm := m.register.confirm.Value()

	switch {
	case username == "":
		m.setStatus(e.ErrUsernameRequired.Error(), statusWarning)
		return m, nil
	case len(username) < 6:
		m.setStatus(e.ErrUsernameTooShort.Error(), statusWarning)
		return m, nil
	case password == "":
		m.setStatus(e.ErrPasswordRequired.Error(), statusWarning)
		return m, nil
	case len(password) < 6:
		m.setStatus(e.ErrPasswordTooShort.Error(), statusWarning)
		return m, nil
	case password != confirm:
		m.setStatus(e.ErrPasswordMismatch.Error(), statusWarning)
		return m, nil
	}

	m.register.busy = true
	m.clearStatus()

	gw := m.authGw
	return m, func() tea.Msg {
		return registerDoneMsg{err: gw.Register(context.Background(), username, password)}
	}
}

func (m Model) handleRegisterDone(msg registerDoneMsg) (tea.Model, tea.Cmd) {
	m.register.busy = false

	if msg.err != nil {
		m.logger.Warnf("register failed: %v", msg.err)
		m.setStatusFromErr(msg.err)
		return m, nil
	}

	// После регистрации пользователь входит сам
	m.screen = screenLogin
	m.login = newLoginForm()
	m.setStatus("Registered successfully. Please log in.", statusInfo)

	return m, nil
}
