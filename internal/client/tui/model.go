package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/DRSN-tech/go-storefront/internal/cfg"
	"github.com/DRSN-tech/go-storefront/internal/client/session"
	"github.com/DRSN-tech/go-storefront/internal/client/usecase"
	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
)

type screen int

const (
	screenCatalog screen = iota
	screenLogin
	screenRegister
)

// focusArea — какая часть экрана каталога принимает клавиши.
type focusArea int

const (
	focusSearch focusArea = iota
	focusProducts
	focusCart
)

type statusKind int

const (
	statusNone statusKind = iota
	statusInfo
	statusWarning
	statusError
)

const (
	msgLoginToAdd    = "Login to add an item to the Cart"
	msgDuplicateItem = "Item already in cart. Use the cart sidebar to update quantity or remove item."
	msgUnreachable   = "Service unreachable. Check that the backend is running and reachable."
)

// Model — корневая модель терминального клиента.
type Model struct {
	cfg      *cfg.ClientConfig
	logger   logger.Logger
	catalog  *usecase.CatalogStore
	search   *usecase.SearchController
	cart     *usecase.CartCoordinator
	authGw   authGateway
	sessions *session.Store

	session domain.Session

	screen screen
	focus  focusArea

	searchInput  textinput.Model
	inputSeq     uint64 // номер последней правки строки поиска
	searchActive bool   // показывается результат поиска, а не полный каталог

	cursor     int // выбранный товар
	cartCursor int // выбранная строка корзины

	status     string
	statusKind statusKind

	width  int
	height int

	login    loginForm
	register registerForm
}

func NewModel(
	cfg *cfg.ClientConfig,
	catalog *usecase.CatalogStore,
	search *usecase.SearchController,
	cart *usecase.CartCoordinator,
	authGw authGateway,
	sessions *session.Store,
	startSession domain.Session,
	logger logger.Logger,
) Model {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search for items/categories"
	searchInput.Prompt = "🔍 "
	searchInput.Focus()

	return Model{
		cfg:         cfg,
		logger:      logger,
		catalog:     catalog,
		search:      search,
		cart:        cart,
		authGw:      authGw,
		sessions:    sessions,
		session:     startSession,
		screen:      screenCatalog,
		focus:       focusSearch,
		searchInput: searchInput,
		login:       newLoginForm(),
		register:    newRegisterForm(),
	}
}

// Init запускает загрузку каталога и корзины одновременно:
// ни одна не ждёт другую.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCatalogCmd(), m.loadCartCmd(), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case catalogLoadedMsg:
		if msg.err != nil {
			m.logger.Warnf("catalog load failed: %v", msg.err)
			m.setStatusFromErr(msg.err)
		}
		m.clampCursors()
		return m, nil

	case cartLoadedMsg:
		if msg.err != nil {
			m.logger.Warnf("cart load failed: %v", msg.err)
			if errors.Is(msg.err, e.ErrAuthRejected) {
				// Токен протух: сбрасываем сессию и отправляем на вход
				return m.forceLogout()
			}
			m.setStatusFromErr(msg.err)
		}
		m.clampCursors()
		return m, nil

	case debounceElapsedMsg:
		// Тик от устаревшей правки: с тех пор пользователь печатал ещё
		if msg.seq != m.inputSeq {
			return m, nil
		}
		gen := m.search.Issue()
		return m, m.runSearchCmd(gen, msg.query)

	case searchDoneMsg:
		if msg.err != nil {
			m.logger.Warnf("search failed: %v", msg.err)
			m.setStatusFromErr(msg.err)
			return m, nil
		}
		if msg.applied {
			m.searchActive = true
			m.cursor = 0
		}
		return m, nil

	case cartMutatedMsg:
		if msg.err != nil {
			m.logger.Warnf("cart mutation failed, product=%s: %v", msg.productID, msg.err)
			if errors.Is(msg.err, e.ErrAuthRejected) {
				return m.forceLogout()
			}
			m.setStatusFromErr(msg.err)
			return m, nil
		}
		m.clearStatus()
		m.clampCursors()
		return m, nil

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case registerDoneMsg:
		return m.handleRegisterDone(msg)
	}

	switch m.screen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenRegister:
		return m.updateRegister(msg)
	default:
		return m.updateCatalog(msg)
	}
}

// updateCatalog обрабатывает ввод на экране каталога.
func (m Model) updateCatalog(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateSearchInput(msg)
	}

	switch keyMsg.String() {
	case "tab":
		m.focus = (m.focus + 1) % 3
		if m.focus == focusSearch {
			m.searchInput.Focus()
		} else {
			m.searchInput.Blur()
		}
		return m, nil

	case "ctrl+l":
		if !m.session.Authenticated {
			m.screen = screenLogin
			m.login = newLoginForm()
			m.clearStatus()
		}
		return m, nil

	case "ctrl+r":
		if !m.session.Authenticated {
			m.screen = screenRegister
			m.register = newRegisterForm()
			m.clearStatus()
		}
		return m, nil

	case "ctrl+o":
		if m.session.Authenticated {
			return m.forceLogout()
		}
		return m, nil
	}

	switch m.focus {
	case focusProducts:
		return m.updateProductList(keyMsg)
	case focusCart:
		return m.updateCartSidebar(keyMsg)
	default:
		return m.updateSearchInput(msg)
	}
}

// updateSearchInput передаёт ввод строке поиска и взводит окно тишины.
func (m Model) updateSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.searchInput.Value()

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if m.searchInput.Value() == before {
		return m, cmd
	}

	// Каждая правка сдвигает окно: ищем только после паузы в вводе
	m.inputSeq++
	seq, query := m.inputSeq, m.searchInput.Value()
	debounce := tea.Tick(m.cfg.DebounceWindow, func(time.Time) tea.Msg {
		return debounceElapsedMsg{seq: seq, query: query}
	})

	return m, tea.Batch(cmd, debounce)
}

func (m Model) updateProductList(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	products := m.visibleProducts()

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(products)-1 {
			m.cursor++
		}
	case "enter", " ":
		if m.cursor < len(products) {
			return m.addToCart(products[m.cursor].ID)
		}
	}

	return m, nil
}

func (m Model) updateCartSidebar(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.cartItems()

	switch keyMsg.String() {
	case "up", "k":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case "down", "j":
		if m.cartCursor < len(items)-1 {
			m.cartCursor++
		}
	case "+", "=":
		if m.cartCursor < len(items) {
			item := items[m.cartCursor]
			return m.setQuantity(item.Product.ID, item.Quantity+1)
		}
	case "-", "_":
		if m.cartCursor < len(items) {
			// Количество 0 удаляет строку на сервере
			item := items[m.cartCursor]
			return m.setQuantity(item.Product.ID, item.Quantity-1)
		}
	}

	return m, nil
}

// addToCart — добавление из каталога: повторное добавление отклоняется.
func (m Model) addToCart(productID string) (tea.Model, tea.Cmd) {
	if !m.session.Authenticated {
		m.setStatus(msgLoginToAdd, statusWarning)
		return m, nil
	}
	if m.cart.Contains(productID) {
		m.setStatus(msgDuplicateItem, statusWarning)
		return m, nil
	}

	return m, m.mutateCartCmd(productID, 1, usecase.UpsertPolicy{PreventDuplicate: true})
}

// setQuantity — степпер корзины: количество перезаписывается намеренно.
func (m Model) setQuantity(productID string, quantity int) (tea.Model, tea.Cmd) {
	return m, m.mutateCartCmd(productID, quantity, usecase.UpsertPolicy{PreventDuplicate: false})
}

// forceLogout сбрасывает сессию и локальную корзину.
func (m Model) forceLogout() (tea.Model, tea.Cmd) {
	if err := m.sessions.Clear(); err != nil {
		m.logger.Warnf("session clear failed: %v", err)
	}
	m.session = domain.Anonymous()
	m.cart.Clear()
	m.cartCursor = 0
	m.setStatus("Logged out", statusInfo)
	return m, nil
}

// visibleProducts — отображаемое подмножество каталога: результат
// последнего применённого поиска либо полный каталог.
func (m Model) visibleProducts() []domain.Product {
	if m.searchActive {
		return m.search.Results()
	}
	return m.catalog.Products()
}

// cartItems — строки корзины, сведённые с каталогом.
func (m Model) cartItems() []domain.CartLineItem {
	return usecase.Reconcile(m.cart.Entries(), m.catalog.Products())
}

func (m *Model) clampCursors() {
	if n := len(m.visibleProducts()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
	if n := len(m.cartItems()); m.cartCursor >= n && n > 0 {
		m.cartCursor = n - 1
	} else if n == 0 {
		m.cartCursor = 0
	}
}

func (m *Model) setStatus(text string, kind statusKind) {
	m.status = text
	m.statusKind = kind
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusKind = statusNone
}

// setStatusFromErr превращает ошибку в строку статуса: текст сервера
// показывается дословно, транспортный сбой — одной общей фразой.
func (m *Model) setStatusFromErr(err error) {
	switch {
	case errors.Is(err, e.ErrServiceUnreachable):
		m.setStatus(msgUnreachable, statusError)
	case errors.Is(err, e.ErrUnauthenticated):
		m.setStatus(msgLoginToAdd, statusWarning)
	case errors.Is(err, e.ErrDuplicateItem):
		m.setStatus(msgDuplicateItem, statusWarning)
	default:
		m.setStatus(innermost(err).Error(), statusError)
	}
}

// innermost достаёт самую внутреннюю ошибку цепочки — текст без префиксов.
func innermost(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

// COMMANDS

func (m Model) loadCatalogCmd() tea.Cmd {
	catalog := m.catalog
	return func() tea.Msg {
		return catalogLoadedMsg{err: catalog.Load(context.Background())}
	}
}

func (m Model) loadCartCmd() tea.Cmd {
	cart, sess := m.cart, m.session
	return func() tea.Msg {
		return cartLoadedMsg{err: cart.Load(context.Background(), sess)}
	}
}

func (m Model) runSearchCmd(gen uint64, query string) tea.Cmd {
	search := m.search
	return func() tea.Msg {
		applied, err := search.Run(context.Background(), gen, query)
		return searchDoneMsg{gen: gen, applied: applied, err: err}
	}
}

func (m Model) mutateCartCmd(productID string, quantity int, policy usecase.UpsertPolicy) tea.Cmd {
	cart, sess := m.cart, m.session
	return func() tea.Msg {
		_, err := cart.AddOrUpdate(context.Background(), sess, productID, quantity, policy)
		return cartMutatedMsg{productID: productID, err: err}
	}
}
