package tui

import "github.com/DRSN-tech/go-storefront/internal/domain"

// Сообщения цикла событий. Сетевые операции выполняются в командах
// bubbletea и возвращаются в Update одним из этих типов.

// catalogLoadedMsg — завершилась загрузка каталога.
type catalogLoadedMsg struct {
	err error
}

// cartLoadedMsg — завершилась загрузка корзины.
type cartLoadedMsg struct {
	err error
}

// debounceElapsedMsg — истекло окно тишины после ввода в строку поиска.
// seq сверяется с номером последнего изменения ввода: тики от устаревших
// правок игнорируются.
type debounceElapsedMsg struct {
	seq   uint64
	query string
}

// searchDoneMsg — завершился поисковый запрос поколения gen.
// applied ложен, если ответ пришёл к уже устаревшему запросу.
type searchDoneMsg struct {
	gen     uint64
	applied bool
	err     error
}

// cartMutatedMsg — завершилась мутация корзины.
type cartMutatedMsg struct {
	productID string
	err       error
}

// loginDoneMsg — завершился вход.
type loginDoneMsg struct {
	session domain.Session
	err     error
}

// registerDoneMsg — завершилась регистрация.
type registerDoneMsg struct {
	err error
}
