package domain

// Session — состояние аутентификации клиента.
// Создаётся при логине, очищается при логауте; ядро клиента её только читает.
type Session struct {
	Authenticated bool
	Username      string
	Token         string
	Balance       int64 // баланс в копейках, для шапки интерфейса
}

// Anonymous возвращает пустую неаутентифицированную сессию.
func Anonymous() Session {
	return Session{}
}
