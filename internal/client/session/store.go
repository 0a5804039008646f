// Package session хранит данные входа между запусками клиента
// в локальной SQLite-базе (ключ-значение).
package session

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

// Ключи сессии.
const (
	KeyToken    = "token"
	KeyUsername = "username"
	KeyBalance  = "balance"
)

// Store — персистентное хранилище сессии: get/set/clear поверх SQLite.
type Store struct {
	db *sql.DB
}

// Open открывает (при необходимости создавая) файл сессии.
func Open(path string) (*Store, error) {
	const op = "session.Open"

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, e.Wrap(op, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, e.Wrap(op, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get возвращает значение ключа; второй результат ложен, если ключа нет.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, e.Wrap("session.Get", err)
	}

	return value, true, nil
}

// Set записывает значение ключа, затирая прежнее.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return e.Wrap("session.Set", err)
	}

	return nil
}

// Clear удаляет все данные сессии (выход из аккаунта).
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM kv`); err != nil {
		return e.Wrap("session.Clear", err)
	}

	return nil
}

// Session восстанавливает сессию из хранилища. Отсутствие токена означает
// анонимную сессию, а не ошибку.
func (s *Store) Session() (domain.Session, error) {
	token, ok, err := s.Get(KeyToken)
	if err != nil {
		return domain.Anonymous(), err
	}
	if !ok || token == "" {
		return domain.Anonymous(), nil
	}

	username, _, err := s.Get(KeyUsername)
	if err != nil {
		return domain.Anonymous(), err
	}

	balance := int64(0)
	if raw, ok, err := s.Get(KeyBalance); err != nil {
		return domain.Anonymous(), err
	} else if ok {
		balance, _ = strconv.ParseInt(raw, 10, 64)
	}

	return domain.Session{
		Authenticated: true,
		Username:      username,
		Token:         token,
		Balance:       balance,
	}, nil
}

// SaveSession сохраняет данные успешного входа.
func (s *Store) SaveSession(session domain.Session) error {
	if err := s.Set(KeyToken, session.Token); err != nil {
		return err
	}
	if err := s.Set(KeyUsername, session.Username); err != nil {
		return err
	}

	return s.Set(KeyBalance, strconv.FormatInt(session.Balance, 10))
}
