package domain

import "time"

// User описывает зарегистрированного покупателя (серверная сторона).
type User struct {
	ID           string // uuid
	Username     string
	PasswordHash string
	Balance      int64 // баланс в копейках
	CreatedAt    time.Time
}

func NewUser(id, username, passwordHash string, balance int64) *User {
	return &User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		Balance:      balance,
	}
}
