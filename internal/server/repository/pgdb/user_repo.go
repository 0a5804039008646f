package pgdb

import (
	"context"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/internal/server/repository/pgdb/converter"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// UserRepo реализует репозиторий пользователей поверх PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
	conv converter.UserConverter
}

func NewUserRepo(pool *pgxpool.Pool, conv converter.UserConverter) *UserRepo {
	return &UserRepo{pool: pool, conv: conv}
}

// Create вставляет нового пользователя; дубликат имени превращается в e.ErrUsernameTaken.
func (u *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, balance)
		VALUES ($1, $2, $3, $4)
	`

	model := u.conv.ToModel(user)
	if _, err := u.pool.Exec(ctx, query,
		model.ID, model.Username, model.PasswordHash, model.Balance,
	); err != nil {
		if postgresDuplicate(err) {
			return e.ErrUsernameTaken
		}

		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetByUsername возвращает пользователя по имени; pgx.ErrNoRows, если такого нет.
func (u *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, balance, created_at
		FROM users
		WHERE username = $1
	`

	var model converter.UserModel
	err := u.pool.QueryRow(ctx, query, username).Scan(
		&model.ID, &model.Username, &model.PasswordHash, &model.Balance, &model.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return u.conv.ToEntity(&model), nil
}
