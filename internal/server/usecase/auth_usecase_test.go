package usecase

import (
	"context"
	"io"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
)

type fakeUserRepo struct {
	users   map[string]*domain.User
	created []*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		repo.users[u.Username] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.created = append(f.created, user)
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return e.ErrWrongPassword
	}
	return nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Generate(user *domain.User) (string, error) {
	return "token-for-" + user.ID, nil
}

func newTestAuthUC(repo *fakeUserRepo) *AuthUseCase {
	return NewAuthUC(repo, fakeHasher{}, fakeTokenIssuer{}, logger.NewSlogLoggerTo(io.Discard))
}

func TestAuthRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "empty username", username: "", password: "secret-pass", wantErr: e.ErrUsernameRequired},
		{name: "short username", username: "bob", password: "secret-pass", wantErr: e.ErrUsernameTooShort},
		{name: "empty password", username: "shopper1", password: "", wantErr: e.ErrPasswordRequired},
		{name: "short password", username: "shopper1", password: "abc", wantErr: e.ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			uc := newTestAuthUC(repo)

			err := uc.Register(context.Background(), &RegisterReq{Username: tt.username, Password: tt.password})

			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.created)
		})
	}
}

func TestAuthRegisterUsernameTaken(t *testing.T) {
	repo := newFakeUserRepo(domain.NewUser("u1", "shopper1", "hash:secret-pass", 0))
	uc := newTestAuthUC(repo)

	err := uc.Register(context.Background(), &RegisterReq{Username: "shopper1", Password: "secret-pass"})

	require.ErrorIs(t, err, e.ErrUsernameTaken)
	assert.Empty(t, repo.created)
}

func TestAuthRegisterSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestAuthUC(repo)

	err := uc.Register(context.Background(), &RegisterReq{Username: "shopper1", Password: "secret-pass"})

	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	user := repo.created[0]
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "shopper1", user.Username)
	assert.Equal(t, "hash:secret-pass", user.PasswordHash, "пароль хранится только в виде хэша")
	assert.Equal(t, defaultBalance, user.Balance)
}

func TestAuthLoginUnknownUsername(t *testing.T) {
	uc := newTestAuthUC(newFakeUserRepo())

	_, err := uc.Login(context.Background(), &LoginReq{Username: "shopper1", Password: "secret-pass"})

	require.ErrorIs(t, err, e.ErrUnknownUsername)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	uc := newTestAuthUC(newFakeUserRepo(domain.NewUser("u1", "shopper1", "hash:secret-pass", 100)))

	_, err := uc.Login(context.Background(), &LoginReq{Username: "shopper1", Password: "wrong-pass"})

	require.ErrorIs(t, err, e.ErrWrongPassword)
}

func TestAuthLoginMissingFields(t *testing.T) {
	uc := newTestAuthUC(newFakeUserRepo())

	_, err := uc.Login(context.Background(), &LoginReq{Username: "", Password: "secret-pass"})
	require.ErrorIs(t, err, e.ErrUsernameRequired)

	_, err = uc.Login(context.Background(), &LoginReq{Username: "shopper1", Password: ""})
	require.ErrorIs(t, err, e.ErrPasswordRequired)
}

func TestAuthLoginSuccess(t *testing.T) {
	uc := newTestAuthUC(newFakeUserRepo(domain.NewUser("u1", "shopper1", "hash:secret-pass", 500_000)))

	res, err := uc.Login(context.Background(), &LoginReq{Username: "shopper1", Password: "secret-pass"})

	require.NoError(t, err)
	assert.Equal(t, "token-for-u1", res.Token)
	assert.Equal(t, "shopper1", res.Username)
	assert.Equal(t, int64(500_000), res.Balance)
}
