package usecase

import (
	"context"
	"errors"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/internal/server/auth"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Стартовый баланс нового покупателя — 5000.00 в копейках.
const defaultBalance int64 = 500_000

// AuthUseCase реализует регистрацию и вход покупателей.
type AuthUseCase struct {
	userRepo UserRepository
	hasher   auth.PasswordHasher
	tokens   auth.TokenIssuer
	logger   logger.Logger
}

func NewAuthUC(userRepo UserRepository, hasher auth.PasswordHasher, tokens auth.TokenIssuer, logger logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register создаёт нового пользователя с захэшированным паролем.
func (a *AuthUseCase) Register(ctx context.Context, req *RegisterReq) error {
	const op = "AuthUseCase.Register"

	if err := validateCredentials(req.Username, req.Password); err != nil {
		return e.Wrap(op, err)
	}

	if existing, err := a.userRepo.GetByUsername(ctx, req.Username); err == nil && existing != nil {
		return e.Wrap(op, e.ErrUsernameTaken)
	}

	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		return e.Wrap(op, err)
	}

	user := domain.NewUser(uuid.NewString(), req.Username, hash, defaultBalance)
	if err := a.userRepo.Create(ctx, user); err != nil {
		return e.Wrap(op, err)
	}

	a.logger.Infof("registered user %s", req.Username)
	return nil
}

// Login проверяет учётные данные и выпускает токен.
// Неизвестное имя и неверный пароль различаются в ответе намеренно.
func (a *AuthUseCase) Login(ctx context.Context, req *LoginReq) (*LoginRes, error) {
	const op = "AuthUseCase.Login"

	if req.Username == "" {
		return nil, e.Wrap(op, e.ErrUsernameRequired)
	}
	if req.Password == "" {
		return nil, e.Wrap(op, e.ErrPasswordRequired)
	}

	user, err := a.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(op, e.ErrUnknownUsername)
		}
		return nil, e.Wrap(op, err)
	}

	if err := a.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, e.Wrap(op, e.ErrWrongPassword)
	}

	token, err := a.tokens.Generate(user)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewLoginRes(token, user.Username, user.Balance), nil
}

func validateCredentials(username, password string) error {
	switch {
	case username == "":
		return e.ErrUsernameRequired
	case len(username) < 6:
		return e.ErrUsernameTooShort
	case password == "":
		return e.ErrPasswordRequired
	case len(password) < 6:
		return e.ErrPasswordTooShort
	}

	return nil
}
