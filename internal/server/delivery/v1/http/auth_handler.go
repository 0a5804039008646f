package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/go-storefront/internal/server/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
)

type AuthHandler struct {
	authUsecase usecase.AuthUC
	logger      logger.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, logger: logger}
}

type credentialsJSON struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponseJSON struct {
	Success bool `json:"success"`
}

type loginResponseJSON struct {
	Success  bool    `json:"success"`
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
}

// register создаёт нового пользователя.
func (a *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var body credentialsJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.logger.Warnf("bad register body: %s", err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	if err := a.authUsecase.Register(r.Context(), &usecase.RegisterReq{
		Username: body.Username,
		Password: body.Password,
	}); err != nil {
		a.logger.Warnf("register failed, username=%s: %s", body.Username, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, registerResponseJSON{Success: true})
}

// login аутентифицирует пользователя и выдаёт токен с данными сессии.
func (a *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var body credentialsJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.logger.Warnf("bad login body: %s", err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	res, err := a.authUsecase.Login(r.Context(), &usecase.LoginReq{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		a.logger.Warnf("login failed, username=%s: %s", body.Username, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, loginResponseJSON{
		Success:  true,
		Token:    res.Token,
		Username: res.Username,
		Balance:  centsToUnits(res.Balance),
	})
}
