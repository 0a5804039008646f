package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/go-storefront/internal/server/auth"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// contextKey — собственный тип ключей контекста во избежание коллизий.
type contextKey string

const (
	// UserIDKey — ключ контекста с ID аутентифицированного пользователя.
	UserIDKey contextKey = "user_id"
	// UsernameKey — ключ контекста с именем аутентифицированного пользователя.
	UsernameKey contextKey = "username"
)

const missingTokenMessage = "Protected route, Oauth2 Bearer token not found in header"

// UserIDFromCtx возвращает ID пользователя из контекста запроса.
// Пустая строка, если запрос не прошёл аутентификацию.
func UserIDFromCtx(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// RequireAuth проверяет Bearer-токен и кладёт данные пользователя в контекст.
// Запросы без валидного токена получают 401 с телом {success:false, message}.
func RequireAuth(validator auth.TokenValidator, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w, missingTokenMessage)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeUnauthorized(w, missingTokenMessage)
				return
			}

			claims, err := validator.Validate(parts[1])
			if err != nil {
				log.Debugf("token rejected: %v", err)
				writeUnauthorized(w, "Protected route, token expired or invalid")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UsernameKey, claims.Username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}

// RequestLogger логирует каждый запрос: метод, путь, статус, длительность.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			duration := time.Since(start).Milliseconds()
			if status >= http.StatusInternalServerError {
				log.Warnf("%s %s -> %d (%dms)", r.Method, r.URL.Path, status, duration)
			} else {
				log.Infof("%s %s -> %d (%dms)", r.Method, r.URL.Path, status, duration)
			}
		})
	}
}

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_http_requests_total",
		Help: "HTTP requests handled, by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "HTTP request latency, by method and route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Metrics собирает счётчики и гистограммы запросов для Prometheus.
// Метки строятся по шаблону маршрута chi, а не по сырому пути,
// чтобы кардинальность метрик не росла с числом товаров.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = r.URL.Path
		}
		requestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(ww.Status())).Inc()
		requestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}
