package middleware

import (
	"context"
	"net/http"
	"strings"

	"staffhub/internal/logger"
	"staffhub/internal/models"
	"staffhub/internal/reqctx"
	"staffhub/internal/utils"
	helpers "staffhub/internal/utils/helpers"

	"go.uber.org/zap"
)

type EmployeeGetter interface {
	GetEmployeeByID(ctx context.Context, id int) (*models.Employee, error)
}

// extractToken: сначала заголовок Authorization, потом кука jwt.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if c, err := r.Cookie("jwt"); err == nil {
		return c.Value
	}
	return ""
}

// JWTAuth проверяет токен, загружает сотрудника и отклоняет токены,
// выданные до последней смены пароля. Все отказы — одинаковый 401.
func JWTAuth(repo EmployeeGetter, jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			tokenString := extractToken(r)
			if tokenString == "" {
				logger.WithCtx(r.Context()).Warn("JWTAuth: отсутствует токен")
				helpers.Error(w, http.StatusUnauthorized, "Требуется авторизация")
				return
			}

			claims, err := utils.ParseToken(jwtSecret, tokenString)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("JWTAuth: неверный или просроченный токен", zap.Error(err))
				helpers.Error(w, http.StatusUnauthorized, "Неверный или просроченный токен")
				return
			}

			employee, err := repo.GetEmployeeByID(r.Context(), claims.EmployeeID)
			if err != nil {
				// Аккаунт могли удалить после выдачи токена
				logger.WithCtx(r.Context()).Warn("JWTAuth: сотрудник не найден",
					zap.Int("employee_id", claims.EmployeeID), zap.Error(err))
				helpers.Error(w, http.StatusUnauthorized, "Неверный или просроченный токен")
				return
			}

			if employee.PasswordChangedAfter(claims.IssuedAt) {
				logger.WithCtx(r.Context()).Warn("JWTAuth: токен выдан до смены пароля",
					zap.Int("employee_id", employee.ID))
				helpers.Error(w, http.StatusUnauthorized, "Пароль был изменён, войдите заново")
				return
			}

			ctx := context.WithValue(r.Context(), ContextEmployee, employee)
			ctx = context.WithValue(ctx, ContextRole, employee.Role)
			ctx = reqctx.WithEmployeeID(ctx, employee.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
