package middleware

import (
	"net/http"

	helpers "staffhub/internal/utils/helpers"
)

// RoleAllowed — чистый предикат: входит ли роль в список разрешённых.
func RoleAllowed(role string, allowedRoles []string) bool {
	for _, allowed := range allowedRoles {
		if role == allowed {
			return true
		}
	}
	return false
}

// AnyRole пускает дальше только перечисленные роли.
// Должен стоять ПОСЛЕ JWTAuth, чтобы роль уже была в контексте.
func AnyRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				helpers.Error(w, http.StatusForbidden, "Не удалось определить роль")
				return
			}
			if !RoleAllowed(role, allowedRoles) {
				helpers.Error(w, http.StatusForbidden, "Доступ запрещён")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
