package middleware

import (
	"context"
	"staffhub/internal/models"
)

type ctxKey string

const (
	ContextEmployee ctxKey = "employee"
	ContextRole     ctxKey = "role"
)

func EmployeeFromContext(ctx context.Context) (*models.Employee, bool) {
	e, ok := ctx.Value(ContextEmployee).(*models.Employee)
	return e, ok
}

func RoleFromContext(ctx context.Context) (string, bool) {
	r, ok := ctx.Value(ContextRole).(string)
	return r, ok
}
