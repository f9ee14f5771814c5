package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"staffhub/internal/apperrors"
	"staffhub/internal/models"
	"staffhub/internal/utils"
	"testing"
	"time"
)

const testSecret = "test-secret"

type stubEmployeeGetter struct {
	employee *models.Employee
}

func (s *stubEmployeeGetter) GetEmployeeByID(_ context.Context, id int) (*models.Employee, error) {
	if s.employee == nil || s.employee.ID != id {
		return nil, apperrors.ErrNotFound
	}
	return s.employee, nil
}

func gateHandler(getter EmployeeGetter, onSuccess func(r *http.Request)) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if onSuccess != nil {
			onSuccess(r)
		}
		w.WriteHeader(http.StatusOK)
	})
	return JWTAuth(getter, testSecret)(next)
}

func TestJWTAuth_NoToken(t *testing.T) {
	handler := gateHandler(&stubEmployeeGetter{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("ожидался 401, получен %d", rr.Code)
	}
}

func TestJWTAuth_BearerHeader(t *testing.T) {
	employee := &models.Employee{ID: 1, Email: "a@b.com", Role: "staff"}
	token, _ := utils.GenerateToken(testSecret, 1, time.Hour)

	var gotEmployee *models.Employee
	handler := gateHandler(&stubEmployeeGetter{employee: employee}, func(r *http.Request) {
		gotEmployee, _ = EmployeeFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d: %s", rr.Code, rr.Body.String())
	}
	if gotEmployee == nil || gotEmployee.ID != 1 {
		t.Fatal("сотрудник не попал в контекст запроса")
	}
}

func TestJWTAuth_CookieFallback(t *testing.T) {
	employee := &models.Employee{ID: 2, Email: "a@b.com", Role: "staff"}
	token, _ := utils.GenerateToken(testSecret, 2, time.Hour)

	handler := gateHandler(&stubEmployeeGetter{employee: employee}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("ожидался 200 по куке, получен %d", rr.Code)
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	handler := gateHandler(&stubEmployeeGetter{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	req.Header.Set("Authorization", "Bearer не.токен.вовсе")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("ожидался 401, получен %d", rr.Code)
	}
}

func TestJWTAuth_AccountDeleted(t *testing.T) {
	// Токен валиден, но сотрудника уже нет
	token, _ := utils.GenerateToken(testSecret, 99, time.Hour)
	handler := gateHandler(&stubEmployeeGetter{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("ожидался 401, получен %d", rr.Code)
	}
}

func TestJWTAuth_StaleTokenAfterPasswordChange(t *testing.T) {
	// Пароль сменили ПОСЛЕ выдачи токена — токен больше не годится,
	// хотя подпись верна и срок не вышел.
	oldToken, _ := utils.GenerateToken(testSecret, 3, time.Hour)

	changed := time.Now().Add(time.Hour)
	employee := &models.Employee{ID: 3, Email: "a@b.com", Role: "staff", PasswordChangedAt: &changed}
	handler := gateHandler(&stubEmployeeGetter{employee: employee}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	req.Header.Set("Authorization", "Bearer "+oldToken)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("устаревший токен прошёл: %d", rr.Code)
	}

	// Токен, выданный после смены пароля, проходит
	past := time.Now().Add(-2 * time.Second)
	employee.PasswordChangedAt = &past
	freshToken, _ := utils.GenerateToken(testSecret, 3, time.Hour)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	req.Header.Set("Authorization", "Bearer "+freshToken)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("свежий токен не прошёл: %d", rr.Code)
	}
}
