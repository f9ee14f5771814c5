package services

import (
	"context"
	"encoding/json"
	"errors"
	"staffhub/internal/apperrors"
	"staffhub/internal/models"
	"staffhub/internal/utils"
	"strings"
	"testing"
	"time"
)

// Мок-репозиторий (заглушка)
type mockEmployeeRepo struct {
	employees map[int]*models.Employee
	nextID    int
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[int]*models.Employee), nextID: 1}
}

func (m *mockEmployeeRepo) byEmail(email string) *models.Employee {
	for _, e := range m.employees {
		if strings.EqualFold(e.Email, email) {
			return e
		}
	}
	return nil
}

func (m *mockEmployeeRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	return m.byEmail(email) != nil, nil
}

func (m *mockEmployeeRepo) CreateEmployee(_ context.Context, e *models.Employee) error {
	e.ID = m.nextID
	m.nextID++
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	m.employees[e.ID] = e
	return nil
}

func (m *mockEmployeeRepo) GetEmployeeByID(_ context.Context, id int) (*models.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return e, nil
}

func (m *mockEmployeeRepo) GetEmployeeByEmail(_ context.Context, email string) (*models.Employee, error) {
	if e := m.byEmail(email); e != nil {
		return e, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockEmployeeRepo) GetAllEmployees(_ context.Context) ([]*models.Employee, error) {
	var out []*models.Employee
	for _, e := range m.employees {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEmployeeRepo) UpdateEmployeeFields(_ context.Context, id int, input *models.UpdateEmployeeRequest) error {
	e, ok := m.employees[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if input.FirstName != nil {
		e.FirstName = *input.FirstName
	}
	if input.Role != nil {
		e.Role = *input.Role
	}
	return nil
}

func (m *mockEmployeeRepo) DeleteEmployeeByID(_ context.Context, id int) error {
	if _, ok := m.employees[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.employees, id)
	return nil
}

func (m *mockEmployeeRepo) UpdatePassword(_ context.Context, id int, passwordHash string) error {
	e, ok := m.employees[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	now := time.Now()
	e.PasswordHash = passwordHash
	e.PasswordChangedAt = &now
	return nil
}

func (m *mockEmployeeRepo) ResetPassword(_ context.Context, id int, passwordHash string) error {
	if err := m.UpdatePassword(context.Background(), id, passwordHash); err != nil {
		return err
	}
	e := m.employees[id]
	e.ResetTokenHash = nil
	e.ResetTokenExpiresAt = nil
	return nil
}

func (m *mockEmployeeRepo) SetResetToken(_ context.Context, id int, tokenHash string, expiresAt time.Time) error {
	e, ok := m.employees[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.ResetTokenHash = &tokenHash
	e.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (m *mockEmployeeRepo) ClearResetToken(_ context.Context, id int) error {
	e, ok := m.employees[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.ResetTokenHash = nil
	e.ResetTokenExpiresAt = nil
	return nil
}

func (m *mockEmployeeRepo) GetEmployeeByResetToken(_ context.Context, tokenHash string, now time.Time) (*models.Employee, error) {
	for _, e := range m.employees {
		if e.ResetTokenHash != nil && *e.ResetTokenHash == tokenHash &&
			e.ResetTokenExpiresAt != nil && e.ResetTokenExpiresAt.After(now) {
			return e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func seedEmployee(t *testing.T, repo *mockEmployeeRepo, email, password string) *models.Employee {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("ошибка хеширования: %v", err)
	}
	e := &models.Employee{
		FirstName:    "Анна",
		Email:        email,
		PasswordHash: hash,
		Role:         "staff",
		Active:       true,
	}
	if err := repo.CreateEmployee(context.Background(), e); err != nil {
		t.Fatalf("ошибка создания сотрудника: %v", err)
	}
	return e
}

func TestSignup(t *testing.T) {
	repo := newMockEmployeeRepo()
	service := NewAuthService(repo)

	employee := &models.Employee{FirstName: "Иван", Email: "a@b.com"}
	token, err := service.Signup(context.Background(), employee, "longenough1", "longenough1", "secret", time.Hour)
	if err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}
	if token == "" {
		t.Fatal("токен не выдан")
	}
	if employee.PasswordHash == "" || employee.PasswordHash == "longenough1" {
		t.Fatal("пароль не захеширован")
	}
	if employee.Role != "staff" {
		t.Fatalf("ожидалась роль staff, получена %q", employee.Role)
	}

	// Хеш никогда не попадает в ответ
	data, _ := json.Marshal(employee)
	if strings.Contains(string(data), employee.PasswordHash) {
		t.Fatal("хеш пароля сериализован в JSON")
	}
}

func TestSignup_PasswordMismatch(t *testing.T) {
	repo := newMockEmployeeRepo()
	service := NewAuthService(repo)

	employee := &models.Employee{FirstName: "Иван", Email: "a@b.com"}
	_, err := service.Signup(context.Background(), employee, "longenough1", "другой", "secret", time.Hour)
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("ожидалась ошибка валидации, получено: %v", err)
	}
}

func TestSignup_ShortPassword(t *testing.T) {
	repo := newMockEmployeeRepo()
	service := NewAuthService(repo)

	employee := &models.Employee{FirstName: "Иван", Email: "a@b.com"}
	_, err := service.Signup(context.Background(), employee, "short", "short", "secret", time.Hour)
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("ожидалась ошибка валидации, получено: %v", err)
	}
}

func TestSignup_EmailTaken(t *testing.T) {
	repo := newMockEmployeeRepo()
	service := NewAuthService(repo)
	seedEmployee(t, repo, "a@b.com", "longenough1")

	employee := &models.Employee{FirstName: "Иван", Email: "A@B.com"}
	_, err := service.Signup(context.Background(), employee, "longenough1", "longenough1", "secret", time.Hour)
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("ожидалась ошибка валидации, получено: %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newMockEmployeeRepo()
	service := NewAuthService(repo)
	seeded := seedEmployee(t, repo, "a@b.com", "longenough1")

	token, employee, err := service.Login(context.Background(), "a@b.com", "longenough1", "secret", time.Hour)
	if err != nil {
		t.Fatalf("ошибка логина: %v", err)
	}
	if token == "" {
		t.Fatal("токен не выдан")
	}
	if employee.ID != seeded.ID {
		t.Fatalf("ожидался сотрудник %d, получен %d", seeded.ID, employee.ID)
	}

	claims, err := utils.ParseToken("secret", token)
	if err != nil || claims.EmployeeID != seeded.ID {
		t.Fatalf("выданный токен не проходит проверку: %v", err)
	}
}

func TestLogin_GenericError(t *testing.T) {
	repo := newMockEmployeeRepo()
	service := NewAuthService(repo)
	seedEmployee(t, repo, "a@b.com", "longenough1")

	// Несуществующая почта и неверный пароль дают один и тот же ответ
	_, _, errUnknown := service.Login(context.Background(), "no@b.com", "longenough1", "secret", time.Hour)
	_, _, errWrongPass := service.Login(context.Background(), "a@b.com", "wrongpassword", "secret", time.Hour)

	if errUnknown == nil || errWrongPass == nil {
		t.Fatal("ожидались ошибки входа")
	}
	if !errors.Is(errUnknown, apperrors.ErrUnauthenticated) || !errors.Is(errWrongPass, apperrors.ErrUnauthenticated) {
		t.Fatalf("ожидался ErrUnauthenticated, получено: %v / %v", errUnknown, errWrongPass)
	}
	if errUnknown.Error() != errWrongPass.Error() {
		t.Fatalf("сообщения различаются: %q vs %q", errUnknown.Error(), errWrongPass.Error())
	}
}
