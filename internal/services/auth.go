package services

import (
	"context"
	"errors"
	"fmt"
	"staffhub/internal/apperrors"
	"staffhub/internal/logger"
	"staffhub/internal/models"
	"staffhub/internal/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

type AuthService struct {
	repo EmployeeRepo
}

func NewAuthService(repo EmployeeRepo) *AuthService {
	return &AuthService{repo: repo}
}

type EmployeeRepo interface {
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	CreateEmployee(ctx context.Context, e *models.Employee) error
	GetEmployeeByID(ctx context.Context, id int) (*models.Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error)
	GetAllEmployees(ctx context.Context) ([]*models.Employee, error)
	UpdateEmployeeFields(ctx context.Context, id int, input *models.UpdateEmployeeRequest) error
	DeleteEmployeeByID(ctx context.Context, id int) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	ResetPassword(ctx context.Context, id int, passwordHash string) error
	SetResetToken(ctx context.Context, id int, tokenHash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id int) error
	GetEmployeeByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.Employee, error)
}

// Одна и та же ошибка для "нет такой почты" и "не тот пароль",
// чтобы нельзя было перебирать аккаунты.
var errInvalidCredentials = fmt.Errorf("%w: неверная почта или пароль", apperrors.ErrUnauthenticated)

const minPasswordLen = 8

func validateSignup(e *models.Employee, password, passwordConfirm string) error {
	if strings.TrimSpace(e.FirstName) == "" {
		return fmt.Errorf("%w: укажите имя", apperrors.ErrValidation)
	}
	if !strings.Contains(e.Email, "@") {
		return fmt.Errorf("%w: укажите корректный email", apperrors.ErrValidation)
	}
	return validateNewPassword(password, passwordConfirm)
}

func validateNewPassword(password, passwordConfirm string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: пароль короче %d символов", apperrors.ErrValidation, minPasswordLen)
	}
	if password != passwordConfirm {
		return fmt.Errorf("%w: пароли не совпадают", apperrors.ErrValidation)
	}
	return nil
}

// Signup регистрирует сотрудника и сразу выдаёт токен.
// Поле подтверждения пароля никогда не сохраняется.
func (s *AuthService) Signup(
	ctx context.Context,
	input *models.Employee,
	password, passwordConfirm, jwtSecret string,
	tokenTTL time.Duration,
) (string, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	logger.Log.Info("Регистрация сотрудника (service)", zap.String("email", input.Email))

	if err := validateSignup(input, password, passwordConfirm); err != nil {
		return "", err
	}

	if exists, err := s.repo.IsEmailTaken(ctx, input.Email); exists || err != nil {
		if err != nil {
			logger.Log.Error("Ошибка проверки email (service)", zap.Error(err))
			return "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
		}
		return "", fmt.Errorf("%w: email уже зарегистрирован", apperrors.ErrValidation)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля (service)", zap.Error(err))
		return "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	input.PasswordHash = hashed
	if input.Role == "" {
		input.Role = "staff"
	}
	input.Active = true

	if err := s.repo.CreateEmployee(ctx, input); err != nil {
		logger.Log.Error("Ошибка создания сотрудника (service)", zap.Error(err))
		return "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	token, err := utils.GenerateToken(jwtSecret, input.ID, tokenTTL)
	if err != nil {
		logger.Log.Error("Ошибка генерации токена (service)", zap.Error(err))
		return "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	logger.Log.Info("Сотрудник зарегистрирован (service)", zap.Int("employee_id", input.ID))
	return token, nil
}

// Login проверяет почту и пароль, выдаёт токен.
func (s *AuthService) Login(
	ctx context.Context,
	email, password, jwtSecret string,
	tokenTTL time.Duration,
) (string, *models.Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	logger.Log.Info("Попытка входа (service)", zap.String("email", email))

	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: укажите почту и пароль", apperrors.ErrValidation)
	}

	employee, err := s.repo.GetEmployeeByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Log.Error("Ошибка поиска сотрудника (service)", zap.Error(err))
			return "", nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
		}
		logger.Log.Warn("Сотрудник не найден (service)", zap.String("email", email))
		return "", nil, errInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, employee.PasswordHash) {
		logger.Log.Warn("Неверный пароль (service)", zap.Int("employee_id", employee.ID))
		return "", nil, errInvalidCredentials
	}

	token, err := utils.GenerateToken(jwtSecret, employee.ID, tokenTTL)
	if err != nil {
		logger.Log.Error("Ошибка генерации токена (service)", zap.Error(err))
		return "", nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	logger.Log.Info("Вход выполнен (service)", zap.Int("employee_id", employee.ID))
	return token, employee, nil
}
