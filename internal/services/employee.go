package services

import (
	"context"
	"fmt"
	"staffhub/internal/apperrors"
	"staffhub/internal/logger"
	"staffhub/internal/models"
	"staffhub/internal/utils"
	"strings"

	"go.uber.org/zap"
)

type EmployeeService struct {
	repo EmployeeRepo
}

func NewEmployeeService(repo EmployeeRepo) *EmployeeService {
	return &EmployeeService{repo: repo}
}

func (s *EmployeeService) GetAll(ctx context.Context) ([]*models.Employee, error) {
	return s.repo.GetAllEmployees(ctx)
}

func (s *EmployeeService) GetByID(ctx context.Context, id int) (*models.Employee, error) {
	logger.Log.Debug("Получение сотрудника по ID (service)", zap.Int("employee_id", id))
	return s.repo.GetEmployeeByID(ctx, id)
}

// Create — создание записи администратором; пароль хешируется до сохранения.
func (s *EmployeeService) Create(ctx context.Context, input *models.Employee, password, passwordConfirm string) error {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	logger.Log.Info("Создание сотрудника (service)", zap.String("email", input.Email))

	if err := validateSignup(input, password, passwordConfirm); err != nil {
		return err
	}

	if exists, err := s.repo.IsEmailTaken(ctx, input.Email); exists || err != nil {
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
		}
		return fmt.Errorf("%w: email уже зарегистрирован", apperrors.ErrValidation)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	input.PasswordHash = hashed
	if input.Role == "" {
		input.Role = "staff"
	}
	input.Active = true

	if err := s.repo.CreateEmployee(ctx, input); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	return nil
}

func (s *EmployeeService) Update(ctx context.Context, id int, input *models.UpdateEmployeeRequest) (*models.Employee, error) {
	logger.Log.Info("Обновление сотрудника (service)", zap.Int("employee_id", id))
	if err := s.repo.UpdateEmployeeFields(ctx, id, input); err != nil {
		return nil, err
	}
	return s.repo.GetEmployeeByID(ctx, id)
}

func (s *EmployeeService) Delete(ctx context.Context, id int) error {
	logger.Log.Info("Удаление сотрудника (service)", zap.Int("employee_id", id))
	return s.repo.DeleteEmployeeByID(ctx, id)
}
