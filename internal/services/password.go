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

type EmailSender interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

type PasswordService struct {
	repo        EmployeeRepo
	emailSender EmailSender
	appURL      string // ссылка вида {appURL}/api/v1/employees/reset-password/{token}
	tokenTTL    time.Duration
	sendTimeout time.Duration
}

func NewPasswordService(repo EmployeeRepo, emailSender EmailSender, appURL string, tokenTTL time.Duration) *PasswordService {
	return &PasswordService{
		repo:        repo,
		emailSender: emailSender,
		appURL:      strings.TrimRight(appURL, "/"),
		tokenTTL:    tokenTTL,
		sendTimeout: 15 * time.Second,
	}
}

// RequestReset генерирует одноразовый токен, сохраняет его хеш и шлёт письмо.
// Хеш должен лежать в базе до отправки, но если письмо не ушло —
// поля сброса чистятся и возвращается ошибка доставки.
func (s *PasswordService) RequestReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	logger.Log.Info("Запрос на сброс пароля (service)", zap.String("email", email))

	employee, err := s.repo.GetEmployeeByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Log.Warn("Сотрудник с такой почтой не найден (service)", zap.String("email", email))
			return fmt.Errorf("%w: сотрудник с такой почтой не найден", apperrors.ErrNotFound)
		}
		logger.Log.Error("Ошибка поиска сотрудника при сбросе (service)", zap.Error(err))
		return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	token, err := utils.NewResetToken(s.tokenTTL)
	if err != nil {
		logger.Log.Error("Ошибка генерации токена сброса (service)", zap.Error(err), zap.Int("employee_id", employee.ID))
		return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	if err := s.repo.SetResetToken(ctx, employee.ID, token.Hash, token.ExpiresAt); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	resetURL := fmt.Sprintf("%s/api/v1/employees/reset-password/%s", s.appURL, token.Plain)

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	if err := s.emailSender.SendPasswordReset(sendCtx, employee.Email, resetURL); err != nil {
		logger.Log.Error("Ошибка отправки письма для сброса пароля (service)",
			zap.Int("employee_id", employee.ID), zap.Error(err))
		// Компенсация: без письма висящий токен не нужен
		if clearErr := s.repo.ClearResetToken(context.WithoutCancel(ctx), employee.ID); clearErr != nil {
			logger.Log.Error("Не удалось очистить поля сброса после сбоя отправки (service)",
				zap.Int("employee_id", employee.ID), zap.Error(clearErr))
		}
		return fmt.Errorf("%w: попробуйте позже", apperrors.ErrDelivery)
	}

	logger.Log.Info("Письмо со ссылкой на сброс пароля отправлено (service)",
		zap.Int("employee_id", employee.ID),
		zap.Time("expires_at", token.ExpiresAt),
	)
	return nil
}

// ResetPassword подтверждает токен и устанавливает новый пароль.
// Хеш, отметка смены и очистка полей сброса — одна запись в базу.
func (s *PasswordService) ResetPassword(
	ctx context.Context,
	plainToken, newPassword, newPasswordConfirm, jwtSecret string,
	jwtTTL time.Duration,
) (string, *models.Employee, error) {
	logger.Log.Info("Попытка сброса пароля по токену (service)")

	if err := validateNewPassword(newPassword, newPasswordConfirm); err != nil {
		return "", nil, err
	}

	tokenHash := utils.HashResetToken(plainToken)
	employee, err := s.repo.GetEmployeeByResetToken(ctx, tokenHash, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Просроченный и несуществующий токен неразличимы
			logger.Log.Warn("Неверный или просроченный токен сброса (service)")
			return "", nil, apperrors.ErrResetToken
		}
		logger.Log.Error("Ошибка поиска по токену сброса (service)", zap.Error(err))
		return "", nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля (service)", zap.Error(err), zap.Int("employee_id", employee.ID))
		return "", nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	if err := s.repo.ResetPassword(ctx, employee.ID, hashed); err != nil {
		return "", nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	token, err := utils.GenerateToken(jwtSecret, employee.ID, jwtTTL)
	if err != nil {
		logger.Log.Error("Ошибка генерации токена (service)", zap.Error(err), zap.Int("employee_id", employee.ID))
		return "", nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	logger.Log.Info("Пароль успешно сброшен (service)", zap.Int("employee_id", employee.ID))
	return token, employee, nil
}

// ChangePassword меняет пароль авторизованного сотрудника по текущему паролю.
func (s *PasswordService) ChangePassword(
	ctx context.Context,
	employee *models.Employee,
	currentPassword, newPassword, newPasswordConfirm, jwtSecret string,
	jwtTTL time.Duration,
) (string, error) {
	logger.Log.Info("Смена пароля (service)", zap.Int("employee_id", employee.ID))

	if err := validateNewPassword(newPassword, newPasswordConfirm); err != nil {
		return "", err
	}

	if !utils.CheckPasswordHash(currentPassword, employee.PasswordHash) {
		logger.Log.Warn("Текущий пароль не совпадает (service)", zap.Int("employee_id", employee.ID))
		return "", fmt.Errorf("%w: текущий пароль неверен", apperrors.ErrUnauthenticated)
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля (service)", zap.Error(err), zap.Int("employee_id", employee.ID))
		return "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	if err := s.repo.UpdatePassword(ctx, employee.ID, hashed); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	token, err := utils.GenerateToken(jwtSecret, employee.ID, jwtTTL)
	if err != nil {
		logger.Log.Error("Ошибка генерации токена (service)", zap.Error(err), zap.Int("employee_id", employee.ID))
		return "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	logger.Log.Info("Пароль успешно изменён (service)", zap.Int("employee_id", employee.ID))
	return token, nil
}
