package services

import (
	"context"
	"errors"
	"staffhub/internal/apperrors"
	"staffhub/internal/utils"
	"strings"
	"testing"
	"time"
)

type mockEmailSender struct {
	fail bool
	to   string
	url  string
}

func (m *mockEmailSender) SendPasswordReset(_ context.Context, to, resetURL string) error {
	if m.fail {
		return errors.New("smtp: connection refused")
	}
	m.to = to
	m.url = resetURL
	return nil
}

func newPasswordService(repo EmployeeRepo, sender EmailSender) *PasswordService {
	return NewPasswordService(repo, sender, "http://localhost:8080", 10*time.Minute)
}

// Достаём открытый токен из ссылки в письме — как это сделал бы пользователь.
func tokenFromURL(t *testing.T, url string) string {
	t.Helper()
	i := strings.LastIndex(url, "/")
	if i < 0 || i == len(url)-1 {
		t.Fatalf("не удалось извлечь токен из ссылки: %q", url)
	}
	return url[i+1:]
}

func TestRequestReset_Success(t *testing.T) {
	repo := newMockEmployeeRepo()
	sender := &mockEmailSender{}
	svc := newPasswordService(repo, sender)
	seeded := seedEmployee(t, repo, "a@b.com", "longenough1")

	if err := svc.RequestReset(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("ошибка запроса сброса: %v", err)
	}

	if seeded.ResetTokenHash == nil || seeded.ResetTokenExpiresAt == nil {
		t.Fatal("поля сброса не заполнены")
	}
	if sender.to != "a@b.com" {
		t.Fatalf("письмо ушло не туда: %q", sender.to)
	}

	plain := tokenFromURL(t, sender.url)
	if utils.HashResetToken(plain) != *seeded.ResetTokenHash {
		t.Fatal("в базе лежит не хеш отправленного токена")
	}
	if plain == *seeded.ResetTokenHash {
		t.Fatal("в базе лежит открытый токен")
	}
}

func TestRequestReset_UnknownEmail(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newPasswordService(repo, &mockEmailSender{})

	err := svc.RequestReset(context.Background(), "no@b.com")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("ожидался ErrNotFound, получено: %v", err)
	}
}

func TestRequestReset_SendFailureClearsFields(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newPasswordService(repo, &mockEmailSender{fail: true})
	seeded := seedEmployee(t, repo, "a@b.com", "longenough1")

	err := svc.RequestReset(context.Background(), "a@b.com")
	if !errors.Is(err, apperrors.ErrDelivery) {
		t.Fatalf("ожидался ErrDelivery, получено: %v", err)
	}

	// Компенсация: после сбоя отправки записи о сбросе быть не должно
	if seeded.ResetTokenHash != nil || seeded.ResetTokenExpiresAt != nil {
		t.Fatal("поля сброса не очищены после сбоя отправки")
	}
}

func TestResetPassword_ConsumedOnce(t *testing.T) {
	repo := newMockEmployeeRepo()
	sender := &mockEmailSender{}
	svc := newPasswordService(repo, sender)
	seeded := seedEmployee(t, repo, "a@b.com", "longenough1")

	if err := svc.RequestReset(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("ошибка запроса сброса: %v", err)
	}
	plain := tokenFromURL(t, sender.url)

	token, employee, err := svc.ResetPassword(context.Background(), plain, "newlongenough1", "newlongenough1", "secret", time.Hour)
	if err != nil {
		t.Fatalf("ошибка сброса пароля: %v", err)
	}
	if token == "" || employee.ID != seeded.ID {
		t.Fatal("после сброса не выдан токен")
	}
	if !utils.CheckPasswordHash("newlongenough1", seeded.PasswordHash) {
		t.Fatal("новый пароль не сохранён")
	}
	if seeded.PasswordChangedAt == nil {
		t.Fatal("password_changed_at не обновлён")
	}
	if seeded.ResetTokenHash != nil || seeded.ResetTokenExpiresAt != nil {
		t.Fatal("поля сброса не очищены после успеха")
	}

	// Повторное использование того же токена — отказ
	_, _, err = svc.ResetPassword(context.Background(), plain, "anotherlong1", "anotherlong1", "secret", time.Hour)
	if !errors.Is(err, apperrors.ErrResetToken) {
		t.Fatalf("ожидался ErrResetToken при повторном использовании, получено: %v", err)
	}
}

func TestResetPassword_ExpiredIndistinguishableFromMissing(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newPasswordService(repo, &mockEmailSender{})
	seeded := seedEmployee(t, repo, "a@b.com", "longenough1")

	// Просроченный токен
	expiredToken, err := utils.NewResetToken(-time.Minute)
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}
	if err := repo.SetResetToken(context.Background(), seeded.ID, expiredToken.Hash, expiredToken.ExpiresAt); err != nil {
		t.Fatalf("ошибка сохранения токена: %v", err)
	}

	_, _, errExpired := svc.ResetPassword(context.Background(), expiredToken.Plain, "newlongenough1", "newlongenough1", "secret", time.Hour)
	_, _, errMissing := svc.ResetPassword(context.Background(), "несуществующий токен", "newlongenough1", "newlongenough1", "secret", time.Hour)

	if !errors.Is(errExpired, apperrors.ErrResetToken) || !errors.Is(errMissing, apperrors.ErrResetToken) {
		t.Fatalf("ожидался ErrResetToken, получено: %v / %v", errExpired, errMissing)
	}
	if errExpired.Error() != errMissing.Error() {
		t.Fatalf("просроченный и несуществующий токены различимы: %q vs %q", errExpired.Error(), errMissing.Error())
	}
}

func TestChangePassword(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newPasswordService(repo, &mockEmailSender{})
	seeded := seedEmployee(t, repo, "a@b.com", "longenough1")

	// Неверный текущий пароль
	_, err := svc.ChangePassword(context.Background(), seeded, "wrongcurrent", "newlongenough1", "newlongenough1", "secret", time.Hour)
	if !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("ожидался ErrUnauthenticated, получено: %v", err)
	}

	// Верный текущий пароль
	token, err := svc.ChangePassword(context.Background(), seeded, "longenough1", "newlongenough1", "newlongenough1", "secret", time.Hour)
	if err != nil {
		t.Fatalf("ошибка смены пароля: %v", err)
	}
	if token == "" {
		t.Fatal("после смены пароля не выдан токен")
	}
	if !utils.CheckPasswordHash("newlongenough1", seeded.PasswordHash) {
		t.Fatal("новый пароль не сохранён")
	}
	if seeded.PasswordChangedAt == nil {
		t.Fatal("password_changed_at не обновлён")
	}
}
