package services

import (
	"context"
	"fmt"
	"net/smtp"
	"staffhub/internal/config"
	"staffhub/internal/logger"

	"go.uber.org/zap"
)

type EmailService struct {
	auth smtp.Auth
	from string
	host string
	port string
}

func NewEmailService(cfg *config.Config) *EmailService {
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	return &EmailService{
		auth: auth,
		from: cfg.SMTPUser,
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
	}
}

func (s *EmailService) Send(to []string, subject, body string) error {
	msg := []byte("Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, s.auth, s.from, to, msg)
}

// SendPasswordReset шлёт письмо синхронно, но с ограничением по контексту:
// зависший SMTP не должен держать запрос бесконечно.
func (s *EmailService) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	body := "Забыли пароль? Перейдите по ссылке, чтобы задать новый (действует 10 минут):\r\n" +
		resetURL + "\r\n\r\n" +
		"Если вы не запрашивали сброс — просто проигнорируйте это письмо."

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Send([]string{to}, "Сброс пароля", body)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type EmailJob struct {
	To      []string
	Subject string
	Body    string
}

var EmailQueue = make(chan EmailJob, 100) // очередь некритичных писем

// StartEmailWorker разбирает очередь; ошибки только логируются.
func StartEmailWorker(emailService *EmailService) {
	for job := range EmailQueue {
		if err := emailService.Send(job.To, job.Subject, job.Body); err != nil {
			logger.Log.Error("Ошибка отправки письма (worker)",
				zap.Strings("to", job.To),
				zap.String("subject", job.Subject),
				zap.Error(err),
			)
		}
	}
}
