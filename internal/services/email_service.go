package services

import (
	"fmt"
	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendConfirmationEmail(email, firstName, code string) error
	SendPasswordResetEmail(email, firstName, code string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendConfirmationEmail(email, firstName, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Подтверждение регистрации на PhotoHub")

	body := fmt.Sprintf(`Здравствуйте, %s!

Спасибо за регистрацию на PhotoHub.
Для завершения регистрации, пожалуйста, используйте следующий код подтверждения:

%s

Если вы не регистрировались на нашем сайте, просто проигнорируйте это письмо.

С уважением,
Команда PhotoHub
`, firstName, code)

	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	return nil
}

func (s *emailService) SendPasswordResetEmail(email, firstName, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Восстановление пароля на PhotoHub")

	body := fmt.Sprintf(`Здравствуйте, %s!

Вы запросили восстановление пароля на PhotoHub.
Для сброса пароля, пожалуйста, используйте следующий код:

%s

Если вы не запрашивали сброс пароля, немедленно свяжитесь с нашей службой поддержки.

С уважением,
Команда PhotoHub
`, firstName, code)

	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	return nil
}
