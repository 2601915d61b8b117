package services

import (
	"fmt"
	"time"

	"github.com/peklos/nextbank/config"
	"gopkg.in/gomail.v2"
)

// EmailService предоставляет методы для отправки email
type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer: dialer,
		from:   cfg.SMTP.From,
	}
}

// SendEmail отправляет email
func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("ошибка отправки email: %v", err)
	}

	return nil
}

// SendTransactionNotification отправляет уведомление об операции по карте
func (s *EmailService) SendTransactionNotification(to, cardNumber string, amount float64, operation string) error {
	subject := "Уведомление об операции"
	body := fmt.Sprintf(`
		<h2>Уведомление об операции</h2>
		<p>Карта: •••• %s</p>
		<p>Тип операции: %s</p>
		<p>Сумма: %.2f ₽</p>
		<p>Дата: %s</p>
	`, maskedCard(cardNumber), operation, amount, time.Now().Format("02.01.2006 15:04:05"))

	return s.SendEmail(to, subject, body)
}

// SendLoanPaidNotification отправляет уведомление о погашении кредита
func (s *EmailService) SendLoanPaidNotification(to string, loanID uint) error {
	subject := "Поздравляем! Ваш кредит успешно погашен"
	body := fmt.Sprintf(`
		<h2>Поздравляем!</h2>
		<p>Ваш кредит #%d был успешно погашен.</p>
		<p>Спасибо, что выбрали наш банк!</p>
		<p>С уважением,<br>Команда NextBank</p>
	`, loanID)

	return s.SendEmail(to, subject, body)
}
