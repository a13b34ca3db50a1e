package email

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"
)

// Config holds SMTP connection details.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AdminURL string
}

type dialer interface {
	DialAndSend(...*gomail.Message) error
}

// Sender delivers transactional mail over SMTP.
type Sender struct {
	cfg    Config
	dialer dialer
	logger *logrus.Logger
}

func NewSender(cfg Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

func (s *Sender) send(to, subject, text, html string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, "LawLens")
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	if html == "" {
		html = strings.ReplaceAll(text, "\n", "<br>")
	}
	m.AddAlternative("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.WithError(err).WithField("subject", subject).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info("Email sent")
	return nil
}

// SendQuestionAnswered notifies the payer that their question now has an
// answer.
func (s *Sender) SendQuestionAnswered(userEmail, question, answer string, sourceURL *string) error {
	subject := "Your LawLens Question Has Been Answered"

	sourceText := ""
	sourceHTML := ""
	if sourceURL != nil && *sourceURL != "" {
		sourceText = fmt.Sprintf("Source: %s\n\n", *sourceURL)
		sourceHTML = fmt.Sprintf(`<h3>Source:</h3><p><a href="%s" target="_blank" style="color: #0066cc;">View Original Law Source</a></p>`, *sourceURL)
	}

	text := fmt.Sprintf(`Your legal question has been researched and answered!

Question: %s

Answer: %s

%sThank you for using LawLens!

---
LawLens Team
https://lawlens.com
`, question, answer, sourceText)

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #000;">Your LawLens Question Has Been Answered</h1>
  <p>Your legal question has been researched and answered!</p>
  <div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="margin-top: 0;">Question:</h3>
    <p><em>"%s"</em></p>
    <h3>Answer:</h3>
    <p style="line-height: 1.6;">%s</p>
    %s
  </div>
  <p>Thank you for using LawLens!</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
  <p style="color: #666; font-size: 14px;">
    LawLens Team<br>
    <a href="https://lawlens.com" style="color: #0066cc;">https://lawlens.com</a>
  </p>
</div>`, question, strings.ReplaceAll(answer, "\n", "<br>"), sourceHTML)

	return s.send(userEmail, subject, text, html)
}

// SendNewPaidQuestion notifies the admin that a paid question is waiting for
// research.
func (s *Sender) SendNewPaidQuestion(adminEmail, questionText, userEmail, questionID, paymentID string) error {
	subject := "New Paid Question - LawLens"

	text := fmt.Sprintf(`A new question has been submitted and paid for:

Question: %s
Customer Email: %s
Question ID: %s
Payment ID: %s

Please research and answer this question in the admin panel:
%s/admin
`, questionText, userEmail, questionID, paymentID, s.cfg.AdminURL)

	return s.send(adminEmail, subject, text, "")
}
