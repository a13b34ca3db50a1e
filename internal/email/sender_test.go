package email

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/gomail.v2"
)

type capturingDialer struct {
	messages []*gomail.Message
	err      error
}

func (d *capturingDialer) DialAndSend(msgs ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.messages = append(d.messages, msgs...)
	return nil
}

func newTestSender() (*Sender, *capturingDialer) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	d := &capturingDialer{}
	s := NewSender(Config{
		Host:     "smtp.test",
		Port:     587,
		From:     "notify@lawlens.test",
		AdminURL: "https://lawlens.test",
	}, logger)
	s.dialer = d
	return s, d
}

func messageBody(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestSendQuestionAnswered(t *testing.T) {
	s, d := newTestSender()

	source := "https://codes.example.gov/title-5"
	err := s.SendQuestionAnswered("user@example.com", "Can I keep chickens?", "Yes, up to five hens.", &source)
	require.NoError(t, err)
	require.Len(t, d.messages, 1)

	m := d.messages[0]
	assert.Equal(t, []string{"user@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Your LawLens Question Has Been Answered"}, m.GetHeader("Subject"))

	body := messageBody(t, m)
	assert.Contains(t, body, "Can I keep chickens?")
	assert.Contains(t, body, "Yes, up to five hens.")
	assert.Contains(t, body, "codes.example.gov")
}

func TestSendQuestionAnswered_NoSource(t *testing.T) {
	s, d := newTestSender()

	err := s.SendQuestionAnswered("user@example.com", "Q?", "A.", nil)
	require.NoError(t, err)

	body := messageBody(t, d.messages[0])
	assert.NotContains(t, body, "View Original Law Source")
}

func TestSendNewPaidQuestion(t *testing.T) {
	s, d := newTestSender()

	err := s.SendNewPaidQuestion("admin@lawlens.test", "Is jaywalking a felony?", "payer@example.com", "q-123", "pi_456")
	require.NoError(t, err)
	require.Len(t, d.messages, 1)

	body := messageBody(t, d.messages[0])
	assert.Contains(t, body, "Is jaywalking a felony?")
	assert.Contains(t, body, "payer@example.com")
	assert.Contains(t, body, "https://lawlens.test/admin")
}

func TestSend_PropagatesDialerError(t *testing.T) {
	s, d := newTestSender()
	d.err = assert.AnError

	err := s.SendNewPaidQuestion("admin@lawlens.test", "Q", "u@example.com", "q", "p")
	assert.Error(t, err)
}
