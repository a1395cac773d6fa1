package email

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railway_station/configs"
)

func TestNewMailerRequiresHostAndSender(t *testing.T) {
	assert.Nil(t, NewMailer(configs.SMTPConfig{}))
	assert.Nil(t, NewMailer(configs.SMTPConfig{Host: "smtp.example.com"}))
	assert.NotNil(t, NewMailer(configs.SMTPConfig{Host: "smtp.example.com", Port: 587, Sender: "noreply@railway.com"}))
}

func TestRenderRegistrationEmailEscapesName(t *testing.T) {
	body, err := RenderRegistrationEmail("<ivan>")
	require.NoError(t, err)
	assert.Contains(t, body, "&lt;ivan&gt;")
}

func TestSendRegistrationEmail(t *testing.T) {
	// 从环境变量读取测试配置
	recipientEmail := os.Getenv("TEST_RECIPIENT_EMAIL")
	if recipientEmail == "" {
		t.Skip("Skipping email sending test: TEST_RECIPIENT_EMAIL environment variable not set.")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	mailer := NewMailer(configs.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		Sender:   os.Getenv("SMTP_SENDER_EMAIL"),
	})
	if mailer == nil {
		t.Skip("Skipping email sending test: SMTP_HOST or SMTP_SENDER_EMAIL not set.")
	}

	t.Logf("Attempting to send registration email to %s using SMTP server %s:%d...",
		recipientEmail, os.Getenv("SMTP_HOST"), port)
	if err := mailer.SendRegistrationEmail(recipientEmail, "test-user"); err != nil {
		t.Errorf("SendRegistrationEmail failed: %v", err)
	}
}
