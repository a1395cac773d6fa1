package email

import (
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/railway_station/configs"
)

// Mailer 通过 SMTP 发送通知邮件
type Mailer struct {
	dialer *gomail.Dialer
	sender string
}

// NewMailer 根据配置创建 Mailer；未配置 SMTP_HOST 或发件人时返回 nil，表示不发送邮件
func NewMailer(cfg configs.SMTPConfig) *Mailer {
	if cfg.Host == "" || cfg.Sender == "" {
		return nil
	}
	return &Mailer{
		// Username/Password 可以为空，部分 SMTP 服务器不需要认证
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		sender: cfg.Sender,
	}
}

var registrationTemplate = template.Must(template.New("registration").Parse(`
<html>
<body>
    <p>Hello, {{.Username}}!</p>
    <p>Your account on the railway timetable has been created.</p>
    <p>You can now sign in and browse the schedule.</p>
    <p><small>This is an automated message, please do not reply.</small></p>
</body>
</html>
`))

// RenderRegistrationEmail 生成注册通知邮件正文
func RenderRegistrationEmail(username string) (string, error) {
	var b strings.Builder
	if err := registrationTemplate.Execute(&b, struct{ Username string }{username}); err != nil {
		return "", err
	}
	return b.String(), nil
}

// SendRegistrationEmail 向新注册的用户发送欢迎邮件
func (m *Mailer) SendRegistrationEmail(toEmail, username string) error {
	body, err := RenderRegistrationEmail(username)
	if err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Railway timetable: registration completed")
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
