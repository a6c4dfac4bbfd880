package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"
)

// Sender is what the services depend on; tests swap in a recorder.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type Options struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

type Mailer struct {
	dialer *gomail.Dialer
	opts   Options
}

func New(o Options) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(o.Host, o.Port, o.Username, o.Password),
		opts:   o,
	}
}

func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.opts.FromEmail, m.opts.FromName))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

// Embedded email bodies. Plain inline-styled HTML keeps rendering consistent
// across clients without shipping a template directory.
var templates = map[string]*template.Template{
	"magic_link": template.Must(template.New("magic_link").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2c3e50;">Sign in to Daffodil HMO Solutions</h2>
    <p>Click the link below to sign in. It expires in {{.TTLMinutes}} minutes.</p>
    <p style="margin: 24px 0;"><a href="{{.Link}}" style="background: #e8b325; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 4px;">Sign in</a></p>
    <p style="font-size: 12px; color: #7f8c8d;">If you didn't request this, you can safely ignore this email.</p>
    <p style="font-size: 12px; color: #7f8c8d;">&copy; {{.Year}} Daffodil HMO Solutions</p>
</body>
</html>`)),

	"contact": template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2c3e50;">New contact message</h2>
    <p><strong>From:</strong> {{.Name}} &lt;{{.Email}}&gt;</p>
    <p>{{.Message}}</p>
</body>
</html>`)),

	"application": template.Must(template.New("application").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2c3e50;">Application received</h2>
    <p>Hello {{.Name}},</p>
    <p>We received your application for <strong>{{.JobTitle}}</strong> and will be in touch.</p>
    <p style="font-size: 12px; color: #7f8c8d;">&copy; {{.Year}} Daffodil HMO Solutions</p>
</body>
</html>`)),
}

func Render(name string, data map[string]any) (string, error) {
	t, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("mail: unknown template %q", name)
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Year"]; !ok {
		data["Year"] = time.Now().Year()
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
