package mail

import (
	"fmt"

	"gasadmin/internal/app/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Notifier отправляет письмо пользователю. Шаблон тела выбирается по тегу.
type Notifier interface {
	Send(to, templateTag, subject, body string) error
}

// Теги шаблонов писем по заявкам
const (
	TagEditAdminForUser = "edit_admin_for_user"
	TagDelete           = "delete"
)

type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (n *SMTPNotifier) Send(to, templateTag, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", renderBody(templateTag, body))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	logrus.Infof("mail %q sent to %s", templateTag, to)
	return nil
}

// renderBody подставляет тело письма по тегу шаблона
func renderBody(templateTag, body string) string {
	switch templateTag {
	case TagEditAdminForUser:
		return "<p>Администратор обработал вашу заявку на газ.</p>" + body
	case TagDelete:
		return "<p>Ваша заявка на газ была удалена администратором.</p>" + body
	default:
		return body
	}
}
