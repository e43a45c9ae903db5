package notify

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (m SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	addr := m.Host + ":" + strconv.Itoa(m.Port)
	if err := smtp.SendMail(addr, auth, m.From, []string{msg.To}, buildMessage(m.From, msg)); err != nil {
		return fmt.Errorf("smtp send to %v: %w", msg.To, err)
	}
	return nil
}

var headerBreaks = strings.NewReplacer("\r", "", "\n", " ")

func buildMessage(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + headerBreaks.Replace(from) + "\r\n")
	b.WriteString("To: " + headerBreaks.Replace(msg.To) + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", headerBreaks.Replace(msg.Subject)) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}

// LogMailer writes messages to the log instead of sending them. Used when no
// SMTP host is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	log.WithFields(log.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("mail not sent, no smtp host configured")
	return nil
}
