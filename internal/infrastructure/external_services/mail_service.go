package external_services

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/mikiasgoitom/Convene/internal/domain/contract"
)

// sendFunc matches smtp.SendMail.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService delivers plain-text notifications through an SMTP relay.
type EmailService struct {
	Host        string
	Port        int
	Username    string
	AppPassword string
	From        string

	send sendFunc
}

func NewEmailService(host string, port int, username, appPassword, from string) *EmailService {
	if from == "" {
		from = username
	}
	return &EmailService{
		Host:        host,
		Port:        port,
		Username:    username,
		AppPassword: appPassword,
		From:        from,
		send:        smtp.SendMail,
	}
}

// make sure EmailService implements contract.IEmailService
var _ contract.IEmailService = (*EmailService)(nil)

func (es *EmailService) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(to, "\r\n") || strings.ContainsAny(subject, "\r\n") {
		return fmt.Errorf("invalid header value for recipient %q", to)
	}

	msg := buildMessage(es.From, to, subject, body)
	var auth smtp.Auth
	if es.Username != "" {
		auth = smtp.PlainAuth("", es.Username, es.AppPassword, es.Host)
	}
	addr := net.JoinHostPort(es.Host, strconv.Itoa(es.Port))
	if err := es.send(addr, auth, es.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email via %s: %w", addr, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	return []byte(
		"To: " + to + "\r\n" +
			"From: " + from + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body + "\r\n",
	)
}
