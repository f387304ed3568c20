package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

// SMTPMailer sends through an SMTP relay. Security is "starttls" (587),
// "ssl" (implicit TLS, 465) or "none" for local relays.
type SMTPMailer struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	Security string
}

func (m *SMTPMailer) addr() string {
	return net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, html string) error {
	c, err := m.dial(ctx)
	if err != nil {
		return fmt.Errorf("smtp connect: %w", err)
	}
	defer c.Close()

	if strings.EqualFold(m.Security, "starttls") || strings.EqualFold(m.Security, "tls") {
		if err := c.StartTLS(&tls.Config{ServerName: m.Host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if m.User != "" {
		if err := c.Auth(smtp.PlainAuth("", m.User, m.Pass, m.Host)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := c.Mail(m.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(BuildMessage(m.From, to, subject, html)); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func (m *SMTPMailer) dial(ctx context.Context) (*smtp.Client, error) {
	var d net.Dialer
	if strings.EqualFold(m.Security, "ssl") || strings.EqualFold(m.Security, "implicit") {
		td := tls.Dialer{NetDialer: &d, Config: &tls.Config{ServerName: m.Host}}
		conn, err := td.DialContext(ctx, "tcp", m.addr())
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(conn, m.Host)
	}
	conn, err := d.DialContext(ctx, "tcp", m.addr())
	if err != nil {
		return nil, err
	}
	return smtp.NewClient(conn, m.Host)
}

// BuildMessage renders an RFC 5322 message with an HTML body.
func BuildMessage(from, to, subject, html string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)
	return b.Bytes()
}
