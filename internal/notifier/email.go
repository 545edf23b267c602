package notifier

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"
)

const smtpTimeout = 15 * time.Second

// EmailNotifier delivers HTML messages over SMTP. Delivery failures are
// reported to the caller and never retried.
type EmailNotifier struct {
	Server   string
	Port     int
	Address  string // sender account, also used as From
	Password string
}

// NewEmailNotifier creates a notifier for the given transport credentials.
func NewEmailNotifier(server string, port int, address, password string) *EmailNotifier {
	return &EmailNotifier{
		Server:   server,
		Port:     port,
		Address:  address,
		Password: password,
	}
}

// Send delivers one HTML message to the destination address.
func (n *EmailNotifier) Send(subject, htmlBody, to string) error {
	addr := net.JoinHostPort(n.Server, strconv.Itoa(n.Port))

	var conn net.Conn
	var err error
	if n.Port == 465 {
		conn, err = tls.DialWithDialer(&net.Dialer{Timeout: smtpTimeout}, "tcp", addr, &tls.Config{ServerName: n.Server})
	} else {
		conn, err = net.DialTimeout("tcp", addr, smtpTimeout)
	}
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, n.Server)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if n.Port != 465 {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: n.Server}); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}

	if n.Password != "" {
		auth := smtp.PlainAuth("", n.Address, n.Password, n.Server)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(n.Address); err != nil {
		return fmt.Errorf("smtp mail: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt %s: %w", to, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		n.Address, to, subject)
	if _, err := w.Write([]byte(headers + htmlBody)); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return client.Quit()
}
