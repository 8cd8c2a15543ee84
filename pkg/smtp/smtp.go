package smtp

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Config описывает отправителя писем.
type Config struct {
	From   string
	Domain string
}

// Client представляет почтовый клиент.
type Client struct {
	dialer *gomail.Dialer
	cfg    Config
}

// NewClient инициализирует Client.
func NewClient(dialer *gomail.Dialer, cfg Config) *Client {
	return &Client{dialer: dialer, cfg: cfg}
}

// Attachment is a file sent along with a message.
type Attachment struct {
	Name string
	MIME string
	Data []byte
}

// SendFile отправляет письмо с вложенным файлом.
func (c *Client) SendFile(to, subject, body string, file Attachment) error {
	msg := c.message(to, subject, body)
	msg.Attach(file.Name,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(file.Data)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {file.MIME}}),
	)
	if err := c.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (c *Client) message(to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", generateMessageID(c.cfg.Domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", c.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return msg
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}
