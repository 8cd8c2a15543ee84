package export

import (
	"context"

	"github.com/Badsnus/qr-studio/internal/domain/service"
	"github.com/Badsnus/qr-studio/pkg/smtp"
)

type mailer interface {
	SendFile(to, subject, body string, file smtp.Attachment) error
}

// MailSaver sends exported files to a fixed address.
type MailSaver struct {
	client mailer
	to     string
}

func NewMailSaver(client mailer, to string) *MailSaver {
	return &MailSaver{client: client, to: to}
}

func (s *MailSaver) Save(_ context.Context, fileName string, blob service.Blob) error {
	return s.client.SendFile(s.to, "QR export: "+fileName, "The exported file is attached.", smtp.Attachment{
		Name: fileName,
		MIME: blob.MIME,
		Data: blob.Data,
	})
}
