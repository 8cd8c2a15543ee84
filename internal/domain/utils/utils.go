package utils

import (
	"fmt"
	"strings"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	tele "gopkg.in/telebot.v3"
)

func GetMessageText(msg *tele.Message) string {
	switch {
	case msg.Text != "":
		return msg.Text
	case msg.Caption != "":
		return msg.Caption
	default:
		return ""
	}
}

// MessageContent returns the code content carried by msg and its code type.
// Shared locations and contacts become geo: and vCard payloads.
func MessageContent(msg *tele.Message) (string, entity.CodeType) {
	switch {
	case msg.Location != nil:
		return fmt.Sprintf("geo:%g,%g", msg.Location.Lat, msg.Location.Lng), entity.TypeLocation
	case msg.Contact != nil:
		return contactCard(msg.Contact), entity.TypeVCard
	}
	text := strings.TrimSpace(GetMessageText(msg))
	return text, GuessType(text)
}

func contactCard(c *tele.Contact) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\nVERSION:3.0\n")
	fmt.Fprintf(&b, "N:%s;%s\n", c.LastName, c.FirstName)
	fmt.Fprintf(&b, "FN:%s\n", strings.TrimSpace(c.FirstName+" "+c.LastName))
	fmt.Fprintf(&b, "TEL:%s\n", c.PhoneNumber)
	b.WriteString("END:VCARD")
	return b.String()
}

// GuessType picks the code type from the content prefix.
func GuessType(content string) entity.CodeType {
	lower := strings.ToLower(content)
	switch {
	case strings.HasPrefix(lower, "wifi:"):
		return entity.TypeWiFi
	case strings.HasPrefix(lower, "begin:vcard"):
		return entity.TypeVCard
	case strings.HasPrefix(lower, "tel:"):
		return entity.TypePhone
	case strings.HasPrefix(lower, "sms"):
		return entity.TypeSMS
	case strings.HasPrefix(lower, "mailto:"):
		return entity.TypeEmail
	case strings.HasPrefix(lower, "geo:"):
		return entity.TypeLocation
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return entity.TypeURL
	default:
		return entity.TypeText
	}
}
