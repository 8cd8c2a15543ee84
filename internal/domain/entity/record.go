package entity

import (
	"time"

	"gorm.io/gorm"
)

type CodeType string

const (
	TypeURL      CodeType = "url"
	TypeText     CodeType = "text"
	TypeVCard    CodeType = "vcard"
	TypeWiFi     CodeType = "wifi"
	TypePhone    CodeType = "phone"
	TypeSMS      CodeType = "sms"
	TypeEmail    CodeType = "email"
	TypeLocation CodeType = "location"

	TypeFacebook  CodeType = "facebook"
	TypeInstagram CodeType = "instagram"
	TypeTwitter   CodeType = "twitter"
	TypeLinkedIn  CodeType = "linkedin"
	TypeYouTube   CodeType = "youtube"
	TypeTikTok    CodeType = "tiktok"
	TypeWhatsApp  CodeType = "whatsapp"
	TypeTelegram  CodeType = "telegram"
	TypePDF       CodeType = "pdf"
	TypeImage     CodeType = "image"
	TypeVideo     CodeType = "video"
	TypeMenu      CodeType = "menu"
	TypeBusiness  CodeType = "business"
	TypeApp       CodeType = "app"
)

// IsDirect reports whether the payload of the type is embedded as-is
// instead of going through the tracking redirect.
func (t CodeType) IsDirect() bool {
	switch t {
	case TypeVCard, TypeWiFi, TypePhone, TypeSMS, TypeEmail, TypeLocation, TypeText:
		return true
	default:
		return false
	}
}

// CodeRecord is the persisted shape of a code. JSON names are shared with the web client.
type CodeRecord struct {
	ID             string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `json:"-"`
	UserID         int64          `gorm:"index" json:"userId"`
	Content        string         `gorm:"not null" json:"content"`
	Type           CodeType       `gorm:"not null" json:"type"`
	Template       *CardTemplate  `gorm:"serializer:json" json:"template"`
	Styling        StyleConfig    `gorm:"serializer:json" json:"styling"`
	Password       string         `json:"password,omitempty"`
	ExpirationDate *time.Time     `json:"expirationDate,omitempty"`
	ScanLimit      *int           `json:"scanLimit,omitempty"`
	Scans          int            `gorm:"not null;default:0" json:"scans"`
	LogoAssetID    string         `json:"logoAssetId,omitempty"`
}

// Expired reports whether the record has an expiration date at or before now.
func (r *CodeRecord) Expired(now time.Time) bool {
	return r.ExpirationDate != nil && !r.ExpirationDate.After(now)
}

// Exhausted reports whether the scan limit, if any, has been reached.
func (r *CodeRecord) Exhausted() bool {
	return r.ScanLimit != nil && *r.ScanLimit > 0 && r.Scans >= *r.ScanLimit
}
