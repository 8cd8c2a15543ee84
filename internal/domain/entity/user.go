package entity

import "time"

// User holds the display preferences of a bot user.
type User struct {
	ID               int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	FirstName        string
	Username         string
	WatermarkEnabled bool
	WatermarkText    string
}

// Preferences are the soft visual defaults applied on export.
type Preferences struct {
	WatermarkEnabled bool
	WatermarkText    string
}

func (u *User) Preferences() Preferences {
	if u == nil {
		return Preferences{}
	}
	return Preferences{
		WatermarkEnabled: u.WatermarkEnabled,
		WatermarkText:    u.WatermarkText,
	}
}
