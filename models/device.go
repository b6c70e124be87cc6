package models

import "time"

type Device struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"index;not null" json:"owner_id"`
	Label     string    `gorm:"not null" json:"label"`
	Mode      string    `gorm:"not null" json:"mode"`                   // kiosk|fallback (legacy)
	ConfigKey string    `gorm:"default:vastelijn_alleen" json:"config_key"`
	Status    string    `gorm:"default:pending" json:"status"`          // pending|enrolled|online|offline
	QRPayload string    `gorm:"type:text;default:''" json:"qr_payload"` // Headwind QR enrollment URL
	CreatedAt time.Time `json:"created_at"`
}
