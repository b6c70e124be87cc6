package models

import "time"

// DownloadLog is an append-only record of public APK downloads.
type DownloadLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	IPAddress    string    `json:"ip_address"`
	UserAgent    string    `gorm:"size:500" json:"user_agent"`
	DownloadedAt time.Time `gorm:"autoCreateTime;index" json:"downloaded_at"`
}
