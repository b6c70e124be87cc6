package services

import (
	"time"

	"github.com/frans1979valk/vastelijn-portal/config"
	"github.com/frans1979valk/vastelijn-portal/models"
)

// DownloadStats aggregates the download log for the admin dashboard.
type DownloadStats struct {
	TotalDownloads  int64            `json:"total_downloads"`
	TodayDownloads  int64            `json:"today_downloads"`
	WeekDownloads   int64            `json:"week_downloads"`
	RecentDownloads []RecentDownload `json:"recent_downloads"`
}

type RecentDownload struct {
	ID           uint      `json:"id"`
	IPAddress    string    `json:"ip_address"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// RecordDownload appends a download log row. The user agent is truncated
// to the column size.
func RecordDownload(ip, userAgent string) error {
	if len(userAgent) > 500 {
		userAgent = userAgent[:500]
	}
	entry := models.DownloadLog{
		IPAddress: ip,
		UserAgent: userAgent,
	}
	return config.DB.Create(&entry).Error
}

// GetDownloadStats returns totals since forever, since local midnight and
// since 7 days back, plus the 10 most recent rows.
func GetDownloadStats() (*DownloadStats, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -7)

	stats := &DownloadStats{RecentDownloads: []RecentDownload{}}

	if err := config.DB.Model(&models.DownloadLog{}).Count(&stats.TotalDownloads).Error; err != nil {
		return nil, err
	}
	if err := config.DB.Model(&models.DownloadLog{}).
		Where("downloaded_at >= ?", todayStart).
		Count(&stats.TodayDownloads).Error; err != nil {
		return nil, err
	}
	if err := config.DB.Model(&models.DownloadLog{}).
		Where("downloaded_at >= ?", weekStart).
		Count(&stats.WeekDownloads).Error; err != nil {
		return nil, err
	}

	var recent []models.DownloadLog
	if err := config.DB.Order("downloaded_at desc").Limit(10).Find(&recent).Error; err != nil {
		return nil, err
	}
	for _, r := range recent {
		stats.RecentDownloads = append(stats.RecentDownloads, RecentDownload{
			ID:           r.ID,
			IPAddress:    r.IPAddress,
			DownloadedAt: r.DownloadedAt,
		})
	}

	return stats, nil
}
