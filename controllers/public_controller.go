package controllers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/frans1979valk/vastelijn-portal/config"
	"github.com/frans1979valk/vastelijn-portal/services"

	"github.com/gin-gonic/gin"
)

// PublicController serves the unauthenticated provisioning surface that
// Android devices hit during QR enrollment.
type PublicController struct {
	Store *services.ProvisioningStore
}

func NewPublicController(store *services.ProvisioningStore) *PublicController {
	return &PublicController{Store: store}
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "name": config.AppName()})
}

// Provisioning returns the QR-encodable Android Enterprise payload, or
// configured:false until an admin has published an APK URL and checksum.
func (pc *PublicController) Provisioning(c *gin.Context) {
	cfg, err := pc.Store.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if cfg.APKURL == "" || cfg.Checksum == "" {
		c.JSON(http.StatusOK, gin.H{
			"configured":   false,
			"message":      "APK nog niet geconfigureerd. Admin moet eerst een APK uploaden.",
			"qr_json":      nil,
			"instructions": []string{},
		})
		return
	}

	// Android requires the checksum in URL-safe Base64.
	qrPayload := map[string]interface{}{
		"android.app.extra.PROVISIONING_DEVICE_ADMIN_COMPONENT_NAME":            cfg.AdminReceiver,
		"android.app.extra.PROVISIONING_DEVICE_ADMIN_PACKAGE_DOWNLOAD_LOCATION": cfg.APKURL,
		"android.app.extra.PROVISIONING_DEVICE_ADMIN_SIGNATURE_CHECKSUM":        services.ToURLSafeBase64(cfg.Checksum),
		"android.app.extra.PROVISIONING_SKIP_ENCRYPTION":                        true,
		"android.app.extra.PROVISIONING_LEAVE_ALL_SYSTEM_APPS_ENABLED":          true,
	}

	qrJSON, err := json.Marshal(qrPayload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"configured": true,
		"qr_json":    string(qrJSON),
		"qr_payload": qrPayload,
		"apk_url":    cfg.APKURL,
		"instructions": []string{
			"1. Factory reset het Android apparaat",
			"2. Kies taal en verbind met WiFi",
			"3. Tik 6x op het welkomstscherm om QR setup te starten",
			"4. Scan de QR code hieronder",
			"5. Wacht tot de app is gedownload en geinstalleerd",
			"6. De VasteLijn app start automatisch in kiosk mode",
		},
	})
}

// DownloadAPK streams the published APK and appends a download log row.
func (pc *PublicController) DownloadAPK(c *gin.Context) {
	cfg, err := pc.Store.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if cfg.APKFilename == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Geen APK beschikbaar"})
		return
	}

	apkPath := filepath.Join(config.APKDir(), cfg.APKFilename)
	if _, err := os.Stat(apkPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "APK bestand niet gevonden"})
		return
	}

	if err := services.RecordDownload(c.ClientIP(), c.GetHeader("User-Agent")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "application/vnd.android.package-archive")
	c.FileAttachment(apkPath, cfg.APKFilename)
}
