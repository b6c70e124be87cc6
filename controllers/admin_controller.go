package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/frans1979valk/vastelijn-portal/config"
	"github.com/frans1979valk/vastelijn-portal/services"
	"github.com/frans1979valk/vastelijn-portal/utils"

	"github.com/gin-gonic/gin"
)

// AdminController manages the published APK and its provisioning config.
type AdminController struct {
	Store *services.ProvisioningStore
}

func NewAdminController(store *services.ProvisioningStore) *AdminController {
	return &AdminController{Store: store}
}

func (ac *AdminController) GetConfig(c *gin.Context) {
	cfg, err := ac.Store.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateConfig merges the provided fields over the stored config; omitted
// fields stay as they were.
func (ac *AdminController) UpdateConfig(c *gin.Context) {
	var input services.ProvisioningConfigUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := ac.Store.Update(input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UploadAPK stores the uploaded binary, hashes it, and tries apksigner for
// the signing-certificate checksum. A missing apksigner is not an error;
// the admin is asked to enter the checksum manually.
func (ac *AdminController) UploadAPK(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	if !strings.HasSuffix(fileHeader.Filename, ".apk") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bestand moet een .apk zijn"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	apkPath := filepath.Join(config.APKDir(), fileHeader.Filename)
	dst, err := os.Create(apkPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer dst.Close()

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(dst, hasher), src); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	fileHash := hex.EncodeToString(hasher.Sum(nil))

	certChecksum, err := utils.SigningCertChecksum(apkPath)
	if err != nil {
		log.Printf("apksigner niet beschikbaar of fout: %v", err)
		certChecksum = ""
	}

	if _, err := ac.Store.SetUpload(fileHeader.Filename, fileHash, certChecksum); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	message := "APK geupload. Voer handmatig de checksum in."
	if certChecksum != "" {
		message = "APK geupload en checksum berekend"
	}

	c.JSON(http.StatusOK, gin.H{
		"filename":      fileHeader.Filename,
		"file_hash":     fileHash,
		"cert_checksum": certChecksum,
		"message":       message,
	})
}

// DeleteAPK removes the published binary and clears its reference from the
// config. Deleting when nothing is published succeeds.
func (ac *AdminController) DeleteAPK(c *gin.Context) {
	cfg, err := ac.Store.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if cfg.APKFilename != "" {
		apkPath := filepath.Join(config.APKDir(), cfg.APKFilename)
		if err := os.Remove(apkPath); err != nil && !os.IsNotExist(err) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if _, err := ac.Store.ClearUpload(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "APK verwijderd"})
}

func (ac *AdminController) Stats(c *gin.Context) {
	stats, err := services.GetDownloadStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
