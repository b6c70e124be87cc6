package services

import (
	"github.com/frans1979valk/vastelijn-portal/config"
	"github.com/frans1979valk/vastelijn-portal/models"
)

func ListDevices(ownerID uint) ([]models.Device, error) {
	var devices []models.Device
	err := config.DB.Where("owner_id = ?", ownerID).Order("id desc").Find(&devices).Error
	return devices, err
}

// CreateDevice records a new kiosk device for an owner. An unknown config
// key silently falls back to the default policy instead of failing.
func CreateDevice(client *HeadwindClient, ownerID uint, label, configKey string) (*models.Device, error) {
	if _, ok := Configurations[configKey]; !ok {
		configKey = DefaultConfigKey
	}

	qrURL, err := client.QRProvisioningURL(configKey)
	if err != nil {
		return nil, err
	}

	device := models.Device{
		OwnerID:   ownerID,
		Label:     label,
		Mode:      "kiosk", // legacy field, always kiosk now
		ConfigKey: configKey,
		Status:    "pending",
		QRPayload: qrURL,
	}
	if err := config.DB.Create(&device).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

func GetDevice(ownerID, deviceID uint) (*models.Device, error) {
	var device models.Device
	err := config.DB.Where("owner_id = ? AND id = ?", ownerID, deviceID).First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}
