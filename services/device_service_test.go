package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDeviceFallsBackToDefaultConfig(t *testing.T) {
	setupTestDB(t)
	client := NewHeadwindClient("https://android.vastelijn.eu", "admin", "pass")

	device, err := CreateDevice(client, 1, "Toestel keuken", "bestaat_niet")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigKey, device.ConfigKey)
	assert.Equal(t, "kiosk", device.Mode)
	assert.Equal(t, "pending", device.Status)
	assert.Equal(t, "https://android.vastelijn.eu/#/qr/b44353a7b7e8cf6a6ee6371e05067c46", device.QRPayload)
}

func TestListDevicesOrderedByIDDesc(t *testing.T) {
	setupTestDB(t)
	client := NewHeadwindClient("https://android.vastelijn.eu", "admin", "pass")

	first, err := CreateDevice(client, 1, "eerste", "vastelijn_alleen")
	require.NoError(t, err)
	second, err := CreateDevice(client, 1, "tweede", "vastelijn_whatsapp")
	require.NoError(t, err)

	// another owner's devices stay invisible
	_, err = CreateDevice(client, 2, "andere klant", "vastelijn_alleen")
	require.NoError(t, err)

	devices, err := ListDevices(1)
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, second.ID, devices[0].ID)
	assert.Equal(t, first.ID, devices[1].ID)
}

func TestGetDeviceScopedToOwner(t *testing.T) {
	setupTestDB(t)
	client := NewHeadwindClient("https://android.vastelijn.eu", "admin", "pass")

	device, err := CreateDevice(client, 1, "toestel", "vastelijn_telegram")
	require.NoError(t, err)

	found, err := GetDevice(1, device.ID)
	require.NoError(t, err)
	assert.Equal(t, "vastelijn_telegram", found.ConfigKey)

	_, err = GetDevice(2, device.ID)
	assert.Error(t, err)
}
