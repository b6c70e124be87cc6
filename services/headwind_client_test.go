package services

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetQRPayloadKnownConfig(t *testing.T) {
	client := NewHeadwindClient("https://android.vastelijn.eu", "admin", "pass")

	payload, err := client.GetQRPayload("vastelijn_alleen")
	require.NoError(t, err)

	assert.Equal(t, 3, payload.ConfigID)
	assert.True(t, strings.HasSuffix(payload.EnrollmentURL, "b44353a7b7e8cf6a6ee6371e05067c46"))
	assert.Equal(t, payload.EnrollmentURL, payload.QRContent)
	assert.Equal(t, "https://android.vastelijn.eu/#/qr/b44353a7b7e8cf6a6ee6371e05067c46", payload.EnrollmentURL)

	assert.Equal(t, "com.hmdm.launcher/com.hmdm.launcher.AdminReceiver",
		payload.ProvisioningPayload["android.app.extra.PROVISIONING_DEVICE_ADMIN_COMPONENT_NAME"])
	assert.Equal(t, "https://android.vastelijn.eu/files/hmdm-3.apk",
		payload.ProvisioningPayload["android.app.extra.PROVISIONING_DEVICE_ADMIN_PACKAGE_DOWNLOAD_LOCATION"])

	extras, ok := payload.ProvisioningPayload["android.app.extra.PROVISIONING_ADMIN_EXTRAS_BUNDLE"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "https://android.vastelijn.eu", extras["com.hmdm.BASE_URL"])
	assert.Equal(t, "b44353a7b7e8cf6a6ee6371e05067c46", extras["com.hmdm.SERVER_PROJECT"])

	assert.Len(t, payload.Instructions, 6)
}

func TestGetQRPayloadUnknownConfig(t *testing.T) {
	client := NewHeadwindClient("https://android.vastelijn.eu", "admin", "pass")

	_, err := client.GetQRPayload("unknown_key")
	assert.ErrorIs(t, err, ErrUnknownConfiguration)

	_, err = client.QRProvisioningURL("unknown_key")
	assert.ErrorIs(t, err, ErrUnknownConfiguration)
}

func TestListConfigurations(t *testing.T) {
	client := NewHeadwindClient("https://android.vastelijn.eu", "admin", "pass")

	configs := client.ListConfigurations()
	require.Len(t, configs, 6)

	// ordered by policy id, starting at the default customer policy
	assert.Equal(t, "vastelijn_alleen", configs[0].Key)
	assert.Equal(t, 3, configs[0].ID)
	assert.Equal(t, "kiosk_dev", configs[5].Key)
	assert.Equal(t, 8, configs[5].ID)
}

func TestLoginSendsMD5AndCachesToken(t *testing.T) {
	var loginCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/public/jwt/login", r.URL.Path)
		loginCalls++

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin", body["login"])

		sum := md5.Sum([]byte("geheim"))
		assert.Equal(t, hex.EncodeToString(sum[:]), body["password"])

		json.NewEncoder(w).Encode(map[string]string{"token": "session-token"})
	}))
	defer srv.Close()

	client := NewHeadwindClient(srv.URL, "admin", "geheim")

	token, err := client.GetToken()
	require.NoError(t, err)
	assert.Equal(t, "session-token", token)

	// second call hits the cache
	token, err = client.GetToken()
	require.NoError(t, err)
	assert.Equal(t, "session-token", token)
	assert.Equal(t, 1, loginCalls)
}

func TestLoginNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("bad credentials"))
	}))
	defer srv.Close()

	client := NewHeadwindClient(srv.URL, "admin", "fout")

	_, err := client.Login()
	require.Error(t, err)

	var gwErr *GatewayLoginError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusUnauthorized, gwErr.StatusCode)
	assert.Equal(t, "bad credentials", gwErr.Body)
}
