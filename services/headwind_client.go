package services

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

var ErrUnknownConfiguration = errors.New("onbekende configuratie")

// GatewayLoginError carries the vendor's non-200 login response.
type GatewayLoginError struct {
	StatusCode int
	Body       string
}

func (e *GatewayLoginError) Error() string {
	return fmt.Sprintf("headwind login failed: %d - %s", e.StatusCode, e.Body)
}

// Configuration is one entry of the fixed Headwind policy catalog. The
// catalog is compiled in; Headwind is never queried for it.
type Configuration struct {
	ID          int
	Name        string
	Description string
	QRKey       string
}

const DefaultConfigKey = "vastelijn_alleen"

// Configurations maps portal config keys to pre-registered Headwind
// policies and their QR enrollment keys.
var Configurations = map[string]Configuration{
	// Klant policies
	"vastelijn_alleen": {
		ID:          3,
		Name:        "VasteLijn - Alleen app",
		Description: "Kiosk mode met alleen de VasteLijn app",
		QRKey:       "b44353a7b7e8cf6a6ee6371e05067c46",
	},
	"vastelijn_telegram": {
		ID:          4,
		Name:        "VasteLijn + Telegram",
		Description: "Kiosk mode met VasteLijn en Telegram",
		QRKey:       "61f688e2dfa81c0c4ad3eb135ca6d18d",
	},
	"vastelijn_whatsapp": {
		ID:          5,
		Name:        "VasteLijn + WhatsApp",
		Description: "Kiosk mode met VasteLijn en WhatsApp",
		QRKey:       "38e1d91bfbc7d67ef34541fee64fce17",
	},
	// Ontwikkeling policies
	"dev_ontwikkel": {
		ID:          6,
		Name:        "DEV – Ontwikkeltoestel",
		Description: "NIET VOOR KLANTEN - USB debugging en Developer Options beschikbaar. Android Studio compatible.",
		QRKey:       "43db0b45a30f539cba65059ab332bcba",
	},
	"productie_kiosk": {
		ID:          7,
		Name:        "VasteLijn – Productie Kiosk",
		Description: "ALLEEN KLANTEN - Volledig vergrendeld, geen ontsnapping, USB debugging geblokkeerd.",
		QRKey:       "7990654e1981baba208392101ebec9d6",
	},
	"kiosk_dev": {
		ID:          8,
		Name:        "VasteLijn – Kiosk DEV",
		Description: "ONTWIKKELING - Kiosk mode AAN maar USB debugging toegestaan. Zet Developer Options AAN vóór enrollment!",
		QRKey:       "0435096ed832d7622605c45a3db6c729",
	},
}

// ConfigurationInfo is the public projection of a catalog entry.
type ConfigurationInfo struct {
	Key         string `json:"key"`
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// QRPayload is the full provisioning bundle for a configuration: the QR
// enrollment URL plus the Android Enterprise provisioning JSON.
type QRPayload struct {
	ConfigID            int                    `json:"config_id"`
	ConfigName          string                 `json:"config_name"`
	ConfigDescription   string                 `json:"config_description"`
	EnrollmentURL       string                 `json:"enrollment_url"`
	QRContent           string                 `json:"qr_content"`
	ProvisioningPayload map[string]interface{} `json:"provisioning_payload"`
	Instructions        []string               `json:"instructions"`
}

// HeadwindClient talks to the Headwind MDM REST API. The session token is
// cached after the first login and never proactively refreshed.
type HeadwindClient struct {
	BaseURL  string
	Username string
	Password string

	httpClient *http.Client

	mu    sync.Mutex
	token string
}

func NewHeadwindClient(baseURL, username, password string) *HeadwindClient {
	return &HeadwindClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Username:   username,
		Password:   password,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Login authenticates against Headwind and caches the returned JWT.
// Headwind expects the MD5 hex digest of the password, not the password
// itself; that is the vendor's protocol.
func (h *HeadwindClient) Login() (string, error) {
	sum := md5.Sum([]byte(h.Password))
	body, err := json.Marshal(map[string]string{
		"login":    h.Username,
		"password": hex.EncodeToString(sum[:]),
	})
	if err != nil {
		return "", err
	}

	resp, err := h.httpClient.Post(h.BaseURL+"/rest/public/jwt/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &GatewayLoginError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(respBody, &data); err != nil {
		return "", err
	}

	h.mu.Lock()
	h.token = data.Token
	h.mu.Unlock()
	return data.Token, nil
}

// GetToken returns the cached session token, logging in once if absent.
func (h *HeadwindClient) GetToken() (string, error) {
	h.mu.Lock()
	token := h.token
	h.mu.Unlock()
	if token != "" {
		return token, nil
	}
	return h.Login()
}

// QRProvisioningURL formats the Headwind QR enrollment page URL for a
// configuration key.
func (h *HeadwindClient) QRProvisioningURL(configKey string) (string, error) {
	cfg, ok := Configurations[configKey]
	if !ok {
		return "", ErrUnknownConfiguration
	}
	return fmt.Sprintf("%s/#/qr/%s", h.BaseURL, cfg.QRKey), nil
}

// GetQRPayload assembles the full provisioning payload for a configuration.
// Pure catalog lookup plus formatting; no Headwind call is made.
func (h *HeadwindClient) GetQRPayload(configKey string) (*QRPayload, error) {
	cfg, ok := Configurations[configKey]
	if !ok {
		return nil, ErrUnknownConfiguration
	}

	enrollmentURL := fmt.Sprintf("%s/#/qr/%s", h.BaseURL, cfg.QRKey)

	// Android Enterprise provisioning payload.
	// Ref: https://developers.google.com/android/management/provision-device
	provisioning := map[string]interface{}{
		"android.app.extra.PROVISIONING_DEVICE_ADMIN_COMPONENT_NAME":         "com.hmdm.launcher/com.hmdm.launcher.AdminReceiver",
		"android.app.extra.PROVISIONING_DEVICE_ADMIN_PACKAGE_DOWNLOAD_LOCATION": fmt.Sprintf("%s/files/hmdm-%d.apk", h.BaseURL, cfg.ID),
		"android.app.extra.PROVISIONING_LEAVE_ALL_SYSTEM_APPS_ENABLED":       true,
		"android.app.extra.PROVISIONING_ADMIN_EXTRAS_BUNDLE": map[string]interface{}{
			"com.hmdm.DEVICE_ID":      "",
			"com.hmdm.BASE_URL":       h.BaseURL,
			"com.hmdm.SERVER_PROJECT": cfg.QRKey,
		},
	}

	return &QRPayload{
		ConfigID:            cfg.ID,
		ConfigName:          cfg.Name,
		ConfigDescription:   cfg.Description,
		EnrollmentURL:       enrollmentURL,
		QRContent:           enrollmentURL,
		ProvisioningPayload: provisioning,
		Instructions: []string{
			"1. Factory reset het Android apparaat",
			"2. Tik 6x op het welkomstscherm om QR setup te starten",
			"3. Verbind met WiFi",
			"4. Scan de QR code",
			"5. Volg de installatie instructies",
			"6. Het apparaat wordt automatisch geconfigureerd",
		},
	}, nil
}

// ListConfigurations projects the static catalog, ordered by policy id.
func (h *HeadwindClient) ListConfigurations() []ConfigurationInfo {
	out := make([]ConfigurationInfo, 0, len(Configurations))
	for key, cfg := range Configurations {
		out = append(out, ConfigurationInfo{
			Key:         key,
			ID:          cfg.ID,
			Name:        cfg.Name,
			Description: cfg.Description,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
