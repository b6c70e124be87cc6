package services

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
)

// ProvisioningConfig is the single published APK distribution document.
type ProvisioningConfig struct {
	APKFilename   string `json:"apk_filename"`
	APKURL        string `json:"apk_url"`
	Checksum      string `json:"checksum"`
	PackageName   string `json:"package_name"`
	AdminReceiver string `json:"admin_receiver"`
	FileHash      string `json:"file_hash"`
}

// ProvisioningConfigUpdate carries a partial update; nil fields are left
// unchanged.
type ProvisioningConfigUpdate struct {
	APKURL        *string `json:"apk_url"`
	Checksum      *string `json:"checksum"`
	PackageName   *string `json:"package_name"`
	AdminReceiver *string `json:"admin_receiver"`
}

// ProvisioningStore fronts the config.json file. All load-merge-save
// sequences run under the mutex so concurrent admin writes cannot
// interleave.
type ProvisioningStore struct {
	mu   sync.Mutex
	path string
}

func NewProvisioningStore(path string) *ProvisioningStore {
	return &ProvisioningStore{path: path}
}

// defaultProvisioningConfig points at this portal's own public APK
// endpoint. The checksum stays empty until an admin publishes one, which
// keeps the public provisioning endpoint reporting unconfigured.
func defaultProvisioningConfig() ProvisioningConfig {
	return ProvisioningConfig{
		APKURL:        "https://portal.vastelijn.eu/api/public/apk",
		PackageName:   "com.vastelijnphone",
		AdminReceiver: "com.vastelijnphone/.admin.VasteLijnDeviceAdminReceiver",
	}
}

func (s *ProvisioningStore) load() (ProvisioningConfig, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return defaultProvisioningConfig(), nil
	}
	if err != nil {
		return ProvisioningConfig{}, err
	}
	var cfg ProvisioningConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ProvisioningConfig{}, err
	}
	return cfg, nil
}

func (s *ProvisioningStore) save(cfg ProvisioningConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Load returns the current config, or the hard-coded default when no
// config.json exists yet.
func (s *ProvisioningStore) Load() (ProvisioningConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *ProvisioningStore) Save(cfg ProvisioningConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(cfg)
}

// Update merges the non-nil fields of the partial over the stored config.
func (s *ProvisioningStore) Update(partial ProvisioningConfigUpdate) (ProvisioningConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return ProvisioningConfig{}, err
	}

	if partial.APKURL != nil {
		cfg.APKURL = *partial.APKURL
	}
	if partial.Checksum != nil {
		cfg.Checksum = *partial.Checksum
	}
	if partial.PackageName != nil {
		cfg.PackageName = *partial.PackageName
	}
	if partial.AdminReceiver != nil {
		cfg.AdminReceiver = *partial.AdminReceiver
	}

	if err := s.save(cfg); err != nil {
		return ProvisioningConfig{}, err
	}
	return cfg, nil
}

// SetUpload records a freshly uploaded APK. The checksum is only replaced
// when apksigner produced one; otherwise the stored value stays.
func (s *ProvisioningStore) SetUpload(filename, fileHash, certChecksum string) (ProvisioningConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return ProvisioningConfig{}, err
	}
	cfg.APKFilename = filename
	cfg.FileHash = fileHash
	if certChecksum != "" {
		cfg.Checksum = certChecksum
	}
	if err := s.save(cfg); err != nil {
		return ProvisioningConfig{}, err
	}
	return cfg, nil
}

// ClearUpload removes the APK reference after a delete. Idempotent.
func (s *ProvisioningStore) ClearUpload() (ProvisioningConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return ProvisioningConfig{}, err
	}
	cfg.APKFilename = ""
	cfg.FileHash = ""
	if err := s.save(cfg); err != nil {
		return ProvisioningConfig{}, err
	}
	return cfg, nil
}

// ToURLSafeBase64 converts a standard Base64 checksum to the URL-safe form
// Android's device-admin provisioning requires: + becomes -, / becomes _,
// trailing = padding is stripped.
func ToURLSafeBase64(checksum string) string {
	out := strings.ReplaceAll(checksum, "+", "-")
	out = strings.ReplaceAll(out, "/", "_")
	return strings.TrimRight(out, "=")
}
