package utils

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// ErrSigningToolUnavailable means apksigner could not produce a checksum;
// callers degrade to manual checksum entry instead of failing the upload.
var ErrSigningToolUnavailable = errors.New("apksigner unavailable")

const apksignerTimeout = 30 * time.Second

// SigningCertChecksum runs `apksigner verify --print-certs` on the APK and
// returns the signing certificate's SHA-256 digest as standard Base64, the
// form Android's device-admin provisioning expects before URL-safe encoding.
func SigningCertChecksum(apkPath string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), apksignerTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "apksigner", "verify", "--print-certs", apkPath).Output()
	if err != nil {
		return "", ErrSigningToolUnavailable
	}

	return parseCertChecksum(string(out))
}

// parseCertChecksum picks the SHA-256 digest line out of apksigner output
// and re-encodes the hex digest as standard Base64.
func parseCertChecksum(out string) (string, error) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "SHA-256 digest") {
			continue
		}
		parts := strings.Split(line, ":")
		raw, err := hex.DecodeString(strings.TrimSpace(parts[len(parts)-1]))
		if err != nil {
			return "", ErrSigningToolUnavailable
		}
		return base64.StdEncoding.EncodeToString(raw), nil
	}
	return "", ErrSigningToolUnavailable
}
