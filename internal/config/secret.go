package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

const secretFileName = "jwt_secret"

// JWTSecretBytes returns the configured signing secret. Without one, a random
// secret is generated once and stored in the data dir so tokens survive
// restarts. generated reports whether a new file was written.
func (c Config) JWTSecretBytes() (secret []byte, generated bool, err error) {
	if c.JWTSecret != "" {
		return []byte(c.JWTSecret), false, nil
	}

	path := filepath.Join(c.DataDir, secretFileName)
	data, err := os.ReadFile(path)
	if err == nil {
		secret, err := hex.DecodeString(strings.TrimSpace(string(data)))
		if err != nil || len(secret) == 0 {
			return nil, false, fmt.Errorf("corrupt jwt secret file %s", path)
		}
		return secret, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, fmt.Errorf("read jwt secret: %w", err)
	}

	secret = make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, false, fmt.Errorf("generate jwt secret: %w", err)
	}
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return nil, false, fmt.Errorf("create data dir: %w", err)
	}
	if err := atomic.WriteFile(path, strings.NewReader(hex.EncodeToString(secret))); err != nil {
		return nil, false, fmt.Errorf("write jwt secret: %w", err)
	}
	// The secret must stay owner-only whatever mode the temp file had.
	if err := os.Chmod(path, 0o600); err != nil {
		return nil, false, fmt.Errorf("chmod jwt secret: %w", err)
	}
	return secret, true, nil
}
