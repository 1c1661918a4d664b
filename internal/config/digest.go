package config

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Digest returns a stable fingerprint of the configuration, used to key
// cached formatting results.
func (c Config) Digest() [32]byte {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		// Config is a flat struct of scalars; encoding cannot fail.
		panic(fmt.Errorf("config digest: %w", err))
	}
	return sha256.Sum256(buf.Bytes())
}
