package crypto

import (
	"crypto/rand"
	"io"
)

// Config adjusts dispatch behavior. A nil *Config is valid and selects
// the defaults throughout.
type Config struct {
	// AEADMode seals session keys under AEAD keys. Zero selects EAX.
	AEADMode AEADMode

	// Rand is the entropy source. Nil selects crypto/rand.Reader.
	Rand io.Reader
}

// Random returns the configured entropy source.
func (c *Config) Random() io.Reader {
	if c == nil || c.Rand == nil {
		return rand.Reader
	}
	return c.Rand
}

// AEAD returns the configured AEAD mode.
func (c *Config) AEAD() AEADMode {
	if c == nil || c.AEADMode == 0 {
		return AEADModeEAX
	}
	return c.AEADMode
}
