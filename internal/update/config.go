package update

import (
	"time"

	"github.com/sandeepkv93/aitodo/internal/ai"
)

// RuntimeConfig tunes the interactive session.
type RuntimeConfig struct {
	AIStyle       ai.Style
	ActivityLimit int
	StatusTimeout time.Duration
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		AIStyle:       ai.StyleSimple,
		ActivityLimit: 50,
		StatusTimeout: 4 * time.Second,
	}
}

func (c RuntimeConfig) withDefaults() RuntimeConfig {
	d := DefaultRuntimeConfig()
	if !c.AIStyle.IsValid() {
		c.AIStyle = d.AIStyle
	}
	if c.ActivityLimit <= 0 {
		c.ActivityLimit = d.ActivityLimit
	}
	if c.StatusTimeout < 0 {
		c.StatusTimeout = 0
	}
	return c
}
