// Package config loads process-level settings for the meetbot daemon.
//
// Settings come from MEETBOT_* environment variables with sensible
// defaults; per-meeting options (URL, platform, bot name) arrive
// through the session configuration instead and are not read here.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds daemon-level settings.
type Config struct {
	// Headless controls whether browsers run without a window.
	Headless bool

	// ScreenshotDir receives diagnostic screenshots. Empty disables
	// capture.
	ScreenshotDir string

	// JoinTimeout is the default join deadline applied when a session
	// does not specify one.
	JoinTimeout time.Duration

	// BotName is the default display name for sessions that do not
	// set one.
	BotName string

	// MetricsAddr is the listen address for the Prometheus endpoint.
	// Empty disables the endpoint.
	MetricsAddr string
}

// Load reads configuration from the environment.
func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("meetbot")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("headless", true)
	v.SetDefault("screenshot_dir", "")
	v.SetDefault("join_timeout_sec", 60)
	v.SetDefault("bot_name", "Meeting Bot")
	v.SetDefault("metrics_addr", "")

	return Config{
		Headless:      v.GetBool("headless"),
		ScreenshotDir: v.GetString("screenshot_dir"),
		JoinTimeout:   time.Duration(v.GetInt("join_timeout_sec")) * time.Second,
		BotName:       v.GetString("bot_name"),
		MetricsAddr:   v.GetString("metrics_addr"),
	}
}
