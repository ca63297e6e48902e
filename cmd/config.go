package cmd

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultScanTimeoutSecs    = 10
	defaultServeAddr          = "127.0.0.1:8080"
	defaultRateLimit          = 10
	defaultRateBurst          = 20
	defaultShutdownTimeoutSec = 30
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Scan   ScanRuntimeConfig
	Server ServerRuntimeConfig
}

// ScanRuntimeConfig consolidates settings for outbound scan requests, shared
// by the scan and serve commands.
type ScanRuntimeConfig struct {
	TimeoutSecs int
	UserAgent   string
}

// ServerRuntimeConfig consolidates flag-driven settings for the serve command.
type ServerRuntimeConfig struct {
	Addr            string
	AuthToken       string
	CORSOrigins     []string
	RateLimit       int
	RateBurst       int
	ShutdownTimeout time.Duration
	DBPath          string
	WebhookURL      string
}

type defaultOverrides struct {
	ScanTimeoutSecs *int
	ScanUserAgent   string
	ServerAddr      string
	ServerAuthToken string
	CORSOrigins     []string
	RateLimit       *int
	RateBurst       *int
	ShutdownTimeout string
	DBPath          string
	WebhookURL      string
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Scan: ScanRuntimeConfig{
			TimeoutSecs: defaultScanTimeoutSecs,
		},
		Server: ServerRuntimeConfig{
			Addr:            defaultServeAddr,
			RateLimit:       defaultRateLimit,
			RateBurst:       defaultRateBurst,
			ShutdownTimeout: defaultShutdownTimeoutSec * time.Second,
		},
	}
}

func loadDefaultOverrides() defaultOverrides {
	overrides := defaultOverrides{}

	if viper.IsSet("scan.timeout_secs") {
		val := viper.GetInt("scan.timeout_secs")
		overrides.ScanTimeoutSecs = &val
	}

	if viper.IsSet("scan.user_agent") {
		overrides.ScanUserAgent = viper.GetString("scan.user_agent")
	}

	if viper.IsSet("server.addr") {
		overrides.ServerAddr = viper.GetString("server.addr")
	}

	if viper.IsSet("server.auth_token") {
		overrides.ServerAuthToken = viper.GetString("server.auth_token")
	}

	if viper.IsSet("server.cors_origins") {
		overrides.CORSOrigins = viper.GetStringSlice("server.cors_origins")
	}

	if viper.IsSet("server.rate_limit") {
		val := viper.GetInt("server.rate_limit")
		overrides.RateLimit = &val
	}

	if viper.IsSet("server.rate_burst") {
		val := viper.GetInt("server.rate_burst")
		overrides.RateBurst = &val
	}

	if viper.IsSet("server.shutdown_timeout") {
		overrides.ShutdownTimeout = viper.GetString("server.shutdown_timeout")
	}

	if viper.IsSet("waitlist.db_path") {
		overrides.DBPath = viper.GetString("waitlist.db_path")
	}

	if viper.IsSet("notify.webhook_url") {
		overrides.WebhookURL = viper.GetString("notify.webhook_url")
	}

	return overrides
}

// applyConfigDefaults merges config file defaults into the runtime config when
// the user did not explicitly override the corresponding flag.
func applyConfigDefaults() {
	overrides := loadDefaultOverrides()

	if overrides.ScanTimeoutSecs != nil {
		applyIntDefault(scanCmd.Flags(), "timeout", *overrides.ScanTimeoutSecs, func(v int) {
			cliConfig.Scan.TimeoutSecs = v
		})
	}

	if overrides.ScanUserAgent != "" {
		cliConfig.Scan.UserAgent = overrides.ScanUserAgent
		setStringFlagIfUnset(serveCmd.Flags(), "user-agent", overrides.ScanUserAgent)
	}

	if overrides.ServerAddr != "" {
		setStringFlagIfUnset(serveCmd.Flags(), "addr", overrides.ServerAddr)
	}

	if overrides.ServerAuthToken != "" {
		setStringFlagIfUnset(serveCmd.Flags(), "auth-token", overrides.ServerAuthToken)
	}

	if len(overrides.CORSOrigins) > 0 {
		applyStringSliceDefault(serveCmd.Flags(), "cors-origins", overrides.CORSOrigins, func(v []string) {
			cliConfig.Server.CORSOrigins = v
		})
	}

	if overrides.RateLimit != nil {
		applyIntDefault(serveCmd.Flags(), "rate-limit", *overrides.RateLimit, func(v int) {
			cliConfig.Server.RateLimit = v
		})
	}

	if overrides.RateBurst != nil {
		applyIntDefault(serveCmd.Flags(), "rate-burst", *overrides.RateBurst, func(v int) {
			cliConfig.Server.RateBurst = v
		})
	}

	if overrides.ShutdownTimeout != "" {
		setStringFlagIfUnset(serveCmd.Flags(), "shutdown-timeout", overrides.ShutdownTimeout)
	}

	if overrides.DBPath != "" {
		setStringFlagIfUnset(serveCmd.Flags(), "db", overrides.DBPath)
		setStringFlagIfUnset(waitlistCmd.PersistentFlags(), "db", overrides.DBPath)
	}

	if overrides.WebhookURL != "" {
		setStringFlagIfUnset(serveCmd.Flags(), "webhook-url", overrides.WebhookURL)
	}
}

func applyIntDefault(flags *pflag.FlagSet, name string, value int, setter func(int)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyStringSliceDefault(flags *pflag.FlagSet, name string, value []string, setter func([]string)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func setStringFlagIfUnset(flags *pflag.FlagSet, name, value string) {
	if flags == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag == nil || flag.Changed {
		return
	}
	_ = flag.Value.Set(value)
}
