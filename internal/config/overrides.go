package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces the environment variables that override settings.
const EnvPrefix = "LINKRETRY"

// overrideKeys maps viper keys to the command-line flag that sets them. The
// environment variable is EnvPrefix + "_" + upper(key).
var overrideKeys = map[string]string{
	"max_attempts": "max-attempts",
	"delay":        "delay",
	"backoff":      "backoff",
	"max_delay":    "max-delay",
	"parallel":     "parallel",
	"rate_limit":   "rate-limit",
	"timeout":      "timeout",
	"checker":      "checker",
}

// ApplyOverrides layers environment variables and changed flags over cfg,
// flags taking precedence, then re-validates. flags may be nil.
func ApplyOverrides(cfg *Config, flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	for key, flagName := range overrideKeys {
		if err := v.BindEnv(key); err != nil {
			return err
		}
		if flags == nil {
			continue
		}
		if flag := flags.Lookup(flagName); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return err
			}
		}
	}

	if v.IsSet("max_attempts") {
		cfg.Retry.MaxAttempts = v.GetInt("max_attempts")
	}
	if v.IsSet("delay") {
		cfg.Retry.Delay = v.GetDuration("delay")
	}
	if v.IsSet("backoff") {
		cfg.Retry.Backoff = strings.ToLower(strings.TrimSpace(v.GetString("backoff")))
	}
	if v.IsSet("max_delay") {
		cfg.Retry.MaxDelay = v.GetDuration("max_delay")
	}
	if v.IsSet("parallel") {
		cfg.Run.Parallel = v.GetInt("parallel")
	}
	if v.IsSet("rate_limit") {
		cfg.Run.RateLimit = v.GetFloat64("rate_limit")
	}
	if v.IsSet("timeout") {
		cfg.Run.Timeout = v.GetDuration("timeout")
	}
	if v.IsSet("checker") {
		cfg.Checker.Command = v.GetString("checker")
	}

	if flags != nil {
		if flag := flags.Lookup("checker-arg"); flag != nil && flag.Changed {
			args, err := flags.GetStringArray("checker-arg")
			if err != nil {
				return err
			}
			cfg.Checker.Args = args
		}
	}

	return ValidateConfig(cfg)
}
