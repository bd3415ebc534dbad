package config

import "time"

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = ".linkretry.yml"

// FilePlaceholder in a checker argument is replaced with the target path.
const FilePlaceholder = "{file}"

// Backoff strategies accepted in retry.backoff.
const (
	BackoffFixed       = "fixed"
	BackoffExponential = "exponential"
)

// Config represents the full linkretry configuration document.
type Config struct {
	Checker  CheckerConfig  `yaml:"checker"`
	Retry    RetryConfig    `yaml:"retry"`
	Run      RunConfig      `yaml:"run"`
	Discover DiscoverConfig `yaml:"discover"`
}

// CheckerConfig describes how to invoke the external link checker.
type CheckerConfig struct {
	Command string            `yaml:"command" validate:"required"`
	Args    []string          `yaml:"args,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
	WorkDir string            `yaml:"workdir,omitempty"`
}

// RetryConfig bounds how often and how patiently a failing file is retried.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" validate:"min=1,max=20"`
	Delay       time.Duration `yaml:"delay" validate:"min=0,max=10m"`
	Backoff     string        `yaml:"backoff" validate:"oneof=fixed exponential"`
	Multiplier  float64       `yaml:"multiplier" validate:"gte=1,lte=10"`
	MaxDelay    time.Duration `yaml:"max_delay" validate:"min=0,max=1h"`
}

// RunConfig holds batch-wide execution parameters.
type RunConfig struct {
	Parallel  int           `yaml:"parallel" validate:"min=1,max=64"`
	RateLimit float64       `yaml:"rate_limit" validate:"gte=0"`
	Timeout   time.Duration `yaml:"timeout" validate:"min=0"`
}

// DiscoverConfig controls which files discovery mode yields.
type DiscoverConfig struct {
	Include []string `yaml:"include" validate:"omitempty,dive,required"`
	Exclude []string `yaml:"exclude" validate:"omitempty,dive,required"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Checker: CheckerConfig{
			Command: "markdown-link-check",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			Delay:       5 * time.Second,
			Backoff:     BackoffFixed,
			Multiplier:  2,
			MaxDelay:    time.Minute,
		},
		Run: RunConfig{
			Parallel: 1,
		},
		Discover: DiscoverConfig{
			Include: []string{"*.md"},
			Exclude: []string{"CHANGELOG*"},
		},
	}
}
