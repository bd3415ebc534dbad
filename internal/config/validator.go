package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	linkerrors "github.com/alexisbeaulieu97/linkretry/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Report fields by their YAML key so messages match the config file.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig performs schema and cross-field validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return linkerrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	if strings.TrimSpace(cfg.Checker.Command) == "" {
		return linkerrors.NewValidationError("checker.command", "must not be blank", nil)
	}

	placeholders := 0
	for _, arg := range cfg.Checker.Args {
		placeholders += strings.Count(arg, FilePlaceholder)
	}
	if placeholders > 1 {
		return linkerrors.NewValidationError("checker.args", fmt.Sprintf("%s may appear at most once", FilePlaceholder), nil)
	}

	if cfg.Retry.Backoff == BackoffExponential && cfg.Retry.MaxDelay > 0 && cfg.Retry.MaxDelay < cfg.Retry.Delay {
		return linkerrors.NewValidationError("retry.max_delay", "must not be shorter than retry.delay", nil)
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := yamlFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s failed validation for tag '%s=%s'", field, ve.Tag(), ve.Param())
		}
		return linkerrors.NewValidationError(field, msg, err)
	}

	return linkerrors.NewValidationError("config", err.Error(), err)
}

// yamlFieldName drops the root struct name from the namespace, which is
// already built from YAML keys.
func yamlFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
