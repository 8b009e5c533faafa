package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate names fields by their koanf key, so errors read like the YAML
// and APP_ variables that set them.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}

		return name
	})

	return v
}

// messages maps validator tags to a message; %s is the tag parameter.
var messages = map[string]string{
	"required":    "is required",
	"required_if": "is required when %s",
	"min":         "must be at least %s",
	"max":         "must be at most %s",
	"oneof":       "must be one of: %s",
	"url":         "must be a valid URL",
	"numeric":     "must be numeric",
	"timezone":    "must be an IANA timezone name",
}

// Validate checks the loaded configuration. The service refuses to start on
// any error; the Telegram secrets are exempt and checked per request.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	lines := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		lines = append(lines, describe(fe))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(lines, "\n  "))
}

// describe renders one failure as "store.bolt.path is required".
func describe(fe validator.FieldError) string {
	key := configKey(fe.Namespace())

	msg, ok := messages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed validation: %s", key, fe.Tag())
	}

	if strings.Contains(msg, "%s") {
		msg = fmt.Sprintf(msg, fe.Param())
	}

	return key + " " + msg
}

// configKey drops the root struct name: "Config.store.bolt.path" becomes
// "store.bolt.path".
func configKey(namespace string) string {
	_, key, found := strings.Cut(namespace, ".")
	if !found {
		return strings.ToLower(namespace)
	}

	return key
}
