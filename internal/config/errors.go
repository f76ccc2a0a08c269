package config

import (
	"fmt"
)

type InvalidYAMLError struct {
	Wrapped error
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf("relkit.yml is not a valid yaml document: %v", e.Wrapped)
}

type InvalidConfigError struct {
	Wrapped error
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("relkit.yml failed validation: %v", e.Wrapped)
}

type ConfigExistsError struct {
	Path string
}

func (e *ConfigExistsError) Error() string {
	return fmt.Sprintf("refusing to overwrite existing config: %s", e.Path)
}
