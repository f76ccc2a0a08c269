// Package config loads and validates the relkit configuration file. The file
// is optional: a repository without one runs entirely on defaults, and a
// missing file is not an error.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// RelkitConfigFile is the name of the configuration file, looked up in the
// working directory.
const RelkitConfigFile = "relkit.yml"

const DefaultConfigContent = `# relkit configuration

# RELEASE BRANCH
#
# Production tags (minor bump, patch reset) may only be computed while this
# branch is checked out. Stage tags (patch bump) work on any branch.
releaseBranch: main

# GIT
#
# The executable invoked for every repository operation, and the remote that
# tags are pushed to and deleted from.
gitExecutable: git
remote: origin

# WORKSPACE
#
# Where cloned projects live when no explicit directory is given:
# <drive>/<mainDir>/<project>. Empty values fall back to the RELKIT_DRIVE and
# RELKIT_MAIN_DIR environment variables, then to <home>/projects.
workspace:
  drive: ""
  mainDir: ""

# Echo every git invocation and its exit code to the log.
verboseLaunch: false
`

// configSchema is the JSON Schema the decoded document is checked against
// before any value is trusted. Unknown keys are rejected so a typo fails
// loudly instead of silently running on defaults.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "releaseBranch": {"type": "string", "minLength": 1},
    "gitExecutable": {"type": "string", "minLength": 1},
    "remote": {"type": "string", "minLength": 1},
    "verboseLaunch": {"type": "boolean"},
    "workspace": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "drive": {"type": "string"},
        "mainDir": {"type": "string"}
      }
    }
  }
}`

const configSchemaID = "https://bitshepherds.dev/relkit/config.schema.json"

// Defaults applied for any field the file leaves unset.
const (
	DefaultReleaseBranch = "main"
	DefaultGitExecutable = "git"
	DefaultRemote        = "origin"
)

// WorkspaceConfig holds the configured workspace segments. Empty values
// defer to the environment.
type WorkspaceConfig struct {
	Drive   string `yaml:"drive"`
	MainDir string `yaml:"mainDir"`
}

// Config is the decoded relkit configuration with defaults applied.
type Config struct {
	ReleaseBranch string          `yaml:"releaseBranch"`
	GitExecutable string          `yaml:"gitExecutable"`
	Remote        string          `yaml:"remote"`
	Workspace     WorkspaceConfig `yaml:"workspace"`
	VerboseLaunch bool            `yaml:"verboseLaunch"`
}

// Default returns a Config carrying only the documented defaults.
func Default() *Config {
	return &Config{
		ReleaseBranch: DefaultReleaseBranch,
		GitExecutable: DefaultGitExecutable,
		Remote:        DefaultRemote,
	}
}

// Load reads and validates relkit.yml from dir. A missing file yields the
// defaults; a present but malformed or invalid file is an error.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, RelkitConfigFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &InvalidYAMLError{Wrapped: err}
	}

	if raw != nil {
		if err := validate(raw); err != nil {
			return nil, &InvalidConfigError{Wrapped: err}
		}
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &InvalidYAMLError{Wrapped: err}
	}
	applyDefaults(cfg)
	return cfg, nil
}

// WriteDefault writes the commented starter configuration into dir. It
// refuses to overwrite an existing file.
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, RelkitConfigFile)
	if _, err := os.Stat(path); err == nil {
		return "", &ConfigExistsError{Path: path}
	}
	if err := os.WriteFile(path, []byte(DefaultConfigContent), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// validate checks the decoded YAML document against the embedded schema.
// The document is round-tripped through JSON so its types match what the
// validator expects.
func validate(doc interface{}) error {
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonBytes))
	if err != nil {
		return err
	}

	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(configSchema)))
	if err != nil {
		return err
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(configSchemaID, schemaDoc); err != nil {
		return err
	}
	compiled, err := c.Compile(configSchemaID)
	if err != nil {
		return err
	}
	return compiled.Validate(inst)
}

func applyDefaults(cfg *Config) {
	if cfg.ReleaseBranch == "" {
		cfg.ReleaseBranch = DefaultReleaseBranch
	}
	if cfg.GitExecutable == "" {
		cfg.GitExecutable = DefaultGitExecutable
	}
	if cfg.Remote == "" {
		cfg.Remote = DefaultRemote
	}
}
