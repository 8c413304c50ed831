package bb

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the configuration used when a script supplies
// none: build DefaultSource with the Go toolchain into DefaultOutput.
func DefaultConfig() Config {
	output := DefaultOutput + executableSuffix()
	flags := []string{"build"}
	flags = append(flags, colorBuildFlags...)
	flags = append(flags, "-o", output)
	return Config{
		Compiler:     DefaultCompiler,
		RebuildFlags: flags,
		Source:       DefaultSource,
		Output:       output,
		EnvPrefix:    DefaultEnvPrefix,
	}
}

// ParseConfig decodes YAML on top of DefaultConfig. Scripts usually embed
// their bb.yaml so the configuration is fixed at compile time.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// Validate reports missing fields and values the tokenizer cannot carry.
func (c Config) Validate() error {
	var errs []error
	if c.Compiler == "" {
		errs = append(errs, errors.New("compiler is required"))
	}
	if c.Source == "" {
		errs = append(errs, errors.New("source is required"))
	}
	if c.EnvPrefix == "" {
		errs = append(errs, errors.New("env_prefix is required"))
	}
	check := func(field, v string) {
		if strings.Contains(v, " ") {
			errs = append(errs, fmt.Errorf("%s %q contains a space", field, v))
		}
	}
	check("compiler", c.Compiler)
	check("source", c.Source)
	for _, f := range c.RebuildFlags {
		check("rebuild flag", f)
	}
	return errors.Join(errs...)
}

// SourceFiles lists every file whose modification makes the binary stale.
func (c Config) SourceFiles() []string {
	return append([]string{c.Source}, c.Deps...)
}

// ReferenceTimeEnv names the variable that carries the reference time to
// relaunched and nested invocations.
func (c Config) ReferenceTimeEnv() string { return c.EnvPrefix + "REFERENCE_TIME" }

// RelaunchedEnv marks a process started by a rebuild. Such a process must
// find itself up to date.
func (c Config) RelaunchedEnv() string { return c.EnvPrefix + "RELAUNCHED" }

// ModifyAllEnv names the variable that makes every file count as modified.
func (c Config) ModifyAllEnv() string { return c.EnvPrefix + "MODIFY_ALL" }

// ParamEnv returns the environment variable consulted for the parameter
// with the given long name.
func (c Config) ParamEnv(long string) string {
	return c.EnvPrefix + strings.ToUpper(strings.ReplaceAll(long, "-", "_"))
}

// RebuildCommand is "<compiler> <rebuild-flags...> <source>".
func (c Config) RebuildCommand() *Command {
	return NewCommand().
		AppendLiteralArgs(c.Compiler).
		AppendLiteralArgs(c.RebuildFlags...).
		AppendLiteralArgs(c.Source)
}
