package env

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotweave/pkg/errors"
	"github.com/arthur-debert/dotweave/pkg/filesystem"
	"github.com/arthur-debert/dotweave/pkg/logging"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultHostnameFile is consulted before falling back to the
// hostname command.
const DefaultHostnameFile = "/etc/hostname"

// Builder produces the binding set for one run. The probe fields
// default to the real host collaborators and exist so tests can
// substitute them.
type Builder struct {
	FS            filesystem.FS
	VariablesPath string
	Flags         []string

	// HostnameFile is read first when computing the hostname binding
	HostnameFile string

	// Getenv resolves environment variables, defaulting to os.Getenv
	Getenv func(key string) string

	// RunCommand invokes a host command and returns its stdout,
	// defaulting to exec.Command
	RunCommand func(name string, args ...string) ([]byte, error)
}

// NewBuilder creates a Builder wired to the real host collaborators
func NewBuilder(fs filesystem.FS, variablesPath string, flags []string) *Builder {
	return &Builder{
		FS:            fs,
		VariablesPath: variablesPath,
		Flags:         flags,
		HostnameFile:  DefaultHostnameFile,
		Getenv:        os.Getenv,
		RunCommand: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).Output()
		},
	}
}

// Build assembles the binding set. Insertion order is the precedence
// contract: computed values first, then the variables file, then the
// command-line flags, so flags win on key collision.
func (b *Builder) Build() (Env, *errors.Error) {
	logger := logging.GetLogger("env")

	e := Env{
		"hostname": String(b.hostname()),
		"username": String(b.username()),
		"os":       String(b.operatingSystem()),
	}

	logger.Debug().Str("path", b.VariablesPath).Msg("trying to read variables file")
	if data, err := b.FS.ReadFile(b.VariablesPath); err == nil {
		if verr := b.insertVariables(e, data); verr != nil {
			return nil, verr
		}
	} else {
		logger.Debug().Str("path", b.VariablesPath).Msg("failed to read variables file")
	}

	for _, flag := range b.Flags {
		e[flag] = Bool(true)
	}

	for k, v := range e {
		logger.Info().Str("key", k).Str("value", v.GoString()).Msg("env binding")
	}

	return e, nil
}

// insertVariables parses the variables file contents and inserts each
// key. Only string and boolean values are accepted; anything else is
// a fatal configuration error located at the variables path.
func (b *Builder) insertVariables(e Env, data []byte) *errors.Error {
	raw := map[string]interface{}{}

	ext := strings.ToLower(filepath.Ext(b.VariablesPath))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return errors.Wrap(err, errors.ErrVariablesParse, b.VariablesPath)
		}
	} else {
		if err := toml.Unmarshal(data, &raw); err != nil {
			return errors.Wrap(err, errors.ErrVariablesParse, b.VariablesPath)
		}
	}

	for key, value := range raw {
		switch v := value.(type) {
		case string:
			e[key] = String(v)
		case bool:
			e[key] = Bool(v)
		default:
			return errors.Newf(errors.ErrVariableType, b.VariablesPath,
				"unsupported variable type %T for %q", value, key)
		}
	}

	return nil
}

// hostname reads the host identity file, falls back to the hostname
// command, and degrades to the empty string when both fail.
func (b *Builder) hostname() string {
	if data, err := b.FS.ReadFile(b.HostnameFile); err == nil {
		return strings.TrimSpace(string(data))
	}
	if out, err := b.RunCommand("hostname"); err == nil {
		return strings.TrimSpace(string(out))
	}
	return ""
}

// username returns the first non-empty of $USER and $USERNAME
func (b *Builder) username() string {
	if user := b.Getenv("USER"); user != "" {
		return user
	}
	return b.Getenv("USERNAME")
}

// operatingSystem returns the trimmed, lower-cased uname output, or
// "unknown" when the command cannot be run.
func (b *Builder) operatingSystem() string {
	out, err := b.RunCommand("uname")
	if err != nil {
		return "unknown"
	}
	return strings.ToLower(strings.TrimSpace(string(out)))
}
