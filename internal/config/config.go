package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// DefaultWorkers is used when a build file does not set workers.
const DefaultWorkers = 1

// Build is a parsed build file.
type Build struct {
	Name           string    `yaml:"name" json:"name"`
	SuppressErrors bool      `yaml:"suppress_errors" json:"suppress_errors"`
	Workers        int       `yaml:"workers" json:"workers"`
	Projects       []Project `yaml:"projects" json:"projects"`
	Actions        []Action  `yaml:"actions" json:"actions"`
}

// Project is a directory that every action is applied to.
type Project struct {
	Name string `yaml:"name" json:"name"`

	// Dir is relative to the build file until Load resolves it.
	// Defaults to the project name.
	Dir string `yaml:"dir,omitempty" json:"dir"`
}

// Action is a command run once per project.
type Action struct {
	Name string   `yaml:"name" json:"name"`
	Run  []string `yaml:"run" json:"run"`
}

// Load reads, validates and normalizes the build file at path.
// Project directories in the result are absolute.
func Load(path string) (*Build, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading build file: %v", err), Err: err}
	}

	b, err := Parse(data)
	if err != nil {
		return nil, err
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve build dir: %w", err)
	}
	for i := range b.Projects {
		if !filepath.IsAbs(b.Projects[i].Dir) {
			b.Projects[i].Dir = filepath.Join(base, b.Projects[i].Dir)
		}
	}
	return b, nil
}

// Parse decodes and validates a build file. Project directories are left
// as written.
func Parse(data []byte) (*Build, error) {
	b := &Build{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(b); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ConfigError{Code: ErrCodeParse, Message: "build file is empty"}
		}
		return nil, &ConfigError{Code: ErrCodeParse, Message: err.Error(), Err: err}
	}

	applyDefaults(b)

	if err := Validate(b); err != nil {
		return nil, err
	}
	return b, nil
}

func applyDefaults(b *Build) {
	if b.Workers == 0 {
		b.Workers = DefaultWorkers
	}
	for i := range b.Projects {
		if b.Projects[i].Dir == "" {
			b.Projects[i].Dir = b.Projects[i].Name
		}
	}
}

// Validate checks b against the build schema and rejects duplicate names.
func Validate(b *Build) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile build schema: %w", err)
	}

	v := schema.LookupPath(cue.ParsePath("#Build")).Unify(ctx.Encode(b))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return schemaError(err)
	}

	if err := checkUnique("projects", projectNames(b.Projects)); err != nil {
		return err
	}
	return checkUnique("actions", actionNames(b.Actions))
}

// schemaError converts the first CUE error into a ConfigError.
func schemaError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ConfigError{Code: ErrCodeSchema, Message: err.Error(), Err: err}
	}
	first := errs[0]
	format, args := first.Msg()
	return &ConfigError{
		Code:    ErrCodeSchema,
		Message: fmt.Sprintf(format, args...),
		Path:    strings.Join(first.Path(), "."),
		Err:     err,
	}
}

func checkUnique(field string, names []string) error {
	seen := make(map[string]int, len(names))
	for i, name := range names {
		if j, ok := seen[name]; ok {
			return &ConfigError{
				Code:    ErrCodeDuplicate,
				Message: fmt.Sprintf("duplicate name %q (also at index %d)", name, j),
				Path:    fmt.Sprintf("%s.%d.name", field, i),
			}
		}
		seen[name] = i
	}
	return nil
}

func projectNames(ps []Project) []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

func actionNames(as []Action) []string {
	names := make([]string, len(as))
	for i, a := range as {
		names[i] = a.Name
	}
	return names
}
