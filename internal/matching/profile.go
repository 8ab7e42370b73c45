package matching

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/profile.cue
var profileSchema []byte

// Profile is a named set of weight overrides, the "adjust algorithm" file.
type Profile struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Mode        Mode    `yaml:"mode"`
	Weights     Weights `yaml:"weights"`
}

// LoadProfile reads a YAML profile, checks it against the embedded schema and
// applies it on top of base (the default model when base is nil).
func LoadProfile(path string, base *Model) (*Model, *Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read profile file: %w", err)
	}
	return ParseProfile(b, base)
}

// ParseProfile is LoadProfile for bytes already in memory.
func ParseProfile(data []byte, base *Model) (*Model, *Profile, error) {
	if base == nil {
		base = DefaultModel()
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	if err := validateProfile(raw); err != nil {
		return nil, nil, err
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, nil, fmt.Errorf("unmarshal profile: %w", err)
	}

	m := base
	var err error
	if p.Mode != "" && p.Mode != base.Mode() {
		if m, err = m.WithMode(p.Mode); err != nil {
			return nil, nil, err
		}
	}
	if len(p.Weights) > 0 {
		if m, err = m.WithWeights(p.Weights); err != nil {
			return nil, nil, err
		}
	}
	return m, &p, nil
}

func validateProfile(raw map[string]any) error {
	if raw == nil {
		// An empty document keeps the base model.
		return nil
	}
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(profileSchema, cue.Filename("profile.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile profile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Profile"))

	data := ctx.Encode(raw)
	if err := data.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	unified := def.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return nil
}
