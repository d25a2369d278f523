package workshop

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrProblemNotFound indicates no problem with the requested name exists.
var ErrProblemNotFound = errors.New("problem not found")

// Problem is one workshop exercise.
type Problem struct {
	// Name identifies the problem, e.g. "toy" or "real-word".
	Name string `yaml:"name"`

	// Description is shown when listing problems.
	Description string `yaml:"description,omitempty"`

	// Prompt is the user message sent to the model.
	Prompt string `yaml:"prompt"`

	// System is an optional system message.
	System string `yaml:"system,omitempty"`

	// Samples is how many parallel completions to draw. Defaults to 5.
	Samples int `yaml:"samples,omitempty"`

	// Temperature is the sampling temperature. Defaults to 1.0; parallel
	// reasoning needs the samples to differ.
	Temperature *float64 `yaml:"temperature,omitempty"`

	// Tools names the registered tools to advertise, e.g. email_search.
	Tools []string `yaml:"tools,omitempty"`

	// Expected is the normalized expected answer, when known. The CLI
	// uses it to grade the vote.
	Expected string `yaml:"expected,omitempty"`

	// Numeric selects number-only answer comparison for the vote.
	Numeric bool `yaml:"numeric,omitempty"`
}

// withDefaults fills unset fields.
func (p Problem) withDefaults() Problem {
	if p.Samples == 0 {
		p.Samples = 5
	}
	if p.Temperature == nil {
		t := 1.0
		p.Temperature = &t
	}
	return p
}

// validate checks required fields.
func (p *Problem) validate() error {
	if p.Name == "" {
		return errors.New("problem name is required")
	}
	if p.Prompt == "" {
		return fmt.Errorf("problem %q: prompt is required", p.Name)
	}
	if p.Samples < 0 {
		return fmt.Errorf("problem %q: samples must be >= 0", p.Name)
	}
	return nil
}

// problemFile is the YAML document layout.
type problemFile struct {
	Problems []Problem `yaml:"problems"`
}

// LoadProblems reads problem definitions from a YAML file.
// Duplicate names are an error.
func LoadProblems(path string) ([]Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading problems: %w", err)
	}
	return ParseProblems(data)
}

// ParseProblems parses problem definitions from YAML bytes.
func ParseProblems(data []byte) ([]Problem, error) {
	var file problemFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing problems: %w", err)
	}
	if len(file.Problems) == 0 {
		return nil, errors.New("no problems defined")
	}

	seen := make(map[string]bool, len(file.Problems))
	out := make([]Problem, 0, len(file.Problems))
	for i := range file.Problems {
		p := file.Problems[i].withDefaults()
		if err := p.validate(); err != nil {
			return nil, err
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate problem name %q", p.Name)
		}
		seen[p.Name] = true
		out = append(out, p)
	}
	return out, nil
}

// Find returns the named problem from the list.
func Find(problems []Problem, name string) (Problem, error) {
	for _, p := range problems {
		if p.Name == name {
			return p, nil
		}
	}
	return Problem{}, fmt.Errorf("%w: %s", ErrProblemNotFound, name)
}
