package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/ado2tf/internal/terraform"
)

// Job actions
const (
	ActionExtract  = "extract"
	ActionGenerate = "generate"
)

// Config represents the complete manifest configuration
type Config struct {
	Jobs    []Job   `yaml:"jobs" json:"jobs"`
	Options Options `yaml:"options" json:"options"`
}

// Job is one step of a batch run. Exactly one of Extract or Generate is set.
type Job struct {
	Name     string       `yaml:"name,omitempty" json:"name,omitempty"`
	Extract  *ExtractJob  `yaml:"extract,omitempty" json:"extract,omitempty"`
	Generate *GenerateJob `yaml:"generate,omitempty" json:"generate,omitempty"`
}

// ExtractJob fetches every page of a listing URL
type ExtractJob struct {
	URL    string `yaml:"url" json:"url"`
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
}

// GenerateJob renders Terraform blocks from a JSON file
type GenerateJob struct {
	Kind      string `yaml:"kind" json:"kind"`
	Input     string `yaml:"input" json:"input"`
	Terraform string `yaml:"terraform,omitempty" json:"terraform,omitempty"`
	Import    string `yaml:"import,omitempty" json:"import,omitempty"`
	All       bool   `yaml:"all,omitempty" json:"all,omitempty"`
}

// Options represents global manifest options
type Options struct {
	ContinueOnError bool   `yaml:"continue_on_error" json:"continue_on_error"`
	Report          string `yaml:"report,omitempty" json:"report,omitempty"`
	// Incremental skips generate jobs whose input and definition are unchanged
	Incremental bool   `yaml:"incremental,omitempty" json:"incremental,omitempty"`
	State       string `yaml:"state,omitempty" json:"state,omitempty"`
}

// Action returns the name of the job's action, or "" when none is set
func (j Job) Action() string {
	switch {
	case j.Extract != nil && j.Generate == nil:
		return ActionExtract
	case j.Generate != nil && j.Extract == nil:
		return ActionGenerate
	}
	return ""
}

// Validate checks that the job defines exactly one well-formed action
func (j Job) Validate() error {
	if j.Extract != nil && j.Generate != nil {
		return ErrMultipleActions
	}

	switch {
	case j.Extract != nil:
		if strings.TrimSpace(j.Extract.URL) == "" {
			return ErrEmptyURL
		}
	case j.Generate != nil:
		if j.Generate.Kind != "" {
			if _, err := terraform.ParseKind(j.Generate.Kind); err != nil {
				return err
			}
		}
		if strings.TrimSpace(j.Generate.Input) == "" {
			return ErrEmptyInput
		}
	default:
		return ErrNoAction
	}
	return nil
}

// Validate validates the manifest configuration
func (c *Config) Validate() error {
	if len(c.Jobs) == 0 {
		return ErrNoJobs
	}
	seen := make(map[string]int, len(c.Jobs))
	for i, job := range c.Jobs {
		if err := job.Validate(); err != nil {
			return fmt.Errorf("job %d (%s): %w", i, job.Name, err)
		}
		if job.Name != "" {
			if first, dup := seen[job.Name]; dup {
				return fmt.Errorf("job %d (%s): %w (also used by job %d)", i, job.Name, ErrDuplicateName, first)
			}
			seen[job.Name] = i
		}
		if job.Generate != nil && job.Generate.Kind == "" {
			if _, ok := c.UpstreamURL(i); !ok {
				return fmt.Errorf("job %d (%s): %w", i, job.Name, ErrMissingKind)
			}
		}
	}
	return nil
}

// UpstreamURL returns the URL of the latest extract job before index i whose
// output is the input of the generate job at i
func (c *Config) UpstreamURL(i int) (string, bool) {
	if i < 0 || i >= len(c.Jobs) || c.Jobs[i].Generate == nil {
		return "", false
	}
	input := filepath.Clean(c.Jobs[i].Generate.Input)
	for j := i - 1; j >= 0; j-- {
		extract := c.Jobs[j].Extract
		if extract != nil && extract.Output != "" && filepath.Clean(extract.Output) == input {
			return extract.URL, true
		}
	}
	return "", false
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() Options {
	return Options{
		ContinueOnError: false,
	}
}
