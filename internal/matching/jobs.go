package matching

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Job is a named set of requirements.
type Job struct {
	ID           string       `json:"id" yaml:"id" validate:"required"`
	Title        string       `json:"title" yaml:"title"`
	Requirements Requirements `json:"requirements" yaml:"requirements"`
}

type jobsFile struct {
	Jobs []Job `yaml:"jobs" validate:"required,min=1,dive"`
}

var validate = validator.New()

// LoadJobs reads a YAML file of the form
//
//	jobs:
//	  - id: backend
//	    title: Backend Engineer
//	    requirements:
//	      skills: [Go, SQL]
//	      minExperience: 3
func LoadJobs(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading jobs file %q: %w", path, err)
	}
	return ParseJobs(data)
}

func ParseJobs(data []byte) ([]Job, error) {
	var file jobsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	if err := validate.Struct(file); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return nil, fmt.Errorf("invalid jobs file: %s failed on %q", first.Namespace(), first.Tag())
		}
		return nil, fmt.Errorf("invalid jobs file: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Jobs))
	for _, job := range file.Jobs {
		if _, dup := seen[job.ID]; dup {
			return nil, fmt.Errorf("invalid jobs file: duplicate job id %q", job.ID)
		}
		seen[job.ID] = struct{}{}
	}

	return file.Jobs, nil
}
