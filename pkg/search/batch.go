package search

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// BatchFile is a file describing several search jobs to run in one CLI
// invocation: each job names its sublevels, a query string, a seed range
// (or explicit seed list), and an output path.
type BatchFile struct {
	Jobs []Job `yaml:"jobs"`
}

// Job is one entry of a BatchFile.
type Job struct {
	// Name identifies the job in logs and output filenames.
	Name string `yaml:"name"`

	// Sublevels maps each sublevel_ident the query references (e.g. "scx7")
	// to the shortcode the loader resolves (usually the same string).
	Sublevels map[string]string `yaml:"sublevels"`

	// Query is the query-language source.
	Query string `yaml:"query"`

	Seeds     []uint32 `yaml:"seeds,omitempty"`
	SeedStart uint32   `yaml:"seedStart,omitempty"`
	SeedEnd   uint64   `yaml:"seedEnd,omitempty"`

	MaxHits int    `yaml:"maxHits,omitempty"`
	Timeout string `yaml:"timeout,omitempty"` // parsed with time.ParseDuration

	// Output is the file path hits are written to as compact JSON, one
	// layout per line (a hit writes one line per sublevel in its query).
	// Empty means <Name>.jsonl in the batch command's -output directory; a
	// relative path is resolved against that directory.
	Output string `yaml:"output,omitempty"`
}

// LoadBatchFromFile reads and validates a batch job file.
func LoadBatchFromFile(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	return LoadBatchFromBytes(data)
}

// LoadBatchFromBytes parses and validates a batch job file from memory.
func LoadBatchFromBytes(data []byte) (*BatchFile, error) {
	var bf BatchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("parsing batch YAML: %w", err)
	}
	if err := bf.Validate(); err != nil {
		return nil, fmt.Errorf("validating batch file: %w", err)
	}
	return &bf, nil
}

// Validate checks every job for the minimum fields a search needs.
func (bf *BatchFile) Validate() error {
	if len(bf.Jobs) == 0 {
		return fmt.Errorf("batch file must declare at least one job")
	}
	for i, j := range bf.Jobs {
		if err := j.Validate(); err != nil {
			return fmt.Errorf("job[%d] %q: %w", i, j.Name, err)
		}
	}
	return nil
}

// Validate checks a single job.
func (j *Job) Validate() error {
	if j.Name == "" {
		return fmt.Errorf("name is required")
	}
	if j.Query == "" {
		return fmt.Errorf("query is required")
	}
	if len(j.Sublevels) == 0 {
		return fmt.Errorf("at least one sublevel is required")
	}
	if len(j.Seeds) == 0 && j.SeedEnd <= uint64(j.SeedStart) {
		return fmt.Errorf("either seeds or a non-empty [seedStart, seedEnd) range is required")
	}
	if j.Timeout != "" {
		if _, err := time.ParseDuration(j.Timeout); err != nil {
			return fmt.Errorf("invalid timeout %q: %w", j.Timeout, err)
		}
	}
	return nil
}

// ParsedTimeout returns j.Timeout parsed as a duration, or 0 if unset.
func (j *Job) ParsedTimeout() time.Duration {
	if j.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(j.Timeout)
	return d
}
