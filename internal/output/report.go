package output

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/quantmind-br/ado2tf/internal/domain"
	"github.com/quantmind-br/ado2tf/internal/utils"
)

// JobResult records the outcome of one batch job
type JobResult struct {
	Name     string        `json:"name"`
	Action   string        `json:"action"`
	Outputs  []string      `json:"outputs,omitempty"`
	Items    int           `json:"items"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`
	// Skipped is set when an incremental run found the job up to date
	Skipped bool `json:"skipped,omitempty"`
}

// Failed reports whether the job ended in error
func (r JobResult) Failed() bool {
	return r.Error != ""
}

// RunReport is the JSON document written after a batch run
type RunReport struct {
	GeneratedAt time.Time   `json:"generated_at"`
	Manifest    string      `json:"manifest"`
	TotalJobs   int         `json:"total_jobs"`
	Failed      int         `json:"failed"`
	Skipped     int         `json:"skipped"`
	Jobs        []JobResult `json:"jobs"`
}

// ReportCollector accumulates job results for a batch run
type ReportCollector struct {
	mu       sync.RWMutex
	jobs     []JobResult
	manifest string
	path     string
}

// ReportOptions contains options for the report collector
type ReportOptions struct {
	Manifest string
	Path     string
}

func NewReportCollector(opts ReportOptions) *ReportCollector {
	return &ReportCollector{
		jobs:     make([]JobResult, 0),
		manifest: opts.Manifest,
		path:     opts.Path,
	}
}

func (c *ReportCollector) Add(result JobResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = append(c.jobs, result)
}

func (c *ReportCollector) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.jobs)
}

func (c *ReportCollector) FailedCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	failed := 0
	for _, job := range c.jobs {
		if job.Failed() {
			failed++
		}
	}
	return failed
}

func (c *ReportCollector) Report() *RunReport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.buildReport()
}

func (c *ReportCollector) buildReport() *RunReport {
	jobs := make([]JobResult, len(c.jobs))
	copy(jobs, c.jobs)

	failed, skipped := 0, 0
	for _, job := range jobs {
		if job.Failed() {
			failed++
		}
		if job.Skipped {
			skipped++
		}
	}

	return &RunReport{
		GeneratedAt: time.Now(),
		Manifest:    c.manifest,
		TotalJobs:   len(jobs),
		Failed:      failed,
		Skipped:     skipped,
		Jobs:        jobs,
	}
}

// Flush writes the report when a path was configured
func (c *ReportCollector) Flush() error {
	if c.path == "" {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := json.MarshalIndent(c.buildReport(), "", "  ")
	if err != nil {
		return err
	}

	path := utils.ExpandPath(c.path)
	if err := utils.EnsureDir(path); err != nil {
		return domain.NewIOError("create directory for", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return domain.NewIOError("write", path, err)
	}
	return nil
}
