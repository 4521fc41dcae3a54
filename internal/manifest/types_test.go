package manifest

import (
	"testing"

	"github.com/quantmind-br/ado2tf/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.False(t, opts.ContinueOnError, "ContinueOnError should default to false")
	assert.Empty(t, opts.Report, "Report should default to empty")
}

func TestJob_Action(t *testing.T) {
	tests := []struct {
		name     string
		job      Job
		expected string
	}{
		{name: "extract", job: Job{Extract: &ExtractJob{}}, expected: ActionExtract},
		{name: "generate", job: Job{Generate: &GenerateJob{}}, expected: ActionGenerate},
		{name: "neither", job: Job{}, expected: ""},
		{name: "both", job: Job{Extract: &ExtractJob{}, Generate: &GenerateJob{}}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.job.Action())
		})
	}
}

func TestJob_Validate(t *testing.T) {
	tests := []struct {
		name    string
		job     Job
		wantErr error
	}{
		{
			name: "valid extract",
			job:  Job{Extract: &ExtractJob{URL: "https://dev.azure.com/org/_apis/projects"}},
		},
		{
			name: "valid generate with alias",
			job:  Job{Generate: &GenerateJob{Kind: "vg", Input: "groups.json"}},
		},
		{
			name:    "blank url",
			job:     Job{Extract: &ExtractJob{URL: "   "}},
			wantErr: ErrEmptyURL,
		},
		{
			name:    "unknown kind",
			job:     Job{Generate: &GenerateJob{Kind: "pipeline", Input: "p.json"}},
			wantErr: domain.ErrUnknownKind,
		},
		{
			name: "kind may be omitted at job level",
			job:  Job{Generate: &GenerateJob{Input: "p.json"}},
		},
		{
			name:    "missing input",
			job:     Job{Generate: &GenerateJob{Kind: "project"}},
			wantErr: ErrEmptyInput,
		},
		{
			name:    "no action",
			job:     Job{Name: "idle"},
			wantErr: ErrNoAction,
		},
		{
			name: "both actions",
			job: Job{
				Extract:  &ExtractJob{URL: "u"},
				Generate: &GenerateJob{Kind: "project", Input: "p.json"},
			},
			wantErr: ErrMultipleActions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfig_Validate_NoJobs(t *testing.T) {
	cfg := &Config{Jobs: []Job{}, Options: DefaultOptions()}

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrNoJobs)
}

func TestConfig_Validate_ReportsJobIndex(t *testing.T) {
	cfg := &Config{
		Jobs: []Job{
			{Name: "ok", Extract: &ExtractJob{URL: "u"}},
			{Name: "bad", Extract: &ExtractJob{}},
		},
	}

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrEmptyURL)
	assert.Contains(t, err.Error(), "job 1 (bad)")
}

func TestConfig_Validate_DuplicateNames(t *testing.T) {
	cfg := &Config{
		Jobs: []Job{
			{Name: "render", Generate: &GenerateJob{Kind: "project", Input: "a.json"}},
			{Generate: &GenerateJob{Kind: "project", Input: "b.json"}},
			{Name: "render", Generate: &GenerateJob{Kind: "project", Input: "c.json"}},
		},
	}

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Contains(t, err.Error(), "job 2 (render)")

	cfg.Jobs[2].Name = "render-c"
	assert.NoError(t, cfg.Validate())
}

func TestConfig_UpstreamURL(t *testing.T) {
	cfg := &Config{
		Jobs: []Job{
			{Extract: &ExtractJob{URL: "old", Output: "p.json"}},
			{Extract: &ExtractJob{URL: "new", Output: "p.json"}},
			{Generate: &GenerateJob{Input: "p.json"}},
			{Extract: &ExtractJob{URL: "later", Output: "q.json"}},
			{Generate: &GenerateJob{Kind: "project", Input: "q.json"}},
			{Extract: &ExtractJob{URL: "stdout"}},
		},
	}

	url, ok := cfg.UpstreamURL(2)
	assert.True(t, ok)
	assert.Equal(t, "new", url, "latest earlier extract wins")

	url, ok = cfg.UpstreamURL(4)
	assert.True(t, ok)
	assert.Equal(t, "later", url)

	_, ok = cfg.UpstreamURL(0)
	assert.False(t, ok, "extract jobs have no upstream")

	_, ok = cfg.UpstreamURL(99)
	assert.False(t, ok)
}
