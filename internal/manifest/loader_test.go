package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
}

func TestLoader_Load_FileNotFound(t *testing.T) {
	loader := NewLoader()

	cfg, err := loader.Load("/nonexistent/path/manifest.yaml")

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoader_Load_ValidYAML(t *testing.T) {
	loader := NewLoader()

	yamlContent := `
jobs:
  - name: projects
    extract:
      url: https://dev.azure.com/org/_apis/projects?api-version=7.1
      output: projects.json
  - name: project-blocks
    generate:
      kind: project
      input: projects.json
      terraform: projects.tf
      import: projects_import.tf
      all: true
options:
  continue_on_error: true
  report: run.json
`

	tmpDir := t.TempDir()
	manifestPath := filepath.Join(tmpDir, "jobs.yaml")
	err := os.WriteFile(manifestPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := loader.Load(manifestPath)

	require.NoError(t, err)
	require.Len(t, cfg.Jobs, 2)

	assert.Equal(t, "projects", cfg.Jobs[0].Name)
	assert.Equal(t, ActionExtract, cfg.Jobs[0].Action())
	assert.Equal(t, "https://dev.azure.com/org/_apis/projects?api-version=7.1", cfg.Jobs[0].Extract.URL)
	assert.Equal(t, "projects.json", cfg.Jobs[0].Extract.Output)

	gen := cfg.Jobs[1].Generate
	require.NotNil(t, gen)
	assert.Equal(t, ActionGenerate, cfg.Jobs[1].Action())
	assert.Equal(t, "project", gen.Kind)
	assert.Equal(t, "projects.json", gen.Input)
	assert.Equal(t, "projects.tf", gen.Terraform)
	assert.Equal(t, "projects_import.tf", gen.Import)
	assert.True(t, gen.All)

	assert.True(t, cfg.Options.ContinueOnError)
	assert.Equal(t, "run.json", cfg.Options.Report)
}

func TestLoader_Load_ValidJSON(t *testing.T) {
	loader := NewLoader()

	jsonContent := `{
		"jobs": [
			{"extract": {"url": "https://dev.azure.com/org/_apis/git/repositories"}},
			{"generate": {"kind": "repo", "input": "repos.json"}}
		]
	}`

	manifestPath := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(jsonContent), 0644))

	cfg, err := loader.Load(manifestPath)

	require.NoError(t, err)
	require.Len(t, cfg.Jobs, 2)
	assert.Equal(t, "extract-1", cfg.Jobs[0].Name)
	assert.Equal(t, "generate-2", cfg.Jobs[1].Name)
	assert.Empty(t, cfg.Jobs[0].Extract.Output)
	assert.False(t, cfg.Options.ContinueOnError)
}

func TestLoader_Load_InvalidYAML(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("jobs: [unclosed"), 0644))

	cfg, err := NewLoader().Load(manifestPath)

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoader_Load_InvalidJSON(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`{"jobs": [`), 0644))

	cfg, err := NewLoader().Load(manifestPath)

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoader_Load_UnsupportedExtension(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), "jobs.toml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("jobs = []"), 0644))

	cfg, err := NewLoader().Load(manifestPath)

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrUnsupportedExt)
}

func TestLoader_Load_ReadError(t *testing.T) {
	// A directory passes the existence check but cannot be read as a file
	dir := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.Mkdir(dir, 0755))

	cfg, err := NewLoader().Load(dir)

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read manifest file")
}

func TestLoadFromBytes_CaseInsensitiveExt(t *testing.T) {
	data := []byte("jobs:\n  - extract:\n      url: https://dev.azure.com/org/_apis/projects\n")

	for _, ext := range []string{".YAML", ".Yml", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			cfg, err := NewLoader().LoadFromBytes(data, ext)
			require.NoError(t, err)
			assert.Len(t, cfg.Jobs, 1)
		})
	}
}

func TestLoadFromBytes_KindFromUpstreamExtract(t *testing.T) {
	data := []byte(`
jobs:
  - extract:
      url: https://dev.azure.com/org/_apis/projects
      output: ./out/projects.json
  - generate:
      input: out/projects.json
      all: true
`)

	cfg, err := NewLoader().LoadFromBytes(data, ".yaml")
	require.NoError(t, err)

	url, ok := cfg.UpstreamURL(1)
	assert.True(t, ok)
	assert.Equal(t, "https://dev.azure.com/org/_apis/projects", url)
}

func TestLoadFromBytes_Options(t *testing.T) {
	data := []byte(`
jobs:
  - generate:
      kind: project
      input: project.json
options:
  continue_on_error: true
  report: run.json
  incremental: true
  state: .cache/state.json
`)

	cfg, err := NewLoader().LoadFromBytes(data, ".yaml")
	require.NoError(t, err)
	assert.True(t, cfg.Options.ContinueOnError)
	assert.Equal(t, "run.json", cfg.Options.Report)
	assert.True(t, cfg.Options.Incremental)
	assert.Equal(t, ".cache/state.json", cfg.Options.State)
}

func TestLoader_applyDefaults_Names(t *testing.T) {
	cfg := &Config{Jobs: []Job{
		{Name: "keep", Extract: &ExtractJob{URL: "u"}},
		{Generate: &GenerateJob{Kind: "project", Input: "p.json"}},
		{},
	}}

	NewLoader().applyDefaults(cfg)

	assert.Equal(t, "keep", cfg.Jobs[0].Name)
	assert.Equal(t, "generate-2", cfg.Jobs[1].Name)
	assert.Equal(t, "job-3", cfg.Jobs[2].Name)
}

func TestLoadFromBytes_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "no jobs",
			yaml:    "jobs: []\n",
			wantErr: ErrNoJobs,
		},
		{
			name:    "job without action",
			yaml:    "jobs:\n  - name: empty\n",
			wantErr: ErrNoAction,
			wantMsg: "job 0 (empty)",
		},
		{
			name:    "job with both actions",
			yaml:    "jobs:\n  - extract:\n      url: u\n    generate:\n      kind: project\n      input: p.json\n",
			wantErr: ErrMultipleActions,
		},
		{
			name:    "extract without url",
			yaml:    "jobs:\n  - extract:\n      output: out.json\n",
			wantErr: ErrEmptyURL,
		},
		{
			name:    "generate without input",
			yaml:    "jobs:\n  - generate:\n      kind: project\n",
			wantErr: ErrEmptyInput,
		},
		{
			name:    "generate without kind or upstream extract",
			yaml:    "jobs:\n  - generate:\n      input: p.json\n",
			wantErr: ErrMissingKind,
		},
		{
			name:    "generate without kind reading another file",
			yaml:    "jobs:\n  - extract:\n      url: u\n      output: a.json\n  - generate:\n      input: b.json\n",
			wantErr: ErrMissingKind,
		},
		{
			name:    "duplicate explicit names",
			yaml:    "jobs:\n  - name: pull\n    extract:\n      url: u\n  - name: pull\n    extract:\n      url: v\n",
			wantErr: ErrDuplicateName,
			wantMsg: "job 1 (pull)",
		},
		{
			name:    "explicit name colliding with a default",
			yaml:    "jobs:\n  - name: generate-2\n    extract:\n      url: u\n  - generate:\n      kind: project\n      input: p.json\n",
			wantErr: ErrDuplicateName,
			wantMsg: "also used by job 0",
		},
		{
			name:    "second job invalid",
			yaml:    "jobs:\n  - extract:\n      url: u\n  - name: broken\n    generate:\n      kind: pipeline\n      input: p.json\n",
			wantMsg: "job 1 (broken)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewLoader().LoadFromBytes([]byte(tt.yaml), ".yaml")
			assert.Nil(t, cfg)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	errs := []error{
		ErrNoJobs, ErrNoAction, ErrMultipleActions, ErrEmptyURL,
		ErrMissingKind, ErrEmptyInput, ErrDuplicateName, ErrInvalidFormat, ErrFileNotFound, ErrUnsupportedExt,
	}
	seen := make(map[string]bool)
	for _, err := range errs {
		assert.NotEmpty(t, err.Error())
		assert.False(t, seen[err.Error()], "duplicate message %q", err.Error())
		seen[err.Error()] = true
	}
}
