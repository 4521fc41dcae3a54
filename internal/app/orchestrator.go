package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/quantmind-br/ado2tf/internal/config"
	"github.com/quantmind-br/ado2tf/internal/domain"
	"github.com/quantmind-br/ado2tf/internal/extractor"
	"github.com/quantmind-br/ado2tf/internal/manifest"
	"github.com/quantmind-br/ado2tf/internal/output"
	"github.com/quantmind-br/ado2tf/internal/state"
	"github.com/quantmind-br/ado2tf/internal/terraform"
	"github.com/quantmind-br/ado2tf/internal/utils"
)

// Orchestrator coordinates extraction, generation and batch runs
type Orchestrator struct {
	config   *config.Config
	deps     *Dependencies
	logger   *utils.Logger
	progress io.Writer
	dryRun   bool
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	domain.CommonOptions
	Config *config.Config
	DryRun bool

	// Getter replaces the HTTP client, mainly for tests
	Getter domain.PageGetter
	// Stdin and Stdout default to the process streams
	Stdin  io.Reader
	Stdout io.Writer
	// Progress receives the page spinner; when nil a spinner is drawn on
	// stderr only if it is a terminal
	Progress io.Writer
	// LogOutput defaults to stderr
	LogOutput io.Writer
}

// GenerateRequest describes one generate run
type GenerateRequest struct {
	Kind      terraform.Kind
	Input     string
	Terraform string
	Import    string
	All       bool
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := config.DefaultLogLevel
	logFormat := config.DefaultLogFormat
	if cfg.Logging.Level != "" {
		logLevel = cfg.Logging.Level
	}
	if cfg.Logging.Format != "" {
		logFormat = cfg.Logging.Format
	}

	logger := utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  logFormat,
		Output:  opts.LogOutput,
		Verbose: opts.Verbose,
	})

	progress := opts.Progress
	if progress == nil && cfg.Output.Progress && !opts.NoProgress && utils.IsTerminal(os.Stderr) {
		progress = os.Stderr
	}
	if opts.NoProgress || !cfg.Output.Progress {
		progress = nil
	}

	deps := NewDependencies(DependencyOptions{
		Config: cfg,
		Logger: logger,
		Getter: opts.Getter,
		Stdin:  opts.Stdin,
		Stdout: opts.Stdout,
		DryRun: opts.DryRun,
	})

	return &Orchestrator{
		config:   cfg,
		deps:     deps,
		logger:   logger,
		progress: progress,
		dryRun:   opts.DryRun,
	}, nil
}

// Logger returns the orchestrator's logger
func (o *Orchestrator) Logger() *utils.Logger {
	return o.logger
}

// Extract fetches every page of url and writes the aggregated items to
// outputPath, or stdout when it is empty. It returns the number of items.
func (o *Orchestrator) Extract(ctx context.Context, url, outputPath string) (int, error) {
	startTime := time.Now()

	token, err := o.config.RequireToken()
	if err != nil {
		return 0, err
	}

	getter, err := o.deps.Getter()
	if err != nil {
		return 0, fmt.Errorf("failed to create http client: %w", err)
	}

	o.logger.Info().
		Str("url", utils.RedactURL(url)).
		Str("api_version", o.config.API.Version).
		Msg("Starting extraction")

	var onPage func(extractor.PageInfo)
	if o.progress != nil {
		bar := utils.NewProgressBar(o.progress, -1, utils.DescFetching)
		defer bar.Finish()
		onPage = func(extractor.PageInfo) {
			_ = bar.Add(1)
		}
	}

	paginator, err := extractor.NewPaginator(getter, extractor.PaginatorOptions{
		Token:      token,
		APIVersion: o.config.API.Version,
		OnPage:     onPage,
		Logger:     o.logger,
	})
	if err != nil {
		return 0, err
	}

	items, err := paginator.FetchAll(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			o.logger.Warn().Msg("Extraction cancelled")
			return 0, ctx.Err()
		}
		return 0, err
	}

	if err := o.deps.Writer.WriteJSON(outputPath, items); err != nil {
		return 0, err
	}

	if kind, ok := DetectKind(url); ok {
		o.logger.Debug().Str("kind", kind.String()).Msg("Listing matches a generator kind")
	}

	o.logger.Info().
		Int("items", len(items)).
		Dur("duration", time.Since(startTime)).
		Msg("Extraction completed")

	return len(items), nil
}

// Generate renders Terraform blocks for the selected input entities and
// writes them. It returns the number of blocks rendered.
func (o *Orchestrator) Generate(ctx context.Context, req GenerateRequest) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	log := o.logger.WithKind(req.Kind.String())

	entities, err := o.deps.Reader.ReadEntities(req.Input, req.All)
	if err != nil {
		return 0, err
	}

	blocks, err := terraform.RenderAll(req.Kind, entities)
	if err != nil {
		return 0, err
	}

	resources, imports := terraform.Join(blocks)
	if err := o.deps.Writer.WriteBlocks(resources, imports, req.Terraform, req.Import); err != nil {
		return 0, err
	}

	log.Debug().Int("blocks", len(blocks)).Msg("Generation completed")
	return len(blocks), nil
}

// RunManifest executes the jobs of a batch manifest sequentially in file order
func (o *Orchestrator) RunManifest(ctx context.Context, manifestCfg *manifest.Config, manifestPath string) error {
	startTime := time.Now()
	totalJobs := len(manifestCfg.Jobs)

	report := output.NewReportCollector(output.ReportOptions{
		Manifest: manifestPath,
		Path:     manifestCfg.Options.Report,
	})
	defer func() {
		if err := report.Flush(); err != nil {
			o.logger.Warn().Err(err).Msg("Failed to write run report")
		}
	}()

	tracker := o.newStateManager(ctx, manifestCfg, manifestPath)
	completed := false
	defer func() {
		if tracker.IsDisabled() || o.dryRun {
			return
		}
		if completed {
			if n := tracker.Prune(); n > 0 {
				o.logger.Debug().Int("removed", n).Msg("Pruned jobs no longer in the manifest")
			}
		}
		if err := tracker.Save(context.WithoutCancel(ctx)); err != nil {
			o.logger.Warn().Err(err).Str("path", tracker.Path()).Msg("Failed to save run state")
		}
	}()

	o.logger.Info().
		Int("jobs", totalJobs).
		Bool("continue_on_error", manifestCfg.Options.ContinueOnError).
		Bool("incremental", manifestCfg.Options.Incremental).
		Msg("Starting manifest execution")

	var firstError error
	for i, job := range manifestCfg.Jobs {
		if ctx.Err() != nil {
			o.logger.Warn().Msg("Manifest execution cancelled")
			return ctx.Err()
		}

		jobStart := time.Now()
		o.logger.Info().
			Int("job_idx", i).
			Str("job", job.Name).
			Str("action", job.Action()).
			Int("total", totalJobs).
			Msg("Processing job")

		tracker.MarkSeen(job.Name)
		result := o.runJob(ctx, manifestCfg, i, tracker)
		result.Duration = time.Since(jobStart)
		report.Add(result.JobResult)

		if result.err != nil {
			o.logger.Error().
				Err(result.err).
				Int("job_idx", i).
				Str("job", job.Name).
				Dur("duration", result.Duration).
				Msg("Job failed")

			if ctx.Err() != nil {
				return ctx.Err()
			}
			if firstError == nil {
				firstError = fmt.Errorf("job %s failed: %w", job.Name, result.err)
			}
			if !manifestCfg.Options.ContinueOnError {
				o.logger.Warn().Msg("Stopping execution (continue_on_error=false)")
				return firstError
			}
			continue
		}

		o.logger.Info().
			Int("job_idx", i).
			Str("job", job.Name).
			Bool("skipped", result.Skipped).
			Dur("duration", result.Duration).
			Msg("Job completed")
	}
	completed = true

	summary := report.Report()
	o.logger.Info().
		Dur("total_duration", time.Since(startTime)).
		Int("total", totalJobs).
		Int("success", totalJobs-summary.Failed).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Msg("Manifest execution completed")

	if firstError != nil {
		return fmt.Errorf("manifest completed with %d/%d failures: %w", summary.Failed, totalJobs, firstError)
	}
	return nil
}

type jobOutcome struct {
	output.JobResult
	err error
}

func (o *Orchestrator) runJob(ctx context.Context, manifestCfg *manifest.Config, i int, tracker *state.Manager) jobOutcome {
	job := manifestCfg.Jobs[i]
	outcome := jobOutcome{JobResult: output.JobResult{Name: job.Name, Action: job.Action()}}

	switch {
	case job.Extract != nil:
		outcome.Items, outcome.err = o.Extract(ctx, job.Extract.URL, job.Extract.Output)
		outcome.Outputs = nonEmpty(job.Extract.Output)

	case job.Generate != nil:
		outcome.Outputs = nonEmpty(job.Generate.Terraform, job.Generate.Import)
		var kind terraform.Kind
		kind, outcome.err = o.resolveKind(manifestCfg, i)
		if outcome.err != nil {
			break
		}

		fingerprint := ""
		if !tracker.IsDisabled() {
			fingerprint = generateFingerprint(job.Generate, kind)
		}
		if !tracker.ShouldProcess(job.Name, fingerprint) {
			prev, _ := tracker.Job(job.Name)
			outcome.Items = prev.Items
			outcome.Skipped = true
			o.logger.Info().Str("job", job.Name).Msg("Inputs unchanged, skipping job")
			break
		}

		outcome.Items, outcome.err = o.Generate(ctx, GenerateRequest{
			Kind:      kind,
			Input:     job.Generate.Input,
			Terraform: job.Generate.Terraform,
			Import:    job.Generate.Import,
			All:       job.Generate.All,
		})
		switch {
		case outcome.err != nil:
			tracker.Forget(job.Name)
		case fingerprint != "":
			tracker.Update(job.Name, state.JobState{
				Fingerprint: fingerprint,
				Outputs:     outcome.Outputs,
				Items:       outcome.Items,
				GeneratedAt: time.Now(),
			})
		}

	default:
		outcome.err = manifest.ErrNoAction
	}

	if outcome.err != nil {
		outcome.Error = outcome.err.Error()
	}
	return outcome
}

// resolveKind parses the job's kind, or infers it from the upstream extract URL
func (o *Orchestrator) resolveKind(manifestCfg *manifest.Config, i int) (terraform.Kind, error) {
	gen := manifestCfg.Jobs[i].Generate
	if gen.Kind != "" {
		return terraform.ParseKind(gen.Kind)
	}

	url, ok := manifestCfg.UpstreamURL(i)
	if !ok {
		return 0, manifest.ErrMissingKind
	}
	kind, ok := DetectKind(url)
	if !ok {
		return 0, domain.NewValidationError("kind",
			fmt.Sprintf("cannot infer resource kind from %s; set kind explicitly", utils.RedactURL(url)))
	}
	o.logger.Debug().Str("kind", kind.String()).Str("job", manifestCfg.Jobs[i].Name).Msg("Inferred kind from extract URL")
	return kind, nil
}

// newStateManager returns a disabled manager unless the manifest asks for incremental runs
func (o *Orchestrator) newStateManager(ctx context.Context, manifestCfg *manifest.Config, manifestPath string) *state.Manager {
	opts := manifestCfg.Options
	path := opts.State
	if path == "" {
		path = state.DefaultPath(manifestPath)
	}
	tracker := state.NewManager(state.ManagerOptions{
		Path:     path,
		Manifest: manifestPath,
		Logger:   o.logger.WithComponent("state"),
		Disabled: !opts.Incremental,
	})
	if err := tracker.Load(ctx); err != nil && !errors.Is(err, state.ErrStateNotFound) {
		o.logger.Warn().Err(err).Str("path", tracker.Path()).Msg("Ignoring unusable run state")
	}
	return tracker
}

// generateFingerprint hashes a generate job's definition, resolved kind and
// input bytes. Jobs printing to stdout and unreadable inputs get "" so they
// always run.
func generateFingerprint(gen *manifest.GenerateJob, kind terraform.Kind) string {
	if gen.Terraform == "" || gen.Import == "" {
		return ""
	}
	input, err := os.ReadFile(utils.ExpandPath(gen.Input))
	if err != nil {
		return ""
	}
	definition, err := json.Marshal(gen)
	if err != nil {
		return ""
	}
	return state.Fingerprint(definition, []byte(kind.String()), input)
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// IsCancelled reports whether err comes from context cancellation
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Close releases all resources held by the orchestrator
func (o *Orchestrator) Close() error {
	if o.deps != nil {
		return o.deps.Close()
	}
	return nil
}
