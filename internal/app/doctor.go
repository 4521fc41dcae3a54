package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/quantmind-br/ado2tf/internal/config"
	"github.com/quantmind-br/ado2tf/internal/domain"
	"github.com/quantmind-br/ado2tf/internal/fetcher"
	"github.com/quantmind-br/ado2tf/internal/utils"
)

// Check statuses
const (
	StatusOK     = "OK"
	StatusWarn   = "WARN"
	StatusFailed = "FAILED"
)

// DefaultConnectivityURL is probed by the connectivity check
const DefaultConnectivityURL = "https://dev.azure.com/_apis/connectionData"

// CheckResult is the outcome of one doctor check
type CheckResult struct {
	Name   string
	Status string
	Detail string
}

// Critical reports whether the check failed outright
func (r CheckResult) Critical() bool {
	return r.Status == StatusFailed
}

func (r CheckResult) String() string {
	if r.Detail == "" {
		return fmt.Sprintf("%s: %s", r.Name, r.Status)
	}
	return fmt.Sprintf("%s: %s (%s)", r.Name, r.Status, r.Detail)
}

// DoctorOptions configures the environment checks
type DoctorOptions struct {
	Config    *config.Config
	ConfigErr error
	// Getter is used for the connectivity check; nil skips it
	Getter     domain.PageGetter
	ProbeURL   string
	WorkDir    string
	ProbeLimit time.Duration
}

// Doctor runs the environment checks in a fixed order
func Doctor(ctx context.Context, opts DoctorOptions) []CheckResult {
	results := []CheckResult{
		checkConfig(opts.Config, opts.ConfigErr),
		checkToken(opts.Config),
		checkWritePermissions(opts.WorkDir),
		checkCacheDir(opts.Config),
	}
	if opts.Getter != nil {
		results = append(results, checkConnectivity(ctx, opts))
	}
	return results
}

// AllPassed reports whether no check failed outright
func AllPassed(results []CheckResult) bool {
	for _, r := range results {
		if r.Critical() {
			return false
		}
	}
	return true
}

func checkConfig(cfg *config.Config, loadErr error) CheckResult {
	if loadErr != nil {
		return CheckResult{Name: "Config file", Status: StatusFailed, Detail: loadErr.Error()}
	}
	if cfg == nil {
		return CheckResult{Name: "Config file", Status: StatusFailed, Detail: "not loaded"}
	}
	if _, err := os.Stat(config.ConfigFilePath()); err == nil {
		return CheckResult{Name: "Config file", Status: StatusOK, Detail: config.ConfigFilePath()}
	}
	return CheckResult{Name: "Config file", Status: StatusOK, Detail: "using defaults"}
}

func checkToken(cfg *config.Config) CheckResult {
	if cfg == nil {
		return CheckResult{Name: "Access token", Status: StatusFailed, Detail: "config not loaded"}
	}
	if _, err := cfg.RequireToken(); err != nil {
		return CheckResult{Name: "Access token", Status: StatusFailed, Detail: "set " + config.TokenEnvVar}
	}
	return CheckResult{Name: "Access token", Status: StatusOK, Detail: "set"}
}

func checkWritePermissions(dir string) CheckResult {
	if dir == "" {
		dir = "."
	}
	if utils.IsWritableDir(dir) {
		return CheckResult{Name: "Write permissions", Status: StatusOK, Detail: dir}
	}
	return CheckResult{Name: "Write permissions", Status: StatusFailed, Detail: dir + " is not writable"}
}

func checkCacheDir(cfg *config.Config) CheckResult {
	dir := config.CacheDir()
	enabled := false
	if cfg != nil {
		if cfg.Cache.Directory != "" {
			dir = utils.ExpandPath(cfg.Cache.Directory)
		}
		enabled = cfg.Cache.Enabled
	}

	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return CheckResult{Name: "Cache directory", Status: StatusOK, Detail: dir}
	case err == nil:
		return CheckResult{Name: "Cache directory", Status: StatusFailed, Detail: dir + " is not a directory"}
	case !enabled:
		return CheckResult{Name: "Cache directory", Status: StatusOK, Detail: "cache disabled"}
	default:
		return CheckResult{Name: "Cache directory", Status: StatusWarn, Detail: "will be created on first use"}
	}
}

// checkConnectivity treats any HTTP answer as reachable; only transport
// failures without a status code count as unreachable
func checkConnectivity(ctx context.Context, opts DoctorOptions) CheckResult {
	probe := opts.ProbeURL
	if probe == "" {
		probe = DefaultConnectivityURL
	}
	limit := opts.ProbeLimit
	if limit <= 0 {
		limit = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	headers := map[string]string{}
	if opts.Config != nil {
		headers[fetcher.HeaderAccept] = fetcher.AcceptJSON(opts.Config.API.Version)
	}

	_, err := opts.Getter.GetWithHeaders(ctx, probe, headers)
	if err == nil {
		return CheckResult{Name: "Azure DevOps", Status: StatusOK, Detail: probe}
	}

	var transportErr *domain.TransportError
	if errors.As(err, &transportErr) && transportErr.StatusCode > 0 {
		return CheckResult{Name: "Azure DevOps", Status: StatusOK, Detail: fmt.Sprintf("reachable, status %d", transportErr.StatusCode)}
	}
	return CheckResult{Name: "Azure DevOps", Status: StatusFailed, Detail: err.Error()}
}
