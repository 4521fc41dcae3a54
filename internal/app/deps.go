package app

import (
	"io"
	"sync"

	"github.com/quantmind-br/ado2tf/internal/cache"
	"github.com/quantmind-br/ado2tf/internal/config"
	"github.com/quantmind-br/ado2tf/internal/domain"
	"github.com/quantmind-br/ado2tf/internal/fetcher"
	"github.com/quantmind-br/ado2tf/internal/input"
	"github.com/quantmind-br/ado2tf/internal/output"
	"github.com/quantmind-br/ado2tf/internal/utils"
)

// Dependencies holds the collaborators shared by every command.
// The HTTP client and page cache are created on first use so generate-only
// runs never touch the network stack or the cache directory lock.
type Dependencies struct {
	Reader *input.Reader
	Writer *output.Writer
	Logger *utils.Logger

	config *config.Config

	getterOnce sync.Once
	getter     domain.PageGetter
	getterErr  error
	pageCache  *cache.BadgerCache
}

// DependencyOptions contains options for creating dependencies
type DependencyOptions struct {
	Config *config.Config
	Logger *utils.Logger
	Getter domain.PageGetter
	Stdin  io.Reader
	Stdout io.Writer
	DryRun bool
}

// NewDependencies creates the shared dependencies
func NewDependencies(opts DependencyOptions) *Dependencies {
	logger := opts.Logger
	if logger == nil {
		logger = utils.Nop()
	}

	reader := input.NewReader()
	if opts.Stdin != nil {
		reader = input.NewReaderFrom(opts.Stdin)
	}

	d := &Dependencies{
		Reader: reader,
		Writer: output.NewWriter(output.WriterOptions{
			Stdout: opts.Stdout,
			Logger: logger,
			DryRun: opts.DryRun,
		}),
		Logger: logger,
		config: opts.Config,
	}

	if opts.Getter != nil {
		d.getter = opts.Getter
		d.getterOnce.Do(func() {})
	}
	return d
}

// Getter returns the page getter, building the HTTP client and opening the
// page cache on first call
func (d *Dependencies) Getter() (domain.PageGetter, error) {
	d.getterOnce.Do(func() {
		d.getter, d.getterErr = d.newClient()
	})
	return d.getter, d.getterErr
}

func (d *Dependencies) newClient() (domain.PageGetter, error) {
	cfg := d.config
	client, err := fetcher.NewClient(fetcher.ClientOptions{
		Timeout:     cfg.HTTP.Timeout,
		MaxRetries:  cfg.HTTP.MaxRetries,
		EnableCache: cfg.Cache.Enabled,
		CacheTTL:    cfg.Cache.TTL,
		UserAgent:   cfg.HTTP.UserAgent,
		ProxyURL:    cfg.HTTP.ProxyURL,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Cache.Enabled {
		pageCache, err := cache.NewBadgerCache(cache.Options{
			Directory: utils.ExpandPath(cfg.Cache.Directory),
		})
		if err != nil {
			return nil, err
		}
		d.pageCache = pageCache
		client.SetCache(pageCache)
		d.Logger.Debug().Str("directory", cfg.Cache.Directory).Msg("Page cache enabled")
	}

	return client, nil
}

// Close releases the page cache if it was opened
func (d *Dependencies) Close() error {
	if d.pageCache != nil {
		return d.pageCache.Close()
	}
	return nil
}
