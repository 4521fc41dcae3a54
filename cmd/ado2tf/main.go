package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/quantmind-br/ado2tf/internal/app"
	"github.com/quantmind-br/ado2tf/internal/config"
	"github.com/quantmind-br/ado2tf/internal/domain"
	"github.com/quantmind-br/ado2tf/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(viper.GetViper()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// cli carries the state shared by every subcommand of one invocation
type cli struct {
	v          *viper.Viper
	cfgFile    string
	verbose    bool
	noProgress bool
	dryRun     bool
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	c := &cli{v: v}

	rootCmd := &cobra.Command{
		Use:   "ado2tf",
		Short: "Turn Azure DevOps resources into Terraform",
		Long: `ado2tf extracts paginated Azure DevOps REST listings and turns project,
repository and variable group records into Terraform resource and import blocks.

The personal access token is read from AZURE_DEVOPS_EXT_PAT (a .env file in the
working directory is honoured).`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.cfgFile != "" {
				c.v.SetConfigFile(c.cfgFile)
			}
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default is ~/.ado2tf/config.yaml)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Verbose output")
	flags.String("api-version", config.DefaultAPIVersion, "Azure DevOps REST api-version")
	flags.Duration("timeout", config.DefaultTimeout, "Request timeout")
	flags.Int("retries", config.DefaultMaxRetries, "Retries for throttled or unavailable responses")
	flags.Bool("cache", config.DefaultCacheEnabled, "Cache fetched pages on disk")
	flags.Duration("cache-ttl", config.DefaultCacheTTL, "Cache TTL")
	flags.BoolVar(&c.noProgress, "no-progress", false, "Disable the page spinner")
	flags.BoolVar(&c.dryRun, "dry-run", false, "Simulate without writing files")

	// Bind flags to viper
	_ = v.BindPFlag("api.version", flags.Lookup("api-version"))
	_ = v.BindPFlag("http.timeout", flags.Lookup("timeout"))
	_ = v.BindPFlag("http.max_retries", flags.Lookup("retries"))
	_ = v.BindPFlag("cache.enabled", flags.Lookup("cache"))
	_ = v.BindPFlag("cache.ttl", flags.Lookup("cache-ttl"))

	rootCmd.AddCommand(
		c.extractCmd(),
		c.generateCmd(),
		c.batchCmd(),
		c.doctorCmd(),
		c.cacheCmd(),
		c.configCmd(),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig reads .env, the config file, the environment and bound flags
func (c *cli) loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(config.DotEnvFile); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", config.DotEnvFile, err)
	}
	cfg, err := config.LoadFrom(c.v)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newOrchestrator builds an orchestrator writing data to the command's streams
func (c *cli) newOrchestrator(cmd *cobra.Command, cfg *config.Config) (*app.Orchestrator, error) {
	opts := app.OrchestratorOptions{
		CommonOptions: domain.CommonOptions{
			Verbose:    c.verbose,
			NoProgress: c.noProgress,
		},
		Config:    cfg,
		DryRun:    c.dryRun,
		Stdout:    cmd.OutOrStdout(),
		LogOutput: cmd.ErrOrStderr(),
	}
	// Keep the TTY check when reading the real stdin
	if in := cmd.InOrStdin(); in != os.Stdin {
		opts.Stdin = in
	}
	return app.NewOrchestrator(opts)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		},
	}
}
