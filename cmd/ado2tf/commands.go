package main

import (
	"fmt"
	"sort"

	"github.com/quantmind-br/ado2tf/internal/app"
	"github.com/quantmind-br/ado2tf/internal/cache"
	"github.com/quantmind-br/ado2tf/internal/domain"
	"github.com/quantmind-br/ado2tf/internal/fetcher"
	"github.com/quantmind-br/ado2tf/internal/manifest"
	"github.com/quantmind-br/ado2tf/internal/terraform"
	"github.com/quantmind-br/ado2tf/internal/utils"
	"github.com/spf13/cobra"
)

func (c *cli) extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <url> [output-file]",
		Short: "Fetch every page of an Azure DevOps listing",
		Long: `Fetches every page of a REST listing, following continuation tokens, and
writes all items as one JSON array to output-file or stdout.`,
		Example: `  ado2tf extract "https://dev.azure.com/org/_apis/projects?api-version=7.1" projects.json`,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			if !utils.IsHTTPURL(url) {
				return domain.NewValidationError("url", fmt.Sprintf("%q is not an http(s) URL", url))
			}
			var outputPath string
			if len(args) == 2 {
				outputPath = args[1]
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			orch, err := c.newOrchestrator(cmd, cfg)
			if err != nil {
				return err
			}
			defer orch.Close()

			_, err = orch.Extract(cmd.Context(), url, outputPath)
			return err
		},
	}
}

func (c *cli) generateCmd() *cobra.Command {
	var req app.GenerateRequest

	cmd := &cobra.Command{
		Use:   "generate <kind>",
		Short: "Render Terraform resource and import blocks from JSON",
		Long: `Renders a Terraform resource block and an import block for one Azure DevOps
record read from --json or stdin. Kinds: project, repository (repo),
variablegroup (variable-group, vg).`,
		Example: `  ado2tf generate project --json project.json --terraform main.tf --import import.tf
  ado2tf generate repo --all < repositories.json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"project", "repository", "variablegroup"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := terraform.ParseKind(args[0])
			if err != nil {
				return err
			}
			req.Kind = kind

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			orch, err := c.newOrchestrator(cmd, cfg)
			if err != nil {
				return err
			}
			defer orch.Close()

			_, err = orch.Generate(cmd.Context(), req)
			return err
		},
	}

	cmd.Flags().StringVar(&req.Input, "json", "", "JSON input file (default: stdin)")
	cmd.Flags().StringVar(&req.Terraform, "terraform", "", "Write the resource block to this file")
	cmd.Flags().StringVar(&req.Import, "import", "", "Write the import block to this file")
	cmd.Flags().BoolVar(&req.All, "all", false, "Render every element of an input array")

	return cmd
}

func (c *cli) batchCmd() *cobra.Command {
	var continueOnError, incremental bool
	var report, statePath string

	cmd := &cobra.Command{
		Use:   "batch <manifest>",
		Short: "Run extract and generate jobs from a manifest",
		Long: `Runs the jobs of a YAML or JSON manifest in file order. A generate job may
omit its kind when an earlier extract job writes its input.

With --incremental, generate jobs writing both files are skipped when their
definition and input bytes match the previous successful run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestCfg, err := manifest.NewLoader().Load(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("continue-on-error") {
				manifestCfg.Options.ContinueOnError = continueOnError
			}
			if report != "" {
				manifestCfg.Options.Report = report
			}
			if cmd.Flags().Changed("incremental") {
				manifestCfg.Options.Incremental = incremental
			}
			if statePath != "" {
				manifestCfg.Options.State = statePath
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			orch, err := c.newOrchestrator(cmd, cfg)
			if err != nil {
				return err
			}
			defer orch.Close()

			return orch.RunManifest(cmd.Context(), manifestCfg, args[0])
		},
	}

	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Keep running after a job fails")
	cmd.Flags().StringVar(&report, "report", "", "Write a JSON run report to this file")
	cmd.Flags().BoolVar(&incremental, "incremental", false, "Skip generate jobs whose inputs are unchanged")
	cmd.Flags().StringVar(&statePath, "state", "", "Run state file (default is .ado2tf-state.json next to the manifest)")

	return cmd
}

func (c *cli) doctorCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and environment",
		Long:  "Verifies the access token, configuration, write permissions, cache directory and Azure DevOps reachability.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg, cfgErr := c.loadConfig()

			opts := app.DoctorOptions{Config: cfg, ConfigErr: cfgErr}
			if !offline && cfg != nil {
				client, err := fetcher.NewClient(fetcher.ClientOptions{
					Timeout:   cfg.HTTP.Timeout,
					UserAgent: cfg.HTTP.UserAgent,
					ProxyURL:  cfg.HTTP.ProxyURL,
				})
				if err != nil {
					return err
				}
				defer client.Close()
				opts.Getter = client
			}

			fmt.Fprintln(out, "Checking environment...")
			results := app.Doctor(cmd.Context(), opts)
			for _, r := range results {
				fmt.Fprintf(out, "  %s\n", r)
			}

			fmt.Fprintln(out)
			if !app.AllPassed(results) {
				fmt.Fprintln(out, "Some checks failed. Please resolve the issues above.")
				return fmt.Errorf("doctor found problems")
			}
			fmt.Fprintln(out, "All critical checks passed!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the Azure DevOps connectivity check")
	return cmd
}

func (c *cli) cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the page cache",
	}

	openCache := func() (*cache.BadgerCache, error) {
		cfg, err := c.loadConfig()
		if err != nil {
			return nil, err
		}
		return cache.NewBadgerCache(cache.Options{Directory: utils.ExpandPath(cfg.Cache.Directory)})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show page cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pageCache, err := openCache()
			if err != nil {
				return err
			}
			defer pageCache.Close()

			stats := pageCache.Stats()
			keys := make([]string, 0, len(stats))
			for k := range stats {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", k, stats[k])
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pageCache, err := openCache()
			if err != nil {
				return err
			}
			defer pageCache.Close()

			if c.dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Would remove %d cached pages\n", pageCache.Size())
				return nil
			}
			removed := pageCache.Size()
			if err := pageCache.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached pages\n", removed)
			return nil
		},
	})

	return cmd
}
