package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/quantmind-br/ado2tf/internal/config"
	"github.com/quantmind-br/ado2tf/internal/domain"
	"github.com/quantmind-br/ado2tf/internal/tui"
	"github.com/quantmind-br/ado2tf/internal/utils"
	"github.com/spf13/cobra"
)

// configPath is the file the editor writes: --config when given, else the default location
func (c *cli) configPath() string {
	if c.cfgFile != "" {
		return utils.ExpandPath(c.cfgFile)
	}
	return config.ConfigFilePath()
}

func (c *cli) configCmd() *cobra.Command {
	var accessible bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Edit the configuration file interactively",
		Long: `Opens a terminal editor for ~/.ado2tf/config.yaml (or the file given with --config).

Values are pre-filled from the effective configuration. A token that only comes
from AZURE_DEVOPS_EXT_PAT is not copied into the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, isFile := cmd.InOrStdin().(*os.File)
			if !accessible && (!isFile || !utils.IsTerminal(in)) {
				return domain.NewValidationError("config", "interactive editor needs a terminal (use --accessible or edit the file directly)")
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if env := strings.TrimSpace(os.Getenv(config.TokenEnvVar)); env != "" && env == cfg.Auth.Token {
				cfg.Auth.Token = ""
			}

			path := c.configPath()
			saved, err := tui.Run(tui.Options{
				Config:     cfg,
				Path:       path,
				Accessible: accessible,
				Input:      cmd.InOrStdin(),
				Output:     cmd.ErrOrStderr(),
				SaveFunc: func(edited *config.Config) error {
					if c.dryRun {
						return nil
					}
					return config.Save(edited, path)
				},
			})
			if err != nil {
				return err
			}
			switch {
			case saved && c.dryRun:
				fmt.Fprintf(cmd.OutOrStdout(), "Would write %s\n", path)
			case saved:
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&accessible, "accessible", false, "Use plain prompts suited to screen readers")

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML (token masked)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.Redacted().Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), c.configPath())
		},
	})

	return cmd
}
