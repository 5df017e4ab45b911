package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ypelectrical/lumen/internal/config"
	"github.com/ypelectrical/lumen/internal/content"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func (c *cli) contentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Check and export site content",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "validate [file]",
			Short: "Validate a site content file",
			Long: `Loads a site content file and reports every problem found in it.
Without a file the configured content (or the embedded default) is checked.`,
			Args: cobra.MaximumNArgs(1),
			RunE: c.validateContent,
		},
		&cobra.Command{
			Use:   "dump",
			Short: "Print the embedded site content as YAML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				out, err := yaml.Marshal(content.Default())
				if err != nil {
					return fmt.Errorf("failed to marshal content: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			},
		},
	)
	return cmd
}

func (c *cli) validateContent(cmd *cobra.Command, args []string) error {
	path := c.cfg.Content.Path
	if len(args) == 1 {
		path = args[0]
	}
	site, err := content.Load(path)
	if err != nil {
		c.logger.Debug("content rejected", zap.String("path", path), zap.Error(err))
		return err
	}

	name := path
	if name == "" {
		name = "embedded site.yaml"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d services, %d menu items, %d projects)\n",
		name, len(site.Services), len(site.ServiceMenu), len(site.Projects))
	return nil
}

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the ypsite config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init <file>",
		Short: "Write the default config to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().Save(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	})
	return cmd
}
