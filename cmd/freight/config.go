// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"freight-cli/internal/config"
	"freight-cli/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `freight config` command tree.
func newConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage freight configuration",
		Long: `Manage freight configuration.

Configuration is stored in:
  - Linux: ~/.config/freight/config.cue
  - macOS: ~/Library/Application Support/freight/config.cue
  - Windows: %APPDATA%\freight\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(args[0], args[1])
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		renderIssueCard(os.Stderr, issue.ConfigLoadFailedId)
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	if path := config.ConfigFilePath(); path != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s:\n", keyStyle.Render("registry"))
	fmt.Printf("  url: %s\n", valueStyle.Render(string(cfg.Registry.URL)))
	if cfg.Registry.APIKey != "" {
		fmt.Printf("  api_key: %s\n", valueStyle.Render(cfg.Registry.APIKey.Redacted()))
	} else {
		fmt.Printf("  api_key: %s\n", SubtitleStyle.Render("(not set, FREIGHT_API_KEY applies)"))
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  progress: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Progress)))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("docs"))
	fmt.Printf("  command: %s\n", valueStyle.Render(string(cfg.Docs.Command)))

	return nil
}

func initConfigFile() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s/config.cue\n", SuccessStyle.Render("✓"), cfgDir)
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s/config.cue\n", cfgDir)

	return nil
}

func setConfigValue(key, value string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch key {
	case "registry.url":
		candidate := config.RegistryURL(value)
		if ok, errs := candidate.IsValid(); !ok {
			return fmt.Errorf("invalid registry.url: %v", errs[0])
		}
		cfg.Registry.URL = candidate

	case "registry.api_key":
		candidate := config.APIKey(strings.TrimSpace(value))
		if ok, errs := candidate.IsValid(); !ok {
			return fmt.Errorf("invalid registry.api_key: %v", errs[0])
		}
		cfg.Registry.APIKey = candidate

	case "ui.progress":
		cfg.UI.Progress = value == "true" || value == "1"

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	case "docs.command":
		candidate := config.GeneratorCommand(value)
		if ok, errs := candidate.IsValid(); !ok {
			return fmt.Errorf("invalid docs.command: %v", errs[0])
		}
		cfg.Docs.Command = candidate

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: registry.url, registry.api_key, ui.progress, ui.verbose, docs.command", key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}
