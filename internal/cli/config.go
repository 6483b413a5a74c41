package cli

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/hibou/internal/config"
	"github.com/rileyhilliard/hibou/internal/errors"
	"github.com/spf13/cobra"
)

var (
	configInitForce  bool
	configInitGlobal bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration hibou would run with, after defaults and the
config file are merged, as YAML.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowCommand(cmd, rootFlags.ConfigPath)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a .hibou.yaml with the default settings to the current directory,
or to ~/.config/hibou/config.yaml with --global.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configInitPath(configInitGlobal)
		if err != nil {
			return err
		}
		if err := config.Write(path, config.DefaultConfig(), configInitForce); err != nil {
			return err
		}
		cmd.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configInitCmd.Flags().BoolVar(&configInitGlobal, "global", false, "write the user-wide config instead")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// configShowCommand prints the loaded and validated config as YAML.
func configShowCommand(cmd *cobra.Command, explicit string) error {
	cfg, path, err := config.LoadOrDefault(explicit)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	if path == "" {
		cmd.Println("# no config file found, showing defaults")
	} else {
		cmd.Printf("# %s\n", path)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// configInitPath picks where `config init` writes.
func configInitPath(global bool) (string, error) {
	if global {
		path := config.GlobalConfigPath()
		if path == "" {
			return "", errors.New(errors.ErrConfig,
				"Couldn't find your home directory",
				"Set $HOME, or run without --global to write ./.hibou.yaml.")
		}
		return path, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't determine the current directory", "")
	}
	return filepath.Join(cwd, config.ConfigFileName), nil
}
