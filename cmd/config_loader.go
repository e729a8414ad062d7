package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jview/internal/config"
	"github.com/oakwood-commons/jview/pkg/settings"
)

var userHomeDir = os.UserHomeDir

// resolveConfigPath returns explicit if set, otherwise
// $XDG_CONFIG_HOME/jview/config.yaml or ~/.config/jview/config.yaml when
// that file exists.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := userHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// loadMergedConfig returns the embedded defaults with the file at cfgPath
// merged on top.
func loadMergedConfig(cfgPath string) (config.Config, error) {
	return config.Load(cfgPath)
}

func durationMS(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func newConfigCmd(root *rootOptions) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective " + settings.CliBinaryName + " configuration",
		Long: `Print the configuration the viewer would use, as YAML: the built-in
defaults merged with the user config file. Redirect the output to a file to
start a custom config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := ""
			if !defaults {
				path = resolveConfigPath(root.configFile)
			}
			cfg, err := loadMergedConfig(path)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			data, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, "print the built-in defaults, ignoring any config file")
	return cmd
}
