package cli

import (
	"github.com/rileyhilliard/hibou/internal/config"
	"github.com/spf13/cobra"
)

// DashboardFlags holds the flags that override .hibou.yaml for one run.
type DashboardFlags struct {
	ConfigPath      string
	FPS             int
	Filesystems     []string
	Plain           bool
	ExcludeLoopback bool
	Debug           bool
	LogFile         string
}

// AddDashboardFlags registers the dashboard flags on cmd. --config, --debug
// and --log-file are persistent so subcommands see the same config.
func AddDashboardFlags(cmd *cobra.Command, flags *DashboardFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", "", "config file (default ./.hibou.yaml, then ~/.config/hibou/config.yaml)")
	pf.BoolVar(&flags.Debug, "debug", false, "log sampling details")
	pf.StringVar(&flags.LogFile, "log-file", "", "write logs to this file")

	f := cmd.Flags()
	f.IntVar(&flags.FPS, "fps", config.DefaultFPS, "samples per second (1-60)")
	f.StringArrayVar(&flags.Filesystems, "fs", nil, "filesystem to report, repeatable (default /)")
	f.BoolVar(&flags.Plain, "plain", false, "print a text table instead of the full-screen dashboard")
	f.BoolVar(&flags.ExcludeLoopback, "exclude-loopback", false, "leave lo out of network traffic")
}

// applyFlags copies the flags the user actually set onto cfg.
func applyFlags(cfg *config.Config, flags *DashboardFlags, changed func(name string) bool) {
	if changed("fps") {
		cfg.Refresh.FPS = flags.FPS
	}
	if changed("fs") {
		paths := make([]string, 0, len(flags.Filesystems))
		for _, p := range flags.Filesystems {
			paths = append(paths, config.ExpandTilde(p))
		}
		cfg.Filesystems = paths
	}
	if changed("plain") {
		cfg.Output.Plain = flags.Plain
	}
	if changed("exclude-loopback") {
		cfg.Network.ExcludeLoopback = flags.ExcludeLoopback
	}
	if changed("debug") {
		cfg.Debug = flags.Debug
	}
	if changed("log-file") {
		cfg.LogFile = config.ExpandTilde(flags.LogFile)
	}
}

// changedIn reports flag changes across cmd's local and inherited flags.
func changedIn(cmd *cobra.Command) func(string) bool {
	return func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
}
