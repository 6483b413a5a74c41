package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rileyhilliard/hibou/internal/errors"
	"github.com/spf13/cobra"
)

var rootFlags DashboardFlags

// rootCmd runs the dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "hibou",
	Short: "Live CPU, memory, storage and network usage for this machine",
	Long: `hibou samples the kernel's resource counters several times a second and
shows per-core CPU usage, memory and filesystem usage, and network throughput.

Values that could not be read are shown as n/a rather than 0.

Examples:
  hibou
  hibou --fps 2 --fs / --fs /home
  hibou --plain | tee usage.log`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd, &rootFlags)
	},
}

func init() {
	AddDashboardFlags(rootCmd, &rootFlags)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Execute runs the root command and exits the process with its status.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err, os.Stderr))
}

// exitCode reports err on w and maps it to a process exit status.
func exitCode(err error, w io.Writer) int {
	if err == nil {
		return 0
	}

	// Already reported; only the status matters.
	if code, ok := errors.GetExitCode(err); ok {
		return code
	}

	if isUnknownCommandError(err) {
		msg := err.Error()
		if name := extractUnknownCommand(err); name != "" {
			msg = fmt.Sprintf("'%s' isn't a hibou command", name)
		}
		fmt.Fprintln(w, errors.New(errors.ErrConfig, msg, "Run 'hibou --help' to see what's available."))
		return 1
	}

	fmt.Fprintln(w, err)
	return 1
}

// isUnknownCommandError reports whether cobra rejected the command line.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unknown command") ||
		strings.Contains(msg, "unknown flag") ||
		strings.Contains(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the quoted command name out of cobra's
// `unknown command "foo" for "hibou"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
