// Package cli implements the hibou command-line interface.
//
// The root command runs the dashboard; everything else is housekeeping:
//
//	hibou                 - Live resource dashboard (TUI, or a text table when piped)
//	hibou config          - Print the effective configuration as YAML
//	hibou config init     - Write a default .hibou.yaml
//	hibou version         - Print version information
//	hibou completion      - Generate shell completion scripts
//
// # Dashboard startup
//
//  1. Load config (--config, ./.hibou.yaml, ~/.config/hibou/config.yaml, defaults)
//  2. Apply flag overrides and validate
//  3. Route logs to --log-file, or discard them while the screen is in use
//  4. Initialize the sampler; unreadable CPU sources abort with exit status 1
//  5. Run the Bubble Tea dashboard, or the plain text loop when stdout is
//     not a terminal or --plain is set
//
// Interrupts cancel the command context, which ends either mode with
// exit status 0.
package cli
