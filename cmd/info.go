package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/headcheck/headcheck/internal/scanner"
	consts "github.com/headcheck/headcheck/internal/shared/constants"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show scan defaults and the header checklist",
	Long: `Display headcheck configuration information including:
  - Platform and version
  - Configuration file path
  - Scan defaults (timeout, user agent)
  - The security header checklist`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := cfgFile
		if configPath == "" {
			if home, err := os.UserHomeDir(); err == nil {
				configPath = filepath.Join(home, ".headcheck.yaml")
			}
		}
		configExists := "✗ (using defaults)"
		if configPath != "" {
			if _, err := os.Stat(configPath); err == nil {
				configExists = "✓ (exists)"
			}
		}

		timeout := consts.ScanTimeout
		if cliConfig.Scan.TimeoutSecs > 0 {
			timeout = time.Duration(cliConfig.Scan.TimeoutSecs) * time.Second
		}
		userAgent := cliConfig.Scan.UserAgent
		if userAgent == "" {
			userAgent = consts.ScanUserAgent
		}

		// Get output writer (for testing support)
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "headcheck System Information")
		fmt.Fprintln(out, "============================")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Version:            %s\n", Version)
		fmt.Fprintf(out, "Platform:           %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Configuration File: %s %s\n", configPath, configExists)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Scan Defaults:")
		fmt.Fprintf(out, "  Timeout:     %s\n", timeout)
		fmt.Fprintf(out, "  User-Agent:  %s\n", userAgent)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Header Checklist:")
		for _, check := range scanner.Checklist() {
			fmt.Fprintf(out, "  %-28s %s\n", check.Name, check.Severity)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Missing high and medium severity headers fail a scan;")
		fmt.Fprintln(out, "missing low severity headers only raise a warning.")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
