package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/headcheck/headcheck/internal/scanner"
	"github.com/headcheck/headcheck/internal/security"
	consts "github.com/headcheck/headcheck/internal/shared/constants"
)

const (
	jsonPrefix = ""
	jsonIndent = "  "
)

var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Check a single URL for missing security headers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		savePath, _ := cmd.Flags().GetString("save")

		sc := scanner.New(scanner.Config{
			Timeout:   time.Duration(cliConfig.Scan.TimeoutSecs) * time.Second,
			UserAgent: cliConfig.Scan.UserAgent,
		})

		report, err := sc.Scan(cmd.Context(), args[0])
		if err != nil {
			var verr *scanner.ValidationError
			var uerr *scanner.UnreachableError
			switch {
			case errors.As(err, &verr):
				return fmt.Errorf("%s", verr.Message)
			case errors.As(err, &uerr):
				return fmt.Errorf("%s", uerr.Message)
			default:
				return err
			}
		}

		if jsonOutput {
			payload, err := json.MarshalIndent(report, jsonPrefix, jsonIndent)
			if err != nil {
				return fmt.Errorf("marshal report: %w", err)
			}
			fmt.Println(string(payload))
		} else {
			printScanReport(report)
		}

		if savePath != "" {
			written, err := saveScanReport(report, savePath)
			if err != nil {
				return fmt.Errorf("save report: %w", err)
			}
			fmt.Printf("%s Report saved to %s\n", colorInfo("→"), written)
		}

		return nil
	},
}

func printScanReport(report *scanner.Report) {
	fmt.Printf("%s %s\n", colorInfo("Scanned"), report.URL)
	fmt.Printf("Timestamp: %s\n\n", report.Timestamp.Format(time.RFC3339))

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HEADER\tSTATUS\tDETAIL")
	for _, result := range report.Results {
		status := formatStatusWithColor(string(result.Status))
		fmt.Fprintf(tw, "%s\t%s\t%s\n", result.Name, status, result.Message)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to flush results table: %v\n", err)
	}

	fmt.Printf("\nPassed: %s | Failed: %s | Warnings: %s | Total: %d\n",
		colorSuccess(fmt.Sprintf("%d", report.Summary.Passed)),
		colorError(fmt.Sprintf("%d", report.Summary.Failed)),
		colorWarn(fmt.Sprintf("%d", report.Summary.Warnings)),
		report.Summary.Total,
	)
}

// resolveOutputPath confines relative output paths to the working directory so
// a crafted path cannot climb out of it. Absolute paths are honored as given.
func resolveOutputPath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}
	return security.ResolveWithin(cwd, path)
}

func saveScanReport(report *scanner.Report, savePath string) (string, error) {
	target, err := resolveOutputPath(savePath)
	if err != nil {
		return "", err
	}

	payload, err := json.MarshalIndent(report, jsonPrefix, jsonIndent)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(target), consts.DefaultDirPerm); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	if err := os.WriteFile(target, payload, consts.DefaultFilePerm); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return target, nil
}

func loadScanReport(path string) (*scanner.Report, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is an operator-supplied input file.
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var report scanner.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", filepath.Base(path), err)
	}
	if strings.TrimSpace(report.URL) == "" {
		return nil, fmt.Errorf("report %s has no scanned URL", filepath.Base(path))
	}
	return &report, nil
}

func init() {
	scanCmd.Flags().IntVarP(&cliConfig.Scan.TimeoutSecs, "timeout", "t", cliConfig.Scan.TimeoutSecs, "request timeout in seconds")
	scanCmd.Flags().Bool("json", false, "Print the report as JSON instead of a table")
	scanCmd.Flags().String("save", "", "Write the report JSON to the given path")
}
