package cmd

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/cobra"

	"github.com/headcheck/headcheck/internal/scanner"
	consts "github.com/headcheck/headcheck/internal/shared/constants"
)

const markdownTemplatePath = "templates/report.md"

//go:embed templates/report.md
var reportTemplateFS embed.FS

var (
	markdownTemplateFuncs = template.FuncMap{
		"upper": func(s scanner.Status) string { return strings.ToUpper(string(s)) },
	}

	markdownReportTemplate = template.Must(
		template.New("report.md").Funcs(markdownTemplateFuncs).ParseFS(reportTemplateFS, markdownTemplatePath),
	)
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a saved scan report as Markdown or PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")

		if input == "" {
			return fmt.Errorf("--input is required")
		}

		// Validate format
		format = strings.ToLower(format)
		if format != "md" && format != "pdf" {
			return fmt.Errorf("invalid format: %s (must be md or pdf)", format)
		}

		report, err := loadScanReport(input)
		if err != nil {
			return err
		}
		data := buildReportTemplateData(report)

		var payload []byte
		switch format {
		case "md":
			content, err := generateMarkdownReport(data)
			if err != nil {
				return fmt.Errorf("failed to generate report: %w", err)
			}
			payload = []byte(content)
		case "pdf":
			payload, err = generatePDFReportBytes(data)
			if err != nil {
				return fmt.Errorf("failed to generate PDF report: %w", err)
			}
		}

		if outPath == "" {
			outPath = filepath.Join(filepath.Dir(input), "report."+format)
		}
		target, err := resolveOutputPath(outPath)
		if err != nil {
			return fmt.Errorf("resolve report path: %w", err)
		}
		if err := os.WriteFile(target, payload, consts.DefaultFilePerm); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		fmt.Printf("Report generated: %s\n", target)
		fmt.Printf("Format: %s\n", format)
		fmt.Printf("Checks: %d (passed %d, failed %d, warnings %d)\n",
			report.Summary.Total, report.Summary.Passed, report.Summary.Failed, report.Summary.Warnings)

		return nil
	},
}

// reportTemplateData holds the data for Markdown/PDF template rendering
type reportTemplateData struct {
	URL         string
	ScannedAt   string
	GeneratedAt string
	Results     []scanner.CheckResult
	Summary     scanner.Summary

	// Failed checks are worth fixing first; warned ones are nice to have.
	MissingRequired    []string
	MissingRecommended []string
}

func buildReportTemplateData(report *scanner.Report) reportTemplateData {
	var required, recommended []string
	for _, result := range report.Results {
		switch result.Status {
		case scanner.StatusFail:
			required = append(required, result.Name)
		case scanner.StatusWarn:
			recommended = append(recommended, result.Name)
		}
	}

	scannedAt := ""
	if !report.Timestamp.IsZero() {
		scannedAt = report.Timestamp.Format(time.RFC3339)
	}

	return reportTemplateData{
		URL:                report.URL,
		ScannedAt:          scannedAt,
		GeneratedAt:        time.Now().Format(time.RFC3339),
		Results:            report.Results,
		Summary:            report.Summary,
		MissingRequired:    required,
		MissingRecommended: recommended,
	}
}

func generateMarkdownReport(data reportTemplateData) (string, error) {
	return executeTemplate(markdownReportTemplate, data)
}

func executeTemplate(tmpl *template.Template, data reportTemplateData) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func generatePDFReportBytes(data reportTemplateData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Security Header Report", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Metadata section
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("URL: %s", data.URL), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Scanned: %s", data.ScannedAt), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", data.GeneratedAt), "", 1, "", false, 0, "")
	pdf.Ln(5)

	// Summary section
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Passed: %d | Failed: %d | Warnings: %d | Total: %d",
		data.Summary.Passed, data.Summary.Failed, data.Summary.Warnings, data.Summary.Total), "", 1, "", false, 0, "")
	pdf.Ln(5)

	// Checklist results
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Checklist", "", 1, "", false, 0, "")
	pdf.Ln(1)
	for _, result := range data.Results {
		if pdf.GetY() > 250 {
			pdf.AddPage()
		}

		status := strings.ToUpper(string(result.Status))

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(0, 7, fmt.Sprintf("%s - %s", result.Name, status), "", 1, "", true, 0, "")

		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, result.Message, "", "", false)
		pdf.Ln(1)
	}

	if len(data.MissingRequired) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Priority Fixes", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, name := range data.MissingRequired {
			pdf.MultiCell(0, 5, fmt.Sprintf("- %s", name), "", "", false)
		}
	}

	if len(data.MissingRecommended) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Worth Adding", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, name := range data.MissingRecommended {
			pdf.MultiCell(0, 5, fmt.Sprintf("- %s", name), "", "", false)
		}
	}

	// Generate PDF bytes
	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func init() {
	reportCmd.Flags().String("input", "", "Path to a saved scan report JSON")
	reportCmd.Flags().String("format", "md", "Output format: md|pdf")
	reportCmd.Flags().String("out", "", "Output path (default: report.<format> next to the input)")
}
