package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/headcheck/headcheck/internal/scanner"
)

func sampleScanReport() *scanner.Report {
	return &scanner.Report{
		URL:       "https://example.com",
		Timestamp: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		Results: []scanner.CheckResult{
			{Name: "Content-Security-Policy", Header: "content-security-policy", Status: scanner.StatusPass, Message: "Content-Security-Policy header is present"},
			{Name: "X-Frame-Options", Header: "x-frame-options", Status: scanner.StatusFail, Message: "Add an X-Frame-Options header"},
			{Name: "Strict-Transport-Security", Header: "strict-transport-security", Status: scanner.StatusFail, Message: "Add a Strict-Transport-Security header"},
			{Name: "X-Content-Type-Options", Header: "x-content-type-options", Status: scanner.StatusFail, Message: "Add an X-Content-Type-Options header"},
			{Name: "Referrer-Policy", Header: "referrer-policy", Status: scanner.StatusWarn, Message: "Consider a Referrer-Policy header"},
			{Name: "Permissions-Policy", Header: "permissions-policy", Status: scanner.StatusWarn, Message: "Consider a Permissions-Policy header"},
		},
		Summary: scanner.Summary{Passed: 1, Failed: 3, Warnings: 2, Total: 6},
	}
}

func writeScanReportFixture(t *testing.T, report *scanner.Report) string {
	t.Helper()

	payload, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "scan.json")
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func resetReportFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		resetFlagForTest(t, reportCmd.Flags(), "input", "")
		resetFlagForTest(t, reportCmd.Flags(), "format", "md")
		resetFlagForTest(t, reportCmd.Flags(), "out", "")
	})
}

func TestBuildReportTemplateData(t *testing.T) {
	data := buildReportTemplateData(sampleScanReport())

	if data.URL != "https://example.com" {
		t.Fatalf("unexpected URL: %s", data.URL)
	}
	if data.ScannedAt != "2026-08-20T12:00:00Z" {
		t.Fatalf("unexpected scanned timestamp: %s", data.ScannedAt)
	}
	if data.GeneratedAt == "" {
		t.Fatal("expected generated timestamp to be set")
	}

	wantRequired := []string{"X-Frame-Options", "Strict-Transport-Security", "X-Content-Type-Options"}
	if len(data.MissingRequired) != len(wantRequired) {
		t.Fatalf("unexpected priority fixes: %v", data.MissingRequired)
	}
	for i, name := range wantRequired {
		if data.MissingRequired[i] != name {
			t.Fatalf("expected priority fix %s at index %d, got %s", name, i, data.MissingRequired[i])
		}
	}

	wantRecommended := []string{"Referrer-Policy", "Permissions-Policy"}
	if len(data.MissingRecommended) != len(wantRecommended) {
		t.Fatalf("unexpected recommendations: %v", data.MissingRecommended)
	}
}

func TestGenerateMarkdownReport(t *testing.T) {
	content, err := generateMarkdownReport(buildReportTemplateData(sampleScanReport()))
	if err != nil {
		t.Fatalf("failed to generate markdown report: %v", err)
	}

	for _, want := range []string{
		"# Security Header Report",
		"https://example.com",
		"| Content-Security-Policy | PASS |",
		"| X-Frame-Options | FAIL |",
		"| Referrer-Policy | WARN |",
		"## Priority Fixes",
		"- X-Frame-Options",
		"## Worth Adding",
		"- Permissions-Policy",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected markdown to contain %q, got:\n%s", want, content)
		}
	}
}

func TestGenerateMarkdownReportAllPassing(t *testing.T) {
	report := sampleScanReport()
	for i := range report.Results {
		report.Results[i].Status = scanner.StatusPass
	}
	report.Summary = scanner.Summary{Passed: 6, Total: 6}

	content, err := generateMarkdownReport(buildReportTemplateData(report))
	if err != nil {
		t.Fatalf("failed to generate markdown report: %v", err)
	}

	if strings.Contains(content, "## Priority Fixes") || strings.Contains(content, "## Worth Adding") {
		t.Fatalf("expected no fix sections for a clean report, got:\n%s", content)
	}
}

func TestGeneratePDFReportBytes(t *testing.T) {
	payload, err := generatePDFReportBytes(buildReportTemplateData(sampleScanReport()))
	if err != nil {
		t.Fatalf("failed to generate PDF report: %v", err)
	}

	if !bytes.HasPrefix(payload, []byte("%PDF")) {
		t.Fatalf("expected PDF magic bytes, got %q", payload[:8])
	}
}

func TestReportCommandGeneratesMarkdownFile(t *testing.T) {
	resetReportFlags(t)

	input := writeScanReportFixture(t, sampleScanReport())
	outPath := filepath.Join(t.TempDir(), "report.md")

	if err := reportCmd.Flags().Set("input", input); err != nil {
		t.Fatalf("failed to set input flag: %v", err)
	}
	if err := reportCmd.Flags().Set("out", outPath); err != nil {
		t.Fatalf("failed to set out flag: %v", err)
	}

	output := captureStdout(t, func() {
		if err := reportCmd.RunE(reportCmd, nil); err != nil {
			t.Errorf("report command failed: %v", err)
		}
	})

	if !strings.Contains(output, "Report generated:") {
		t.Fatalf("expected confirmation output, got %q", output)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("expected report file at %s: %v", outPath, err)
	}
	if !strings.Contains(string(content), "# Security Header Report") {
		t.Fatalf("unexpected report content:\n%s", content)
	}
}

func TestReportCommandGeneratesPDFWithDefaultOut(t *testing.T) {
	resetReportFlags(t)

	input := writeScanReportFixture(t, sampleScanReport())

	if err := reportCmd.Flags().Set("input", input); err != nil {
		t.Fatalf("failed to set input flag: %v", err)
	}
	if err := reportCmd.Flags().Set("format", "pdf"); err != nil {
		t.Fatalf("failed to set format flag: %v", err)
	}

	captureStdout(t, func() {
		if err := reportCmd.RunE(reportCmd, nil); err != nil {
			t.Errorf("report command failed: %v", err)
		}
	})

	outPath := filepath.Join(filepath.Dir(input), "report.pdf")
	payload, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("expected PDF next to the input file: %v", err)
	}
	if !bytes.HasPrefix(payload, []byte("%PDF")) {
		t.Fatalf("expected PDF magic bytes in %s", outPath)
	}
}

func TestReportCommandRejectsUnknownFormat(t *testing.T) {
	resetReportFlags(t)

	input := writeScanReportFixture(t, sampleScanReport())

	if err := reportCmd.Flags().Set("input", input); err != nil {
		t.Fatalf("failed to set input flag: %v", err)
	}
	if err := reportCmd.Flags().Set("format", "html"); err != nil {
		t.Fatalf("failed to set format flag: %v", err)
	}

	err := reportCmd.RunE(reportCmd, nil)
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if err.Error() != "invalid format: html (must be md or pdf)" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}

func TestReportCommandRequiresInput(t *testing.T) {
	resetReportFlags(t)

	err := reportCmd.RunE(reportCmd, nil)
	if err == nil {
		t.Fatal("expected error when --input is missing")
	}
	if err.Error() != "--input is required" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}
