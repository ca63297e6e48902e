package scanner

import "time"

// Status classifies the outcome of one header check.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusWarn Status = "warn"
)

// CheckResult records the outcome of a single checklist entry.
type CheckResult struct {
	Name    string `json:"name"`
	Header  string `json:"header"`
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// Summary tallies check results by status. Total always equals the checklist
// length, so Passed+Failed+Warnings adds up to it.
type Summary struct {
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Warnings int `json:"warnings"`
	Total    int `json:"total"`
}

// Report is the structured output of one scan. Results follow checklist
// order; Timestamp is captured at scan completion.
type Report struct {
	URL       string        `json:"url"`
	Timestamp time.Time     `json:"timestamp"`
	Results   []CheckResult `json:"results"`
	Summary   Summary       `json:"summary"`
}

func summarize(results []CheckResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			s.Passed++
		case StatusFail:
			s.Failed++
		case StatusWarn:
			s.Warnings++
		}
	}
	return s
}
