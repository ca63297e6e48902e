package scanner

import "net/http"

// Severity is the editorial weight of a checklist entry: it decides whether a
// missing header counts as a hard failure or an advisory warning.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// HeaderCheck describes one security header the scanner tests for.
type HeaderCheck struct {
	Header      string   `json:"header"` // canonical lowercase header name
	Name        string   `json:"name"`   // display name
	Severity    Severity `json:"severity"`
	PassMessage string   `json:"pass_message"`
	FailMessage string   `json:"fail_message"`
}

// checklist is the fixed, ordered set of headers every scan inspects.
// The order is user-visible: report results follow it exactly.
var checklist = []HeaderCheck{
	{
		Header:      "content-security-policy",
		Name:        "Content-Security-Policy",
		Severity:    SeverityHigh,
		PassMessage: "Content-Security-Policy header is present",
		FailMessage: "Add a Content-Security-Policy header to restrict the sources the browser may load",
	},
	{
		Header:      "x-frame-options",
		Name:        "X-Frame-Options",
		Severity:    SeverityMedium,
		PassMessage: "X-Frame-Options header is present",
		FailMessage: "Add 'X-Frame-Options: DENY' or 'SAMEORIGIN' to protect against clickjacking",
	},
	{
		Header:      "strict-transport-security",
		Name:        "Strict-Transport-Security",
		Severity:    SeverityHigh,
		PassMessage: "Strict-Transport-Security header is present",
		FailMessage: "Add a Strict-Transport-Security header to force HTTPS on repeat visits",
	},
	{
		Header:      "x-content-type-options",
		Name:        "X-Content-Type-Options",
		Severity:    SeverityMedium,
		PassMessage: "X-Content-Type-Options header is present",
		FailMessage: "Add 'X-Content-Type-Options: nosniff' to stop MIME-type sniffing",
	},
	{
		Header:      "referrer-policy",
		Name:        "Referrer-Policy",
		Severity:    SeverityLow,
		PassMessage: "Referrer-Policy header is present",
		FailMessage: "Add a Referrer-Policy header to limit referrer information sent cross-origin",
	},
	{
		Header:      "permissions-policy",
		Name:        "Permissions-Policy",
		Severity:    SeverityLow,
		PassMessage: "Permissions-Policy header is present",
		FailMessage: "Add a Permissions-Policy header to disable browser features you do not use",
	},
}

// Checklist returns a copy of the checklist so callers cannot mutate the
// scanner's configuration.
func Checklist() []HeaderCheck {
	out := make([]HeaderCheck, len(checklist))
	copy(out, checklist)
	return out
}

// evaluate tests the response headers for this entry. Presence alone decides
// the status; the header value is never inspected.
func (c HeaderCheck) evaluate(headers http.Header) CheckResult {
	result := CheckResult{
		Name:   c.Name,
		Header: c.Header,
	}

	if headers.Get(c.Header) != "" {
		result.Status = StatusPass
		result.Message = c.PassMessage
		return result
	}

	result.Status = StatusFail
	if c.Severity == SeverityLow {
		result.Status = StatusWarn
	}
	result.Message = c.FailMessage
	return result
}
