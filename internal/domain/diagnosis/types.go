// Package diagnosis turns free-text problem descriptions into ranked fault
// reports. Two matching strategies coexist on purpose: the catalogue matcher
// scores exact keyword-set intersections while the pattern matcher uses
// substring containment over category keyword lists. The source system grew
// them independently and downstream behaviour depends on both, so they are
// kept as distinct code paths rather than merged.
package diagnosis

import (
	"context"
	"time"
)

// Severity grades a diagnosed problem.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityWarning  Severity = "Warning"
	SeverityMinor    Severity = "Minor"
	SeverityUnknown  Severity = "Unknown"
)

// Result is a single diagnosed problem with repair metadata.
type Result struct {
	Problem       string   `json:"problem"`
	Severity      Severity `json:"problem_severity"`
	Solution      string   `json:"solution"`
	EstimatedCost string   `json:"estimated_cost"`
	DIYPossible   bool     `json:"diy_possible"`
	TimeEstimate  string   `json:"time_estimate,omitempty"`
	MatchScore    int      `json:"score,omitempty"`
}

// RelatedIssue points at a problem commonly seen alongside the diagnosed one.
type RelatedIssue struct {
	Issue       string `json:"issue"`
	Description string `json:"description"`
}

// Report is the terminal output of a diagnosis. Results are ordered most
// relevant first. A report with an empty Results slice and a Message is the
// documented "no results" outcome, not an error.
type Report struct {
	Results           []Result       `json:"results"`
	FollowUpQuestions []string       `json:"follow_up_questions"`
	MaintenanceTips   []string       `json:"maintenance_tips"`
	RelatedIssues     []RelatedIssue `json:"related_issues,omitempty"`
	ProblemTypes      []string       `json:"problem_types,omitempty"`
	Message           string         `json:"message,omitempty"`
	FollowUpQuestion  string         `json:"follow_up_question,omitempty"`
	Source            string         `json:"source,omitempty"`
}

// Request encapsulates a diagnostic search query.
type Request struct {
	Query string `json:"query"`
	Brand string `json:"brand"`
	Model string `json:"model"`
}

// TrendingQuery represents a frequently diagnosed problem description.
type TrendingQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// CatalogEntry is one row of the curated fault catalogue. Reference data,
// loaded once at startup and treated as immutable.
type CatalogEntry struct {
	Brand         string   `yaml:"brand"`
	Model         string   `yaml:"model"`
	Problem       string   `yaml:"problem"`
	Solution      string   `yaml:"solution"`
	Keywords      []string `yaml:"keywords"`
	Severity      Severity `yaml:"severity"`
	EstimatedCost string   `yaml:"estimatedCost"`
	DIYPossible   bool     `yaml:"diyPossible"`
	TimeEstimate  string   `yaml:"timeEstimate"`
}

// CatalogRepository provides access to the fault catalogue.
type CatalogRepository interface {
	Entries(ctx context.Context) ([]CatalogEntry, error)
}

// ReportStore caches served reports and tracks query popularity.
type ReportStore interface {
	GetReport(ctx context.Context, key string) (Report, bool, error)
	SaveReport(ctx context.Context, key string, report Report, ttl time.Duration) error
	IncrementQuery(ctx context.Context, canonical, display string) error
	TopQueries(ctx context.Context, limit int) ([]TrendingQuery, error)
}

// Config tunes the orchestrator.
type Config struct {
	CacheTTL    time.Duration
	TopTrending int
	Detailed    bool
}
