package diagnosis

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"

	apperrors "github.com/popslsls21/CServices/pkg/errors"
)

// Service exposes diagnostic search capabilities.
type Service interface {
	Diagnose(ctx context.Context, req Request) (Report, error)
	GenerateDiagnostic(ctx context.Context, description, brand, model string) Report
	Trending(ctx context.Context) ([]TrendingQuery, error)
}

type service struct {
	cfg     Config
	matcher *Matcher
	adapter *Adapter
	store   ReportStore
	sampler *sampler
	logger  *slog.Logger
}

// NewService wires up the diagnosis domain. A nil rng seeds from the clock;
// tests inject a seeded one.
func NewService(cfg Config, matcher *Matcher, adapter *Adapter, store ReportStore, rng *rand.Rand, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		matcher: matcher,
		adapter: adapter,
		store:   store,
		sampler: newSampler(rng),
		logger:  logger.With("component", "diagnosis.service"),
	}
}

// vagueIssues maps too-short queries to a clarifying question. Checked in
// order so English phrases win over their Arabic counterparts when both occur.
var vagueIssues = []struct {
	phrase   string
	question string
}{
	{"car not starting", "Is the issue related to the battery, starter motor, or ignition?"},
	{"strange noise", "Where is the noise coming from: the engine, brakes, or wheels?"},
	{"warning light", "Which warning light is showing on the dashboard?"},
	{"car shaking", "Does the shaking happen while idling, accelerating, or braking?"},
	{"smoke", "What color is the smoke and where is it coming from?"},
	{"السيارة لا تعمل", "هل المشكلة متعلقة بالبطارية أم بمحرك التشغيل أم بالإشعال؟"},
	{"صوت غريب", "من أين يصدر الصوت: المحرك أم الفرامل أم العجلات؟"},
	{"لمبة تحذير", "أي لمبة تحذير تظهر على لوحة العدادات؟"},
	{"اهتزاز السيارة", "هل يحدث الاهتزاز أثناء التوقف أم التسارع أم الفرملة؟"},
	{"دخان", "ما لون الدخان ومن أين يخرج؟"},
}

const (
	vagueMessage     = "I need more details to provide a solution, احتاج المزيد من التفاصيل لمساعدك."
	noResultsMessage = "No diagnostic information found. Please provide more details about your vehicle issue."
)

// Diagnose runs the full search flow: vague-query short circuit, cache
// lookup, AI diagnosis, catalogue matching, one unfiltered AI retry and the
// pattern matcher before giving up with a no-results report. Only an empty
// query is an error; every downstream failure degrades to the next strategy.
func (s *service) Diagnose(ctx context.Context, req Request) (Report, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return Report{}, apperrors.Wrap(apperrors.CodeInvalidInput, "query cannot be empty", nil)
	}
	brand := strings.TrimSpace(req.Brand)
	model := strings.TrimSpace(req.Model)

	if report, ok := s.vagueShortCircuit(query); ok {
		return report, nil
	}

	key := cacheKey(query, brand, model)
	if cached, hit, err := s.store.GetReport(ctx, key); err != nil {
		s.logger.Warn("report cache lookup failed", "error", err)
	} else if hit {
		s.recordQuery(ctx, query, brand, model)
		return cached, nil
	}

	if report, ok := s.tryAI(ctx, query, brand, model, s.cfg.Detailed); ok {
		s.cacheAndRecord(ctx, key, report, query, brand, model)
		return report, nil
	}

	results, err := s.matcher.Search(ctx, query, brand, model)
	if err != nil {
		s.logger.Error("catalogue search failed", "error", err)
	}
	if len(results) > 0 {
		report := s.catalogReport(results, query, brand)
		s.cacheAndRecord(ctx, key, report, query, brand, model)
		return report, nil
	}

	// One more provider attempt without the brand/model context before the
	// deterministic paths take over for good.
	if report, ok := s.tryAI(ctx, query, "", "", s.cfg.Detailed); ok {
		s.cacheAndRecord(ctx, key, report, query, brand, model)
		return report, nil
	}

	if report, ok := s.patternFallback(query, brand, model); ok {
		s.cacheAndRecord(ctx, key, report, query, brand, model)
		return report, nil
	}

	s.recordQuery(ctx, query, brand, model)
	return Report{
		Results:           []Result{},
		Message:           noResultsMessage,
		FollowUpQuestions: append([]string(nil), genericQuestions...),
		MaintenanceTips:   s.maintenanceTips(brand),
	}, nil
}

// patternFallback runs the substring matcher and reports ok only when it
// recognized at least one concrete category; a general-only classification
// falls through to the no-results terminal.
func (s *service) patternFallback(query, brand, model string) (Report, bool) {
	report := s.GenerateRuleBased(query, brand, model)
	if len(report.ProblemTypes) == 1 && report.ProblemTypes[0] == "general" {
		return Report{}, false
	}
	return report, true
}

// GenerateDiagnostic produces a best-effort report for internal callers such
// as the vehicle analysis pipeline, always in detailed mode. It never fails:
// when the AI path is unavailable the rule-based matcher answers instead.
func (s *service) GenerateDiagnostic(ctx context.Context, description, brand, model string) Report {
	if report, ok := s.tryAI(ctx, description, brand, model, true); ok {
		return report
	}
	return s.GenerateRuleBased(description, brand, model)
}

func (s *service) Trending(ctx context.Context) ([]TrendingQuery, error) {
	queries, err := s.store.TopQueries(ctx, s.cfg.TopTrending)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeProviderError, "failed to load trending queries", err)
	}
	return queries, nil
}

func (s *service) vagueShortCircuit(query string) (Report, bool) {
	if len(strings.Fields(query)) >= 5 {
		return Report{}, false
	}
	lowered := strings.ToLower(query)
	for _, issue := range vagueIssues {
		if strings.Contains(lowered, issue.phrase) {
			return Report{
				Results:           []Result{},
				Message:           vagueMessage,
				FollowUpQuestion:  issue.question,
				FollowUpQuestions: []string{issue.question},
				MaintenanceTips:   []string{},
			}, true
		}
	}
	return Report{}, false
}

// tryAI asks the adapter for a diagnosis and enriches a usable answer with
// related issues and brand-aware maintenance tips. A provider error or an
// empty result set reports !ok so the caller falls through.
func (s *service) tryAI(ctx context.Context, query, brand, model string, detailed bool) (Report, bool) {
	report, err := s.adapter.Generate(ctx, query, brand, model, detailed)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeQuotaExceeded) {
			s.logger.Warn("provider quota exhausted, using fallback", "error", err)
		} else {
			s.logger.Warn("ai diagnosis unavailable", "error", err)
		}
		return Report{}, false
	}
	if len(report.Results) == 0 {
		return Report{}, false
	}

	report.RelatedIssues = s.relatedIssues(report.Results[0].Problem + " " + query)
	report.MaintenanceTips = s.maintenanceTips(brand)
	if len(report.FollowUpQuestions) == 0 {
		report.FollowUpQuestions = s.sampler.sample(genericQuestions, 3)
	}
	return report, true
}

func (s *service) catalogReport(results []Result, query, brand string) Report {
	return Report{
		Results:           results,
		FollowUpQuestions: s.sampler.sample(genericQuestions, 3),
		MaintenanceTips:   s.maintenanceTips(brand),
		RelatedIssues:     s.relatedIssues(results[0].Problem + " " + query),
		Source:            "catalog",
	}
}

func (s *service) cacheAndRecord(ctx context.Context, key string, report Report, query, brand, model string) {
	if err := s.store.SaveReport(ctx, key, report, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("report cache write failed", "error", err)
	}
	s.recordQuery(ctx, query, brand, model)
}

func (s *service) recordQuery(ctx context.Context, query, brand, model string) {
	canonical := cacheKey(query, brand, model)
	if err := s.store.IncrementQuery(ctx, canonical, strings.TrimSpace(query)); err != nil {
		s.logger.Warn("trending increment failed", "error", err)
	}
}

func cacheKey(query, brand, model string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	return normalized + "|" + strings.ToLower(brand) + "|" + strings.ToLower(model)
}
