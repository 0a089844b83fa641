// Package reconciler builds the institution catalog. It aligns user and
// legacy records that describe the same institution, merges them with user
// data taking precedence, appends unmatched legacy and company records, and
// enriches every record with inferred skills while isolating per-record
// inference failures.
package reconciler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/skillmap/pkg/inference"
	"github.com/agentstation/skillmap/pkg/institutions"
	"github.com/agentstation/skillmap/pkg/logging"
	"github.com/agentstation/skillmap/pkg/metrics"
)

// Reconciler builds a catalog from raw datasets.
type Reconciler interface {
	// Institutions reconciles ds into a catalog. It never fails: inference
	// failures are reported on the Result and the affected records kept.
	Institutions(ctx context.Context, ds *institutions.Datasets) *Result
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	inferrer inference.Inferrer
	metrics  *metrics.Metrics
	aliases  map[string]string // overrides Datasets.Aliases when set
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		inferrer: options.inferrer,
		metrics:  options.metrics,
		aliases:  options.aliases,
	}, nil
}

// entry is a record queued for the catalog together with where it came from.
type entry struct {
	inst   institutions.Institution
	source string
}

// Institutions performs reconciliation with a clean step-by-step flow.
func (r *reconciler) Institutions(ctx context.Context, ds *institutions.Datasets) *Result {
	result := NewResult()
	result.Metadata.Inferrer = r.inferrer.Name()
	start := time.Now()

	ctx = logging.WithRunID(ctx, result.RunID)
	logger := logging.FromContext(ctx)

	if ds == nil {
		ds = &institutions.Datasets{}
	}
	aliases := r.aliases
	if aliases == nil {
		aliases = ds.Aliases
	}

	// Step 1: Deduplicate user records by id
	users := newUserIndex(ds.Users)
	result.Stats.Users = users.len()
	result.Stats.DuplicateUsers = users.replaced
	if users.replaced > 0 {
		logger.Debug().
			Int("replaced", users.replaced).
			Msg("Resolved duplicate user ids, last record wins")
	}

	// Steps 2-4: Resolve and merge legacy counterparts
	entries := r.mergeUsers(logger, users, newLegacyIndex(ds.Legacy), aliases)

	// Step 5: Append legacy records nobody claimed
	excluded := excludedLegacyIDs(users, aliases)
	for _, l := range ds.Legacy {
		if excluded[l.ID] {
			continue
		}
		entries = append(entries, entry{inst: l.Clone(), source: metrics.SourceLegacy})
	}

	// Step 6: Append company records
	for _, c := range ds.Companies {
		entries = append(entries, entry{inst: c.Clone(), source: metrics.SourceCompany})
	}

	// Final assembly: exactly one record per id
	entries = r.unique(logger, entries, result)

	// Step 7: Per-record inference augmentation
	result.Institutions = make([]institutions.Institution, 0, len(entries))
	for _, e := range entries {
		enriched, failure := r.augment(ctx, e.inst)
		if failure != nil {
			result.Failures = append(result.Failures, *failure)
		}
		result.Institutions = append(result.Institutions, enriched)
		r.count(e.source, &result.Stats)
	}
	result.Stats.InferenceFailures = len(result.Failures)
	result.Stats.Total = len(result.Institutions)

	result.Finalize()
	r.observe(start, result)

	logger.Info().
		Int("institutions", result.Stats.Total).
		Int("merged", result.Stats.Merged).
		Int("legacy_passthrough", result.Stats.LegacyPassthrough).
		Int("companies", result.Stats.Companies).
		Int("inference_failures", result.Stats.InferenceFailures).
		Dur("duration", result.Metadata.Duration).
		Msg("Built institution catalog")

	return result
}

// mergeUsers merges every deduplicated user record with its legacy counterpart, if any.
func (r *reconciler) mergeUsers(logger *zerolog.Logger, users *userIndex, legacy legacyIndex, aliases map[string]string) []entry {
	entries := make([]entry, 0, users.len())

	for _, u := range users.list() {
		legacyID := resolveLegacyID(u.ID, aliases)
		l, ok := legacy.get(legacyID)
		if !ok {
			entries = append(entries, entry{inst: u.Clone(), source: metrics.SourceUser})
			continue
		}

		logger.Debug().
			Str("institution_id", u.ID).
			Str("legacy_id", legacyID).
			Msg("Merging user record with legacy record")
		entries = append(entries, entry{inst: mergeInstitution(u, l), source: metrics.SourceMerged})
	}

	return entries
}

// unique drops every entry whose id was already emitted, keeping the first.
// Well-formed inputs never collide here.
func (r *reconciler) unique(logger *zerolog.Logger, entries []entry, result *Result) []entry {
	seen := make(map[string]bool, len(entries))
	out := entries[:0]

	for _, e := range entries {
		if seen[e.inst.ID] {
			result.addWarning("dropped %s record with duplicate id %q", e.source, e.inst.ID)
			result.Stats.Dropped++
			logger.Warn().
				Str("institution_id", e.inst.ID).
				Str("source", e.source).
				Msg("Dropped record with duplicate id")
			continue
		}
		seen[e.inst.ID] = true
		out = append(out, e)
	}
	return out
}

func (r *reconciler) count(source string, stats *Statistics) {
	switch source {
	case metrics.SourceMerged:
		stats.Merged++
	case metrics.SourceUser:
		stats.UserOnly++
	case metrics.SourceLegacy:
		stats.LegacyPassthrough++
	case metrics.SourceCompany:
		stats.Companies++
	}
}

func (r *reconciler) observe(start time.Time, result *Result) {
	if r.metrics == nil {
		return
	}
	s := result.Stats
	r.metrics.ObserveRecords(metrics.SourceMerged, s.Merged)
	r.metrics.ObserveRecords(metrics.SourceUser, s.UserOnly)
	r.metrics.ObserveRecords(metrics.SourceLegacy, s.LegacyPassthrough)
	r.metrics.ObserveRecords(metrics.SourceCompany, s.Companies)
	r.metrics.DuplicateUsers.Add(float64(s.DuplicateUsers))
	r.metrics.InferenceFailures.Add(float64(s.InferenceFailures))
	r.metrics.ObserveBuild(start, s.Total)
}
