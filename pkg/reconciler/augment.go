package reconciler

import (
	"context"
	"maps"

	"github.com/agentstation/skillmap/pkg/inference"
	"github.com/agentstation/skillmap/pkg/institutions"
	"github.com/agentstation/skillmap/pkg/logging"
)

// augment enriches inst with inferred skills. Manual values win domain
// conflicts and follow inferred values in tool and specialization order.
// When inference fails the record keeps its own values and a failure is
// returned for the result.
func (r *reconciler) augment(ctx context.Context, inst institutions.Institution) (institutions.Institution, *InferenceFailure) {
	outcome := inference.Run(ctx, r.inferrer, inst)

	enriched := inst.Clone()
	if outcome.OK() {
		enriched.Domains = mergeDomains(outcome.Skills.Domains, inst.Domains)
		enriched.Tools = uniqueTools(outcome.Skills.Tools, inst.Tools)
		enriched.Specializations = uniqueStrings(outcome.Skills.Specializations, inst.Specializations)
		return enriched, nil
	}

	logging.FromContext(ctx).Warn().
		Err(outcome.Err).
		Str("institution_id", inst.ID).
		Str("inferrer", r.inferrer.Name()).
		Msg("Skill inference failed, keeping manual values")

	enriched.Domains = mergeDomains(nil, inst.Domains)
	enriched.Tools = uniqueTools(nil, inst.Tools)
	enriched.Specializations = uniqueStrings(nil, inst.Specializations)

	return enriched, &InferenceFailure{
		ID:    inst.ID,
		Error: outcome.Err.Error(),
		Err:   outcome.Err,
	}
}

// mergeDomains overlays manual onto inferred. The result is never nil.
func mergeDomains(inferred, manual institutions.Domains) institutions.Domains {
	out := make(institutions.Domains, len(inferred)+len(manual))
	maps.Copy(out, inferred)
	maps.Copy(out, manual)
	return out
}

// uniqueTools concatenates the lists, drops nameless tools and keeps the
// first tool for each name. The result is never nil.
func uniqueTools(lists ...[]institutions.Tool) []institutions.Tool {
	seen := make(map[string]bool)
	out := []institutions.Tool{}
	for _, list := range lists {
		for _, t := range list {
			if t.Name == "" || seen[t.Name] {
				continue
			}
			seen[t.Name] = true
			out = append(out, t)
		}
	}
	return out
}

// uniqueStrings concatenates the lists, drops empty values and duplicates.
// The result is never nil.
func uniqueStrings(lists ...[]string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, list := range lists {
		for _, s := range list {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
