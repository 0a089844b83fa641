// Package inference derives skill tags (domains, tools, specializations)
// from an institution's raw fields. The reconciler treats every Inferrer as a
// black box and isolates its failures per record.
package inference

import (
	"context"
	"fmt"

	"github.com/agentstation/skillmap/pkg/errors"
	"github.com/agentstation/skillmap/pkg/institutions"
)

// Skills are the enrichment fields produced by inference.
// Absent fields are treated as empty.
type Skills struct {
	Domains         institutions.Domains `json:"domains,omitempty" yaml:"domains,omitempty"`
	Tools           []institutions.Tool  `json:"tools,omitempty" yaml:"tools,omitempty"`
	Specializations []string             `json:"specializations,omitempty" yaml:"specializations,omitempty"`
}

// Inferrer classifies an institution.
type Inferrer interface {
	// Name identifies the inferrer in logs and errors
	Name() string

	// Infer derives skills for a single institution
	Infer(ctx context.Context, inst institutions.Institution) (Skills, error)
}

// Func adapts a pure classification function to the Inferrer interface.
type Func func(inst institutions.Institution) (Skills, error)

// Name returns the inferrer name.
func (f Func) Name() string {
	return "func"
}

// Infer calls f.
func (f Func) Infer(_ context.Context, inst institutions.Institution) (Skills, error) {
	return f(inst)
}

// Outcome is the per-record result of inference: either Skills or Err.
type Outcome struct {
	ID     string
	Skills Skills
	Err    error
}

// OK reports whether inference succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Run invokes inf on a copy of inst. Errors and panics are converted into an
// *errors.InferenceError on the Outcome; Run itself never fails.
func Run(ctx context.Context, inf Inferrer, inst institutions.Institution) (out Outcome) {
	out.ID = inst.ID
	name := inf.Name()

	defer func() {
		if r := recover(); r != nil {
			out.Skills = Skills{}
			out.Err = errors.NewInferenceError(inst.ID, name, fmt.Errorf("panic: %v", r))
		}
	}()

	skills, err := inf.Infer(ctx, inst.Clone())
	if err != nil {
		out.Err = errors.NewInferenceError(inst.ID, name, err)
		return out
	}
	out.Skills = skills
	return out
}
