package trace

import (
	"bytes"
	"fmt"

	"github.com/marsbound/rover/internal/core"
)

// Diff is one divergence between a journaled step and its replayed
// counterpart.
type Diff struct {
	Seq    int64  `json:"seq"`
	Aspect string `json:"aspect"` // "event", "state" or "effect"
	Want   string `json:"want"`   // journaled form
	Got    string `json:"got"`    // replayed form
}

// Verification is the result of replaying one journaled run.
type Verification struct {
	Steps         int    `json:"steps"`
	Deterministic bool   `json:"deterministic"`
	Diffs         []Diff `json:"diffs,omitempty"`
}

// VerifySteps replays a journaled run through the pure decision function and
// checks that it reproduces the journal exactly.
//
// Each journaled event is parsed back into a live event and fed through
// core.Update from the Loading state onward. The resulting state name and
// effect record must match the journaled ones byte for byte (canonical
// JSON). Any divergence means the journal and the decision function
// disagree - a non-deterministic or corrupted trace.
func VerifySteps(steps []Step) Verification {
	v := Verification{Steps: len(steps), Deterministic: true}
	state := core.Loading()

	for _, step := range steps {
		event, err := ToEvent(step.Event)
		if err != nil {
			v.fail(step.Seq, "event", recordJSON(step.Event), fmt.Sprintf("unreplayable: %v", err))
			// Without a usable event the fold cannot continue meaningfully.
			return v
		}

		next, effect := core.Update(state, event)

		if got := next.String(); got != step.State {
			v.fail(step.Seq, "state", step.State, got)
		}

		wantEffect := recordJSON(step.Effect)
		gotEffect := recordJSON(FromEffect(effect))
		if !bytes.Equal([]byte(wantEffect), []byte(gotEffect)) {
			v.fail(step.Seq, "effect", wantEffect, gotEffect)
		}

		state = next
	}
	return v
}

func (v *Verification) fail(seq int64, aspect, want, got string) {
	v.Deterministic = false
	v.Diffs = append(v.Diffs, Diff{Seq: seq, Aspect: aspect, Want: want, Got: got})
}

func recordJSON(r Record) string {
	data, err := MarshalCanonical(r)
	if err != nil {
		// Records built by this package always marshal; a failure here is a
		// programming error surfaced in the diff output.
		return fmt.Sprintf("<unmarshalable: %v>", err)
	}
	return string(data)
}
