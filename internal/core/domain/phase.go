package domain

// Phase is the lifecycle stage of a descriptor.
type Phase int

const (
	// PhaseEmpty is the phase of a freshly created descriptor.
	PhaseEmpty Phase = iota
	// PhaseMiddlewares is the phase during which shared middlewares run.
	PhaseMiddlewares
	// PhaseOverrides is the phase during which local overrides run.
	PhaseOverrides
	// PhaseBranches is the phase during which conditional installations run.
	PhaseBranches
	// PhaseFinalized is terminal. No mutation is accepted afterwards.
	PhaseFinalized
)

var phaseNames = [...]string{"empty", "middlewares", "overrides", "branches", "finalized"}

func (p Phase) String() string {
	if p < PhaseEmpty || p > PhaseFinalized {
		return "unknown"
	}
	return phaseNames[p]
}

// session is the state shared by a descriptor and every fluent node it hands out.
type session struct {
	phase Phase
	err   error
}

// record keeps the first error seen during a pass.
func (s *session) record(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

// mutable reports whether a mutation may proceed, recording
// ErrDescriptorFinalized when it may not.
func (s *session) mutable(operation string) bool {
	if s.phase == PhaseFinalized {
		s.record(annotate(ErrDescriptorFinalized, "cannot mutate descriptor", "operation", operation))
		return false
	}
	return true
}

func (s *session) advance(next Phase) error {
	if next <= s.phase {
		return annotate(ErrInvalidPhaseTransition, "cannot change phase",
			"from", s.phase.String(), "to", next.String())
	}
	s.phase = next
	return nil
}
