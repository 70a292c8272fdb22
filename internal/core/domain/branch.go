package domain

// Predicate is a deferred branch condition. It is evaluated exactly once per branch.
type Predicate func() (bool, error)

// When runs then against target if cond holds, otherwise runs otherwise.
// Either callback may be nil. The target is returned so calls can be chained.
func When[T any](target T, cond bool, then, otherwise func(T)) T {
	switch {
	case cond && then != nil:
		then(target)
	case !cond && otherwise != nil:
		otherwise(target)
	}
	return target
}

// Not negates a predicate.
func Not(p Predicate) Predicate {
	return func() (bool, error) {
		ok, err := p()
		return !ok, err
	}
}

// Always returns a predicate with a fixed outcome.
func Always(v bool) Predicate {
	return func() (bool, error) { return v, nil }
}
