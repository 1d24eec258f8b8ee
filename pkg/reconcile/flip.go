package reconcile

import (
	"errors"
	"fmt"
)

var (
	errNoStrandReport     = errors.New("flip mode strand-report needs a strand report")
	errUnusedStrandReport = errors.New("a strand report is only read by flip mode strand-report")
)

// FlipMode chooses where the list of variants to strand-flip comes from.
// Only one source is used in a run.
type FlipMode int

const (
	FlipNone FlipMode = iota
	// FlipAll flips every variant classified as flipped
	FlipAll
	// FlipNonAmbiguous flips the flipped variants whose allele pair is not A/T or C/G
	FlipNonAmbiguous
	// FlipStrandReport flips the variants a strand report places on the minus strand
	FlipStrandReport
)

var flipModeNames = []string{"none", "all", "non-ambiguous", "strand-report"}

func (m FlipMode) String() string {
	if int(m) < len(flipModeNames) {
		return flipModeNames[m]
	}
	return fmt.Sprintf("FlipMode(%d)", int(m))
}

// ParseFlipMode parses none, all, non-ambiguous or strand-report
func ParseFlipMode(s string) (FlipMode, error) {
	for i, name := range flipModeNames {
		if s == name {
			return FlipMode(i), nil
		}
	}
	return FlipNone, fmt.Errorf("unknown flip mode %q (want none, all, non-ambiguous or strand-report)", s)
}

// Flips returns the variants to flip. minus is the list of minus strand
// variants from a strand report and is only read by FlipStrandReport.
func Flips(mode FlipMode, rep *Report, minus []string) []string {
	switch mode {
	case FlipAll:
		return rep.Variants(Flipped)
	case FlipNonAmbiguous:
		var flips []string
		for _, v := range rep.Variants(Flipped) {
			if !rep.Survey.IsAmbiguous(v) {
				flips = append(flips, v)
			}
		}
		return flips
	case FlipStrandReport:
		return minus
	}
	return nil
}

// CheckFlipSource checks that a strand report is given exactly when the flip
// mode reads one
func CheckFlipSource(mode FlipMode, haveStrandReport bool) error {
	switch {
	case mode == FlipStrandReport && !haveStrandReport:
		return errNoStrandReport
	case mode != FlipStrandReport && haveStrandReport:
		return fmt.Errorf("%w, not %s", errUnusedStrandReport, mode)
	}
	return nil
}
