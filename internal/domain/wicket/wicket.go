// Package wicket classifies dismissals and attributes them to the bowler
// and fielder.
package wicket

import (
	"fmt"

	"github.com/ayush9889/score-wise/internal/domain/model"
)

// FielderCredit identifies what the fielder is credited with, if anything.
type FielderCredit string

const (
	CreditNone     FielderCredit = ""
	CreditCatch    FielderCredit = "catch"
	CreditStumping FielderCredit = "stumping"
	CreditRunOut   FielderCredit = "run_out"
)

// Attribution is the resolved credit for a dismissal.
type Attribution struct {
	// BowlerWicket reports whether the dismissal counts in the bowler's
	// wicket tally.
	BowlerWicket bool
	// FielderCredit is non-empty when a named fielder earns a fielding
	// statistic for the dismissal.
	FielderCredit FielderCredit
	// CountsAsOut reports whether the batsman is recorded as dismissed
	// for batting statistics. Retirements end the innings without one.
	CountsAsOut bool
}

// Resolve validates a dismissal kind and optional fielder and returns the
// attribution. Run-outs never credit the bowler; retirements credit
// nobody. A fielder id on a kind that does not use one is rejected.
func Resolve(kind model.DismissalKind, fielder string) (Attribution, error) {
	if !kind.Valid() {
		return Attribution{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	switch kind {
	case model.DismissalBowled, model.DismissalLBW, model.DismissalHitWicket:
		if fielder != "" {
			return Attribution{}, fmt.Errorf("%w: %s takes no fielder", ErrUnexpectedFielder, kind)
		}
		return Attribution{BowlerWicket: true, CountsAsOut: true}, nil

	case model.DismissalCaught:
		att := Attribution{BowlerWicket: true, CountsAsOut: true}
		if fielder != "" {
			att.FielderCredit = CreditCatch
		}
		return att, nil

	case model.DismissalStumped:
		att := Attribution{BowlerWicket: true, CountsAsOut: true}
		if fielder != "" {
			att.FielderCredit = CreditStumping
		}
		return att, nil

	case model.DismissalRunOut:
		att := Attribution{CountsAsOut: true}
		if fielder != "" {
			att.FielderCredit = CreditRunOut
		}
		return att, nil

	case model.DismissalRetired:
		if fielder != "" {
			return Attribution{}, fmt.Errorf("%w: %s takes no fielder", ErrUnexpectedFielder, kind)
		}
		return Attribution{}, nil
	}

	return Attribution{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
}

// AllowedOnDelivery reports whether a dismissal kind can occur on the
// given delivery type. Only a run-out (or retirement) can fall on a
// no-ball; a wide additionally permits a stumping.
func AllowedOnDelivery(kind model.DismissalKind, wide, noBall bool) bool {
	switch {
	case noBall:
		return kind == model.DismissalRunOut || kind == model.DismissalRetired
	case wide:
		return kind == model.DismissalRunOut || kind == model.DismissalStumped ||
			kind == model.DismissalRetired
	}
	return true
}
