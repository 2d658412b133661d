package rules

import "github.com/shopspring/decimal"

// SeverityConfig holds the disciplinary tuning constants. They are heuristic
// inputs validated against the golden scenarios in the tests, injected here
// so callers can tune them without touching the scorer. Decimal arithmetic
// keeps the accumulation exact, so the yellow-cutoff comparison cannot drift
// between runtimes.
type SeverityConfig struct {
	Base           decimal.Decimal
	ExcessiveForce decimal.Decimal
	Reckless       decimal.Decimal
	Dangerous      decimal.Decimal
	Late           decimal.Decimal
	High           decimal.Decimal
	NoContact      decimal.Decimal
	YellowCutoff   decimal.Decimal
}

// DefaultSeverityConfig returns the standard disciplinary constants.
func DefaultSeverityConfig() SeverityConfig {
	return SeverityConfig{
		Base:           decimal.RequireFromString("0.3"),
		ExcessiveForce: decimal.RequireFromString("0.2"),
		Reckless:       decimal.RequireFromString("0.15"),
		Dangerous:      decimal.RequireFromString("0.2"),
		Late:           decimal.RequireFromString("0.15"),
		High:           decimal.RequireFromString("0.1"),
		NoContact:      decimal.RequireFromString("0.1"),
		YellowCutoff:   decimal.RequireFromString("0.6"),
	}
}

var (
	severityZero = decimal.Zero
	severityOne  = decimal.RequireFromString("1")
)

// severity scores a non-red foul context in [0,1].
func (cfg SeverityConfig) severity(ctx FoulContext) decimal.Decimal {
	s := cfg.Base

	if ctx.ExcessiveForce {
		s = s.Add(cfg.ExcessiveForce)
	}
	if ctx.Reckless {
		s = s.Add(cfg.Reckless)
	}
	if ctx.Dangerous {
		s = s.Add(cfg.Dangerous)
	}
	if ctx.Late {
		s = s.Add(cfg.Late)
	}
	if ctx.High {
		s = s.Add(cfg.High)
	}
	if ctx.NoContact {
		s = s.Sub(cfg.NoContact)
	}

	if s.LessThan(severityZero) {
		return severityZero
	}
	if s.GreaterThan(severityOne) {
		return severityOne
	}
	return s
}

// directRedOffense maps the direct-red predicates to their offense. These
// bypass severity scoring entirely.
func directRedOffense(ctx FoulContext) (Offense, bool) {
	switch {
	case ctx.ViolentConduct:
		return OffenseViolentConduct, true
	case ctx.Headbutt, ctx.Punch:
		return OffenseAssault, true
	case ctx.Spitting:
		return OffenseSpitting, true
	case ctx.Biting:
		return OffenseBiting, true
	case ctx.SeriousFoulPlay, ctx.TwoFooted, ctx.StudsUp:
		return OffenseSeriousFoulPlay, true
	}
	return "", false
}

// yellowOffense picks the offense for a bookable foul by flag priority.
func yellowOffense(ctx FoulContext) Offense {
	switch {
	case ctx.Dangerous:
		return OffenseDangerousPlay
	case ctx.Reckless:
		return OffenseRecklessChallenge
	case ctx.ExcessiveForce:
		return OffenseExcessiveForce
	case ctx.Late:
		return OffenseLateChallenge
	case ctx.Dissent:
		return OffenseDissent
	default:
		return OffenseUnsportingBehavior
	}
}
