package rules

// PassEvent is the positional snapshot handed over when a forward pass is
// played. Defenders lists the defending side's outfield players only; the
// goalkeeper is excluded by the caller.
type PassEvent struct {
	PasserPosition   Position   `json:"passer_position"`
	ReceiverPosition Position   `json:"receiver_position"`
	ReceiverVelocity Position   `json:"receiver_velocity"`
	Defenders        []Position `json:"defenders"`
	// AttackSign is +1 when the attacking side plays toward increasing X,
	// -1 otherwise.
	AttackSign float64 `json:"attack_sign"`
}

// OffsideEvent is the transient classification of one pass. It is not
// persisted by the core.
type OffsideEvent struct {
	IsOffside bool `json:"is_offside"`
	// MarginMM is the signed distance the receiver is beyond the offside
	// reference line along the attacking axis. Zero or negative is onside.
	MarginMM      float64 `json:"margin_mm"`
	LastDefenderX float64 `json:"last_defender_x"`
	ReferenceX    float64 `json:"reference_x"`
}

// DetectOffside classifies a pass. The reference line is the deeper of the
// last outfield defender and the passer; the receiver is offside when moving
// toward the opponent's goal from beyond that line. With no outfield
// defenders left, any forward receiver is offside.
func DetectOffside(p PassEvent) OffsideEvent {
	sign := p.AttackSign
	if sign == 0 {
		sign = 1
	}

	movingForward := p.ReceiverVelocity.X*sign > 0

	if len(p.Defenders) == 0 {
		margin := (p.ReceiverPosition.X - p.PasserPosition.X) * sign
		return OffsideEvent{
			IsOffside:  movingForward,
			MarginMM:   margin,
			ReferenceX: p.PasserPosition.X,
		}
	}

	// The last defender is the one closest to their own goal line, i.e.
	// deepest along the attacking axis.
	last := p.Defenders[0].X
	for _, d := range p.Defenders[1:] {
		if d.X*sign > last*sign {
			last = d.X
		}
	}

	reference := last
	if p.PasserPosition.X*sign > reference*sign {
		reference = p.PasserPosition.X
	}

	margin := (p.ReceiverPosition.X - reference) * sign

	return OffsideEvent{
		IsOffside:     movingForward && margin > 0,
		MarginMM:      margin,
		LastDefenderX: last,
		ReferenceX:    reference,
	}
}
