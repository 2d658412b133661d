package rules

// Position is a pitch-plane coordinate in millimeters. X runs goal to goal
// over a 105m pitch, Y across it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

const pitchLengthMM = 105000.0

// pitchZone buckets a location into thirds along the length of the pitch,
// measured from the X=0 goal line.
func pitchZone(p Position) string {
	switch {
	case p.X < pitchLengthMM/3:
		return "low_third"
	case p.X < 2*pitchLengthMM/3:
		return "middle_third"
	default:
		return "high_third"
	}
}

// FoulContext describes one detected incident. It is produced by the
// external physics layer and consumed exactly once by the disciplinary
// system.
type FoulContext struct {
	ExcessiveForce  bool `json:"excessive_force"`
	Reckless        bool `json:"reckless"`
	Dangerous       bool `json:"dangerous"`
	Late            bool `json:"late"`
	High            bool `json:"high"`
	NoContact       bool `json:"no_contact"`
	ViolentConduct  bool `json:"violent_conduct"`
	Headbutt        bool `json:"headbutt"`
	Punch           bool `json:"punch"`
	SeriousFoulPlay bool `json:"serious_foul_play"`
	TwoFooted       bool `json:"two_footed"`
	StudsUp         bool `json:"studs_up"`
	Spitting        bool `json:"spitting"`
	Biting          bool `json:"biting"`
	Dissent         bool `json:"dissent"`
	BallContacted   bool `json:"ball_contacted"`
	Injury          bool `json:"injury"`
	OpponentFallen  bool `json:"opponent_fallen"`

	Location Position `json:"location"`
}

// wellFormed reports whether the context is internally consistent. A
// contradictory snapshot (contact flags raised alongside no-contact) is
// treated as malformed and degrades to a tactical foul rather than guessing.
func (c FoulContext) wellFormed() bool {
	if c.NoContact && (c.BallContacted || c.Injury || c.Headbutt || c.Punch || c.Biting) {
		return false
	}
	return true
}
