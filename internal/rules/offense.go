package rules

// Offense is the closed set of bookable offenses. Keeping it closed lets the
// suspension lookup stay exhaustive; an offense without an entry there is a
// compile-time-visible omission, not a silent zero.
type Offense string

const (
	// Red-card offenses.
	OffenseViolentConduct          Offense = "violent_conduct"
	OffenseSeriousFoulPlay         Offense = "serious_foul_play"
	OffenseSpitting                Offense = "spitting"
	OffenseBiting                  Offense = "biting"
	OffenseDenialOfGoalOpportunity Offense = "denial_of_goal_opportunity"
	OffenseAbusiveLanguage         Offense = "abusive_language"
	OffenseSecondYellow            Offense = "second_yellow"
	OffenseAssault                 Offense = "assault"

	// Yellow-card offenses.
	OffenseRecklessChallenge  Offense = "reckless_challenge"
	OffenseDangerousPlay      Offense = "dangerous_play"
	OffenseLateChallenge      Offense = "late_challenge"
	OffenseExcessiveForce     Offense = "excessive_force"
	OffenseHandballDeliberate Offense = "handball_deliberate"
	OffenseDissent            Offense = "dissent"
	OffenseUnsportingBehavior Offense = "unsporting_behavior"
)

// SuspensionMatches is the fixed offense-to-length lookup applied whenever a
// red card is issued. Yellow offenses carry no ban on their own.
func SuspensionMatches(o Offense) int {
	switch o {
	case OffenseViolentConduct:
		return 3
	case OffenseSeriousFoulPlay:
		return 3
	case OffenseSpitting:
		return 4
	case OffenseBiting:
		return 4
	case OffenseDenialOfGoalOpportunity:
		return 2
	case OffenseHandballDeliberate:
		return 1
	case OffenseAbusiveLanguage:
		return 5
	case OffenseSecondYellow:
		return 1
	case OffenseAssault:
		return 5
	}
	return 0
}

// CardColor is the card shown to a player.
type CardColor string

const (
	CardYellow CardColor = "yellow"
	CardRed    CardColor = "red"
)
