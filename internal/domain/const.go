package domain

const (
	// Battle constants
	DIE_SIDES       = 20
	MIN_MODIFIER    = 0
	MAX_MODIFIER    = 10
	DOMINANT_MARGIN = 10
	ODDS_TRIALS     = 10000

	// Student constants
	MAX_SELECTED_COUNTRIES = 3

	// UNOWNED_TERRITORY_COLOR is rendered for territories without an owning class
	UNOWNED_TERRITORY_COLOR = "#333333"

	// POLL_DATE_LAYOUT is the calendar-day format used for daily polls
	POLL_DATE_LAYOUT = "2006-01-02"
)
