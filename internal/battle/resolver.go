package battle

import (
	"math"

	"github.com/feral-file/world-conquest/internal/domain"
)

// Result is the full record of a resolved battle
type Result struct {
	AttackerRoll     int                   `json:"attacker_roll"`
	DefenderRoll     int                   `json:"defender_roll"`
	AttackerModifier int                   `json:"attacker_modifier"`
	DefenderModifier int                   `json:"defender_modifier"`
	AttackerTotal    int                   `json:"attacker_total"`
	DefenderTotal    int                   `json:"defender_total"`
	Margin           int                   `json:"margin"`
	Outcome          domain.Outcome        `json:"outcome"`
	Winner           domain.Side           `json:"winner"`
	Category         domain.BattleCategory `json:"category"`
	Narrative        string                `json:"narrative"`
}

// Odds is the simulated chance of each side winning, in whole percent
type Odds struct {
	AttackerWinChance int `json:"attacker_win_chance"`
	DefenderWinChance int `json:"defender_win_chance"`
	Trials            int `json:"trials"`
}

// Resolver turns modifiers into rolls, totals, an outcome and a narrative
type Resolver struct {
	dice       Source
	narration  Source
	simulation Source
	trials     int
}

// Option configures a Resolver
type Option func(*Resolver)

// WithNarrationSource sets the source used to pick narrative templates
func WithNarrationSource(src Source) Option {
	return func(r *Resolver) { r.narration = src }
}

// WithSimulationSource sets the source used by Odds
func WithSimulationSource(src Source) Option {
	return func(r *Resolver) { r.simulation = src }
}

// WithTrials sets the number of simulated battles used by Odds
func WithTrials(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.trials = n
		}
	}
}

// NewResolver creates a resolver rolling dice from the given source.
// Narration and simulation default to their own time-seeded sources so that
// neither consumes dice randomness.
func NewResolver(dice Source, opts ...Option) *Resolver {
	r := &Resolver{
		dice:   dice,
		trials: domain.ODDS_TRIALS,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.narration == nil {
		r.narration = NewSource(0)
	}
	if r.simulation == nil {
		r.simulation = NewSource(0)
	}
	return r
}

// Validate rejects modifiers outside [0,10], reporting every offending side
func Validate(attackerModifier, defenderModifier int) error {
	verr := &domain.ValidationError{}
	if attackerModifier < domain.MIN_MODIFIER || attackerModifier > domain.MAX_MODIFIER {
		verr.Add("attacker_modifier", "attacker modifier must be 0-10")
	}
	if defenderModifier < domain.MIN_MODIFIER || defenderModifier > domain.MAX_MODIFIER {
		verr.Add("defender_modifier", "defender modifier must be 0-10")
	}
	return verr.OrNil()
}

// Clamp forces a modifier into [0,10]
func Clamp(modifier int) int {
	return min(max(modifier, domain.MIN_MODIFIER), domain.MAX_MODIFIER)
}

// Decide computes totals, outcome and category for fixed rolls.
// Ties favor the defender.
func Decide(attackerRoll, defenderRoll, attackerModifier, defenderModifier int) Result {
	res := Result{
		AttackerRoll:     attackerRoll,
		DefenderRoll:     defenderRoll,
		AttackerModifier: attackerModifier,
		DefenderModifier: defenderModifier,
		AttackerTotal:    attackerRoll + attackerModifier,
		DefenderTotal:    defenderRoll + defenderModifier,
	}

	if res.AttackerTotal > res.DefenderTotal {
		res.Outcome = domain.OutcomeAttackerWins
		res.Margin = res.AttackerTotal - res.DefenderTotal
	} else {
		res.Outcome = domain.OutcomeDefenderWins
		res.Margin = res.DefenderTotal - res.AttackerTotal
	}
	res.Winner = res.Outcome.Winner()
	res.Category = Categorize(res.Outcome, res.Margin)

	return res
}

// Categorize classifies a winning margin: >= 10 is dominant, otherwise narrow
func Categorize(outcome domain.Outcome, margin int) domain.BattleCategory {
	dominant := margin >= domain.DOMINANT_MARGIN
	switch {
	case outcome == domain.OutcomeAttackerWins && dominant:
		return domain.CategoryAttackerDominant
	case outcome == domain.OutcomeAttackerWins:
		return domain.CategoryAttackerNarrow
	case dominant:
		return domain.CategoryDefenderDominant
	default:
		return domain.CategoryDefenderNarrow
	}
}

// Roll draws a single d20
func (r *Resolver) Roll() int {
	return r.dice.Intn(domain.DIE_SIDES) + 1
}

// Resolve is the strict entry point: out-of-range modifiers are rejected before rolling.
// Used by the battle executor.
func (r *Resolver) Resolve(attackerModifier, defenderModifier int) (*Result, error) {
	if err := Validate(attackerModifier, defenderModifier); err != nil {
		return nil, err
	}
	return r.resolve(attackerModifier, defenderModifier), nil
}

// ResolveClamped clamps modifiers into [0,10] and resolves.
// Used for raw slider input such as the odds preview.
func (r *Resolver) ResolveClamped(attackerModifier, defenderModifier int) *Result {
	return r.resolve(Clamp(attackerModifier), Clamp(defenderModifier))
}

func (r *Resolver) resolve(attackerModifier, defenderModifier int) *Result {
	attackerRoll := r.Roll()
	defenderRoll := r.Roll()

	res := Decide(attackerRoll, defenderRoll, attackerModifier, defenderModifier)
	res.Narrative = pickNarrative(res.Category, r.narration)

	return &res
}

// Odds estimates each side's chance of winning by simulation.
// Modifiers are clamped; the dice source is never consumed.
func (r *Resolver) Odds(attackerModifier, defenderModifier int) Odds {
	attackerModifier = Clamp(attackerModifier)
	defenderModifier = Clamp(defenderModifier)

	attackerWins := 0
	for rangeIdx := 0; rangeIdx < r.trials; rangeIdx++ {
		a := r.simulation.Intn(domain.DIE_SIDES) + 1 + attackerModifier
		d := r.simulation.Intn(domain.DIE_SIDES) + 1 + defenderModifier
		if a > d {
			attackerWins++
		}
	}

	attacker := int(math.Round(float64(attackerWins) / float64(r.trials) * 100))
	return Odds{
		AttackerWinChance: attacker,
		DefenderWinChance: 100 - attacker,
		Trials:            r.trials,
	}
}
