package battle

import "github.com/feral-file/world-conquest/internal/domain"

// narratives holds the fixed template set, three per category
var narratives = map[domain.BattleCategory][3]string{
	domain.CategoryAttackerDominant: {
		"OVERWHELMING ATTACK! The attacker dominates completely!",
		"CRUSHING VICTORY! An unstoppable force!",
		"TOTAL DOMINATION! The defender is overwhelmed!",
	},
	domain.CategoryAttackerNarrow: {
		"Close battle! The attacker barely wins!",
		"Hard-fought victory! Just barely succeeds!",
		"Victory by a whisker! Dramatic win!",
	},
	domain.CategoryDefenderDominant: {
		"IMPENETRABLE DEFENSE! The territory holds strong!",
		"FORTRESS! The defender cannot be broken!",
		"UNBREAKABLE! The defense stands firm!",
	},
	domain.CategoryDefenderNarrow: {
		"Narrow defense! The attack is just repelled!",
		"Just barely holds! The territory is safe!",
		"Close call! The defense succeeds!",
	},
}

// Narratives returns the templates of a category
func Narratives(category domain.BattleCategory) []string {
	set, ok := narratives[category]
	if !ok {
		return nil
	}
	return set[:]
}

// pickNarrative selects one template of the category uniformly from src
func pickNarrative(category domain.BattleCategory, src Source) string {
	set := Narratives(category)
	if len(set) == 0 {
		return ""
	}
	return set[src.Intn(len(set))]
}
