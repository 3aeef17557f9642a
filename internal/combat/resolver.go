// Package combat provides damage arithmetic and the turn-based battle state
// machine for SlimeQuest.
package combat

// Combatant is the interface for anything that can take part in a battle.
// Both the player and monsters implement it.
type Combatant interface {
	// Identity
	GetName() string
	IsAlive() bool

	// Stats
	GetHP() int
	GetMaxHP() int
	GetAttack() int
	GetDefense() int
	GetSpeed() int

	// Mutations
	TakeDamage(amount int) int // Returns actual HP lost
}

// Guard divisors: how much of the defender's Defense stat counts while it is
// defending. The two sides are deliberately asymmetric; tune them here.
const (
	// MonsterGuardDivisor halves a defending monster's mitigation.
	MonsterGuardDivisor = 2
	// PlayerGuardDivisor gives a defending player full mitigation.
	PlayerGuardDivisor = 1
)

// MinDamage is the floor for every hit, so no battle can stall.
const MinDamage = 1

// HitResult contains the outcome of one hit.
type HitResult struct {
	Damage int  // Damage rolled against the target, before HP clamping
	Dead   bool // Target HP reached zero
}

// EffectiveDefense returns the mitigation a defender gets this hit.
// Defense only counts while defending; un-defended hits ignore it.
func EffectiveDefense(defense, guardDivisor int, defending bool) int {
	if !defending || defense <= 0 {
		return 0
	}
	if guardDivisor <= 1 {
		return defense
	}
	return defense / guardDivisor
}

// CalculateDamage computes a hit without applying it (for previews).
func CalculateDamage(rawAttack, defense, guardDivisor int, defending bool) int {
	damage := rawAttack - EffectiveDefense(defense, guardDivisor, defending)
	if damage < MinDamage {
		damage = MinDamage
	}
	return damage
}

// ApplyDamage resolves a hit of rawAttack against target and applies it.
// The target's HP is clamped at zero.
func ApplyDamage(target Combatant, rawAttack, guardDivisor int, defending bool) HitResult {
	damage := CalculateDamage(rawAttack, target.GetDefense(), guardDivisor, defending)
	target.TakeDamage(damage)
	return HitResult{
		Damage: damage,
		Dead:   !target.IsAlive(),
	}
}
