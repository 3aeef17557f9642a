// Package entity provides the player, monsters and the NPCs that roam the maps.
package entity

// Base stats for a new (or restarted) player.
const (
	BaseMaxHP      = 100
	BaseAttack     = 15
	BaseDefense    = 10
	BaseSpeed      = 5
	BaseGold       = 50
	BaseExpToLevel = 100
)

// Player is the single hero. It is created once and reset in place after a
// game over; the battle and the exploration loop take turns mutating it.
type Player struct {
	Name string

	// Combat stats
	HP, MaxHP int
	Attack    int
	Defense   int
	Speed     int // Movement pixels per tick; battle resolution ignores it

	// Progression
	Level      int
	Exp        int
	ExpToLevel int
	Gold       int
}

// NewPlayer creates a player with base stats.
func NewPlayer(name string) *Player {
	p := &Player{Name: name}
	p.Reset()
	return p
}

// Reset restores base stats without replacing the Player value.
func (p *Player) Reset() {
	p.HP = BaseMaxHP
	p.MaxHP = BaseMaxHP
	p.Attack = BaseAttack
	p.Defense = BaseDefense
	p.Speed = BaseSpeed
	p.Level = 1
	p.Exp = 0
	p.ExpToLevel = BaseExpToLevel
	p.Gold = BaseGold
}

// AddGold adds a non-negative amount of gold.
func (p *Player) AddGold(amount int) {
	if amount > 0 {
		p.Gold += amount
	}
}

// =============================================================================
// Combatant interface implementation
// =============================================================================

// GetName returns the player's name.
func (p *Player) GetName() string { return p.Name }

// IsAlive returns true if the player has HP remaining.
func (p *Player) IsAlive() bool { return p.HP > 0 }

// GetHP returns current HP.
func (p *Player) GetHP() int { return p.HP }

// GetMaxHP returns maximum HP.
func (p *Player) GetMaxHP() int { return p.MaxHP }

// GetAttack returns attack stat.
func (p *Player) GetAttack() int { return p.Attack }

// GetDefense returns defense stat.
func (p *Player) GetDefense() int { return p.Defense }

// GetSpeed returns speed stat.
func (p *Player) GetSpeed() int { return p.Speed }

// TakeDamage reduces HP and returns actual damage taken.
func (p *Player) TakeDamage(amount int) int {
	return takeDamage(&p.HP, amount)
}

// Heal restores HP and returns actual amount healed.
func (p *Player) Heal(amount int) int {
	return heal(&p.HP, p.MaxHP, amount)
}

// takeDamage keeps hp within [0, hp].
func takeDamage(hp *int, amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > *hp {
		actual = *hp
	}
	*hp -= actual
	return actual
}

// heal keeps hp within [hp, maxHP].
func heal(hp *int, maxHP, amount int) int {
	if amount <= 0 || *hp >= maxHP {
		return 0
	}
	actual := amount
	if *hp+actual > maxHP {
		actual = maxHP - *hp
	}
	*hp += actual
	return actual
}
