package entity

// Stat growth applied by every level-up.
const (
	LevelUpMaxHP      = 20
	LevelUpAttack     = 5
	LevelUpDefense    = 3
	ExpCurveNumerator = 3 // expToLevel grows by 3/2 per level, rounded down
	ExpCurveDivisor   = 2
)

// LevelUp records a player's stats before and after one level-up.
type LevelUp struct {
	FromLevel, ToLevel     int
	FromMaxHP, ToMaxHP     int
	FromAttack, ToAttack   int
	FromDefense, ToDefense int
	NextThreshold          int
}

// GainExp adds experience and applies at most one level-up.
// Leftover exp above the new threshold waits for the next kill.
func (p *Player) GainExp(amount int) (LevelUp, bool) {
	if amount > 0 {
		p.Exp += amount
	}
	if p.Exp < p.ExpToLevel {
		return LevelUp{}, false
	}
	p.Exp -= p.ExpToLevel
	return p.LevelUp(), true
}

// LevelUp raises the player one level and fully heals them.
func (p *Player) LevelUp() LevelUp {
	lu := LevelUp{
		FromLevel:   p.Level,
		FromMaxHP:   p.MaxHP,
		FromAttack:  p.Attack,
		FromDefense: p.Defense,
	}

	p.Level++
	p.MaxHP += LevelUpMaxHP
	p.Heal(p.MaxHP)
	p.Attack += LevelUpAttack
	p.Defense += LevelUpDefense
	p.ExpToLevel = p.ExpToLevel * ExpCurveNumerator / ExpCurveDivisor

	lu.ToLevel = p.Level
	lu.ToMaxHP = p.MaxHP
	lu.ToAttack = p.Attack
	lu.ToDefense = p.Defense
	lu.NextThreshold = p.ExpToLevel
	return lu
}
