package combat

import (
	"errors"
	"fmt"

	"github.com/samdwyer/slimequest/internal/entity"
)

var (
	// ErrInvalidTransition is returned when an input is not legal in the
	// battle's current phase. The battle is left untouched.
	ErrInvalidTransition = errors.New("invalid battle transition")
	// ErrBattleOver is returned for any input after the battle resolved.
	ErrBattleOver = errors.New("battle is over")
)

// Rand is the random source used for the monster's defend roll and for
// flee attempts. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Phase is the battle's position in its turn cycle.
type Phase int

const (
	// PhaseAwaitingAction - waiting for attack, defend or flee
	PhaseAwaitingAction Phase = iota
	// PhaseAwaitingContinue - a turn was resolved and its message is showing
	PhaseAwaitingContinue
	// PhaseResolved - the battle is over; Outcome is set
	PhaseResolved
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingAction:
		return "awaiting_action"
	case PhaseAwaitingContinue:
		return "awaiting_continue"
	case PhaseResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Outcome is the final classification of a battle.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeFled
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Action is a player choice during PhaseAwaitingAction.
type Action int

const (
	ActionAttack Action = iota
	ActionDefend
	ActionFlee
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionDefend:
		return "defend"
	case ActionFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// Exit tells the caller where control goes after Continue.
type Exit int

const (
	// ExitNone - the battle goes on
	ExitNone Exit = iota
	// ExitExplore - back to the overworld
	ExitExplore
	// ExitLevelUp - show the level-up screen, then the overworld
	ExitLevelUp
	// ExitGameOver - show the game-over screen
	ExitGameOver
)

// String returns the exit name.
func (e Exit) String() string {
	switch e {
	case ExitNone:
		return "none"
	case ExitExplore:
		return "explore"
	case ExitLevelUp:
		return "level_up"
	case ExitGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Rules holds the battle's tunable odds.
type Rules struct {
	MonsterDefendChance float64 // Chance the monster mirrors a defend instead of attacking
	FleeChance          float64 // Chance a flee attempt succeeds
}

// DefaultRules returns the standard odds.
func DefaultRules() Rules {
	return Rules{
		MonsterDefendChance: 0.5,
		FleeChance:          0.7,
	}
}

// TurnResult describes what one action did.
type TurnResult struct {
	Action          Action
	DamageDealt     int  // Player -> monster
	DamageTaken     int  // Monster -> player
	MonsterAttacked bool // Monster swung this turn
	MonsterDefended bool // Monster took a defending stance this turn
	Outcome         Outcome
	ExpGained       int
	GoldGained      int
	LevelUp         *entity.LevelUp // Set when the kill levelled the player
}

// Battle is the state machine for one encounter. It owns the monster and
// mutates the shared player. It is not safe for concurrent use.
type Battle struct {
	player  *entity.Player
	monster *entity.Monster
	rng     Rand
	rules   Rules

	phase   Phase
	outcome Outcome
	lines   []string
	turns   int

	playerDefending  bool
	monsterDefending bool

	levelUp *entity.LevelUp
}

// NewBattle starts a battle in PhaseAwaitingAction.
func NewBattle(player *entity.Player, monster *entity.Monster, rng Rand, rules Rules) *Battle {
	return &Battle{
		player:  player,
		monster: monster,
		rng:     rng,
		rules:   rules,
		phase:   PhaseAwaitingAction,
		lines:   []string{fmt.Sprintf("A wild %s appears!", monster.Name)},
	}
}

// Phase returns the current phase.
func (b *Battle) Phase() Phase { return b.phase }

// Outcome returns the outcome, OutcomeNone while undecided.
func (b *Battle) Outcome() Outcome { return b.outcome }

// Over reports whether the battle has resolved.
func (b *Battle) Over() bool { return b.phase == PhaseResolved }

// Player returns the player in this battle.
func (b *Battle) Player() *entity.Player { return b.player }

// Monster returns the monster in this battle.
func (b *Battle) Monster() *entity.Monster { return b.monster }

// Turns returns the number of resolved actions.
func (b *Battle) Turns() int { return b.turns }

// LevelUp returns the level-up earned by the winning blow, if any.
func (b *Battle) LevelUp() (entity.LevelUp, bool) {
	if b.levelUp == nil {
		return entity.LevelUp{}, false
	}
	return *b.levelUp, true
}

// Message returns the current message lines.
func (b *Battle) Message() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Act resolves one player action. It is only legal in PhaseAwaitingAction.
func (b *Battle) Act(action Action) (TurnResult, error) {
	if err := b.require(PhaseAwaitingAction, action.String()); err != nil {
		return TurnResult{}, err
	}

	var result TurnResult
	switch action {
	case ActionAttack:
		result = b.attack()
	case ActionDefend:
		result = b.defend()
	case ActionFlee:
		result = b.flee()
	default:
		return TurnResult{}, fmt.Errorf("%w: unknown action %d", ErrInvalidTransition, action)
	}

	result.Action = action
	result.Outcome = b.outcome
	b.turns++
	return result, nil
}

// Continue acknowledges the current message. It is only legal in
// PhaseAwaitingContinue. Victory and defeat end the battle here.
func (b *Battle) Continue() (Exit, error) {
	if err := b.require(PhaseAwaitingContinue, "continue"); err != nil {
		return ExitNone, err
	}

	b.lines = nil
	switch b.outcome {
	case OutcomeVictory:
		b.phase = PhaseResolved
		if b.levelUp != nil {
			return ExitLevelUp, nil
		}
		return ExitExplore, nil
	case OutcomeDefeat:
		b.phase = PhaseResolved
		return ExitGameOver, nil
	default:
		b.phase = PhaseAwaitingAction
		return ExitNone, nil
	}
}

// Snapshot returns a copy of everything a HUD needs.
func (b *Battle) Snapshot() Snapshot {
	return Snapshot{
		Phase:            b.phase,
		Outcome:          b.outcome,
		Lines:            b.Message(),
		Turns:            b.turns,
		PlayerDefending:  b.playerDefending,
		MonsterDefending: b.monsterDefending,
		Player:           statsOf(b.player),
		PlayerLevel:      b.player.Level,
		PlayerExp:        b.player.Exp,
		PlayerExpToLevel: b.player.ExpToLevel,
		PlayerGold:       b.player.Gold,
		Monster:          statsOf(b.monster),
		MonsterGlyph:     b.monster.Symbol,
		MonsterColor:     b.monster.Color(),
		MonsterTier:      b.monster.Tier(),
	}
}

// require checks the phase gate for an input.
func (b *Battle) require(want Phase, input string) error {
	if b.phase == PhaseResolved {
		return fmt.Errorf("%w: %s after %s", ErrBattleOver, input, b.outcome)
	}
	if b.phase != want {
		return fmt.Errorf("%w: %s during %s", ErrInvalidTransition, input, b.phase)
	}
	return nil
}

// attack: player hits, then a surviving monster counter-attacks.
// Both stances are consumed by the exchange.
func (b *Battle) attack() TurnResult {
	var result TurnResult

	hit := ApplyDamage(b.monster, b.player.Attack, MonsterGuardDivisor, b.monsterDefending)
	result.DamageDealt = hit.Damage
	b.lines = []string{fmt.Sprintf("You deal %d damage to %s!", hit.Damage, b.monster.Name)}

	if hit.Dead {
		b.win(&result)
	} else {
		b.monsterStrikes(&result)
	}

	b.playerDefending = false
	b.monsterDefending = false
	b.phase = PhaseAwaitingContinue
	return result
}

// defend: the player braces; the monster either mirrors it or attacks into
// the guard. The stances carry over to the next action.
func (b *Battle) defend() TurnResult {
	var result TurnResult

	b.playerDefending = true
	b.lines = []string{"You take a defensive stance!"}

	if b.rng.Float64() < b.rules.MonsterDefendChance {
		b.monsterDefending = true
		result.MonsterDefended = true
		b.lines = append(b.lines, fmt.Sprintf("%s also takes a defensive stance!", b.monster.Name))
	} else {
		b.monsterStrikes(&result)
	}

	b.phase = PhaseAwaitingContinue
	return result
}

// flee: success ends the battle at once; failure gives the monster a free hit.
func (b *Battle) flee() TurnResult {
	var result TurnResult

	if b.rng.Float64() < b.rules.FleeChance {
		b.outcome = OutcomeFled
		b.phase = PhaseResolved
		b.lines = []string{"You got away safely!"}
		b.playerDefending = false
		b.monsterDefending = false
		return result
	}

	b.lines = []string{"You couldn't get away!"}
	b.monsterStrikes(&result)
	b.playerDefending = false
	b.phase = PhaseAwaitingContinue
	return result
}

// monsterStrikes applies the monster's hit on the player and checks defeat.
func (b *Battle) monsterStrikes(result *TurnResult) {
	hit := ApplyDamage(b.player, b.monster.Attack, PlayerGuardDivisor, b.playerDefending)
	result.MonsterAttacked = true
	result.DamageTaken = hit.Damage
	b.lines = append(b.lines, fmt.Sprintf("%s deals %d damage to you!", b.monster.Name, hit.Damage))

	if hit.Dead {
		b.outcome = OutcomeDefeat
		b.lines = append(b.lines, "You have been defeated!")
	}
}

// win pays out the monster's rewards.
func (b *Battle) win(result *TurnResult) {
	b.outcome = OutcomeVictory

	exp, gold := b.monster.ExpReward, b.monster.GoldReward
	lu, leveled := b.player.GainExp(exp)
	b.player.AddGold(gold)

	result.ExpGained = exp
	result.GoldGained = gold
	b.lines = append(b.lines, fmt.Sprintf("%s is defeated! You gain %d exp and %d gold!", b.monster.Name, exp, gold))

	if leveled {
		b.levelUp = &lu
		result.LevelUp = &lu
		b.lines = append(b.lines, fmt.Sprintf("Level up! Lv.%d -> Lv.%d", lu.FromLevel, lu.ToLevel))
	}
}
