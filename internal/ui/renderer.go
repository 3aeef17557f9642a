package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/slimequest/internal/combat"
	"github.com/samdwyer/slimequest/internal/entity"
	"github.com/samdwyer/slimequest/internal/gamedata"
)

// hudHeight is the number of rows below the map.
const hudHeight = 3

var (
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFrame   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleAvatar  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePortal  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleNPC     = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	stylePatrol  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHeading = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBad     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// patrolFrames animates a walking slime.
var patrolFrames = [entity.PatrolFrameCount]rune{'s', 'o', 's', 'O'}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// ExploreView is everything the overworld screen shows.
type ExploreView struct {
	Area       *gamedata.AreaDef
	Avatar     *entity.Avatar
	Patrollers []*entity.Patroller
	Player     *entity.Player
	Steps      int
	Cooldown   int    // Portal cooldown ticks; portals are dimmed while it runs
	Prompt     string // Talk prompt, empty when nobody is near
}

// RenderExplore draws the current area scaled to the terminal, with the HUD
// underneath.
func (r *Renderer) RenderExplore(v ExploreView) {
	r.screen.Clear()
	width, height := r.screen.Size()
	mapW, mapH := width-2, height-hudHeight-2
	if mapW < 1 || mapH < 1 {
		r.screen.Show()
		return
	}

	r.screen.DrawBox(0, 0, width-1, mapH+1, styleFrame)
	r.screen.DrawText(2, 0, " "+v.Area.Name+" ", styleHeading)

	cell := func(x, y float64) (int, int) {
		cx := int(x / v.Area.Width * float64(mapW))
		cy := int(y / v.Area.Height * float64(mapH))
		return 1 + min(cx, mapW-1), 1 + min(cy, mapH-1)
	}

	portalStyle := stylePortal
	if v.Cooldown > 0 {
		portalStyle = styleDim
	}
	for _, portal := range v.Area.Portals {
		x, y := cell(portal.X, portal.Y)
		r.screen.SetContent(x, y, 'O', portalStyle)
	}
	for _, npc := range v.Area.NPCs {
		if npc.Kind != gamedata.NPCTalker {
			continue
		}
		x, y := cell(npc.X, npc.Y)
		r.screen.SetContent(x, y, '&', styleNPC)
	}
	for _, p := range v.Patrollers {
		x, y := cell(p.X, p.Y)
		r.screen.SetContent(x, y, patrolFrames[p.Frame], stylePatrol)
	}
	ax, ay := cell(v.Avatar.X, v.Avatar.Y)
	r.screen.SetContent(ax, ay, v.Avatar.Symbol, styleAvatar)

	hud := mapH + 2
	p := v.Player
	r.screen.DrawText(1, hud, fmt.Sprintf("%s  Lv.%d  HP %d/%d  EXP %d/%d  Gold %d",
		p.Name, p.Level, p.HP, p.MaxHP, p.Exp, p.ExpToLevel, p.Gold), styleText)
	r.screen.DrawText(1, hud+1, fmt.Sprintf("(%.0f, %.0f) facing %s  steps %d",
		v.Avatar.X, v.Avatar.Y, v.Avatar.Facing, v.Steps), styleDim)
	if v.Prompt != "" {
		r.screen.DrawText(1, hud+2, v.Prompt, styleHeading)
	}

	r.screen.Show()
}

// RenderBattle draws both stat blocks, the message and the action menu.
func (r *Renderer) RenderBattle(snap combat.Snapshot) {
	r.screen.Clear()
	width, _ := r.screen.Size()

	monsterStyle := tcell.StyleDefault.Foreground(snap.MonsterColor).Bold(true)
	r.screen.SetContent(2, 1, snap.MonsterGlyph, monsterStyle)
	r.drawStats(4, 1, snap.Monster, snap.MonsterDefending)
	r.screen.DrawText(6, 4, fmt.Sprintf("Tier %d", snap.MonsterTier), styleDim)

	r.screen.SetContent(2, 6, '@', styleAvatar)
	r.drawStats(4, 6, snap.Player, snap.PlayerDefending)
	r.screen.DrawText(6, 9, fmt.Sprintf("Lv.%d  EXP %d/%d  Gold %d",
		snap.PlayerLevel, snap.PlayerExp, snap.PlayerExpToLevel, snap.PlayerGold), styleDim)

	r.screen.DrawBox(0, 12, width-1, 13+len(snap.Lines)+1, styleFrame)
	for i, line := range snap.Lines {
		r.screen.DrawText(2, 13+i, line, styleText)
	}

	menuY := 15 + len(snap.Lines)
	switch snap.Phase {
	case combat.PhaseAwaitingAction:
		r.screen.DrawText(2, menuY, "[1/A] Attack   [2/D] Defend   [3/F] Flee", styleHeading)
	case combat.PhaseAwaitingContinue:
		r.screen.DrawText(2, menuY, "[Space] Continue", styleHeading)
	}

	r.screen.Show()
}

func (r *Renderer) drawStats(x, y int, s combat.Stats, defending bool) {
	name := s.Name
	if defending {
		name += " (defending)"
	}
	r.screen.DrawText(x, y, name, styleHeading)
	r.screen.DrawText(x+2, y+1, fmt.Sprintf("HP  %d/%d %s", s.HP, s.MaxHP, hpBar(s.HP, s.MaxHP, 20)), styleText)
	r.screen.DrawText(x+2, y+2, fmt.Sprintf("ATK %d  DEF %d  SPD %d", s.Attack, s.Defense, s.Speed), styleDim)
}

// hpBar renders hp as a bar of the given width.
func hpBar(hp, maxHP, width int) string {
	filled := 0
	if maxHP > 0 {
		filled = hp * width / maxHP
	}
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '#'
		} else {
			bar[i] = '.'
		}
	}
	return string(bar)
}

// RenderLevelUp shows the stats before and after a level-up.
func (r *Renderer) RenderLevelUp(lu entity.LevelUp) {
	r.screen.Clear()
	r.screen.DrawText(2, 1, "LEVEL UP!", styleHeading)
	rows := []struct {
		label    string
		from, to int
	}{
		{"Level  ", lu.FromLevel, lu.ToLevel},
		{"Max HP ", lu.FromMaxHP, lu.ToMaxHP},
		{"Attack ", lu.FromAttack, lu.ToAttack},
		{"Defense", lu.FromDefense, lu.ToDefense},
	}
	for i, row := range rows {
		r.screen.DrawText(4, 3+i, fmt.Sprintf("%s %3d -> %3d (+%d)", row.label, row.from, row.to, row.to-row.from), styleText)
	}
	r.screen.DrawText(4, 8, fmt.Sprintf("Next level at %d exp", lu.NextThreshold), styleDim)
	r.screen.DrawText(2, 10, "[Space] Continue", styleHeading)
	r.screen.Show()
}

// RenderDialog draws an NPC's line in a box at the bottom of the screen.
func (r *Renderer) RenderDialog(speaker, line string) {
	width, height := r.screen.Size()
	top := max(0, height-6)
	for y := top; y < height; y++ {
		for x := 0; x < width; x++ {
			r.screen.SetContent(x, y, ' ', styleText)
		}
	}
	r.screen.DrawBox(0, top, width-1, height-1, styleFrame)
	r.screen.DrawText(2, top, " "+speaker+" ", styleNPC)
	r.screen.DrawText(2, top+2, line, styleText)
	r.screen.DrawText(2, top+4, "[Space] Next   [Esc] Leave", styleDim)
	r.screen.Show()
}

// RenderGameOver draws the defeat screen.
func (r *Renderer) RenderGameOver(p *entity.Player) {
	r.screen.Clear()
	r.screen.DrawText(2, 1, "GAME OVER", styleBad)
	r.screen.DrawText(2, 3, fmt.Sprintf("%s fell at Lv.%d with %d gold.", p.Name, p.Level, p.Gold), styleText)
	r.screen.DrawText(2, 5, "[R] Restart   [Esc/Q] Quit", styleHeading)
	r.screen.Show()
}
