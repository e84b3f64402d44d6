// Package candy implements the Candy Crush campaign on top of the match-3
// engine: turns, scoring, level progression, hints and auto-play.
package candy

import (
	"math/rand"

	"github.com/vovakirdan/tui-candy/internal/config"
	"github.com/vovakirdan/tui-candy/internal/core"
	"github.com/vovakirdan/tui-candy/internal/games/candy/engine"
	"github.com/vovakirdan/tui-candy/internal/games/candy/levels"
	"github.com/vovakirdan/tui-candy/internal/registry"
)

// GameID is the registry and score-table identifier.
const GameID = "candy"

// Package-level variables for config set via CLI
var (
	selectedStartLevel int
	configPath         string
	difficultyPreset   config.DifficultyPreset
	customCatalog      *levels.Catalog
)

// SetStartLevel sets the starting level (1-based). 0 means start from the beginning.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// SetCatalog replaces the built-in levels. nil restores the default catalog.
func SetCatalog(c *levels.Catalog) {
	customCatalog = c
}

// ActiveCatalog returns the catalog new games will play.
func ActiveCatalog() *levels.Catalog {
	if customCatalog != nil {
		return customCatalog
	}
	return levels.Default()
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          GameID,
		Title:       "Candy Crush",
		Description: "Swap candies, match three, reach the goal before the moves run out",
	}, func() registry.Game {
		return New()
	})
}

// timings holds every delay converted to ticks.
type timings struct {
	swap       int
	clear      int
	fall       int
	cascade    int
	hint       int
	idleHint   int
	autoPlay   int
	levelClear int
	message    int
}

func newTimings(t config.TimingConfig, tickRate int) timings {
	return timings{
		swap:       config.MillisToTicks(t.SwapMS, tickRate),
		clear:      config.MillisToTicks(t.ClearMS, tickRate),
		fall:       config.MillisToTicks(t.FallMS, tickRate),
		cascade:    config.MillisToTicks(t.CascadeMS, tickRate),
		hint:       config.MillisToTicks(t.HintMS, tickRate),
		idleHint:   config.MillisToTicks(t.IdleHintMS, tickRate),
		autoPlay:   config.MillisToTicks(t.AutoPlayMS, tickRate),
		levelClear: config.MillisToTicks(t.LevelClearMS, tickRate),
		message:    config.MillisToTicks(t.MessageMS, tickRate),
	}
}

// Game implements the Candy Crush campaign.
type Game struct {
	rng     *rand.Rand
	tick    uint64
	cfg     config.CandyConfig
	timing  timings
	catalog *levels.Catalog
	palette Palette

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool

	// Campaign
	startLevel     int // 1-based, consumed by the next Reset
	board          *engine.Board
	levelIndex     int
	level          levels.LevelConfig // Current level with difficulty applied
	failedAttempts int
	score          int // Score of the current attempt
	total          int // Sum of cleared levels
	movesLeft      int
	movesUsed      int

	// Player interaction
	cursor     engine.Pos
	selected   *engine.Pos
	hint       *engine.Move
	hintTicks  int
	idleTicks  int
	idleHinted bool
	autoPlay   bool
	autoDelay  int

	// Turn state machine
	phase      Phase
	phaseTicks int
	anim       animation

	message      string
	messageTicks int
	messageColor core.Color

	paused   bool
	gameOver bool
	exit     bool
	events   []core.Event
}

// New creates a new Candy Crush game.
func New() *Game {
	return &Game{palette: DefaultPalette}
}

// StartAt makes the next Reset of this instance begin at the given 1-based
// level. It takes precedence over SetStartLevel.
func (g *Game) StartAt(level int) {
	g.startLevel = level
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Candy Crush"
}

// Reset initializes/restarts the campaign.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadCandy(configPath)
	if err != nil {
		cfg = config.DefaultCandyConfig()
	}
	if difficultyPreset != "" {
		config.ApplyCandyPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.timing = newTimings(cfg.Timing, runtime.Rate())

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tick = 0
	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH
	g.catalog = ActiveCatalog()
	if g.palette == nil {
		g.palette = DefaultPalette
	}

	g.score = 0
	g.total = 0
	g.failedAttempts = 0
	g.paused = false
	g.gameOver = false
	g.exit = false
	g.events = nil

	// Apply selected start level
	g.levelIndex = 0
	if g.startLevel > 0 {
		if g.startLevel <= g.catalog.Count() {
			g.levelIndex = g.startLevel - 1
		}
		g.startLevel = 0
	} else if selectedStartLevel > 0 && selectedStartLevel <= g.catalog.Count() {
		g.levelIndex = selectedStartLevel - 1
		selectedStartLevel = 0 // Reset after use
	}

	g.loadLevel()
}

// loadLevel starts a fresh attempt of the current level.
func (g *Game) loadLevel() {
	lvl, ok := g.catalog.Get(g.levelIndex)
	if !ok {
		// Shouldn't happen, but default to last level
		g.levelIndex = g.catalog.Count() - 1
		lvl, _ = g.catalog.Get(g.levelIndex)
	}

	lvl.ScoreGoal = g.cfg.Difficulty.Goal(lvl.ScoreGoal)
	lvl.MoveBudget = g.cfg.Difficulty.Moves(lvl.MoveBudget)
	g.level = lvl

	// Catalogs are validated, so New cannot fail here.
	board, err := engine.New(lvl.Rows, lvl.Cols, lvl.NumTypes, g.rng)
	if err != nil {
		panic("candy: " + err.Error())
	}
	g.board = board

	g.score = 0
	g.movesLeft = lvl.Moves(g.failedAttempts, g.cfg.Rules.RetryBonus)
	g.movesUsed = 0
	g.cursor = engine.P(lvl.Rows/2, lvl.Cols/2)
	g.selected = nil
	g.hint = nil
	g.hintTicks = 0
	g.autoPlay = false
	g.autoDelay = 0
	g.message = ""
	g.messageTicks = 0
	g.anim = animation{}
	g.resetIdle()
	g.enterPhase(PhaseIdle)
	g.checkScreenSize()
}

// restartCampaign goes back to the first level with a clean slate.
func (g *Game) restartCampaign() {
	g.levelIndex = 0
	g.failedAttempts = 0
	g.total = 0
	g.loadLevel()
}

// checkScreenSize checks if the screen is large enough for the current board.
func (g *Game) checkScreenSize() {
	minW, minH := g.minScreenSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.events = nil

	if g.tooSmall {
		if in.Has(core.ActionBack) {
			g.exit = true
		}
		return g.result()
	}

	g.updateTimers()

	if in.Has(core.ActionBack) {
		if g.phase == PhaseLevelFailed {
			// Giving up ends the run; the platform stores the score.
			g.gameOver = true
		}
		g.exit = true
		return g.result()
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	switch g.phase {
	case PhaseIdle:
		g.stepIdle(in)
	case PhaseSwap, PhaseClear, PhaseFall, PhaseSettle:
		// Input is locked while a turn resolves, except the auto-play switch.
		if in.Has(core.ActionAutoPlay) {
			g.toggleAutoPlay()
		}
		g.stepTurn()
	case PhaseLevelCleared:
		g.phaseTicks++
		if g.phaseTicks >= g.timing.levelClear || in.Has(core.ActionConfirm) || in.Has(core.ActionSelect) {
			g.advanceLevel()
		}
	case PhaseLevelFailed:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionSelect) || in.Has(core.ActionRestart) {
			g.loadLevel() // Retry with the comeback bonus
		}
	case PhaseVictory:
		// Restart is handled by the platform (Reset with a new seed).
	}

	return g.result()
}

// updateTimers ages the hint highlight and the status message.
func (g *Game) updateTimers() {
	if g.hint != nil {
		g.hintTicks--
		if g.hintTicks <= 0 {
			g.hint = nil
		}
	}
	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}
}

// stepIdle handles player input between turns.
func (g *Game) stepIdle(in core.InputFrame) {
	if in.Has(core.ActionAutoPlay) {
		g.toggleAutoPlay()
	}
	if g.autoPlay {
		g.autoDelay--
		if g.autoDelay <= 0 {
			g.performAutoPlay()
		}
		return
	}

	if in.Has(core.ActionRestart) {
		g.restartCampaign()
		return
	}

	acted := !in.Empty()

	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionDown):
		g.moveCursor(1, 0)
	case in.Has(core.ActionLeft):
		g.moveCursor(0, -1)
	case in.Has(core.ActionRight):
		g.moveCursor(0, 1)
	}

	if in.Click != nil {
		if pos, ok := g.cellAt(in.Click.X, in.Click.Y); ok {
			g.cursor = pos
			g.selectCandy(pos)
		}
	} else if in.Has(core.ActionSelect) || in.Has(core.ActionConfirm) {
		g.selectCandy(g.cursor)
	}

	if g.phase != PhaseIdle {
		return // A swap started
	}

	if in.Has(core.ActionShuffle) {
		g.shuffle()
	}
	if in.Has(core.ActionHint) {
		g.showHint()
	}

	if acted {
		g.resetIdle()
		return
	}

	g.idleTicks++
	if g.timing.idleHint > 0 && !g.idleHinted && g.idleTicks >= g.timing.idleHint {
		g.idleHinted = true
		g.showHint()
	}
}

// moveCursor moves the cursor by (dr, dc), staying on the board.
func (g *Game) moveCursor(dr, dc int) {
	g.cursor.Row = core.Clamp(g.cursor.Row+dr, 0, g.board.Rows()-1)
	g.cursor.Col = core.Clamp(g.cursor.Col+dc, 0, g.board.Cols()-1)
}

// selectCandy picks a candy, or swaps it with the one already picked.
// Picking the same candy twice drops the selection.
func (g *Game) selectCandy(pos engine.Pos) {
	if g.selected == nil {
		p := pos
		g.selected = &p
		return
	}

	from := *g.selected
	g.selected = nil
	if from == pos {
		return
	}

	g.trySwap(engine.Move{A: from, B: pos})
}

// trySwap asks the board for the swap and starts the turn on success.
func (g *Game) trySwap(m engine.Move) bool {
	if !g.board.Swap(m.A.Row, m.A.Col, m.B.Row, m.B.Col) {
		g.setMessage("Invalid swap")
		g.messageColor = core.ColorBrightRed
		return false
	}

	g.movesLeft--
	g.movesUsed++
	g.hint = nil
	g.startSwapAnimation(m)
	return true
}

// showHint highlights the first valid move on the board.
func (g *Game) showHint() {
	if g.autoPlay {
		return
	}
	move, ok := engine.FindFirstValidMove(g.board)
	if !ok {
		g.stuck()
		return
	}
	g.hint = &move
	g.hintTicks = g.timing.hint
}

// stuck reports a board without moves, reshuffling it when configured to.
func (g *Game) stuck() {
	if g.cfg.Rules.ShuffleOnStuck {
		g.shuffle()
		return
	}
	g.setMessage("No moves! Press X to reshuffle")
}

// shuffle rearranges the board. It does not cost a move.
func (g *Game) shuffle() {
	g.selected = nil
	g.hint = nil
	if g.board.Shuffle() {
		g.setMessage("Board reshuffled")
		return
	}
	g.setMessage("Still no moves after reshuffling")
}

// toggleAutoPlay starts or stops automatic play.
func (g *Game) toggleAutoPlay() {
	g.autoPlay = !g.autoPlay
	g.selected = nil
	g.hint = nil
	g.autoDelay = 0
	if g.autoPlay {
		g.setMessage("Auto-play on")
	} else {
		g.setMessage("Auto-play off")
	}
}

// performAutoPlay plays the move the hint search finds.
func (g *Game) performAutoPlay() {
	move, ok := engine.FindFirstValidMove(g.board)
	if !ok {
		g.autoPlay = false
		g.stuck()
		return
	}
	g.trySwap(move)
}

// resetIdle restarts the idle countdown for the automatic hint.
func (g *Game) resetIdle() {
	g.idleTicks = 0
	g.idleHinted = false
}

func (g *Game) setMessage(msg string) {
	g.message = msg
	g.messageTicks = g.timing.message
	g.messageColor = core.ColorBrightCyan
}

// busy reports whether a turn is resolving and player input is locked.
func (g *Game) busy() bool {
	switch g.phase {
	case PhaseSwap, PhaseClear, PhaseFall, PhaseSettle:
		return true
	}
	return false
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.total + g.score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
		Busy:     g.busy(),
		Exit:     g.exit,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space: Select | H: Hint | T: Auto | X: Shuffle | R: Restart | P: Pause | Esc: Menu"
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	if g.board != nil {
		g.checkScreenSize()
	}
}
