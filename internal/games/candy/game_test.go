package candy

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-candy/internal/core"
	"github.com/vovakirdan/tui-candy/internal/games/candy/engine"
	"github.com/vovakirdan/tui-candy/internal/games/candy/levels"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(testConfig(seed))
	return g
}

// useCatalog installs a catalog of n small levels for the duration of a test.
func useCatalog(t *testing.T, n int) {
	t.Helper()
	lvls := make([]levels.LevelConfig, n)
	for i := range lvls {
		lvls[i] = levels.LevelConfig{
			ID: "t" + string(rune('a'+i)), Name: "Test", ScoreGoal: 100,
			MoveBudget: 10, Rows: 5, Cols: 5, NumTypes: 4, Difficulty: levels.DifficultyEasy,
		}
	}
	c, err := levels.NewCatalog(lvls)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	SetCatalog(c)
	t.Cleanup(func() { SetCatalog(nil) })
}

// plant replaces the board with a literal grid of digits.
func plant(t *testing.T, g *Game, rows ...string) {
	t.Helper()
	grid := make([][]engine.CandyType, len(rows))
	for r, row := range rows {
		for _, ch := range row {
			grid[r] = append(grid[r], engine.CandyType(ch-'0'))
		}
	}
	b, err := engine.FromGrid(grid, g.level.NumTypes, g.rng)
	if err != nil {
		t.Fatalf("FromGrid failed: %v", err)
	}
	g.board = b
	g.cursor = engine.P(2, 2)
}

// swappable has no match, and swapping (0,2) with (1,2) completes the top row.
var swappable = []string{
	"00123",
	"12031",
	"23102",
	"31210",
	"02321",
}

// exhausted has no valid move: every type sits on its own row/column parity.
var exhausted = []string{
	"01010",
	"23232",
	"01010",
	"23232",
	"01010",
}

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func click(g *Game, p engine.Pos) core.StepResult {
	x, y := g.layout().screenPos(float64(p.Row), float64(p.Col))
	in := core.NewInputFrame()
	in.SetClick(x, y)
	return g.Step(in)
}

func idle(g *Game, ticks int) []core.Event {
	var events []core.Event
	for range ticks {
		events = append(events, g.Step(core.NewInputFrame()).Events...)
	}
	return events
}

// settle steps until the current turn has resolved.
func settle(t *testing.T, g *Game) []core.Event {
	t.Helper()
	var events []core.Event
	for i := 0; i < 5000 && g.busy(); i++ {
		events = append(events, g.Step(core.NewInputFrame()).Events...)
	}
	if g.busy() {
		t.Fatalf("turn did not settle, phase %s", g.phase)
	}
	return events
}

// swapTopRow plays the winning swap of the swappable board with the keyboard.
func swapTopRow(g *Game) {
	press(g, core.ActionUp)
	press(g, core.ActionUp)
	press(g, core.ActionSelect)
	press(g, core.ActionDown)
	press(g, core.ActionSelect)
}

func stable(b *engine.Board) bool {
	return !b.Clone().ScanMatches()
}

func TestResetStartsFirstLevel(t *testing.T) {
	g := newTestGame(t, 42)
	snap := g.Snapshot()

	if snap.Level != 1 || snap.LevelID != "lvl01" {
		t.Errorf("Level = %d (%s), want 1 (lvl01)", snap.Level, snap.LevelID)
	}
	if snap.Goal != 550 || snap.MovesLeft != 15 {
		t.Errorf("Goal/Moves = %d/%d, want 550/15", snap.Goal, snap.MovesLeft)
	}
	if snap.Phase != PhaseIdle {
		t.Errorf("Phase = %s, want idle", snap.Phase)
	}
	if len(snap.Board) != 5 || len(snap.Board[0]) != 5 {
		t.Errorf("board is %dx%d, want 5x5", len(snap.Board), len(snap.Board[0]))
	}
	if !stable(g.board) {
		t.Error("a new level must start without matches")
	}
	if g.State().GameOver || g.State().Busy {
		t.Error("fresh game should be neither over nor busy")
	}
}

func TestStartLevelSelection(t *testing.T) {
	SetStartLevel(3)
	t.Cleanup(func() { SetStartLevel(0) })

	g := newTestGame(t, 1)
	if g.levelIndex != 2 {
		t.Errorf("levelIndex = %d, want 2", g.levelIndex)
	}
	if g.board.Rows() != 6 || g.board.NumTypes() != 5 {
		t.Errorf("level 3 board should be 6x6 with 5 types")
	}
	if GetStartLevel() != 0 {
		t.Error("start level should be consumed by Reset")
	}

	// A second Reset starts from the beginning again
	g.Reset(testConfig(1))
	if g.levelIndex != 0 {
		t.Errorf("levelIndex after second Reset = %d, want 0", g.levelIndex)
	}
}

func TestStartAtOverridesPackageLevel(t *testing.T) {
	SetStartLevel(5)
	t.Cleanup(func() { SetStartLevel(0) })

	g := New()
	g.StartAt(2)
	g.Reset(testConfig(1))
	if g.levelIndex != 1 {
		t.Errorf("levelIndex = %d, want 1", g.levelIndex)
	}
	if GetStartLevel() != 5 {
		t.Error("StartAt must leave the package-level start level alone")
	}

	g.Reset(testConfig(1))
	if g.levelIndex != 4 {
		t.Errorf("levelIndex after StartAt was consumed = %d, want 4", g.levelIndex)
	}
}

func TestSwapScoresAndCostsMove(t *testing.T) {
	g := newTestGame(t, 7)
	plant(t, g, swappable...)

	swapTopRow(g)

	if g.phase != PhaseSwap {
		t.Fatalf("phase = %s, want swap", g.phase)
	}
	if g.movesLeft != 14 || g.movesUsed != 1 {
		t.Errorf("moves left/used = %d/%d, want 14/1", g.movesLeft, g.movesUsed)
	}
	if !g.State().Busy {
		t.Error("game should report busy during a turn")
	}

	settle(t, g)

	if g.score < 30 || g.score%10 != 0 {
		t.Errorf("score = %d, want at least 30 in steps of 10", g.score)
	}
	if g.phase != PhaseIdle {
		t.Errorf("phase = %s, want idle", g.phase)
	}
	if !stable(g.board) {
		t.Error("board must be stable after the turn")
	}
}

func TestTurnGoesThroughPhases(t *testing.T) {
	g := newTestGame(t, 7)
	plant(t, g, swappable...)
	swapTopRow(g)

	seen := []Phase{g.phase}
	for i := 0; i < 5000 && g.busy(); i++ {
		g.Step(core.NewInputFrame())
		if seen[len(seen)-1] != g.phase {
			seen = append(seen, g.phase)
		}
	}

	want := []Phase{PhaseSwap, PhaseClear, PhaseFall}
	if len(seen) < 4 || !reflect.DeepEqual(seen[:3], want) || seen[len(seen)-1] != PhaseIdle {
		t.Errorf("phases = %v, want %v ... idle", seen, want)
	}
}

func TestInvalidSwapKeepsMoves(t *testing.T) {
	g := newTestGame(t, 7)
	plant(t, g, swappable...)
	before := g.board.Clone()

	// (2,2) and (0,0) are not adjacent
	press(g, core.ActionSelect)
	g.cursor = engine.P(0, 0)
	press(g, core.ActionSelect)

	if g.movesLeft != 15 {
		t.Errorf("movesLeft = %d, want 15", g.movesLeft)
	}
	if g.phase != PhaseIdle {
		t.Errorf("phase = %s, want idle", g.phase)
	}
	if g.selected != nil {
		t.Error("selection should be dropped after a failed swap")
	}
	if g.message != "Invalid swap" {
		t.Errorf("message = %q", g.message)
	}
	if !g.board.Equal(before) {
		t.Error("failed swap changed the board")
	}
}

func TestSelectSameCandyTwiceDeselects(t *testing.T) {
	g := newTestGame(t, 7)
	plant(t, g, swappable...)

	press(g, core.ActionSelect)
	if g.selected == nil || *g.selected != engine.P(2, 2) {
		t.Fatalf("selected = %v, want (2,2)", g.selected)
	}
	press(g, core.ActionSelect)
	if g.selected != nil {
		t.Error("second press on the same candy should deselect")
	}
	if g.movesLeft != 15 {
		t.Error("deselecting must not cost a move")
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	g := newTestGame(t, 7)
	for range 10 {
		press(g, core.ActionLeft)
		press(g, core.ActionUp)
	}
	if g.cursor != engine.P(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", g.cursor)
	}
	for range 10 {
		press(g, core.ActionRight)
		press(g, core.ActionDown)
	}
	if g.cursor != engine.P(4, 4) {
		t.Errorf("cursor = %v, want (4,4)", g.cursor)
	}
}

func TestMouseClickSwaps(t *testing.T) {
	g := newTestGame(t, 7)
	plant(t, g, swappable...)

	click(g, engine.P(0, 2))
	if g.selected == nil || *g.selected != engine.P(0, 2) {
		t.Fatalf("click should select (0,2), got %v", g.selected)
	}
	click(g, engine.P(1, 2))

	if g.phase != PhaseSwap || g.movesLeft != 14 {
		t.Errorf("second click should swap, phase %s moves %d", g.phase, g.movesLeft)
	}
}

func TestCellAtRoundTrip(t *testing.T) {
	g := newTestGame(t, 3)
	l := g.layout()

	for r := range g.board.Rows() {
		for c := range g.board.Cols() {
			x, y := l.screenPos(float64(r), float64(c))
			for _, dy := range []int{0, 1} {
				p, ok := g.cellAt(x, y+dy)
				if !ok || p != engine.P(r, c) {
					t.Errorf("cellAt(%d, %d) = %v, %v; want (%d,%d)", x, y+dy, p, ok, r, c)
				}
			}
		}
	}

	if _, ok := g.cellAt(0, 0); ok {
		t.Error("click outside the board should not map to a cell")
	}
	if _, ok := g.cellAt(l.frame.Right()+5, l.oy); ok {
		t.Error("click right of the board should not map to a cell")
	}
}

func TestInputIgnoredWhileBusy(t *testing.T) {
	g := newTestGame(t, 7)
	plant(t, g, swappable...)
	swapTopRow(g)
	cursor := g.cursor

	press(g, core.ActionLeft)
	press(g, core.ActionSelect)
	press(g, core.ActionHint)

	if g.cursor != cursor {
		t.Error("cursor moved during a turn")
	}
	if g.selected != nil || g.hint != nil {
		t.Error("selection or hint changed during a turn")
	}
}

func TestHintHighlightsFirstValidMove(t *testing.T) {
	g := newTestGame(t, 7)
	plant(t, g, swappable...)
	want, ok := engine.FindFirstValidMove(g.board)
	if !ok {
		t.Fatal("planted board should have a move")
	}

	press(g, core.ActionHint)
	if g.hint == nil || *g.hint != want {
		t.Fatalf("hint = %v, want %v", g.hint, want)
	}

	idle(g, g.timing.hint)
	if g.hint != nil {
		t.Error("hint should fade after its duration")
	}
}

func TestIdleHint(t *testing.T) {
	g := newTestGame(t, 7)
	plant(t, g, swappable...)

	idle(g, g.timing.idleHint-1)
	if g.hint != nil {
		t.Fatal("hint shown too early")
	}
	idle(g, 1)
	if g.hint == nil {
		t.Fatal("hint should appear after the idle timeout")
	}

	// The automatic hint fires once until the player acts again
	idle(g, g.timing.hint+g.timing.idleHint)
	if g.hint != nil {
		t.Error("automatic hint repeated without player input")
	}
}

func TestNoMovesAndShuffle(t *testing.T) {
	g := newTestGame(t, 7)
	plant(t, g, exhausted...)

	press(g, core.ActionHint)
	if g.hint != nil {
		t.Error("no hint expected on an exhausted board")
	}
	if !strings.HasPrefix(g.message, "No moves") {
		t.Errorf("message = %q, want a no-moves notice", g.message)
	}

	press(g, core.ActionShuffle)
	if g.message != "Board reshuffled" {
		t.Fatalf("message = %q", g.message)
	}
	if !engine.HasValidMove(g.board) {
		t.Error("reshuffled board should have a move")
	}
	if !stable(g.board) {
		t.Error("reshuffled board should be stable")
	}
	if g.movesLeft != 15 {
		t.Error("reshuffling must not cost a move")
	}
}

func TestAutoPlay(t *testing.T) {
	g := newTestGame(t, 7)
	plant(t, g, swappable...)

	press(g, core.ActionAutoPlay)
	if !g.autoPlay {
		t.Fatal("auto-play should be on")
	}
	if g.phase != PhaseSwap || g.movesLeft != 14 {
		t.Fatalf("auto-play should move at once, phase %s moves %d", g.phase, g.movesLeft)
	}

	settle(t, g)
	idle(g, g.timing.autoPlay)
	if !g.autoPlay && g.movesLeft == 14 {
		t.Skip("board ran out of moves after the first turn")
	}
	if g.movesLeft != 13 {
		t.Errorf("second auto move expected after the delay, moves left %d", g.movesLeft)
	}

	// Toggling during a turn stops auto-play
	press(g, core.ActionAutoPlay)
	settle(t, g)
	if g.autoPlay {
		t.Error("auto-play should be off")
	}
}

func TestAutoPlayStopsWithoutMoves(t *testing.T) {
	g := newTestGame(t, 7)
	plant(t, g, exhausted...)

	press(g, core.ActionAutoPlay)

	if g.autoPlay {
		t.Error("auto-play should stop when no move exists")
	}
	if g.movesLeft != 15 {
		t.Error("no move should be spent")
	}
}

func TestLevelClearedAdvances(t *testing.T) {
	useCatalog(t, 2)
	g := newTestGame(t, 7)
	plant(t, g, swappable...)
	g.level.ScoreGoal = 10

	swapTopRow(g)
	events := settle(t, g)

	if g.phase != PhaseLevelCleared {
		t.Fatalf("phase = %s, want level_cleared", g.phase)
	}
	if len(events) != 1 || events[0].Kind != core.EventLevelCleared || events[0].Level != 1 {
		t.Fatalf("events = %+v, want one LevelCleared for level 1", events)
	}
	if events[0].MovesUsed != 1 || events[0].Attempt != 1 {
		t.Errorf("event = %+v, want 1 move on attempt 1", events[0])
	}
	if g.total != events[0].Score || g.total < 30 {
		t.Errorf("total = %d, event score %d", g.total, events[0].Score)
	}
	if g.State().Score != g.total {
		t.Errorf("State().Score = %d, want campaign total %d", g.State().Score, g.total)
	}

	idle(g, g.timing.levelClear)
	if g.levelIndex != 1 || g.phase != PhaseIdle {
		t.Errorf("should advance to level 2, got level %d phase %s", g.levelIndex+1, g.phase)
	}
	if g.score != 0 || g.movesLeft != 10 {
		t.Errorf("new level should start at 0 points with 10 moves, got %d/%d", g.score, g.movesLeft)
	}
}

func TestLevelClearedBannerCanBeSkipped(t *testing.T) {
	useCatalog(t, 2)
	g := newTestGame(t, 7)
	plant(t, g, swappable...)
	g.level.ScoreGoal = 10
	swapTopRow(g)
	settle(t, g)

	press(g, core.ActionConfirm)
	if g.levelIndex != 1 {
		t.Errorf("Enter should skip to level 2, got level %d", g.levelIndex+1)
	}
}

func TestLevelFailedRetryBonus(t *testing.T) {
	g := newTestGame(t, 7)
	plant(t, g, swappable...)
	g.movesLeft = 1
	g.level.ScoreGoal = 100000

	swapTopRow(g)
	events := settle(t, g)

	if g.phase != PhaseLevelFailed {
		t.Fatalf("phase = %s, want level_failed", g.phase)
	}
	if len(events) != 1 || events[0].Kind != core.EventLevelFailed {
		t.Fatalf("events = %+v, want one LevelFailed", events)
	}
	if g.failedAttempts != 1 {
		t.Errorf("failedAttempts = %d, want 1", g.failedAttempts)
	}
	if g.State().GameOver {
		t.Error("failing a level does not end the run by itself")
	}

	press(g, core.ActionConfirm)

	if g.phase != PhaseIdle || g.levelIndex != 0 {
		t.Errorf("retry should restart level 1, got level %d phase %s", g.levelIndex+1, g.phase)
	}
	if g.movesLeft != 15+5 {
		t.Errorf("movesLeft = %d, want 20 with the comeback bonus", g.movesLeft)
	}
	if g.score != 0 {
		t.Errorf("score = %d, want 0 on retry", g.score)
	}
}

func TestGiveUpEndsRun(t *testing.T) {
	g := newTestGame(t, 7)
	plant(t, g, swappable...)
	g.movesLeft = 1
	g.level.ScoreGoal = 100000
	swapTopRow(g)
	settle(t, g)

	res := press(g, core.ActionBack)

	if !res.State.GameOver || !res.State.Exit {
		t.Errorf("giving up should end the run and exit, got %+v", res.State)
	}
}

func TestBackOutsideFailureOnlyExits(t *testing.T) {
	g := newTestGame(t, 7)
	res := press(g, core.ActionBack)
	if !res.State.Exit || res.State.GameOver {
		t.Errorf("Esc mid-level should exit without ending the run, got %+v", res.State)
	}
}

func TestVictory(t *testing.T) {
	useCatalog(t, 1)
	g := newTestGame(t, 7)
	plant(t, g, swappable...)
	g.level.ScoreGoal = 10

	swapTopRow(g)
	events := settle(t, g)

	if g.phase != PhaseVictory {
		t.Fatalf("phase = %s, want victory", g.phase)
	}
	if !g.State().GameOver {
		t.Error("victory should end the game")
	}
	if len(events) != 2 || events[1].Kind != core.EventVictory {
		t.Fatalf("events = %+v, want LevelCleared then Victory", events)
	}
	if events[1].Score != g.total {
		t.Errorf("victory score = %d, want total %d", events[1].Score, g.total)
	}
}

func TestRestartCampaign(t *testing.T) {
	SetStartLevel(4)
	t.Cleanup(func() { SetStartLevel(0) })
	g := newTestGame(t, 5)
	g.total = 1234
	g.failedAttempts = 2

	press(g, core.ActionRestart)

	if g.levelIndex != 0 || g.total != 0 || g.failedAttempts != 0 {
		t.Errorf("restart should return to level 1 with a clean slate, got level %d total %d failed %d",
			g.levelIndex+1, g.total, g.failedAttempts)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, 7)
	plant(t, g, swappable...)
	swapTopRow(g)
	ticks := g.phaseTicks

	press(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	idle(g, 50)
	if g.phaseTicks != ticks || g.phase != PhaseSwap {
		t.Error("animation advanced while paused")
	}

	press(g, core.ActionPause)
	if g.State().Paused {
		t.Error("game should resume")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(t, 99)
		press(g, core.ActionAutoPlay)
		idle(g, 600)
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and input diverged:\n%+v\n%+v", a, b)
	}
}

func TestResizeKeepsProgress(t *testing.T) {
	g := newTestGame(t, 7)
	plant(t, g, swappable...)
	swapTopRow(g)
	settle(t, g)
	score := g.score

	g.Resize(30, 10)
	if !g.State().Paused {
		t.Error("tiny screen should pause the game")
	}
	g.Resize(100, 30)
	if g.State().Paused || g.score != score {
		t.Error("resize should keep the running level")
	}
}

func TestRenderBoard(t *testing.T) {
	g := newTestGame(t, 7)
	plant(t, g, swappable...)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Candy Crush") {
		t.Errorf("title missing: %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(2), "Score: 0/550") {
		t.Errorf("stats missing: %q", screen.Row(2))
	}

	l := g.layout()
	for r := range 5 {
		for c := range 5 {
			x, y := l.screenPos(float64(r), float64(c))
			want := g.palette.Sprite(g.board.At(r, c))
			if cell := screen.GetCell(x, y); cell.Rune != want.Glyph || cell.Color != want.Color {
				t.Errorf("cell (%d,%d) drawn as %+v, want %+v", r, c, cell, want)
			}
		}
	}

	// Cursor brackets around (2,2)
	x, y := l.screenPos(2, 2)
	if screen.Get(x-1, y) != '[' || screen.Get(x+1, y) != ']' {
		t.Error("cursor not drawn")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60, Seed: 1})
	screen := core.NewScreen(20, 10)

	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small notice")
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, 7)
	screen := core.NewScreen(80, 24)

	g.enterPhase(PhaseLevelFailed)
	g.failedAttempts = 1
	g.Render(screen)
	if !strings.Contains(screen.String(), "Out of moves!") {
		t.Error("failure overlay missing")
	}

	g.enterPhase(PhaseVictory)
	g.Render(screen)
	if !strings.Contains(screen.String(), "ALL LEVELS COMPLETE!") {
		t.Error("victory overlay missing")
	}
}

func TestPaletteWraps(t *testing.T) {
	p := DefaultPalette
	if p.Sprite(9) != p.Sprite(0) {
		t.Error("type ids beyond the palette should wrap")
	}
	if p.Sprite(engine.Empty).Glyph != ' ' {
		t.Error("empty cells should be blank")
	}
	seen := make(map[rune]bool)
	for i := range len(p) {
		seen[p.Sprite(engine.CandyType(i)).Glyph] = true
	}
	if len(seen) != len(p) {
		t.Error("default palette glyphs should be distinct")
	}
}
