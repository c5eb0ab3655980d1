// Package engine implements the rules-engine core described in spec
// §4.3–§4.11: the Game value, the named event-slot registry, the
// content catalog, the action dispatcher and every sub-executor
// (playing actions, movement, combat, cultural influence, status
// phase), scoring, snapshot/undo, the available-actions enumerator,
// and the public API surface. It is deliberately one package — see
// DESIGN.md for why the tightly-coupled core is not split further.
package engine

import (
	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/hexmap"
	"github.com/rackforge/hexdominion/internal/logger"
	"github.com/rackforge/hexdominion/internal/player"
	"github.com/rackforge/hexdominion/internal/primitives"
	"go.uber.org/zap"
)

// Mode is the dispatcher state (spec §4.3).
type Mode int

const (
	ModePlaying Mode = iota
	ModeMovement
	ModeStatusPhase
	ModePersistentEvent
	ModeFinished
)

func (m Mode) String() string {
	switch m {
	case ModePlaying:
		return "playing"
	case ModeMovement:
		return "movement"
	case ModeStatusPhase:
		return "status_phase"
	case ModePersistentEvent:
		return "persistent_event"
	case ModeFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// LogEntry is one line of the public action log (spec §4.10). It has
// no JSON tags, so both fields are always written, even when empty;
// snapshot.go's GameData omits only an empty log as a whole.
type LogEntry struct {
	Player int
	Text   string
}

// MovementState holds the in-progress data for ModeMovement: the set
// of units being moved together.
type MovementState struct {
	UnitIDs []uint32
}

// Game is the entire mutable state the engine operates on (spec §3
// "Game"). Every exported operation in this package takes *Game and
// either mutates it in place or returns a typed error leaving it
// unchanged, per spec §7.
type Game struct {
	Seed    string
	Rng     *primitives.Rng
	Players []*player.Player
	Map     *hexmap.Map
	Events  *EventRegistry
	Catalog *Catalog

	CurrentPlayer int
	StartPlayer   int
	Age           int
	Round         int
	ActionsLeft   int

	Mode      Mode
	Movement  *MovementState
	Combat    *CombatState
	EventStack eventbus.Stack

	// Pending mirrors EventStack one-for-one: each entry is the
	// serializable description of the frame at the same depth, kept in
	// lockstep by pushPending/dispatch.go's pop so GameData can describe
	// a suspended game without marshaling eventbus.Frame itself (its
	// chained listeners and adhocFrame's onResume are Go closures). See
	// snapshot.go and DESIGN.md.
	Pending []PendingEvent

	Log []LogEntry

	// Undo support (spec §4.10): undo/redo replay ActionHistory from
	// scratch (see snapshot.go for why — restoring Rng's internal state
	// from a patch over GameData isn't possible since math/rand.Rand's
	// stream position is unexported). UndoFloor is raised past actions
	// that can't be undone (dice rolls, card draws already revealed to a
	// player), and Patches records one informational forward/reverse
	// JSON merge-patch per action for external inspection.
	ActionHistory []ActionRecord
	RedoStack     []ActionRecord
	UndoFloor     int
	Patches       []Patch

	WonderDeck    []string
	ActionCardDeck []string
	ObjectiveDeck  []string
	IncidentDeck   []string

	DroppedPlayers map[int]bool

	nextUnitID uint32

	// revealedHiddenInfo is set by markHiddenInfoRevealed when the
	// in-progress action rolls a die or draws a card, so Execute can
	// raise UndoFloor past it once the action commits. Transient:
	// reset every time Execute checks it, never carried on the wire.
	revealedHiddenInfo bool
}

// markHiddenInfoRevealed flags that the action currently being
// dispatched has shown a player previously-hidden information (a dice
// roll, a card draw) that a later undo+resubmit could otherwise
// re-roll or re-draw.
func (g *Game) markHiddenInfoRevealed() {
	g.revealedHiddenInfo = true
}

// Init builds a fresh game for playerCount human players, seeded by
// seed, with the representative content catalog and decks loaded and
// shuffled (spec §6 init(player_count, seed)).
func Init(playerCount int, seed string) *Game {
	rng := primitives.NewRng(seed)
	g := &Game{
		Seed:           seed,
		Rng:            rng,
		Map:            hexmap.NewMap(),
		Events:         NewEventRegistry(),
		Catalog:        NewCatalog(),
		CurrentPlayer:  0,
		StartPlayer:    0,
		Age:            1,
		Round:          1,
		ActionsLeft:    3,
		Mode:           ModePlaying,
		DroppedPlayers: map[int]bool{},
	}
	for i := 0; i < playerCount; i++ {
		g.Players = append(g.Players, player.New(i, player.Human))
	}
	g.WonderDeck = g.Catalog.WonderNames()
	g.ActionCardDeck = g.Catalog.ActionCardNames()
	g.ObjectiveDeck = g.Catalog.ObjectiveNames()
	g.IncidentDeck = g.Catalog.IncidentNames()
	g.Rng.Shuffle(len(g.WonderDeck), func(i, j int) { g.WonderDeck[i], g.WonderDeck[j] = g.WonderDeck[j], g.WonderDeck[i] })
	g.Rng.Shuffle(len(g.ActionCardDeck), func(i, j int) {
		g.ActionCardDeck[i], g.ActionCardDeck[j] = g.ActionCardDeck[j], g.ActionCardDeck[i]
	})
	g.Rng.Shuffle(len(g.ObjectiveDeck), func(i, j int) {
		g.ObjectiveDeck[i], g.ObjectiveDeck[j] = g.ObjectiveDeck[j], g.ObjectiveDeck[i]
	})
	g.Rng.Shuffle(len(g.IncidentDeck), func(i, j int) {
		g.IncidentDeck[i], g.IncidentDeck[j] = g.IncidentDeck[j], g.IncidentDeck[i]
	})
	logger.WithGameContext(seed, -1).Info("game initialized", zap.Int("players", playerCount))
	return g
}

// Player returns the player value for index, or nil if out of range.
func (g *Game) Player(index int) *player.Player {
	if index < 0 || index >= len(g.Players) {
		return nil
	}
	return g.Players[index]
}

// appendLog records one public log line attributed to player.
func (g *Game) appendLog(player int, text string) {
	g.Log = append(g.Log, LogEntry{Player: player, Text: text})
}

// Ended reports whether the game has reached Finished (age exceeded
// 6, spec §4.8).
func (g *Game) Ended() bool {
	return g.Mode == ModeFinished
}

// nextActivePlayer returns the seat index that follows from, skipping
// dropped players, wrapping modulo len(Players).
func (g *Game) nextActivePlayer(from int) int {
	n := len(g.Players)
	for i := 1; i <= n; i++ {
		cand := (from + i) % n
		if !g.DroppedPlayers[cand] {
			return cand
		}
	}
	return from
}
