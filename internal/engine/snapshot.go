package engine

import (
	"encoding/json"
	"sort"
	"strconv"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/rackforge/hexdominion/internal/enginerr"
	"github.com/rackforge/hexdominion/internal/hexmap"
	"github.com/rackforge/hexdominion/internal/player"
	"github.com/rackforge/hexdominion/internal/primitives"
)

// GameData is the serializable mirror of Game (spec §4.10 and spec
// §5's "safe to serialize, hibernate, or transmit between calls"):
// the players, map, turn counters, decks, log, the suspended
// persistent-event stack (Pending) and the in-progress Combat/Movement
// state, so a snapshot taken mid-turn — even mid-persistent-event —
// loads back into the same position. It does not carry the undo/redo
// history (ActionHistory, RedoStack, UndoFloor, Patches) or the
// random generator's position: LoadGameData re-seeds Rng from Seed, so
// rolls after a load start the seed's sequence from its beginning.
// The event registry's listener closures and the content catalog are
// not carried either; rebuildListeners rebuilds them from Players'
// owned advances/wonders/leaders (spec §9 "global registries...
// reference content by id everywhere else").
type GameData struct {
	Seed          string             `json:"seed"`
	PlayerCount   int                `json:"player_count"`
	Players       []*player.Player   `json:"players"`
	Map           *hexmap.Map        `json:"map"`
	CurrentPlayer int                `json:"current_player"`
	StartPlayer   int                `json:"start_player"`
	Age           int                `json:"age"`
	Round         int                `json:"round"`
	ActionsLeft   int                `json:"actions_left"`
	Mode          Mode               `json:"mode"`
	Movement      *MovementState     `json:"movement,omitempty"`
	Combat        *CombatState       `json:"combat,omitempty"`
	Pending       []PendingEvent     `json:"pending,omitempty"`
	Log           []LogEntry         `json:"log,omitempty"`
	WonderDeck    []string           `json:"wonder_deck,omitempty"`
	ActionCardDeck []string          `json:"action_card_deck,omitempty"`
	ObjectiveDeck []string           `json:"objective_deck,omitempty"`
	IncidentDeck  []string           `json:"incident_deck,omitempty"`
	DroppedPlayers map[int]bool      `json:"dropped_players,omitempty"`
}

// ToData builds a serializable snapshot of g's current state.
func (g *Game) ToData() *GameData {
	return &GameData{
		Seed:           g.Seed,
		PlayerCount:    len(g.Players),
		Players:        g.Players,
		Map:            g.Map,
		CurrentPlayer:  g.CurrentPlayer,
		StartPlayer:    g.StartPlayer,
		Age:            g.Age,
		Round:          g.Round,
		ActionsLeft:    g.ActionsLeft,
		Mode:           g.Mode,
		Movement:       g.Movement,
		Combat:         g.Combat,
		Pending:        g.Pending,
		Log:            g.Log,
		WonderDeck:     g.WonderDeck,
		ActionCardDeck: g.ActionCardDeck,
		ObjectiveDeck:  g.ObjectiveDeck,
		IncidentDeck:   g.IncidentDeck,
		DroppedPlayers: g.DroppedPlayers,
	}
}

// LoadGameData reconstructs a live Game from a snapshot: plain fields
// copy directly, and every player's owned advances/wonders/leader have
// their initializers re-run against a fresh EventRegistry, since
// listener closures are never part of the wire format (spec §9
// "global registries... reference content by id everywhere else").
func LoadGameData(data *GameData) *Game {
	g := &Game{
		Seed:           data.Seed,
		Players:        data.Players,
		Map:            data.Map,
		Events:         NewEventRegistry(),
		Catalog:        NewCatalog(),
		CurrentPlayer:  data.CurrentPlayer,
		StartPlayer:    data.StartPlayer,
		Age:            data.Age,
		Round:          data.Round,
		ActionsLeft:    data.ActionsLeft,
		Mode:           data.Mode,
		Movement:       data.Movement,
		Combat:         data.Combat,
		Log:            data.Log,
		WonderDeck:     data.WonderDeck,
		ActionCardDeck: data.ActionCardDeck,
		ObjectiveDeck:  data.ObjectiveDeck,
		IncidentDeck:   data.IncidentDeck,
		DroppedPlayers: data.DroppedPlayers,
	}
	g.Rng = primitives.NewRng(data.Seed)
	if g.DroppedPlayers == nil {
		g.DroppedPlayers = map[int]bool{}
	}
	for _, p := range g.Players {
		for _, u := range p.Units {
			if u.ID > g.nextUnitID {
				g.nextUnitID = u.ID
			}
		}
	}
	g.rebuildListeners()
	// Pushing the suspended frame(s) back onto EventStack must wait
	// until listeners are reattached (catalog frames re-Trigger against
	// them) and Combat is in place (the combat adhoc asks read it) —
	// see pending_event.go.
	g.restorePendingEvents(data.Pending)
	return g
}

// rebuildListeners re-runs the initializer for every advance/wonder a
// player owns, reattaching their event-bus registrations after a load.
func (g *Game) rebuildListeners() {
	for playerIdx, p := range g.Players {
		names := make([]string, 0, len(p.Advances))
		for name, owned := range p.Advances {
			if owned {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			adv := g.Catalog.Advances[name]
			if adv != nil && adv.Init != nil {
				adv.Init(g, playerIdx, advanceOrigin(name, playerIdx))
			}
		}
		for _, city := range p.Cities {
			for _, wonder := range city.Wonders {
				w := g.Catalog.Wonders[wonder]
				if w != nil && w.Init != nil {
					w.Init(g, playerIdx, wonderOrigin(wonder, playerIdx))
				}
			}
		}
		if p.Leader != "" {
			la := g.Catalog.Leaders[p.Leader]
			if la != nil && la.Init != nil {
				la.Init(g, playerIdx, leaderOrigin(p.Leader, playerIdx))
			}
		}
	}
}

// Patch is the forward/reverse JSON merge-patch computed around one
// executed action (spec §4.10 "the engine maintains a JSON-patch
// reverse-diff per action"). It is informational: Undo/Redo here are
// implemented by replaying ActionHistory rather than by applying
// Reverse, because restoring Game's random-number stream position
// cannot be captured in a patch over GameData alone (see DESIGN.md,
// "Undo via replay, not patch application"). Patch is retained anyway
// so callers (the CLI, external tooling) can inspect exactly what an
// action changed.
type Patch struct {
	Forward []byte `json:"forward,omitempty"`
	Reverse []byte `json:"reverse,omitempty"`
}

// snapshotJSON marshals g's current state immediately. ToData()'s
// GameData aliases Players/Map by pointer rather than cloning them
// (StripSecret is the one place that does clone, for its own reasons),
// so the marshal must happen right here, before the caller lets g
// mutate further — not deferred until both "before" and "after" sides
// are in hand, which would marshal two snapshots of identical
// post-mutation state.
func snapshotJSON(g *Game) ([]byte, error) {
	return json.Marshal(g.ToData())
}

// computePatch diffs two already-marshaled snapshots using RFC 7396
// JSON merge patches.
func computePatch(beforeJSON, afterJSON []byte) (Patch, error) {
	forward, err := jsonpatch.CreateMergePatch(beforeJSON, afterJSON)
	if err != nil {
		return Patch{}, err
	}
	reverse, err := jsonpatch.CreateMergePatch(afterJSON, beforeJSON)
	if err != nil {
		return Patch{}, err
	}
	return Patch{Forward: forward, Reverse: reverse}, nil
}

// ActionRecord pairs one executed action with the player who submitted
// it, for ActionHistory/replay/log_slice.
type ActionRecord struct {
	Player int    `json:"player"`
	Action Action `json:"action"`
}

// undo reverts the most recent undoable action by replaying
// ActionHistory[:len-1] from init(seed) (spec §4.10; see DESIGN.md for
// why replay, not patch application, is the actual mechanism).
func (g *Game) undo() error {
	if len(g.ActionHistory) <= g.UndoFloor {
		return &enginerr.IllegalActionError{Reason: "nothing left to undo"}
	}
	last := g.ActionHistory[len(g.ActionHistory)-1]
	replayed := Init(len(g.Players), g.Seed)
	replayed.UndoFloor = g.UndoFloor
	for _, rec := range g.ActionHistory[:len(g.ActionHistory)-1] {
		if err := replayed.Execute(rec.Action, rec.Player); err != nil {
			return &enginerr.InvariantViolationError{Reason: "replay during undo failed: " + err.Error()}
		}
	}
	g.loadReplayed(replayed)
	g.RedoStack = append(g.RedoStack, last)
	return nil
}

// redo re-executes the most recently undone action (spec §4.10).
func (g *Game) redo() error {
	if len(g.RedoStack) == 0 {
		return &enginerr.IllegalActionError{Reason: "nothing to redo"}
	}
	rec := g.RedoStack[len(g.RedoStack)-1]
	g.RedoStack = g.RedoStack[:len(g.RedoStack)-1]
	return g.Execute(rec.Action, rec.Player)
}

// loadReplayed copies a freshly-replayed Game's state into g in place,
// preserving g's own identity (pointer) so external holders of *Game
// keep seeing up-to-date data — mirroring the "returns a new game
// value" public API note in spec §6 while keeping this internal helper
// allocation-light.
func (g *Game) loadReplayed(replayed *Game) {
	history := g.ActionHistory[:len(g.ActionHistory)-1]
	undoFloor := g.UndoFloor
	redo := g.RedoStack
	*g = *replayed
	g.ActionHistory = history
	g.UndoFloor = undoFloor
	g.RedoStack = redo
}

// StripSecret returns a copy of g's data with other players' secrets
// hidden (spec §4.10): hand cards and objective ids of players other
// than viewer are replaced by the same number of placeholder names,
// the RNG seed becomes "0", and every deck keeps only its length (a
// slice of that many placeholder names). viewer == nil
// strips every player's hand (a fully public/spectator view).
func (g *Game) StripSecret(viewer *int) *GameData {
	data := g.ToData()
	clone := *data
	clonedPlayers := make([]*player.Player, len(data.Players))
	for i, p := range data.Players {
		cp := *p
		if viewer == nil || *viewer != i {
			cp.ActionHand = redactedHand(len(p.ActionHand))
			cp.ObjectiveHand = redactedHand(len(p.ObjectiveHand))
		}
		clonedPlayers[i] = &cp
	}
	clone.Players = clonedPlayers
	clone.Seed = "0"
	clone.WonderDeck = redactedHand(len(data.WonderDeck))
	clone.ActionCardDeck = redactedHand(len(data.ActionCardDeck))
	clone.ObjectiveDeck = redactedHand(len(data.ObjectiveDeck))
	clone.IncidentDeck = redactedHand(len(data.IncidentDeck))
	return &clone
}

func redactedHand(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "0"
	}
	return out
}

// LogSlice returns log lines from start to end (end == nil means "to
// the end"), each rendered as [player, text] for the wire (spec §6
// log_slice(game, {start,end?}) -> Vec<Vec<String>>).
func (g *Game) LogSlice(start int, end *int) [][2]string {
	stop := len(g.Log)
	if end != nil && *end < stop {
		stop = *end
	}
	if start < 0 {
		start = 0
	}
	if start > stop {
		return nil
	}
	out := make([][2]string, 0, stop-start)
	for _, e := range g.Log[start:stop] {
		out = append(out, [2]string{strconv.Itoa(e.Player), e.Text})
	}
	return out
}
