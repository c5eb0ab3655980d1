package eventbus

import "github.com/rackforge/hexdominion/internal/primitives"

// RequestKind is the closed set of shapes a persistent event may ask a
// player to answer, matching the EventResponse taxonomy in spec §6.
type RequestKind int

const (
	RequestPayment RequestKind = iota
	RequestResourceReward
	RequestSelectAdvance
	RequestSelectPlayer
	RequestSelectPositions
	RequestSelectUnitType
	RequestSelectUnits
	RequestSelectStructures
	RequestSelectHandCards
	RequestBool
	RequestChangeGovernment
	RequestExploreResolution
)

// Request describes exactly one pending ask: a kind, the player who
// must answer, a human-readable prompt, and whatever choice-set data
// the UI (or, here, the available-actions enumerator and tests) needs
// to build the valid Response values.
type Request struct {
	Kind   RequestKind
	Player int
	Prompt string

	// Populated depending on Kind.
	PaymentDefault primitives.ResourcePile // RequestPayment: the nominal cost being offered/discounted
	RewardOptions  []primitives.ResourcePile
	AdvanceChoices []string
	PlayerChoices  []int
	PositionChoices []primitives.Position
	UnitTypeChoices []primitives.UnitType
	UnitChoices     []uint32
	StructureChoices []string
	HandCardChoices  []string
	GovernmentChoices []string
	Min, Max          int
}

// Response is a player's answer to the top Request on the persistent
// event stack. Exactly one field group is meaningful, selected by
// Kind; the dispatcher rejects a Response whose Kind does not match
// the top frame's Request.Kind.
type Response struct {
	Kind RequestKind

	Payment          primitives.ResourcePile
	Reward           primitives.ResourcePile
	Advance          string
	Player           int
	Positions        []primitives.Position
	UnitType         primitives.UnitType
	Units            []uint32
	Structures       []string
	HandCards        []string
	Bool             bool
	Government       string
	ExploreRotation  int
}
