package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteObjectivesAwardsVPAndClearsActiveObjective(t *testing.T) {
	g := Init(2, "status-objectives")
	g.Catalog.Objectives["AlwaysDone"] = &ObjectiveCard{
		Name:      "AlwaysDone",
		Completed: func(g *Game, playerIdx int) bool { return true },
	}
	g.Player(0).ActiveObjective = "AlwaysDone"

	before := g.Player(0).TotalVPHalves()
	g.completeObjectives(g.statusPhaseOrder())
	assert.Equal(t, before+4, g.Player(0).TotalVPHalves())
	assert.Empty(t, g.Player(0).ActiveObjective)
}

func TestFreeAdvanceGrantsTheAlphabeticallyFirstEligibleAdvance(t *testing.T) {
	g := Init(1, "status-advance")
	names := make([]string, 0)
	for n := range g.Catalog.Advances {
		names = append(names, n)
	}
	require.NotEmpty(t, names)

	g.freeAdvance(g.statusPhaseOrder())
	assert.NotEmpty(t, g.Player(0).Advances, "a free advance should have been granted")
	// Astronomy sorts first among the catalog's advances and has no
	// prerequisite, so it is the one granted.
	assert.True(t, g.Player(0).Advances["Astronomy"])
	assert.Len(t, g.Player(0).Advances, 1)
}

func TestDetermineFirstPlayerPicksHighestMoodPlusCultureTies(t *testing.T) {
	g := Init(3, "status-first-player")
	g.StartPlayer = 0
	g.Player(0).Resources.MoodTokens = 1
	g.Player(1).Resources.MoodTokens = 3
	g.Player(2).Resources.MoodTokens = 3

	g.determineFirstPlayer()
	assert.Equal(t, 1, g.StartPlayer, "tie between 1 and 2 goes to the closer seat from the old start player")
}

func TestRunStatusPhaseAdvancesAgeAndResetsRound(t *testing.T) {
	g := Init(2, "status-run")
	g.Age = 1
	g.Mode = ModeStatusPhase

	g.runStatusPhase()
	assert.Equal(t, 2, g.Age)
	assert.Equal(t, 1, g.Round)
	assert.Equal(t, ModePlaying, g.Mode)
}

func TestRunStatusPhaseEndsGameAfterAgeSix(t *testing.T) {
	g := Init(2, "status-end")
	g.Age = 6
	g.Mode = ModeStatusPhase

	g.runStatusPhase()
	assert.True(t, g.Ended())
}
