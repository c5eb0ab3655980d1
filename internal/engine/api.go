package engine

// DropPlayer removes a player from turn rotation (spec §6 "drop_player"):
// the seat's cities and units remain on the board (a dropped player is
// not eliminated, just no longer acts), but statusPhaseOrder,
// nextActivePlayer and determineFirstPlayer all skip it from here on.
// If the dropped player currently holds the turn, play advances to the
// next active seat immediately.
func (g *Game) DropPlayer(playerIdx int) {
	if g.Player(playerIdx) == nil || g.DroppedPlayers[playerIdx] {
		return
	}
	g.DroppedPlayers[playerIdx] = true
	g.appendLog(playerIdx, "dropped from the game")

	if g.CurrentPlayer == playerIdx && g.Mode != ModeFinished {
		g.CurrentPlayer = g.nextActivePlayer(playerIdx)
		g.ActionsLeft = 3
		g.Mode = ModePlaying
		g.Movement = nil
		g.Combat = nil
	}
}
