package game

import "strconv"

var tttLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // cols
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// ticTacToe is the strict-alternation 3x3 board game. playerX always starts.
type ticTacToe struct {
	match
	board [9]byte
	turn  string // username of the player to move
}

func newTicTacToe(p1, p2 Player) *ticTacToe {
	g := &ticTacToe{
		match: match{p1: p1, p2: p2},
		turn:  p1.Name(),
	}
	for i := range g.board {
		g.board[i] = '-'
	}
	g.broadcast("GAME_START: You are playing TicTacToe!")
	p1.Send("INFO: You are Player X. Your turn.")
	p2.Send("INFO: You are Player O. Wait for turn.")
	g.broadcast("BOARD:" + string(g.board[:]))
	return g
}

func (g *ticTacToe) MakeMove(username, payload string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished || username != g.turn {
		return nil
	}

	index, err := strconv.Atoi(payload)
	if err != nil {
		return nil
	}
	if index < 0 || index >= 9 || g.board[index] != '-' {
		return nil
	}

	symbol := byte('O')
	if g.p1.Name() == username {
		symbol = 'X'
	}
	g.board[index] = symbol

	if g.hasLine(symbol) {
		g.broadcast("BOARD:" + string(g.board[:]))
		g.broadcast("GAME_OVER: Winner is " + username + "!")
		g.finished = true
		return nil
	}
	if g.boardFull() {
		g.broadcast("BOARD:" + string(g.board[:]))
		g.broadcast("GAME_OVER: It's a Draw!")
		g.finished = true
		return nil
	}

	if g.turn == g.p1.Name() {
		g.turn = g.p2.Name()
	} else {
		g.turn = g.p1.Name()
	}
	g.broadcast("BOARD:" + string(g.board[:]))
	return nil
}

func (g *ticTacToe) hasLine(symbol byte) bool {
	for _, w := range tttLines {
		if g.board[w[0]] == symbol && g.board[w[1]] == symbol && g.board[w[2]] == symbol {
			return true
		}
	}
	return false
}

func (g *ticTacToe) boardFull() bool {
	for _, c := range g.board {
		if c == '-' {
			return false
		}
	}
	return true
}
