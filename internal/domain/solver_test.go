package domain

import (
	"math/rand"
	"testing"
)

func TestSolverBestMoveIsAlwaysValid(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	solver := NewSolver(NewHeuristicEvaluator(), 2)

	for i := 0; i < 50; i++ {
		board := randomBoard(rng)
		dir, ok := solver.BestMove(board)
		if board.IsGameOver() {
			if ok {
				t.Fatalf("expected no move on dead board\n%s", board)
			}
			continue
		}
		if !ok {
			// 満杯でもマージ可能ならスワイプで盤面は変わる
			if board.CanMove() && anySwipeMoves(board) {
				t.Fatalf("expected a move on\n%s", board)
			}
			continue
		}
		if !board.Swipe(dir).Moved {
			t.Fatalf("solver returned ineffective move %s on\n%s", dir, board)
		}
	}
}

func anySwipeMoves(board Board) bool {
	for _, dir := range Directions {
		if board.Swipe(dir).Moved {
			return true
		}
	}
	return false
}

func TestSolverNoMoveOnDeadBoard(t *testing.T) {
	solver := NewSolver(NewHeuristicEvaluator(), 3)
	dead := NewBoardFromCells([Size][Size]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})

	if _, ok := solver.BestMove(dead); ok {
		t.Error("expected no best move on a dead board")
	}
	if scores := solver.EvaluateMoves(dead); len(scores) != 0 {
		t.Errorf("expected no move scores, got %v", scores)
	}
}

func TestEvaluateMovesSkipsIneffectiveDirections(t *testing.T) {
	solver := NewSolver(NewHeuristicEvaluator(), 2)
	// 左端の1列に異なる値: 左と上は動かず、右と下だけ有効
	board := NewBoardFromCells([Size][Size]int{
		{2, 0, 0, 0},
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{16, 0, 0, 0},
	})

	scores := solver.EvaluateMoves(board)
	if _, ok := scores[Left]; ok {
		t.Error("left must not appear: it does not change the board")
	}
	if _, ok := scores[Up]; ok {
		t.Error("up must not appear: it does not change the board")
	}
	if _, ok := scores[Right]; !ok {
		t.Error("right must appear")
	}
	if _, ok := scores[Down]; !ok {
		t.Error("down must appear")
	}
}

func TestSolverPlaysAFullGame(t *testing.T) {
	// 浅い探索でも破綻せずゲームを最後まで進められる
	rng := rand.New(rand.NewSource(4))
	game := NewGame(rng)
	solver := NewSolver(NewHeuristicEvaluator(), 1)

	moves := 0
	for !game.IsGameOver() && moves < 5000 {
		dir, ok := solver.BestMove(game.Board())
		if !ok {
			break
		}
		if !game.Move(dir) {
			t.Fatalf("solver chose ineffective move %s", dir)
		}
		moves++
	}
	if moves == 0 {
		t.Error("expected the solver to make at least one move")
	}
	if game.Score() == 0 {
		t.Error("expected a positive score after a full game")
	}
}
