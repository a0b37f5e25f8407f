package domain

import (
	"math/rand"
	"testing"
)

func TestBitBoardRoundTrip(t *testing.T) {
	board := NewBoardFromCells([Size][Size]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{0, 0, 0, 0},
	})

	restored := NewBitBoard(board).ToBoard()
	if !board.Equal(restored) {
		t.Errorf("round trip mismatch:\n%swant:\n%s", restored, board)
	}
}

func TestBitBoardSwipeLeft(t *testing.T) {
	board := NewBoardFromCells([Size][Size]int{
		{2, 2, 4, 8},
		{4, 0, 4, 0},
		{8, 8, 0, 0},
		{0, 0, 0, 0},
	})

	moved, score := NewBitBoard(board).Swipe(Left)

	expected := NewBoardFromCells([Size][Size]int{
		{4, 4, 8, 0},
		{8, 0, 0, 0},
		{16, 0, 0, 0},
		{0, 0, 0, 0},
	})
	if got := moved.ToBoard(); !got.Equal(expected) {
		t.Errorf("SwipeLeft:\n%swant:\n%s", got, expected)
	}
	if want := 4 + 8 + 16; score != want {
		t.Errorf("score = %d, want %d", score, want)
	}
}

func TestBitBoardSwipeMatchesBoard(t *testing.T) {
	// BitBoardのスワイプは通常のBoardと盤面・点数が完全に一致する
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 300; i++ {
		board := randomBoard(rng)
		bb := NewBitBoard(board)
		for _, dir := range Directions {
			res := board.Swipe(dir)
			movedBB, score := bb.Swipe(dir)
			if got := movedBB.ToBoard(); !got.Equal(res.Board) {
				t.Fatalf("%s mismatch on\n%sgot:\n%swant:\n%s", dir, board, got, res.Board)
			}
			if score != res.Points {
				t.Fatalf("%s score = %d, want %d on\n%s", dir, score, res.Points, board)
			}
		}
	}
}

func TestBitBoardEmptyCellsAndMaxExp(t *testing.T) {
	board := NewBoardFromCells([Size][Size]int{
		{2, 0, 0, 0},
		{0, 256, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 8},
	})
	bb := NewBitBoard(board)

	if got := bb.CountEmpty(); got != 13 {
		t.Errorf("CountEmpty = %d, want 13", got)
	}
	if got := len(bb.EmptyCells()); got != 13 {
		t.Errorf("len(EmptyCells) = %d, want 13", got)
	}
	if got := bb.MaxExp(); got != 8 {
		t.Errorf("MaxExp = %d, want 8 (256)", got)
	}
}

func TestBitBoardIsGameOver(t *testing.T) {
	dead := NewBitBoard(NewBoardFromCells([Size][Size]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}))
	if !dead.IsGameOver() {
		t.Error("expected game over")
	}

	alive := NewBitBoard(NewBoardFromCells([Size][Size]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}))
	if alive.IsGameOver() {
		t.Error("expected not game over")
	}
}

func BenchmarkBitBoardSwipe(b *testing.B) {
	bb := NewBitBoard(NewBoardFromCells([Size][Size]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 0},
	}))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bb.Swipe(Left)
		bb.Swipe(Right)
		bb.Swipe(Up)
		bb.Swipe(Down)
	}
}

func BenchmarkBoardSwipe(b *testing.B) {
	board := NewBoardFromCells([Size][Size]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 0},
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		board.Swipe(Left)
		board.Swipe(Right)
		board.Swipe(Up)
		board.Swipe(Down)
	}
}
