package usecase

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/nnaakkaaii/go2048/internal/domain"
)

// AutoPlayConfig は自動プレイの設定
type AutoPlayConfig struct {
	MaxDepth int
	Delay    time.Duration
	Verbose  bool
}

// DefaultAutoPlayConfig はデフォルトの設定を返す
func DefaultAutoPlayConfig() AutoPlayConfig {
	return AutoPlayConfig{
		MaxDepth: 4,
		Delay:    100 * time.Millisecond,
		Verbose:  true,
	}
}

// AutoPlay はソルバーの推奨手で自動プレイし、最終スコアと手数を返す
func AutoPlay(w io.Writer, rng *rand.Rand, config AutoPlayConfig) (int, int) {
	game := domain.NewGame(rng)
	solver := domain.NewSolver(domain.NewHeuristicEvaluator(), config.MaxDepth)
	moves := 0

	if config.Verbose {
		fmt.Fprintln(w, "=== 2048 AutoPlay ===")
		fmt.Fprintf(w, "Depth: %d\n\n", config.MaxDepth)
	}

	for !game.IsGameOver() {
		if config.Verbose {
			fmt.Fprint(w, game.Board())
			fmt.Fprintf(w, "Score: %d, Moves: %d\n", game.Score(), moves)
		}

		dir, ok := solver.BestMove(game.Board())
		if !ok {
			break
		}

		if config.Verbose {
			fmt.Fprintf(w, "Move: %s\n\n", dir)
		}

		game.Move(dir)
		moves++

		if config.Delay > 0 {
			time.Sleep(config.Delay)
		}
	}

	// 最終結果は常に表示する
	fmt.Fprint(w, game.Board())
	fmt.Fprintln(w, "=== Game Over ===")
	fmt.Fprintf(w, "Final Score: %d\n", game.Score())
	fmt.Fprintf(w, "Total Moves: %d\n", moves)
	fmt.Fprintf(w, "Max Tile: %d\n", game.Board().MaxTile())
	if game.HasWon() {
		fmt.Fprintf(w, "Reached the %d tile!\n", domain.TargetTile)
	}

	return game.Score(), moves
}
