package usecase

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/nnaakkaaii/go2048/internal/domain"
	"github.com/nnaakkaaii/go2048/internal/store"
)

// PlayGame はCLIで2048ゲームを実行する
// bestがnilでなければ起動時に最高スコアを読み込み、更新のたびに保存する
func PlayGame(r io.Reader, w io.Writer, rng *rand.Rand, best *store.BestScore) {
	bestScore := 0
	if best != nil {
		loaded, err := best.Load()
		if err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
		}
		bestScore = loaded
	}

	game := domain.NewGame(rng)
	reader := bufio.NewReader(r)
	wonShown := false

	fmt.Fprintln(w, "=== 2048 ===")
	fmt.Fprintln(w, "Controls: w=Up, s=Down, a=Left, d=Right, n=New Game, q=Quit")
	fmt.Fprintln(w)

	for {
		fmt.Fprint(w, game.Board())
		fmt.Fprintf(w, "Score: %d (Best: %d)\n", game.Score(), bestScore)

		if game.HasWon() && !wonShown {
			wonShown = true
			fmt.Fprintf(w, "You made the %d tile! Keep going, or press n for a new game.\n", domain.TargetTile)
		}

		if game.IsGameOver() {
			fmt.Fprintln(w, "Game Over! Press n for a new game or q to quit.")
		} else {
			fmt.Fprint(w, "Move: ")
		}

		input, err := reader.ReadString('\n')
		if err != nil {
			break
		}

		input = strings.TrimSpace(strings.ToLower(input))
		if input == "q" {
			fmt.Fprintln(w, "Quit.")
			break
		}
		if input == "n" {
			game = domain.NewGame(rng)
			wonShown = false
			fmt.Fprintln(w)
			continue
		}
		if game.IsGameOver() {
			continue
		}

		dir, ok := parseKey(input)
		if !ok {
			fmt.Fprintln(w, "Invalid input. Use w/a/s/d, n for a new game, q to quit.")
			continue
		}

		if !game.Move(dir) {
			fmt.Fprintln(w, "Cannot move in that direction.")
		}
		if game.Score() > bestScore {
			bestScore = game.Score()
			if best != nil {
				if err := best.Save(bestScore); err != nil {
					fmt.Fprintf(w, "warning: %v\n", err)
				}
			}
		}
		fmt.Fprintln(w)
	}
}

// parseKey はwasdのキー入力を方向に変換する
func parseKey(input string) (domain.Direction, bool) {
	switch input {
	case "w":
		return domain.Up, true
	case "s":
		return domain.Down, true
	case "a":
		return domain.Left, true
	case "d":
		return domain.Right, true
	default:
		return 0, false
	}
}
