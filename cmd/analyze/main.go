package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nnaakkaaii/go2048/internal/domain"
)

func main() {
	depth := flag.Int("depth", 5, "search depth")
	flag.Parse()

	solver := domain.NewSolver(domain.NewHeuristicEvaluator(), *depth)
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("=== 2048 Move Analyzer ===")
	fmt.Println("Enter board state as 16 numbers (0 for empty), or 'quit' to exit")
	fmt.Println("Example: 0 0 0 0 0 0 0 0 0 0 0 0 0 0 2 2")
	fmt.Println()

	for {
		board, ok := readBoard(scanner)
		if !ok {
			return
		}

		fmt.Println("\nCurrent board:")
		fmt.Print(board)

		if board.IsGameOver() {
			fmt.Println("Game Over - no valid moves.")
			fmt.Println()
			continue
		}

		scores := solver.EvaluateMoves(board)
		best, _ := solver.BestMove(board)

		fmt.Println("\nMove scores:")
		for _, dir := range domain.Directions {
			score, valid := scores[dir]
			if !valid {
				fmt.Printf("  %-5s: (no change)\n", dir)
				continue
			}
			marker := ""
			if dir == best {
				marker = " <- BEST"
			}
			fmt.Printf("  %-5s: %.2f%s\n", dir, score, marker)
		}
		fmt.Println()
	}
}

// readBoard は標準入力から16個の数値を読み取って盤面を作る
// 不正な入力は読み直し、EOFや'quit'でokがfalseになる
func readBoard(scanner *bufio.Scanner) (domain.Board, bool) {
	for {
		fmt.Println("Enter board (16 numbers separated by spaces, or 'quit'):")
		if !scanner.Scan() {
			return domain.Board{}, false
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "quit" || input == "q" {
			return domain.Board{}, false
		}

		parts := strings.Fields(input)
		if len(parts) != domain.Size*domain.Size {
			fmt.Printf("Error: need exactly %d numbers\n", domain.Size*domain.Size)
			continue
		}

		var cells [domain.Size][domain.Size]int
		valid := true
		for i, part := range parts {
			value, err := strconv.Atoi(part)
			if err != nil {
				fmt.Printf("Error parsing number %q: %v\n", part, err)
				valid = false
				break
			}
			if value != 0 && (value < 2 || value&(value-1) != 0) {
				fmt.Printf("Error: %d is not a power of two\n", value)
				valid = false
				break
			}
			cells[i/domain.Size][i%domain.Size] = value
		}
		if !valid {
			continue
		}
		return domain.NewBoardFromCells(cells), true
	}
}
