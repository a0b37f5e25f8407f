package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/nnaakkaaii/go2048/internal/store"
	"github.com/nnaakkaaii/go2048/internal/usecase"
)

func main() {
	bestFile := flag.String("best-file", "best_score.txt", "path of the best score file")
	flag.Parse()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	usecase.PlayGame(os.Stdin, os.Stdout, rng, store.NewBestScore(*bestFile))
}
