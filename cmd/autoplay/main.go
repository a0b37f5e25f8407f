package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/nnaakkaaii/go2048/internal/usecase"
)

func main() {
	depth := flag.Int("depth", 4, "search depth")
	delay := flag.Int("delay", 100, "delay between moves (ms)")
	quiet := flag.Bool("quiet", false, "suppress per-move output")
	flag.Parse()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	config := usecase.DefaultAutoPlayConfig()
	config.MaxDepth = *depth
	config.Delay = time.Duration(*delay) * time.Millisecond
	config.Verbose = !*quiet

	usecase.AutoPlay(os.Stdout, rng, config)
}
