package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/nnaakkaaii/go2048/internal/server"
	"github.com/nnaakkaaii/go2048/internal/store"
)

func main() {
	// .envがあれば読み込む（なくてもよい）
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:  "go2048-serve",
		Usage: "serve the 2048 web UI over HTTP and WebSocket",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   ":8080",
				Usage:   "listen address",
				Sources: cli.EnvVars("GO2048_ADDR"),
			},
			&cli.StringFlag{
				Name:    "best-file",
				Value:   "best_score.txt",
				Usage:   "path of the best score file",
				Sources: cli.EnvVars("GO2048_BEST_FILE"),
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			best := store.NewBestScore(c.String("best-file"))
			session := server.NewSession(server.NewRNG(), best)
			return server.New(c.String("addr"), session).Run(ctx)
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatalf("[serve] %v", err)
	}
}
