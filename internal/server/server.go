// Package server は2048のWeb UI・REST API・WebSocketを提供する
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed web/index.html
var indexHTML []byte

// Server はWeb UIを提供するHTTPサーバー
// ゲームは全クライアントで共有の1セッション
type Server struct {
	addr    string
	session *Session
}

// New はサーバーを生成する
func New(addr string, session *Session) *Server {
	return &Server{
		addr:    addr,
		session: session,
	}
}

// NewRNG はサーバー用の乱数源を生成する
func NewRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Handler はルーティングを組み立てて返す
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(indexHTML)
	})

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.session.State())
	})

	r.Post("/api/new", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.session.NewGame())
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Direction string `json:"direction"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
		dir, ok := ParseDirection(payload.Direction)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid direction"})
			return
		}
		writeJSON(w, http.StatusOK, s.session.Move(dir))
	})

	r.Post("/api/continue", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.session.AcknowledgeWin())
	})

	r.Get("/api/hint", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.session.Hint())
	})

	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(s.session, w, r)
	})

	return r
}

// Run はHTTPサーバーを起動し、ctxのキャンセルでgraceful shutdownする
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	log.Printf("[server] listening on %s", s.addr)
	select {
	case <-ctx.Done():
		log.Printf("[server] shutdown signal received: %v", ctx.Err())
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[server] graceful shutdown failed: %v", err)
		return server.Close()
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[server] write json: %v", err)
	}
}
