package server

import (
	"log"
	"math/rand"
	"sync"

	"github.com/nnaakkaaii/go2048/internal/domain"
	"github.com/nnaakkaaii/go2048/internal/store"
)

// ヒント用ソルバーの探索深さ
const hintDepth = 4

// Session は1つのゲームをUIからの操作で直列に進める
// エンジンは純粋関数の集まりなので、入力の直列化・最高スコア・
// 勝利バナーの表示状態（dismiss済みかどうか）はここが持つ
type Session struct {
	mu      sync.Mutex
	game    *domain.Game
	rng     *rand.Rand
	best    *store.BestScore
	bestVal int
	wonAck  bool
	solver  *domain.Solver
}

// StatePayload はUIへ送る盤面スナップショット
type StatePayload struct {
	Board           [domain.Size][domain.Size]int `json:"board"`
	Score           int                           `json:"score"`
	Best            int                           `json:"best"`
	Points          int                           `json:"points"`
	Moved           bool                          `json:"moved"`
	Over            bool                          `json:"over"`
	Won             bool                          `json:"won"`
	WonAcknowledged bool                          `json:"won_acknowledged"`
}

// HintPayload はソルバーの推奨手
type HintPayload struct {
	Direction string `json:"direction"`
	Valid     bool   `json:"valid"`
}

// NewSession は保存済みの最高スコアを読み込み、新しいゲームを開始する
func NewSession(rng *rand.Rand, best *store.BestScore) *Session {
	bestVal := 0
	if best != nil {
		loaded, err := best.Load()
		if err != nil {
			log.Printf("[session] load best score: %v", err)
		}
		bestVal = loaded
	}
	return &Session{
		game:    domain.NewGame(rng),
		rng:     rng,
		best:    best,
		bestVal: bestVal,
		solver:  domain.NewSolver(domain.NewHeuristicEvaluator(), hintDepth),
	}
}

// State は現在のスナップショットを返す
func (s *Session) State() StatePayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(0, false)
}

// NewGame は盤面を破棄して新しいゲームを開始する
// 勝利ラッチとバナー表示状態もここでのみリセットされる
func (s *Session) NewGame() StatePayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = domain.NewGame(s.rng)
	s.wonAck = false
	return s.snapshot(0, false)
}

// Move は指定方向の手を適用する
// 盤面が変化しなかった場合はMoved=falseのスナップショットを返すだけで
// spawnもスコア更新も起きない
func (s *Session) Move(dir domain.Direction) StatePayload {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.game.Score()
	moved := s.game.Move(dir)
	points := s.game.Score() - before

	if s.game.Score() > s.bestVal {
		s.bestVal = s.game.Score()
		if s.best != nil {
			if err := s.best.Save(s.bestVal); err != nil {
				log.Printf("[session] save best score: %v", err)
			}
		}
	}
	return s.snapshot(points, moved)
}

// AcknowledgeWin は勝利バナーをdismissして続行できるようにする
func (s *Session) AcknowledgeWin() StatePayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wonAck = true
	return s.snapshot(0, false)
}

// Hint はソルバーの推奨手を返す
func (s *Session) Hint() HintPayload {
	s.mu.Lock()
	board := s.game.Board()
	s.mu.Unlock()

	// 探索はロックの外で行う（盤面は値なのでコピーで十分）
	dir, ok := s.solver.BestMove(board)
	if !ok {
		return HintPayload{}
	}
	return HintPayload{Direction: dir.String(), Valid: true}
}

func (s *Session) snapshot(points int, moved bool) StatePayload {
	return StatePayload{
		Board:           s.game.Board().Cells(),
		Score:           s.game.Score(),
		Best:            s.bestVal,
		Points:          points,
		Moved:           moved,
		Over:            s.game.IsGameOver(),
		Won:             s.game.HasWon(),
		WonAcknowledged: s.wonAck,
	}
}

// ParseDirection はAPIで使う方向名をDirectionに変換する
func ParseDirection(name string) (domain.Direction, bool) {
	switch name {
	case "up":
		return domain.Up, true
	case "down":
		return domain.Down, true
	case "left":
		return domain.Left, true
	case "right":
		return domain.Right, true
	default:
		return 0, false
	}
}
