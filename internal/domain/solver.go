package domain

import (
	"math"
	"sync"
)

// 空きマスが多い局面では確率ノードの展開をこの数までサンプリングする
const maxSpawnSamples = 6

// Solver はExpectimax探索で最良の手を求める
// spawnを確率ノード（2が90%、4が10%）として扱い、BitBoard上で探索する
type Solver struct {
	evaluator Evaluator
	maxDepth  int
}

// NewSolver は新しいSolverを生成する
func NewSolver(evaluator Evaluator, maxDepth int) *Solver {
	return &Solver{
		evaluator: evaluator,
		maxDepth:  maxDepth,
	}
}

// BestMove は現在の盤面から最良の手を返す
// 有効な手が1つもない場合は第2戻り値がfalseになる
func (s *Solver) BestMove(board Board) (Direction, bool) {
	scores := s.EvaluateMoves(board)
	best := Up
	bestScore := math.Inf(-1)
	found := false
	for _, dir := range Directions {
		score, ok := scores[dir]
		if !ok {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = dir
			found = true
		}
	}
	return best, found
}

// EvaluateMoves は有効な各方向の探索評価値を返す
// 盤面が変化しない方向は結果に含まれない
// ルートの各方向は独立なのでgoroutineで並列に評価する
func (s *Solver) EvaluateMoves(board Board) map[Direction]float64 {
	bb := NewBitBoard(board)

	type rootMove struct {
		dir   Direction
		board BitBoard
		score float64
	}

	moves := make([]rootMove, 0, len(Directions))
	for _, dir := range Directions {
		moved, _ := bb.Swipe(dir)
		if moved == bb {
			continue
		}
		moves = append(moves, rootMove{dir: dir, board: moved})
	}

	var wg sync.WaitGroup
	for i := range moves {
		wg.Add(1)
		go func(m *rootMove) {
			defer wg.Done()
			m.score = s.expectedScore(m.board, s.maxDepth-1)
		}(&moves[i])
	}
	wg.Wait()

	scores := make(map[Direction]float64, len(moves))
	for _, m := range moves {
		scores[m.dir] = m.score
	}
	return scores
}

// expectedScore はspawn確率ノードの期待値を計算する
func (s *Solver) expectedScore(bb BitBoard, depth int) float64 {
	empty := bb.EmptyCells()
	if len(empty) == 0 || depth <= 0 {
		return s.evaluator.Evaluate(bb)
	}

	// 空きマスが多い場合は均等に間引いてサンプリングする
	cells := empty
	if len(empty) > maxSpawnSamples {
		cells = make([][2]int, 0, maxSpawnSamples)
		step := len(empty) / maxSpawnSamples
		for i := 0; i < len(empty) && len(cells) < maxSpawnSamples; i += step {
			cells = append(cells, empty[i])
		}
	}

	total := 0.0
	for _, pos := range cells {
		withTwo := bb.withExp(pos[0], pos[1], 1)
		withFour := bb.withExp(pos[0], pos[1], 2)
		total += spawnTwoProb*s.searchMax(withTwo, depth) +
			spawnFourProb*s.searchMax(withFour, depth)
	}
	return total / float64(len(cells))
}

// searchMax はプレイヤー側の最善手を探索する
func (s *Solver) searchMax(bb BitBoard, depth int) float64 {
	if depth <= 0 {
		return s.evaluator.Evaluate(bb)
	}

	best := math.Inf(-1)
	moved := false
	for _, dir := range Directions {
		next, _ := bb.Swipe(dir)
		if next == bb {
			continue
		}
		moved = true
		if score := s.expectedScore(next, depth-1); score > best {
			best = score
		}
	}

	if !moved {
		return s.evaluator.Evaluate(bb)
	}
	return best
}
