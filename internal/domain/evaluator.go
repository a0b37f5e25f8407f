package domain

import "math"

// Evaluator は盤面を評価してスコアを返すインターフェース
// 探索の葉で呼ばれるため、BitBoardのまま評価する
type Evaluator interface {
	Evaluate(bb BitBoard) float64
}

// WeightedEvaluator は複数のEvaluatorを係数付きで組み合わせる
type WeightedEvaluator struct {
	evaluators []Evaluator
	weights    []float64
}

// NewWeightedEvaluator は係数付きEvaluatorを生成する
func NewWeightedEvaluator(evaluators []Evaluator, weights []float64) *WeightedEvaluator {
	if len(evaluators) != len(weights) {
		panic("domain: evaluators and weights must have the same length")
	}
	return &WeightedEvaluator{
		evaluators: evaluators,
		weights:    weights,
	}
}

// Evaluate は全てのEvaluatorの重み付き和を返す
func (w *WeightedEvaluator) Evaluate(bb BitBoard) float64 {
	score := 0.0
	for i, ev := range w.evaluators {
		score += w.weights[i] * ev.Evaluate(bb)
	}
	return score
}

// NewHeuristicEvaluator は既定の重み付き評価関数を生成する
// 空きマス・単調性・滑らかさ・角配置・最大タイルの組み合わせ
func NewHeuristicEvaluator() Evaluator {
	return NewWeightedEvaluator(
		[]Evaluator{
			&EmptyCellsEvaluator{},
			&MonotonicityEvaluator{},
			&SmoothnessEvaluator{},
			&CornerBonusEvaluator{},
			&MaxTileEvaluator{},
		},
		[]float64{2.7, 1.0, 0.1, 3.0, 1.0},
	)
}

// EmptyCellsEvaluator は空きマス数で評価する
type EmptyCellsEvaluator struct{}

func (e *EmptyCellsEvaluator) Evaluate(bb BitBoard) float64 {
	return float64(bb.CountEmpty())
}

// MonotonicityEvaluator は単調性で評価する（角から降順に並ぶほど高評価）
type MonotonicityEvaluator struct{}

func (e *MonotonicityEvaluator) Evaluate(bb BitBoard) float64 {
	// 4つの角それぞれを基準にした単調性を計算し、最大を返す
	best := math.Inf(-1)
	for _, fromTop := range []bool{true, false} {
		for _, fromLeft := range []bool{true, false} {
			if s := monotonicity(bb, fromTop, fromLeft); s > best {
				best = s
			}
		}
	}
	return best
}

func monotonicity(bb BitBoard, fromTop, fromLeft bool) float64 {
	score := 0.0

	// 行方向
	for r := 0; r < Size; r++ {
		for c := 0; c < Size-1; c++ {
			c1, c2 := c, c+1
			if !fromLeft {
				c1, c2 = Size-1-c, Size-2-c
			}
			if bb.Exp(r, c1) >= bb.Exp(r, c2) {
				score++
			}
		}
	}

	// 列方向
	for c := 0; c < Size; c++ {
		for r := 0; r < Size-1; r++ {
			r1, r2 := r, r+1
			if !fromTop {
				r1, r2 = Size-1-r, Size-2-r
			}
			if bb.Exp(r1, c) >= bb.Exp(r2, c) {
				score++
			}
		}
	}

	return score
}

// SmoothnessEvaluator は隣接タイルの指数差で評価する（差が小さいほど高評価）
type SmoothnessEvaluator struct{}

func (e *SmoothnessEvaluator) Evaluate(bb BitBoard) float64 {
	penalty := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			exp := bb.Exp(r, c)
			if exp == 0 {
				continue
			}
			if c < Size-1 {
				if right := bb.Exp(r, c+1); right != 0 {
					penalty += absInt(exp - right)
				}
			}
			if r < Size-1 {
				if down := bb.Exp(r+1, c); down != 0 {
					penalty += absInt(exp - down)
				}
			}
		}
	}
	// ペナルティなので負の値を返す
	return -float64(penalty)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// CornerBonusEvaluator は最大タイルが角にあると高評価
type CornerBonusEvaluator struct{}

func (e *CornerBonusEvaluator) Evaluate(bb BitBoard) float64 {
	maxExp := bb.MaxExp()
	if maxExp == 0 {
		return 0
	}
	corners := [][2]int{{0, 0}, {0, Size - 1}, {Size - 1, 0}, {Size - 1, Size - 1}}
	for _, pos := range corners {
		if bb.Exp(pos[0], pos[1]) == maxExp {
			return 1.0
		}
	}
	return 0.0
}

// MaxTileEvaluator は最大タイルの指数（log2の値）で評価する
type MaxTileEvaluator struct{}

func (e *MaxTileEvaluator) Evaluate(bb BitBoard) float64 {
	return float64(bb.MaxExp())
}
