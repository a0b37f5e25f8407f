package domain

import "math/rand"

// Game は1プレイ分の状態（盤面・スコア・勝利ラッチ）を管理する
// エンジン操作は全て純粋関数なので、乱数と状態の持ち回りはここに集約する
type Game struct {
	board Board
	score int
	won   bool
	rng   *rand.Rand
}

// NewGame は初期タイル2枚を配置した新しいゲームを開始する
func NewGame(rng *rand.Rand) *Game {
	return &Game{
		board: SeedInitial(NewBoard(), rng),
		rng:   rng,
	}
}

// Board は現在の盤面を返す
func (g *Game) Board() Board {
	return g.board
}

// Score は現在のスコアを返す（単調非減少）
func (g *Game) Score() int {
	return g.score
}

// HasWon は目標タイルに一度でも到達したかを返す
// ゲーム内では一方向ラッチで、NewGameでのみリセットされる
func (g *Game) HasWon() bool {
	return g.won
}

// IsGameOver は有効な手が残っていないかを返す（spawn後の盤面で判定）
func (g *Game) IsGameOver() bool {
	return g.board.IsGameOver()
}

// Move は指定した方向にスワイプを実行する
// 盤面が変化した場合のみスコアを加算してタイルを1枚spawnし、trueを返す
// 変化しない場合は状態を一切変えずfalseを返す
func (g *Game) Move(dir Direction) bool {
	res := g.board.Swipe(dir)
	if !res.Moved {
		return false
	}
	g.score += res.Points
	g.board = SpawnRandomTile(res.Board, g.rng)
	if g.board.MaxTile() >= TargetTile {
		g.won = true
	}
	return true
}
