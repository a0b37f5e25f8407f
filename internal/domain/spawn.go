package domain

import "math/rand"

// spawn確率（2が90%、4が10%）
const (
	spawnTwoProb  = 0.9
	spawnFourProb = 0.1
)

// SpawnRandomTile は空きマスを一様に選んで新しいタイルを1枚置いたBoardを返す
// 値は90%で2、10%で4。空きマスがなければ盤面をそのまま返す
func SpawnRandomTile(b Board, rng *rand.Rand) Board {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return b
	}
	pos := empty[rng.Intn(len(empty))]
	value := 2
	if rng.Float64() < spawnFourProb {
		value = 4
	}
	return b.Set(pos[0], pos[1], value)
}

// SeedInitial は新しいゲームの初期配置として2枚のタイルを置いたBoardを返す
// 2枚は必ず異なる空きマスに置かれる
func SeedInitial(b Board, rng *rand.Rand) Board {
	b = SpawnRandomTile(b, rng)
	return SpawnRandomTile(b, rng)
}
