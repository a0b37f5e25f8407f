package domain

import (
	"fmt"
	"strings"
)

// Direction はスワイプの方向を表す
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions は全方向の一覧（探索などで順に試すために使う）
var Directions = []Direction{Up, Down, Left, Right}

// String は方向を小文字の英語名で返す
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

const (
	// Size は盤面の一辺のマス数
	Size = 4
	// TargetTile はこの値のタイルができたら勝ちとなる目標値
	TargetTile = 2048
)

// Board は4x4の2048ゲーム盤面を表す（immutable）
// セルの値は0（空）または2以上の2の累乗
type Board struct {
	cells [Size][Size]int
}

// SwipeResult はスワイプ1回の結果を表す
// Movedがfalseの場合、Boardは入力と同一でPointsは0
// （その手でタイルをspawnしてはならない）
type SwipeResult struct {
	Board  Board
	Points int
	Moved  bool
}

// NewBoard は空のBoardを生成する
func NewBoard() Board {
	return Board{}
}

// NewBoardFromCells はセルの値を指定してBoardを生成する
// 負の値や2の累乗でない値は呼び出し側のバグなのでpanicする
func NewBoardFromCells(cells [Size][Size]int) Board {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if !validCell(cells[r][c]) {
				panic(fmt.Sprintf("domain: invalid cell value %d at (%d,%d)", cells[r][c], r, c))
			}
		}
	}
	return Board{cells: cells}
}

func validCell(v int) bool {
	if v == 0 {
		return true
	}
	return v >= 2 && v&(v-1) == 0
}

// Get は指定した位置のセル値を取得する
func (b Board) Get(row, col int) int {
	return b.cells[row][col]
}

// Set は指定した位置に値を設定した新しいBoardを返す
func (b Board) Set(row, col, value int) Board {
	b.cells[row][col] = value
	return b
}

// EmptyCells は空のセルの座標一覧を返す
func (b Board) EmptyCells() [][2]int {
	var empty [][2]int
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.cells[r][c] == 0 {
				empty = append(empty, [2]int{r, c})
			}
		}
	}
	return empty
}

// Equal は2つのBoardが等しいかどうかを返す
func (b Board) Equal(other Board) bool {
	return b.cells == other.cells
}

// Cells はセルの値を二次元配列として返す
func (b Board) Cells() [Size][Size]int {
	return b.cells
}

// Swipe は指定した方向にスワイプした結果を返す（spawnなし・純粋関数）
// 各行/列を進行方向の端から詰めてマージし、獲得点を合算する
func (b Board) Swipe(dir Direction) SwipeResult {
	next := b
	points := 0
	for i := 0; i < Size; i++ {
		merged, pts := mergeLine(b.line(dir, i))
		points += pts
		next = next.withLine(dir, i, merged)
	}
	if next.Equal(b) {
		return SwipeResult{Board: b}
	}
	return SwipeResult{Board: next, Points: points, Moved: true}
}

// line はi番目の行/列を、進行方向の端が先頭に来る順序で取り出す
func (b Board) line(dir Direction, i int) [Size]int {
	var line [Size]int
	for j := 0; j < Size; j++ {
		r, c := lineCell(dir, i, j)
		line[j] = b.cells[r][c]
	}
	return line
}

// withLine はi番目の行/列をlineの内容で置き換えたBoardを返す
func (b Board) withLine(dir Direction, i int, line [Size]int) Board {
	for j := 0; j < Size; j++ {
		r, c := lineCell(dir, i, j)
		b.cells[r][c] = line[j]
	}
	return b
}

// lineCell はi番目のラインの、進行方向の端からj番目のセル座標を返す
func lineCell(dir Direction, i, j int) (int, int) {
	switch dir {
	case Left:
		return i, j
	case Right:
		return i, Size - 1 - j
	case Up:
		return j, i
	case Down:
		return Size - 1 - j, i
	default:
		panic(fmt.Sprintf("domain: unknown direction %d", dir))
	}
}

// mergeLine は1ラインを先頭方向に詰めてマージし、結果と獲得点を返す
// マージで生まれたタイルは同じ手の中では再マージされない
func mergeLine(line [Size]int) ([Size]int, int) {
	var out [Size]int
	points := 0
	write := 0
	last := 0 // 直前に書き込んだ未マージのタイル値（0はなし）
	for _, v := range line {
		if v == 0 {
			continue
		}
		if v == last {
			out[write-1] = v * 2
			points += v * 2
			last = 0
			continue
		}
		out[write] = v
		write++
		last = v
	}
	return out, points
}

// CanMove は有効な手が残っているかを返す
// 空きマスがあるか、縦横に隣接する同じ値のペアがあればtrue
func (b Board) CanMove() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			v := b.cells[r][c]
			if v == 0 {
				return true
			}
			if c+1 < Size && b.cells[r][c+1] == v {
				return true
			}
			if r+1 < Size && b.cells[r+1][c] == v {
				return true
			}
		}
	}
	return false
}

// IsGameOver は有効な手が1つもないかどうかを返す
func (b Board) IsGameOver() bool {
	return !b.CanMove()
}

// HasTile は指定した値のタイルが盤面にあるかを返す
func (b Board) HasTile(value int) bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.cells[r][c] == value {
				return true
			}
		}
	}
	return false
}

// MaxTile は盤面上の最大タイル値を返す
func (b Board) MaxTile() int {
	max := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.cells[r][c] > max {
				max = b.cells[r][c]
			}
		}
	}
	return max
}

// Sum は盤面上の全タイル値の合計を返す
// マージは値を保存するため、spawn前の合計はスワイプの前後で変わらない
func (b Board) Sum() int {
	sum := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			sum += b.cells[r][c]
		}
	}
	return sum
}

// String はBoardをASCIIアートとして表示する
func (b Board) String() string {
	border := strings.Repeat("+------", Size) + "+"
	var sb strings.Builder
	sb.WriteString(border + "\n")
	for r := 0; r < Size; r++ {
		sb.WriteString("|")
		for c := 0; c < Size; c++ {
			if b.cells[r][c] == 0 {
				sb.WriteString("      |")
			} else {
				fmt.Fprintf(&sb, "%5d |", b.cells[r][c])
			}
		}
		sb.WriteString("\n" + border + "\n")
	}
	return sb.String()
}
