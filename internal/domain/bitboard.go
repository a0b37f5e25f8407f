package domain

import "math/bits"

// BitBoard は盤面を64ビット整数で表現する（探索用の高速表現）
// 各タイルは4ビットの指数（0=空, 1=2, 2=4, ..., 15=32768）、16タイル×4ビット=64ビット
type BitBoard uint64

// 行スライドの結果を引くテーブル（16ビットの行 → 左スライド後の行と獲得点）
// 起動時に全65536行分を前計算しておき、探索中は参照のみにする
var (
	slideLeftTable  [1 << 16]uint16
	slideScoreTable [1 << 16]int32
)

func init() {
	for row := 0; row <= 0xFFFF; row++ {
		moved, score := slideRowLeft(uint16(row))
		slideLeftTable[row] = moved
		slideScoreTable[row] = int32(score)
	}
}

// slideRowLeft は1行（4ビット指数×4）を左に詰めてマージする
// テーブル生成時にのみ呼ばれる
func slideRowLeft(row uint16) (uint16, int) {
	var out [Size]int
	score := 0
	write := 0
	last := 0
	for i := 0; i < Size; i++ {
		exp := int(row>>(i*4)) & 0xF
		if exp == 0 {
			continue
		}
		// 指数は15で飽和しているため32768同士はマージしない
		if exp == last && exp < 15 {
			out[write-1] = exp + 1
			score += 1 << (exp + 1)
			last = 0
			continue
		}
		out[write] = exp
		write++
		last = exp
	}
	var result uint16
	for i, exp := range out {
		result |= uint16(exp) << (i * 4)
	}
	return result, score
}

// NewBitBoard は通常のBoardからBitBoardを生成する
func NewBitBoard(b Board) BitBoard {
	var bb BitBoard
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if v := b.Get(r, c); v > 0 {
				bb = bb.withExp(r, c, bits.TrailingZeros(uint(v)))
			}
		}
	}
	return bb
}

// ToBoard はBitBoardを通常のBoardに変換する
func (bb BitBoard) ToBoard() Board {
	var cells [Size][Size]int
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if exp := bb.Exp(r, c); exp > 0 {
				cells[r][c] = 1 << exp
			}
		}
	}
	return NewBoardFromCells(cells)
}

// Exp は指定位置のタイルの指数を返す（0は空）
func (bb BitBoard) Exp(row, col int) int {
	shift := uint((row*Size + col) * 4)
	return int(bb>>shift) & 0xF
}

// Get は指定位置のタイルの値を返す
func (bb BitBoard) Get(row, col int) int {
	exp := bb.Exp(row, col)
	if exp == 0 {
		return 0
	}
	return 1 << exp
}

// withExp は指定位置に指数を設定したBitBoardを返す
func (bb BitBoard) withExp(row, col, exp int) BitBoard {
	shift := uint((row*Size + col) * 4)
	return (bb &^ (0xF << shift)) | (BitBoard(exp) << shift)
}

// Swipe は指定方向にスワイプした盤面と獲得点を返す
func (bb BitBoard) Swipe(dir Direction) (BitBoard, int) {
	switch dir {
	case Left:
		return bb.swipeRows(false)
	case Right:
		return bb.swipeRows(true)
	case Up:
		moved, score := bb.transpose().swipeRows(false)
		return moved.transpose(), score
	case Down:
		moved, score := bb.transpose().swipeRows(true)
		return moved.transpose(), score
	default:
		return bb, 0
	}
}

// swipeRows は全行をテーブル参照でスライドする
// reversedがtrueなら右方向（行を反転して左スライド、再反転）
func (bb BitBoard) swipeRows(reversed bool) (BitBoard, int) {
	var result BitBoard
	score := 0
	for r := 0; r < Size; r++ {
		row := uint16(bb >> (r * 16))
		if reversed {
			rev := reverseRow(row)
			score += int(slideScoreTable[rev])
			row = reverseRow(slideLeftTable[rev])
		} else {
			score += int(slideScoreTable[row])
			row = slideLeftTable[row]
		}
		result |= BitBoard(row) << (r * 16)
	}
	return result, score
}

// reverseRow は行内の4タイルを逆順にする
func reverseRow(row uint16) uint16 {
	return row<<12 | (row&0x00F0)<<4 | (row&0x0F00)>>4 | row>>12
}

// transpose は盤面を転置する（上下スワイプを行スライドに帰着させる）
func (bb BitBoard) transpose() BitBoard {
	var result BitBoard
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			result = result.withExp(c, r, bb.Exp(r, c))
		}
	}
	return result
}

// EmptyCells は空きマスの座標一覧を返す
func (bb BitBoard) EmptyCells() [][2]int {
	cells := make([][2]int, 0, Size*Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if bb.Exp(r, c) == 0 {
				cells = append(cells, [2]int{r, c})
			}
		}
	}
	return cells
}

// CountEmpty は空きマス数を返す
func (bb BitBoard) CountEmpty() int {
	count := 0
	for i := 0; i < Size*Size; i++ {
		if bb>>(i*4)&0xF == 0 {
			count++
		}
	}
	return count
}

// MaxExp は盤面上の最大タイルの指数を返す
func (bb BitBoard) MaxExp() int {
	max := 0
	for i := 0; i < Size*Size; i++ {
		if exp := int(bb>>(i*4)) & 0xF; exp > max {
			max = exp
		}
	}
	return max
}

// IsGameOver は有効な手が1つもないかどうかを返す
func (bb BitBoard) IsGameOver() bool {
	if bb.CountEmpty() > 0 {
		return false
	}
	for _, dir := range Directions {
		if moved, _ := bb.Swipe(dir); moved != bb {
			return false
		}
	}
	return true
}
