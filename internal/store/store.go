// Package store は最高スコアの永続化を提供する
// 保存形式は10進テキストで表した整数1つだけ
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// BestScore は最高スコア1つをテキストファイルとして読み書きする
type BestScore struct {
	path string
}

// NewBestScore は指定したパスを使うBestScoreを生成する
func NewBestScore(path string) *BestScore {
	return &BestScore{path: path}
}

// Load は保存済みの最高スコアを読み込む
// ファイルが存在しない場合は0を返す（初回起動）
func (s *BestScore) Load() (int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("store: read best score: %w", err)
	}
	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("store: parse best score %q: %w", strings.TrimSpace(string(data)), err)
	}
	return score, nil
}

// Save は最高スコアを書き込む
// 一時ファイルに書いてからrenameすることで中途半端な内容を残さない
func (s *BestScore) Save(score int) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	if _, err := tmp.WriteString(strconv.Itoa(score)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write best score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: replace best score file: %w", err)
	}
	return nil
}
