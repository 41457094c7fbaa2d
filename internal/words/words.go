// Package words supplies the (word, hint) pairs dealt at the start of a round.
package words

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyList 词库为空
var ErrEmptyList = errors.New("word list is empty")

// Pair 一组词：普通玩家拿到 Word，卧底拿到 Hint
type Pair struct {
	Word string `yaml:"word"`
	Hint string `yaml:"hint"`
}

// Supplier 词库来源
type Supplier interface {
	Len() int
	Pair(i int) Pair
}

// List 固定词库
type List struct {
	pairs []Pair
}

// NewList 创建词库，校验每组词非空
func NewList(pairs []Pair) (*List, error) {
	if len(pairs) == 0 {
		return nil, ErrEmptyList
	}
	cleaned := make([]Pair, 0, len(pairs))
	for i, p := range pairs {
		p.Word = strings.TrimSpace(p.Word)
		p.Hint = strings.TrimSpace(p.Hint)
		if p.Word == "" || p.Hint == "" {
			return nil, fmt.Errorf("pair %d: word and hint are required", i)
		}
		cleaned = append(cleaned, p)
	}
	return &List{pairs: cleaned}, nil
}

// Builtin 返回内置词库
func Builtin() *List {
	return &List{pairs: builtin}
}

// Len 词组数量
func (l *List) Len() int { return len(l.pairs) }

// Pair 第 i 组词
func (l *List) Pair(i int) Pair { return l.pairs[i] }

// wordFile 词库文件格式
type wordFile struct {
	Words []Pair `yaml:"words"`
}

// LoadFile 从 YAML 文件加载词库
func LoadFile(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}

	var f wordFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse word list: %w", err)
	}

	return NewList(f.Words)
}

// Load 按路径加载，路径为空时使用内置词库
func Load(path string) (*List, error) {
	if path == "" {
		return Builtin(), nil
	}
	return LoadFile(path)
}
