package jatokenstream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/masamichhhhi/go-ja-tokenstream/morphology"
)

const (
	DefaultBufferSize = 8192
	DefaultMaxSize    = 10 * 1024 * 1024
)

// 入力を形態素解析器で分かち書きするTokenizer。
// Termには表層形、Typeには素性が入る。
// 一つのインスタンスを複数のgoroutineから同時に使ってはいけない。
type MeCabTokenizer struct {
	tagger  morphology.Tagger
	maxSize int

	lattice morphology.Lattice
	node    morphology.Node
	offset  int
	token   Token

	correctOffset func(int) int
	closed        bool
}

// 入力を最大maxSize文字まで読み込み、解析まで済ませる
func NewMeCabTokenizer(r io.Reader, tagger morphology.Tagger, maxSize int) (*MeCabTokenizer, error) {
	if tagger == nil {
		return nil, errors.New("jatokenstream: nil tagger")
	}
	t := &MeCabTokenizer{
		tagger:  tagger,
		maxSize: maxSize,
	}
	if err := t.parse(r); err != nil {
		return nil, err
	}
	return t, nil
}

// 周囲のストリーム分割に合わせてオフセットを補正する関数を設定する。nilなら補正しない
func (t *MeCabTokenizer) SetOffsetCorrector(f func(int) int) {
	t.correctOffset = f
}

func (t *MeCabTokenizer) IncrementToken() (bool, error) {
	if t.node == nil {
		t.release()
		return false, nil
	}
	if t.node.Status() == morphology.EOS {
		// 末尾の空白も最終オフセットに含める
		space, _, err := t.node.LeadingSpaceAndSurface()
		if err != nil {
			t.release()
			return false, fmt.Errorf("%w: %w", ErrNodeDecode, err)
		}
		t.offset += utf8.RuneCountInString(space)
		t.release()
		return false, nil
	}

	space, surface, err := t.node.LeadingSpaceAndSurface()
	if err != nil {
		t.release()
		return false, fmt.Errorf("%w: %w", ErrNodeDecode, err)
	}
	start := t.offset + utf8.RuneCountInString(space)
	end := start + utf8.RuneCountInString(surface)
	t.offset = end

	t.token = Token{
		Term:              surface,
		StartOffset:       t.correct(start),
		EndOffset:         t.correct(end),
		Type:              t.node.Feature(),
		PositionIncrement: 1,
	}
	t.node = t.node.Next()
	return true, nil
}

func (t *MeCabTokenizer) Token() Token {
	return t.token
}

// 補正前の、これまでに消費した文字数
func (t *MeCabTokenizer) FinalOffset() int {
	return t.offset
}

func (t *MeCabTokenizer) End() error {
	final := t.correct(t.offset)
	t.token = Token{
		StartOffset: final,
		EndOffset:   final,
	}
	return nil
}

// 保持しているラティスを破棄してから新しい入力を解析する
func (t *MeCabTokenizer) Reset(r io.Reader) error {
	if t.closed {
		return ErrClosed
	}
	t.release()
	t.offset = 0
	t.token = Token{}
	return t.parse(r)
}

func (t *MeCabTokenizer) Close() error {
	if t.closed {
		return nil
	}
	t.release()
	t.closed = true
	return nil
}

func (t *MeCabTokenizer) correct(offset int) int {
	if t.correctOffset == nil {
		return offset
	}
	return t.correctOffset(offset)
}

// ラティスの参照を先に外すので、Destroyが二度呼ばれることはない
func (t *MeCabTokenizer) release() {
	l := t.lattice
	t.lattice = nil
	t.node = nil
	if l != nil {
		l.Destroy()
	}
}

func (t *MeCabTokenizer) parse(r io.Reader) error {
	text, err := drain(r, t.maxSize)
	if err != nil {
		return err
	}

	lattice, err := t.tagger.Parse(text)
	if err != nil {
		if lattice != nil {
			lattice.Destroy()
		}
		return &AnalysisError{Message: err.Error()}
	}
	if lattice == nil {
		return &AnalysisError{Message: "no lattice"}
	}
	t.lattice = lattice
	t.node = lattice.BOSNode()
	if t.node != nil {
		t.node = t.node.Next()
	}
	return nil
}

// 上限を超えた時点で読み込みをやめる
func drain(r io.Reader, maxSize int) (string, error) {
	if r == nil {
		return "", errors.New("jatokenstream: nil reader")
	}
	br := bufio.NewReaderSize(r, DefaultBufferSize)
	var b strings.Builder
	total := 0
	for {
		c, _, err := br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("jatokenstream: read input: %w", err)
		}
		total++
		if total > maxSize {
			return "", fmt.Errorf("%w: more than %d chars", ErrInputTooLarge, maxSize)
		}
		b.WriteRune(c)
	}
	return b.String(), nil
}
