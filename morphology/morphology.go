package morphology

import "errors"

// 形態素解析器(MeCab互換)との境界。ノード列はBOSで始まりEOSで終わる単方向リスト。

type Status int

const (
	Normal Status = iota
	BOS
	EOS
)

func (s Status) String() string {
	switch s {
	case BOS:
		return "BOS"
	case EOS:
		return "EOS"
	default:
		return "NORMAL"
	}
}

// 破棄済みラティスのノードを読んだときのエラー
var ErrDestroyed = errors.New("morphology: lattice already destroyed")

type Tagger interface {
	// 文全体を一度に解析する。エラーメッセージは解析器の診断をそのまま返す
	Parse(sentence string) (Lattice, error)
}

// Parseが成功するごとにDestroyをちょうど一度呼ぶこと
type Lattice interface {
	BOSNode() Node
	Destroy()
}

type Node interface {
	// EOSの次はnil
	Next() Node
	Status() Status
	// 直前の空白と表層形。空白がなければ空文字列
	LeadingSpaceAndSurface() (space, surface string, err error)
	Feature() string
}
