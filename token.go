package jatokenstream

import "io"

// オフセットは入力の文字(rune)単位で、EndOffsetは含まない
type Token struct {
	Term              string
	StartOffset       int
	EndOffset         int
	Type              string // 形態素の素性
	PositionIncrement int
}

// 利用側の流れ: IncrementTokenがfalseを返すまで呼び、Endで最終オフセットを受け取り、Closeで資源を解放する
type TokenStream interface {
	IncrementToken() (bool, error)
	// 直前のIncrementTokenまたはEndで設定されたトークン
	Token() Token
	End() error
	io.Closer
}

type Result struct {
	Tokens      []Token
	Positions   []int
	FinalOffset int
}

// ストリームをEndまで読み切る。Closeは呼ばない
func Collect(ts TokenStream) (Result, error) {
	var res Result
	position := -1
	for {
		ok, err := ts.IncrementToken()
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}
		token := ts.Token()
		position += token.PositionIncrement
		res.Tokens = append(res.Tokens, token)
		res.Positions = append(res.Positions, position)
	}
	if err := ts.End(); err != nil {
		return Result{}, err
	}
	res.FinalOffset = ts.Token().EndOffset
	return res, nil
}

func (r Result) Terms() []string {
	terms := make([]string, len(r.Tokens))
	for i, t := range r.Tokens {
		terms[i] = t.Term
	}
	return terms
}
