package jatokenstream

import (
	"regexp"
	"strings"

	"github.com/kotaroooo0/gojaconv/jaconv"
)

// 取り除いたトークンの位置増分を次に残るトークンへ持ち越すフィルタの共通部分
type filteringTokenFilter struct {
	input            TokenStream
	accept           func(Token) bool
	token            Token
	skippedPositions int
}

func (f *filteringTokenFilter) IncrementToken() (bool, error) {
	for {
		ok, err := f.input.IncrementToken()
		if err != nil || !ok {
			return false, err
		}
		token := f.input.Token()
		if f.accept(token) {
			token.PositionIncrement += f.skippedPositions
			f.skippedPositions = 0
			f.token = token
			return true, nil
		}
		f.skippedPositions += token.PositionIncrement
	}
}

func (f *filteringTokenFilter) Token() Token {
	return f.token
}

// 末尾で取り除いたトークンの分も終端トークンに反映する
func (f *filteringTokenFilter) End() error {
	if err := f.input.End(); err != nil {
		return err
	}
	f.token = f.input.Token()
	f.token.PositionIncrement += f.skippedPositions
	return nil
}

// 上流はリセットしない。上流のTokenizerには新しい入力が必要なため
func (f *filteringTokenFilter) Reset() {
	f.skippedPositions = 0
	f.token = Token{}
}

func (f *filteringTokenFilter) Close() error {
	return f.input.Close()
}

// Typeが指定したパターンのいずれかに完全一致するトークンをふるい落とす
type FeatureRegexFilter struct {
	*filteringTokenFilter
	patterns []*regexp.Regexp
}

func NewFeatureRegexFilter(input TokenStream, stopPatterns []string) (*FeatureRegexFilter, error) {
	patterns, err := CompileStopPatterns(stopPatterns)
	if err != nil {
		return nil, err
	}
	return newFeatureRegexFilter(input, patterns), nil
}

func newFeatureRegexFilter(input TokenStream, patterns []*regexp.Regexp) *FeatureRegexFilter {
	f := &FeatureRegexFilter{patterns: patterns}
	f.filteringTokenFilter = &filteringTokenFilter{
		input:  input,
		accept: func(t Token) bool { return !f.match(t.Type) },
	}
	return f
}

// 各パターンを全体一致になるよう固定してコンパイルする
func CompileStopPatterns(stopPatterns []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, len(stopPatterns))
	for i, p := range stopPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return nil, &PatternError{Index: i, Pattern: p, Err: err}
		}
		re, err := regexp.Compile(`^(?:` + p + `)$`)
		if err != nil {
			return nil, &PatternError{Index: i, Pattern: p, Err: err}
		}
		patterns[i] = re
	}
	return patterns, nil
}

func (f *FeatureRegexFilter) match(feature string) bool {
	for _, p := range f.patterns {
		if p.MatchString(feature) {
			return true
		}
	}
	return false
}

type StopWordFilter struct {
	*filteringTokenFilter
	stopWords map[string]struct{}
}

func NewStopWordFilter(input TokenStream, stopWords []string) *StopWordFilter {
	f := &StopWordFilter{stopWords: make(map[string]struct{}, len(stopWords))}
	for _, w := range stopWords {
		f.stopWords[w] = struct{}{}
	}
	f.filteringTokenFilter = &filteringTokenFilter{
		input: input,
		accept: func(t Token) bool {
			_, ok := f.stopWords[t.Term]
			return !ok
		},
	}
	return f
}

// IPA辞書の素性
const readingFeatureIndex = 7

// Termを読みのローマ字(ヘボン式)に置き換える。オフセットは変えない
type ReadingFilter struct {
	input TokenStream
	token Token
}

func NewReadingFilter(input TokenStream) *ReadingFilter {
	return &ReadingFilter{input: input}
}

func (f *ReadingFilter) IncrementToken() (bool, error) {
	ok, err := f.input.IncrementToken()
	if err != nil || !ok {
		return false, err
	}
	f.token = f.input.Token()
	f.token.Term = jaconv.ToHebon(jaconv.KatakanaToHiragana(reading(f.token)))
	return true, nil
}

func (f *ReadingFilter) Token() Token {
	return f.token
}

func (f *ReadingFilter) End() error {
	if err := f.input.End(); err != nil {
		return err
	}
	f.token = f.input.Token()
	return nil
}

func (f *ReadingFilter) Reset() {
	f.token = Token{}
}

func (f *ReadingFilter) Close() error {
	return f.input.Close()
}

// 読みがない(未知語など)ときは表層形を使う
func reading(t Token) string {
	features := strings.Split(t.Type, ",")
	if len(features) > readingFeatureIndex && features[readingFeatureIndex] != "*" {
		return features[readingFeatureIndex]
	}
	return t.Term
}
