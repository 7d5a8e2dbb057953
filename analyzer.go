package jatokenstream

import (
	"errors"
	"io"
	"log/slog"
	"regexp"

	"github.com/masamichhhhi/go-ja-tokenstream/morphology"
)

type Options struct {
	// 入力から読み込む最大文字数。0以下なら空でない入力はすべて拒否される
	MaxSize int
	// Typeがいずれかに完全一致するトークンを取り除く。nilならフィルタを組まない
	StopPatterns []string
	StopWords    []string
	// 読みのローマ字をTermにする
	Romaji bool
	// nilならslog.Default()
	Logger *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		MaxSize: DefaultMaxSize,
	}
}

type resetter interface {
	Reset()
}

// Tokenizerとフィルタの組。フィールドごとに一つ作って使い回す
type chain struct {
	tokenizer *MeCabTokenizer
	filters   []resetter
	stream    TokenStream
}

// フィールド名ごとにTokenizerとフィルタを使い回すAnalyzer。
// 同じフィールドの文書を並行して解析してはいけない。並行に使うならgoroutineごとにAnalyzerを作ること
type Analyzer struct {
	tagger   morphology.Tagger
	opts     Options
	patterns []*regexp.Regexp
	logger   *slog.Logger
	chains   map[string]*chain
	closed   bool
}

// ストップパターンはここでコンパイルし、不正なら文書を処理する前に失敗する
func NewAnalyzer(tagger morphology.Tagger, opts Options) (*Analyzer, error) {
	if tagger == nil {
		return nil, errors.New("jatokenstream: nil tagger")
	}
	var patterns []*regexp.Regexp
	if opts.StopPatterns != nil {
		var err error
		patterns, err = CompileStopPatterns(opts.StopPatterns)
		if err != nil {
			return nil, err
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		tagger:   tagger,
		opts:     opts,
		patterns: patterns,
		logger:   logger,
		chains:   make(map[string]*chain),
	}, nil
}

// 使い回さない新しいストリームを作る
func (a *Analyzer) NewTokenStream(r io.Reader) (TokenStream, error) {
	if a.closed {
		return nil, ErrClosed
	}
	c, err := a.newChain(r)
	if err != nil {
		return nil, err
	}
	return c.stream, nil
}

// fieldに対応するストリームを新しい入力でリセットして返す。初回は新しく作る。
// 返したストリームをCloseした場合は次の呼び出しで作り直す
func (a *Analyzer) TokenStream(field string, r io.Reader) (TokenStream, error) {
	if a.closed {
		return nil, ErrClosed
	}

	c, ok := a.chains[field]
	if ok && c.tokenizer.closed {
		delete(a.chains, field)
		ok = false
	}
	if !ok {
		c, err := a.newChain(r)
		if err != nil {
			return nil, err
		}
		a.chains[field] = c
		a.logger.Debug("created token stream", "field", field, "filters", len(c.filters))
		return c.stream, nil
	}

	for _, f := range c.filters {
		f.Reset()
	}
	if err := c.tokenizer.Reset(r); err != nil {
		return nil, err
	}
	a.logger.Debug("reused token stream", "field", field)
	return c.stream, nil
}

// キャッシュしているすべてのストリームを閉じる
func (a *Analyzer) Close() error {
	if a.closed {
		return nil
	}
	var errs []error
	for field, c := range a.chains {
		if err := c.stream.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(a.chains, field)
	}
	a.closed = true
	return errors.Join(errs...)
}

func (a *Analyzer) newChain(r io.Reader) (*chain, error) {
	tokenizer, err := NewMeCabTokenizer(r, a.tagger, a.opts.MaxSize)
	if err != nil {
		return nil, err
	}
	c := &chain{
		tokenizer: tokenizer,
		stream:    tokenizer,
	}
	if a.patterns != nil {
		f := newFeatureRegexFilter(c.stream, a.patterns)
		c.filters = append(c.filters, f)
		c.stream = f
	}
	if len(a.opts.StopWords) > 0 {
		f := NewStopWordFilter(c.stream, a.opts.StopWords)
		c.filters = append(c.filters, f)
		c.stream = f
	}
	if a.opts.Romaji {
		f := NewReadingFilter(c.stream)
		c.filters = append(c.filters, f)
		c.stream = f
	}
	return c, nil
}
