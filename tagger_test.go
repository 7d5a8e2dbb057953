package jatokenstream

import (
	"errors"
	"strings"
	"unicode"

	"github.com/masamichhhhi/go-ja-tokenstream/morphology"
)

type morph struct {
	space   string
	surface string
	feature string
}

// テスト用の解析器。segmentsにない文は空白区切りで分割する
type fakeTagger struct {
	segments   map[string][]morph
	failOn     map[string]string
	brokenOn   string // この表層形のノードは読めない
	nilLattice bool   // 成功扱いでラティスを返さない
	parsed     int
	live       int
	destroyed  int
	overDelete int
}

func newFakeTagger() *fakeTagger {
	return &fakeTagger{
		segments: make(map[string][]morph),
		failOn:   make(map[string]string),
	}
}

func (t *fakeTagger) Parse(sentence string) (morphology.Lattice, error) {
	t.parsed++
	if t.nilLattice {
		return nil, nil
	}
	if msg, ok := t.failOn[sentence]; ok {
		return nil, errors.New(msg)
	}
	morphs, ok := t.segments[sentence]
	var trailing string
	if !ok {
		morphs, trailing = splitSpaces(sentence)
	}

	l := &fakeLattice{tagger: t}
	bos := &fakeNode{lattice: l, status: morphology.BOS}
	prev := bos
	for _, m := range morphs {
		n := &fakeNode{lattice: l, status: morphology.Normal, morph: m, broken: t.brokenOn != "" && m.surface == t.brokenOn}
		prev.next = n
		prev = n
	}
	prev.next = &fakeNode{lattice: l, status: morphology.EOS, morph: morph{space: trailing}}
	l.bos = bos
	t.live++
	return l, nil
}

func splitSpaces(s string) ([]morph, string) {
	var morphs []morph
	var space, word strings.Builder
	flush := func() {
		if word.Len() == 0 {
			return
		}
		morphs = append(morphs, morph{space: space.String(), surface: word.String(), feature: "WORD"})
		space.Reset()
		word.Reset()
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			flush()
			space.WriteRune(r)
			continue
		}
		word.WriteRune(r)
	}
	flush()
	return morphs, space.String()
}

type fakeLattice struct {
	tagger    *fakeTagger
	bos       *fakeNode
	destroyed bool
}

func (l *fakeLattice) BOSNode() morphology.Node {
	return l.bos
}

func (l *fakeLattice) Destroy() {
	if l.destroyed {
		l.tagger.overDelete++
		return
	}
	l.destroyed = true
	l.tagger.live--
	l.tagger.destroyed++
}

type fakeNode struct {
	lattice *fakeLattice
	next    *fakeNode
	status  morphology.Status
	morph   morph
	broken  bool
}

func (n *fakeNode) Next() morphology.Node {
	if n.next == nil {
		return nil
	}
	return n.next
}

func (n *fakeNode) Status() morphology.Status {
	return n.status
}

func (n *fakeNode) LeadingSpaceAndSurface() (string, string, error) {
	if n.lattice.destroyed {
		return "", "", morphology.ErrDestroyed
	}
	if n.broken {
		return "", "", morphology.ErrDestroyed
	}
	return n.morph.space, n.morph.surface, nil
}

func (n *fakeNode) Feature() string {
	return n.morph.feature
}

// テスト用の固定トークン列
type sliceStream struct {
	tokens []Token
	i      int
	token  Token
	final  int
	closed bool
}

func (s *sliceStream) IncrementToken() (bool, error) {
	if s.i >= len(s.tokens) {
		return false, nil
	}
	s.token = s.tokens[s.i]
	s.i++
	return true, nil
}

func (s *sliceStream) Token() Token {
	return s.token
}

func (s *sliceStream) End() error {
	s.token = Token{StartOffset: s.final, EndOffset: s.final}
	return nil
}

func (s *sliceStream) Close() error {
	s.closed = true
	return nil
}

func typed(types ...string) *sliceStream {
	s := &sliceStream{}
	for i, typ := range types {
		s.tokens = append(s.tokens, Token{Term: strings.ToLower(typ), StartOffset: i, EndOffset: i + 1, Type: typ, PositionIncrement: 1})
	}
	s.final = len(types)
	return s
}
