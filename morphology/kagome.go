package morphology

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	ipaneologd "github.com/ikawaha/kagome-dict-ipa-neologd"
	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

const (
	DictIPA        = "ipa"
	DictIPANeologd = "ipa-neologd"
)

const (
	ModeNormal   = "normal"
	ModeSearch   = "search"
	ModeExtended = "extended"
)

func LoadDict(name string) (*dict.Dict, error) {
	switch name {
	case DictIPA:
		return ipa.Dict(), nil
	case DictIPANeologd:
		return ipaneologd.Dict(), nil
	}
	return nil, fmt.Errorf("morphology: unknown dictionary %q", name)
}

func ParseMode(name string) (tokenizer.TokenizeMode, error) {
	switch name {
	case ModeNormal:
		return tokenizer.Normal, nil
	case ModeSearch:
		return tokenizer.Search, nil
	case ModeExtended:
		return tokenizer.Extended, nil
	}
	return tokenizer.Normal, fmt.Errorf("morphology: unknown tokenize mode %q", name)
}

// github.com/ikawaha/kagomeに直接依存しないようにラップする
type Kagome struct {
	kagome *tokenizer.Tokenizer
	mode   tokenizer.TokenizeMode
}

func NewKagome(d *dict.Dict, mode tokenizer.TokenizeMode) (*Kagome, error) {
	if d == nil {
		return nil, errors.New("morphology: nil dictionary")
	}
	t, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Kagome{
		kagome: t,
		mode:   mode,
	}, nil
}

func (k *Kagome) Parse(sentence string) (Lattice, error) {
	if !utf8.ValidString(sentence) {
		return nil, errors.New("invalid UTF-8 sequence in sentence")
	}
	tokens := k.kagome.Analyze(sentence, k.mode)

	l := &kagomeLattice{}
	bos := &kagomeNode{lattice: l, status: BOS}
	prev := bos
	// 空白形態素はノードにせず、次のノードの先行空白として持たせる。
	// BOS/EOSはOmitBosEosで除かれるので、残るDUMMYはextendedモードで一文字ずつに分けた未知語
	var space strings.Builder
	for _, token := range tokens {
		features := token.Features()
		if isSpace(token, features) {
			space.WriteString(token.Surface)
			continue
		}
		feature := strings.Join(features, ",")
		if feature == "" {
			feature = unknownFeature
		}
		n := &kagomeNode{
			lattice: l,
			status:  Normal,
			space:   space.String(),
			surface: token.Surface,
			feature: feature,
		}
		space.Reset()
		prev.next = n
		prev = n
	}
	prev.next = &kagomeNode{lattice: l, status: EOS, space: space.String()}
	l.bos = bos
	return l, nil
}

// 素性を持たないトークンの素性
const unknownFeature = "*"

// 空白の素性を持つか、表層形がすべて空白文字のトークン
func isSpace(token tokenizer.Token, features []string) bool {
	if len(features) > 1 && features[1] == "空白" {
		return true
	}
	return token.Surface != "" && strings.IndexFunc(token.Surface, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}

type kagomeLattice struct {
	bos       *kagomeNode
	destroyed bool
}

func (l *kagomeLattice) BOSNode() Node {
	if l.destroyed || l.bos == nil {
		return nil
	}
	return l.bos
}

func (l *kagomeLattice) Destroy() {
	l.destroyed = true
	l.bos = nil
}

type kagomeNode struct {
	lattice *kagomeLattice
	next    *kagomeNode
	status  Status
	space   string
	surface string
	feature string
}

func (n *kagomeNode) Next() Node {
	if n.next == nil || n.lattice.destroyed {
		return nil
	}
	return n.next
}

func (n *kagomeNode) Status() Status {
	return n.status
}

func (n *kagomeNode) LeadingSpaceAndSurface() (string, string, error) {
	if n.lattice.destroyed {
		return "", "", ErrDestroyed
	}
	return n.space, n.surface, nil
}

func (n *kagomeNode) Feature() string {
	return n.feature
}
