package webopt

import (
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// EngineName identifies a minification engine
type EngineName string

const (
	// EnginePattern applies the regular-expression minifiers in minify.go.
	EnginePattern EngineName = "pattern"

	// EngineParser tokenizes the input with tdewolff/minify. Output differs
	// from the pattern engine and is usually smaller and safer.
	EngineParser EngineName = "parser"
)

// Engine minifies text of a given kind.
type Engine interface {
	Name() EngineName
	Minify(kind ContentKind, src string) (string, error)
}

// NewEngine returns the engine registered under name.
func NewEngine(name EngineName) (Engine, error) {
	switch name {
	case EnginePattern, "":
		return PatternEngine{}, nil
	case EngineParser:
		return NewParserEngine(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

// PatternEngine is the default engine. It never fails.
type PatternEngine struct{}

func (PatternEngine) Name() EngineName { return EnginePattern }

func (PatternEngine) Minify(kind ContentKind, src string) (string, error) {
	if fn := MinifierFor(kind); fn != nil {
		return fn(src), nil
	}
	return src, nil
}

var mediaTypes = map[ContentKind]string{
	KindMarkup:     "text/html",
	KindStylesheet: "text/css",
	KindScript:     "application/javascript",
}

// ParserEngine wraps a tdewolff minifier. It is safe for concurrent use.
type ParserEngine struct {
	m *minify.M
}

func NewParserEngine() *ParserEngine {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("application/javascript", js.Minify)
	m.AddFunc("text/javascript", js.Minify)
	return &ParserEngine{m: m}
}

func (*ParserEngine) Name() EngineName { return EngineParser }

func (e *ParserEngine) Minify(kind ContentKind, src string) (string, error) {
	mediatype, ok := mediaTypes[kind]
	if !ok {
		return src, nil
	}
	return e.m.String(mediatype, src)
}
