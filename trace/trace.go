// Package trace provides parser.Observer implementations for following a
// parse as it happens.
package trace

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/zostay/gordy/v2/parser"
)

// Tracer is a function that is use to log or report parser traces. This
// function signature was chosen because it is commonly available, such as
// fmt.Print or log.Println, etc.
type Tracer func(v ...any)

// Stage identifies which event a trace line reports.
type Stage int

// The stages of a traced parser.
const (
	StageTry Stage = iota
	StageGot
	StageFail
)

// String returns the three letter tag printed at the front of a trace line.
func (s Stage) String() string {
	switch s {
	case StageGot:
		return "GOT"
	case StageFail:
		return "ERR"
	default:
		return "TRY"
	}
}

func contextString(ctx parser.Context) string {
	if ctx == nil {
		return "?"
	}
	return ctx.String()
}

// funcObserver writes one line per event to a Tracer, indented by how deeply
// the parser is nested.
type funcObserver struct {
	trace Tracer
	depth int
}

// Func returns an Observer that reports every parser to t, one line per
// event:
//
//	TRY eat(offset 0)
//	GOT eat(offset 0..1)
func Func(t Tracer) parser.Observer {
	return &funcObserver{trace: t}
}

func (o *funcObserver) line(stage Stage, info *parser.Info, ctx parser.Context) {
	out := &strings.Builder{}
	fmt.Fprint(out, strings.Repeat("  ", o.depth))
	fmt.Fprint(out, stage, " ", info.Name)
	fmt.Fprint(out, "(", contextString(ctx), ")")
	o.trace(out.String())
}

// Enter reports a TRY line.
func (o *funcObserver) Enter(info *parser.Info, ctx parser.Context) {
	o.line(StageTry, info, ctx)
	o.depth++
}

// Exit reports a GOT or ERR line.
func (o *funcObserver) Exit(info *parser.Info, ok bool, ctx parser.Context) {
	if o.depth > 0 {
		o.depth--
	}

	stage := StageFail
	if ok {
		stage = StageGot
	}
	o.line(stage, info, ctx)
}

// zapObserver logs each event at debug level.
type zapObserver struct {
	log   *zap.Logger
	depth int
}

// Zap returns an Observer that logs every parser event to the given logger at
// debug level.
func Zap(log *zap.Logger) parser.Observer {
	return &zapObserver{log: log}
}

// Enter logs the start of a parser.
func (o *zapObserver) Enter(info *parser.Info, ctx parser.Context) {
	o.log.Debug("parser enter",
		zap.String("parser", info.Name),
		zap.String("context", contextString(ctx)),
		zap.Int("depth", o.depth),
	)
	o.depth++
}

// Exit logs the end of a parser and whether it matched.
func (o *zapObserver) Exit(info *parser.Info, ok bool, ctx parser.Context) {
	if o.depth > 0 {
		o.depth--
	}

	o.log.Debug("parser exit",
		zap.String("parser", info.Name),
		zap.Bool("ok", ok),
		zap.String("context", contextString(ctx)),
		zap.Int("depth", o.depth),
	)
}
