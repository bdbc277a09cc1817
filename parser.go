// Package gordy is a toolkit for writing recursive descent parsers by
// composing small parsers that consume tokens from a parser.Input.
//
// The parser package defines the Input protocol, the inputs that implement it,
// and the ParseError every parser fails with. The match package holds the
// primitives and combinators grammars are built from. Parse, here, is the
// entry point that runs a root parser over a whole input.
package gordy

import (
	"github.com/pkg/errors"

	"github.com/zostay/gordy/v2/match"
	"github.com/zostay/gordy/v2/parser"
	"github.com/zostay/gordy/v2/trace"
)

// config collects the settings made by Options.
type config struct {
	observers []parser.Observer
	partial   bool
}

// Option configures a call to Parse.
type Option func(*config)

// WithObserver reports every named parser run during the parse to obs. It may
// be given more than once.
func WithObserver(obs parser.Observer) Option {
	return func(c *config) {
		c.observers = append(c.observers, obs)
	}
}

// WithTracer reports every named parser run during the parse to t, one line
// per event, such as fmt.Println or log.Println.
func WithTracer(t trace.Tracer) Option {
	return WithObserver(trace.Func(t))
}

// Partial allows the root parser to succeed without consuming the whole input.
func Partial() Option {
	return func(c *config) {
		c.partial = true
	}
}

// errorer is implemented by inputs that can fail while reading, such as
// parser.File.
type errorer interface {
	Err() error
}

// Parse runs root over in and returns its value. Unless Partial is given, the
// parse fails if any input remains after root succeeds.
//
// A parse that fails because of the input returns a *parser.ParseError. If the
// input itself failed, such as a read error on a parser.File, that error is
// returned instead, wrapped.
func Parse[T comparable, S any, V any](
	in parser.Input[T, S],
	root parser.Func[T, S, V],
	opts ...Option,
) (V, error) {
	var zero V

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	run := in
	for _, obs := range cfg.observers {
		run = parser.Observe(run, obs)
	}

	v, err := root(run)
	if err == nil && !cfg.partial {
		err = match.EOF(run)
	}

	if e, ok := in.(errorer); ok && e.Err() != nil {
		return zero, errors.Wrap(e.Err(), "gordy: input failed")
	}

	if err != nil {
		return zero, err
	}
	return v, nil
}
