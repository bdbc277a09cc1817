package parser

// Observer receives an event whenever a named parser starts and finishes. It
// is the hook used for tracing and debugging a parse. Observers must not
// modify the input.
type Observer interface {
	// Enter is called when the parser described by info marks the input. ctx
	// describes the current position.
	Enter(info *Info, ctx Context)

	// Exit is called when the same parser completes. ctx describes the input
	// the parser covered.
	Exit(info *Info, ok bool, ctx Context)
}

// Observed wraps another Input and reports every Mark and Unmark to an
// Observer. Marks made with a nil Info are anonymous rewind points and are not
// reported. Everything else is passed straight through.
type Observed[T comparable, S any] struct {
	Input[T, S]
	obs Observer
}

// Observe wraps in so that obs sees every parser run against it.
func Observe[T comparable, S any](in Input[T, S], obs Observer) *Observed[T, S] {
	return &Observed[T, S]{Input: in, obs: obs}
}

// Mark reports the start of a parser and then marks the wrapped input.
func (o *Observed[T, S]) Mark(info *Info) Marker {
	if info != nil {
		o.obs.Enter(info, o.Input.Context(NoMarker))
	}
	return o.Input.Mark(info)
}

// Unmark reports the end of a parser and then unmarks the wrapped input.
func (o *Observed[T, S]) Unmark(info *Info, ok bool, m Marker) {
	if info != nil {
		o.obs.Exit(info, ok, o.Input.Context(m))
	}
	o.Input.Unmark(info, ok, m)
}

// Unwrap returns the wrapped input.
func (o *Observed[T, S]) Unwrap() Input[T, S] {
	return o.Input
}
