package registry

import (
	"github.com/tohch4/pinty/errors"
	"github.com/tohch4/pinty/unit"
)

// TransformFunc is a context bridging rule: it receives a value
// expressed in the base units of the source dimensionality and returns
// the equivalent value in the base units of the target dimensionality.
// For the spectroscopy bridge between frequency and energy this is the
// Planck relation E = h * f.
type TransformFunc func(baseValue float64) float64

// Context is a named set of bridging rules between pairs of
// dimensionalities. Rules are directional; add both directions when a
// bridge should work both ways. Contexts are cooperative: they add
// possibilities on top of ordinary dimensional conversion, never
// instead of it.
type Context struct {
	name  string
	rules map[string]TransformFunc // fromDim.Key() + "->" + toDim.Key()
}

// NewContext creates an empty context.
func NewContext(name string) *Context {
	return &Context{
		name:  name,
		rules: make(map[string]TransformFunc),
	}
}

// Name returns the context's name.
func (c *Context) Name() string {
	return c.name
}

// AddRule registers a bridging rule for one ordered pair of
// dimensionalities, replacing any previous rule for the same pair.
func (c *Context) AddRule(from, to unit.Dimensionality, fn TransformFunc) error {
	if fn == nil {
		return errors.WrapInvalid(errors.ErrNilContext, "Context", "AddRule", "validate transform")
	}
	c.rules[ruleKey(from.Key(), to.Key())] = fn
	return nil
}

func (c *Context) rule(fromKey, toKey string) (TransformFunc, bool) {
	fn, ok := c.rules[ruleKey(fromKey, toKey)]
	return fn, ok
}

func ruleKey(fromKey, toKey string) string {
	return fromKey + "->" + toKey
}

// ContextStack is an operation-local LIFO stack of contexts. It is not
// shared registry state: each logical operation carries its own stack
// (via UsingContexts), so one operation's pushed context can never leak
// into a concurrently executing conversion. The zero value is an empty,
// usable stack.
type ContextStack struct {
	contexts []*Context
}

// NewContextStack creates a stack with the given contexts pushed in
// order, so the last argument has the highest precedence.
func NewContextStack(contexts ...*Context) *ContextStack {
	s := &ContextStack{}
	for _, ctx := range contexts {
		if ctx != nil {
			s.contexts = append(s.contexts, ctx)
		}
	}
	return s
}

// Push adds a context on top of the stack.
func (s *ContextStack) Push(ctx *Context) error {
	if ctx == nil {
		return errors.WrapInvalid(errors.ErrNilContext, "ContextStack", "Push", "validate context")
	}
	s.contexts = append(s.contexts, ctx)
	return nil
}

// Pop removes and returns the most recently pushed context.
func (s *ContextStack) Pop() (*Context, error) {
	if len(s.contexts) == 0 {
		return nil, errors.WrapInvalid(errors.ErrEmptyStack, "ContextStack", "Pop", "pop context")
	}
	top := s.contexts[len(s.contexts)-1]
	s.contexts = s.contexts[:len(s.contexts)-1]
	return top, nil
}

// Len returns the number of pushed contexts.
func (s *ContextStack) Len() int {
	return len(s.contexts)
}

// WithContext runs body with ctx pushed, guaranteeing the pop even when
// the body fails, so an aborted conversion never leaves stale bridging
// rules active for later calls.
func (s *ContextStack) WithContext(ctx *Context, body func() error) error {
	if err := s.Push(ctx); err != nil {
		return err
	}
	defer func() {
		_, _ = s.Pop()
	}()
	return body()
}

// lookup finds the first matching rule, trying the most recently pushed
// context first.
func (s *ContextStack) lookup(fromKey, toKey string) (TransformFunc, bool) {
	for i := len(s.contexts) - 1; i >= 0; i-- {
		if fn, ok := s.contexts[i].rule(fromKey, toKey); ok {
			return fn, true
		}
	}
	return nil, false
}
