package coerce

import (
	"fmt"
	"log/slog"

	"github.com/kindling-dev/kindling/pkg/hint"
	"github.com/kindling-dev/kindling/pkg/literal"
)

type Config struct {
	// MaxDepth bounds both literal nesting and coercion recursion.
	// Zero means literal.DefaultMaxDepth.
	MaxDepth int
}

func (c *Config) Validate(logger *slog.Logger) error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative: %d", c.MaxDepth)
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = literal.DefaultMaxDepth
	}
	return nil
}

// ConstructorFunc builds a value of a registered target type from a single
// leaf literal (Str, Int, Bytes, or Raw). Returning an error rejects the
// argument.
type ConstructorFunc func(v literal.Value) (any, error)

// Engine converts intermediate literal values into typed values according
// to a declared hint. Engines are safe for concurrent use once all
// constructors are registered.
type Engine struct {
	logger *slog.Logger
	Config Config

	ctors map[string]ConstructorFunc
}

func New(logger *slog.Logger, config Config) (*Engine, error) {
	err := config.Validate(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to validate engine config: %w", err)
	}

	return &Engine{
		logger: logger,
		Config: config,
		ctors:  make(map[string]ConstructorFunc),
	}, nil
}

// Register attaches a constructor function for a single-argument
// constructible target type name.
func (e *Engine) Register(name string, fn ConstructorFunc) {
	e.ctors[name] = fn
}

// Convert parses a raw token and coerces the result against h.
func (e *Engine) Convert(token string, h hint.Hint) (any, error) {
	v := literal.ParseDepth(token, e.Config.MaxDepth)

	out, err := e.Coerce(v, h)
	if err != nil {
		e.logger.Debug("conversion failed",
			slog.String("token", token),
			slog.String("hint", h.String()),
			slog.Any("error", err))
		return nil, err
	}

	return out, nil
}

// Coerce walks an intermediate value and a hint together, producing the
// typed value or the first failure. It never partially applies: either the
// whole value converts or an error is returned.
func (e *Engine) Coerce(v literal.Value, h hint.Hint) (any, error) {
	return e.coerce(v, h, 0)
}
