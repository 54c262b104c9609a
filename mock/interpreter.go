package mock

import (
	"context"

	"github.com/animalloo/animalloo"
)

var _ animalloo.Interpreter = (*Interpreter)(nil)

// Interpreter is a mock implementation of animalloo.Interpreter.
type Interpreter struct {
	InterpretFn func(ctx context.Context, query string) animalloo.SearchFilter
}

func (i *Interpreter) Interpret(ctx context.Context, query string) animalloo.SearchFilter {
	return i.InterpretFn(ctx, query)
}
