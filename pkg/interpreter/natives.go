package interpreter

import (
	"time"

	"lux/interpreter-go/pkg/runtime"
)

// registerNatives populates the global frame with the built-in
// callables available to every program.
func registerNatives(globals *runtime.Environment) {
	globals.Define("clock", &runtime.NativeFunctionValue{
		Name:      "clock",
		NumParams: 0,
		Impl: func(args []runtime.Value) (runtime.Value, error) {
			seconds := float64(time.Now().UnixNano()) / float64(time.Second)
			return runtime.NumberValue{Val: seconds}, nil
		},
	})
}
