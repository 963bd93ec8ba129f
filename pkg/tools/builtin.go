package tools

// Builtins returns the built-in tools in registration order.
func Builtins() []Spec {
	return []Spec{
		calculatorTool(),
		sayHelloTool(),
	}
}

// NewBuiltinRegistry builds a registry holding the built-in tools.
func NewBuiltinRegistry(ctx Context) (*Registry, error) {
	return NewRegistry(ctx, Builtins()...)
}
