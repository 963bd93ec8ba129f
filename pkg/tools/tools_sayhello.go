package tools

import "context"

type sayHelloInput struct {
	Name string `json:"name" jsonschema_description:"Name of the person to greet."`
}

// SayHello greets name. Empty names are used verbatim.
func SayHello(name string) string {
	return "Hello " + name + ", i hope you are well today."
}

func sayHelloTool() Spec {
	return New("say_hello", "Greet a person by name.",
		func(_ context.Context, in sayHelloInput) (string, error) {
			return SayHello(in.Name), nil
		})
}
