package tools

import (
	"context"
	"fmt"
	"strconv"
)

type calculatorInput struct {
	A float64 `json:"a" jsonschema_description:"First number to add."`
	B float64 `json:"b" jsonschema_description:"Second number to add."`
}

// Calculator returns a sentence stating the sum of a and b.
func Calculator(a, b float64) string {
	return fmt.Sprintf("The sum of %s and %s is %s", formatNumber(a), formatNumber(b), formatNumber(a+b))
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func calculatorTool() Spec {
	return New("calculator", "Add two numbers and return a sentence stating their sum.",
		func(_ context.Context, in calculatorInput) (string, error) {
			return Calculator(in.A, in.B), nil
		})
}
