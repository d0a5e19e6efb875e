package testutils

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

var binaryOperators = []string{"/\\", "and", "\\/", "or", "->", "<->", "xor"}

// GenerateProgram returns the source of a random program over variables x1..x<variables> with the given number of constraints.
// Constraints mix every operator and both constants; cardinality is left out.
func GenerateProgram(random *rand.Rand, variables, constraints, depth int) string {
	names := make([]string, variables)
	for i := range names {
		names[i] = fmt.Sprintf("x%d", i+1)
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "var bool: %s;\n", strings.Join(names, ", "))
	for range constraints {
		fmt.Fprintf(&builder, "constraint %s;\n", generateExpr(random, names, depth))
	}
	builder.WriteString("solve satisfy;\n")
	return builder.String()
}

func generateExpr(random *rand.Rand, names []string, depth int) string {
	if depth == 0 || random.IntN(4) == 0 {
		switch random.IntN(12) {
		case 0:
			return "true"
		case 1:
			return "false"
		}
		return names[random.IntN(len(names))]
	}

	switch random.IntN(5) {
	case 0:
		return fmt.Sprintf("not (%s)", generateExpr(random, names, depth-1))
	case 1:
		return fmt.Sprintf("xor(%s, %s)", generateExpr(random, names, depth-1), generateExpr(random, names, depth-1))
	}
	operator := binaryOperators[random.IntN(len(binaryOperators))]
	return fmt.Sprintf("(%s %s %s)", generateExpr(random, names, depth-1), operator, generateExpr(random, names, depth-1))
}
