package graph_test

import (
	"fmt"

	"github.com/matzehuels/gracetower/pkg/graph"
)

func ExampleNormalize() {
	g := graph.Normalize([]graph.Pair{
		{U: 20, V: 10},
		{U: 10, V: 20}, // duplicate in the other orientation
		{U: 20, V: 20}, // self-loop
		{U: 20, V: 35},
	})

	fmt.Println(g)
	fmt.Println(g.Edges())
	fmt.Println(g.OriginalID(1), g.OriginalID(3))
	// Output:
	// graph(3 vertices, 2 edges)
	// [{1 2} {2 3}]
	// 10 35
}
