package grid_test

import (
	"fmt"

	"github.com/plus3/gridfx/grid"
	"github.com/plus3/gridfx/surface/record"
)

func ExampleField() {
	field := grid.NewField(grid.DefaultParams(), grid.NewSource(1))
	field.Resize(120, 80)

	for _, pt := range field.Points() {
		fmt.Printf("(%g, %g)\n", pt.OriginalX, pt.OriginalY)
	}

	canvas := record.NewCounting()
	field.Render(canvas)
	fmt.Println("circles:", canvas.Circles)

	// Output:
	// (0, 0)
	// (0, 40)
	// (40, 0)
	// (40, 40)
	// (80, 0)
	// (80, 40)
	// circles: 6
}

func ExampleLinkAlpha() {
	for _, d := range []float64{0, 40, 79, 80} {
		alpha, ok := grid.LinkAlpha(d, 80, 0.2)
		fmt.Printf("%g: %.4f %v\n", d, alpha, ok)
	}

	// Output:
	// 0: 0.0000 false
	// 40: 0.1000 true
	// 79: 0.0025 true
	// 80: 0.0000 false
}
