package geom_test

import (
	"fmt"

	"github.com/jthierer/bubblepack/pkg/geom"
)

func ExamplePack() {
	// Radii are expected largest-first; the packer does not sort.
	positions, err := geom.Pack([]float64{10, 10})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for i, p := range positions {
		fmt.Printf("circle %d: (%.1f, %.1f)\n", i, p.X, p.Y)
	}
	// Output:
	// circle 0: (0.0, 0.0)
	// circle 1: (20.0, 0.0)
}

func ExamplePackDetailed() {
	packing, err := geom.PackDetailed([]float64{8, 6, 4})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("positions:", len(packing.Positions))
	fmt.Println("fallbacks:", packing.Fallbacks)
	fmt.Println("last resorts:", packing.LastResorts)
	// Output:
	// positions: 3
	// fallbacks: 0
	// last resorts: 0
}
