package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/costela/goconic"
	"github.com/costela/goconic/simplex"
	"gonum.org/v1/gonum/mat"
)

func main() {
	logger := log.New(os.Stderr, "goconic: ", log.LstdFlags)

	// Maximize: x + 2y
	// Subject to: x + y <= 4, x - y >= -2, 0 <= x <= 3, y >= 0
	model, err := goconic.NewModel(simplex.NewSolver(simplex.WithLogger(logger)), goconic.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	err = model.LoadLinear(&goconic.LinearProblem{
		Objective: []float64{1, 2},
		Matrix: mat.NewDense(2, 2, []float64{
			1, 1,
			1, -1,
		}),
		ColLower: []float64{0, 0},
		ColUpper: []float64{3, math.Inf(1)},
		RowLower: []float64{math.Inf(-1), -2},
		RowUpper: []float64{4, math.Inf(1)},
		Sense:    goconic.Maximize,
	})
	if err != nil {
		log.Fatal(err)
	}

	res, err := model.Solve()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("status: %s\n", res.Status())
	if res.Status() == goconic.Optimal {
		fmt.Printf("x = %.2f, y = %.2f\n", res.Value(0), res.Value(1))
		fmt.Printf("objective = %.2f\n", res.ObjectiveValue())
	}
}
