package expr_test

import (
	"fmt"

	"github.com/katalvlaran/lvlgrad/dmat"
	"github.com/katalvlaran/lvlgrad/expr"
	"github.com/katalvlaran/lvlgrad/sparsity"
)

// ExampleSubMatrix builds a block reference of a dense 4×4 symbol and
// evaluates it numerically over v[i][j] = 4*i + j.
func ExampleSubMatrix() {
	x := expr.MustSym("x", sparsity.NewDense(4, 4))
	y, _ := expr.SubMatrix(x, sparsity.Range(1, 3), sparsity.Range(0, 2))
	fmt.Println(y) // the expression renders its selectors

	vals := make([]float64, 16)
	for k := range vals {
		vals[k] = float64(k)
	}
	in, _ := dmat.NewFrom(x.Sparsity(), vals)
	out, _ := dmat.New[float64](y.Sparsity())
	_ = y.Node().EvalNum([]*dmat.Num{in}, []*dmat.Num{out}, nil)
	fmt.Println(out.Data())

	// Output:
	// x[1:3, 0:2]
	// [4 5 8 9]
}

// ExampleReshape relabels a 2×3 symbol as 3×2; the nonzero sequence is
// carried over positionally.
func ExampleReshape() {
	x := expr.MustSym("x", sparsity.NewDense(2, 3))
	y, _ := expr.Reshape(x, sparsity.NewDense(3, 2))
	fmt.Println(y)

	in, _ := dmat.NewFrom(x.Sparsity(), []float64{1, 2, 3, 4, 5, 6})
	out, _ := dmat.New[float64](y.Sparsity())
	_ = y.Node().EvalNum([]*dmat.Num{in}, []*dmat.Num{out}, nil)
	fmt.Println(out.Data())

	// Output:
	// reshape(x)
	// [1 2 3 4 5 6]
}
