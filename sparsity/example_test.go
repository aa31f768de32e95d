// Package sparsity_test holds runnable examples for the sparsity package.
package sparsity_test

import (
	"fmt"

	"github.com/katalvlaran/lvlgrad/sparsity"
)

// ExamplePattern_Sub restricts a dense 4×4 pattern to the block of rows
// [1,3) and columns [0,2) and shows the gather map back into the parent.
func ExamplePattern_Sub() {
	p := sparsity.NewDense(4, 4)

	sub, gather, err := p.Sub(sparsity.Range(1, 3), sparsity.Range(0, 2))
	if err != nil {
		fmt.Println("sub:", err)
		return
	}

	fmt.Printf("block %d×%d, nnz=%d\n", sub.Rows(), sub.Cols(), sub.NNZ())
	fmt.Println("gather:", gather)
	// Output:
	// block 2×2, nnz=4
	// gather: [4 5 8 9]
}

// ExampleSlice_Indices resolves a strided selector against an axis.
func ExampleSlice_Indices() {
	s, _ := sparsity.NewSlice(0, 6, 2)

	idx, _ := s.Indices(6)
	fmt.Println(idx)
	// Output:
	// [0 2 4]
}
