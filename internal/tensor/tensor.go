// Package tensor provides dense multi-dimensional float64 arrays and the
// primitive operations the perceptual loss functions are built from.
//
// Image batches use channels-last NHWC layout: (batch, height, width,
// channels), stored row-major in one contiguous slice. All operations
// return new tensors; inputs are never modified.
package tensor

import (
	"fmt"
)

// Tensor is a dense row-major array of float64 values.
// Shape holds the dimension sizes; Data holds prod(Shape) values.
type Tensor struct {
	Shape []int
	Data  []float64
}

// New creates a zero-filled tensor with the given shape.
func New(shape ...int) *Tensor {
	return &Tensor{
		Shape: append([]int(nil), shape...),
		Data:  make([]float64, numElements(shape)),
	}
}

// NewFrom wraps an existing slice in a tensor with the given shape.
// The slice is used directly, not copied.
func NewFrom(data []float64, shape ...int) *Tensor {
	if len(data) != numElements(shape) {
		panic(fmt.Sprintf("tensor: data length %d does not match shape %v", len(data), shape))
	}
	return &Tensor{
		Shape: append([]int(nil), shape...),
		Data:  data,
	}
}

// Full creates a tensor with every element set to value.
func Full(value float64, shape ...int) *Tensor {
	t := New(shape...)
	for i := range t.Data {
		t.Data[i] = value
	}
	return t
}

func numElements(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return len(t.Shape)
}

// Len returns the total number of elements.
func (t *Tensor) Len() int {
	return len(t.Data)
}

// Dim returns the size of dimension i.
func (t *Tensor) Dim(i int) int {
	return t.Shape[i]
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	c := New(t.Shape...)
	copy(c.Data, t.Data)
	return c
}

// SameShape reports whether t and o have identical shapes.
func (t *Tensor) SameShape(o *Tensor) bool {
	if len(t.Shape) != len(o.Shape) {
		return false
	}
	for i, d := range t.Shape {
		if o.Shape[i] != d {
			return false
		}
	}
	return true
}

// Reshape returns a view of the tensor with a new shape. The element
// count must be unchanged. The returned tensor shares t's data.
func (t *Tensor) Reshape(shape ...int) *Tensor {
	if numElements(shape) != len(t.Data) {
		panic(fmt.Sprintf("tensor: cannot reshape %v to %v", t.Shape, shape))
	}
	return &Tensor{
		Shape: append([]int(nil), shape...),
		Data:  t.Data,
	}
}

// At4 returns the element at (n, h, w, c) of a rank-4 NHWC tensor.
func (t *Tensor) At4(n, h, w, c int) float64 {
	return t.Data[t.index4(n, h, w, c)]
}

// Set4 assigns the element at (n, h, w, c) of a rank-4 NHWC tensor.
func (t *Tensor) Set4(n, h, w, c int, v float64) {
	t.Data[t.index4(n, h, w, c)] = v
}

func (t *Tensor) index4(n, h, w, c int) int {
	return ((n*t.Shape[1]+h)*t.Shape[2]+w)*t.Shape[3] + c
}

// check4 panics unless t is a rank-4 tensor.
func (t *Tensor) check4(op string) {
	if len(t.Shape) != 4 {
		panic(fmt.Sprintf("tensor: %s requires a rank-4 NHWC tensor, got shape %v", op, t.Shape))
	}
}
