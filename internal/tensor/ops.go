package tensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// checkMatch panics unless a and b share a shape.
func checkMatch(op string, a, b *Tensor) {
	if !a.SameShape(b) {
		panic(fmt.Sprintf("tensor: %s shape mismatch %v vs %v", op, a.Shape, b.Shape))
	}
}

// Add returns a + b elementwise.
func Add(a, b *Tensor) *Tensor {
	checkMatch("Add", a, b)
	out := New(a.Shape...)
	floats.AddTo(out.Data, a.Data, b.Data)
	return out
}

// Sub returns a - b elementwise.
func Sub(a, b *Tensor) *Tensor {
	checkMatch("Sub", a, b)
	out := New(a.Shape...)
	floats.SubTo(out.Data, a.Data, b.Data)
	return out
}

// Mul returns a * b elementwise.
func Mul(a, b *Tensor) *Tensor {
	checkMatch("Mul", a, b)
	out := New(a.Shape...)
	floats.MulTo(out.Data, a.Data, b.Data)
	return out
}

// Div returns a / b elementwise.
func Div(a, b *Tensor) *Tensor {
	checkMatch("Div", a, b)
	out := New(a.Shape...)
	floats.DivTo(out.Data, a.Data, b.Data)
	return out
}

// Square returns t * t elementwise.
func Square(t *Tensor) *Tensor {
	return Mul(t, t)
}

// Abs returns |t| elementwise.
func Abs(t *Tensor) *Tensor {
	out := New(t.Shape...)
	for i, v := range t.Data {
		out.Data[i] = math.Abs(v)
	}
	return out
}

// Scale returns t * s elementwise.
func Scale(t *Tensor, s float64) *Tensor {
	out := t.Clone()
	floats.Scale(s, out.Data)
	return out
}

// AddScalar returns t + s elementwise.
func AddScalar(t *Tensor, s float64) *Tensor {
	out := t.Clone()
	floats.AddConst(s, out.Data)
	return out
}

// PowScalar returns t^p elementwise.
func PowScalar(t *Tensor, p float64) *Tensor {
	out := New(t.Shape...)
	for i, v := range t.Data {
		out.Data[i] = math.Pow(v, p)
	}
	return out
}

// ReLU returns max(t, 0) elementwise.
func ReLU(t *Tensor) *Tensor {
	out := New(t.Shape...)
	for i, v := range t.Data {
		if v > 0 {
			out.Data[i] = v
		}
	}
	return out
}

// ConcatLast concatenates tensors along the last axis. All inputs must
// agree on every leading dimension.
func ConcatLast(ts ...*Tensor) *Tensor {
	if len(ts) == 0 {
		panic("tensor: ConcatLast requires at least one tensor")
	}
	first := ts[0]
	rank := first.Rank()
	lastTotal := 0
	rows := first.Len() / first.Shape[rank-1]
	for _, t := range ts {
		if t.Rank() != rank {
			panic(fmt.Sprintf("tensor: ConcatLast rank mismatch %v vs %v", first.Shape, t.Shape))
		}
		for i := 0; i < rank-1; i++ {
			if t.Shape[i] != first.Shape[i] {
				panic(fmt.Sprintf("tensor: ConcatLast shape mismatch %v vs %v", first.Shape, t.Shape))
			}
		}
		lastTotal += t.Shape[rank-1]
	}

	outShape := append([]int(nil), first.Shape...)
	outShape[rank-1] = lastTotal
	out := New(outShape...)

	offset := 0
	for _, t := range ts {
		width := t.Shape[rank-1]
		for r := 0; r < rows; r++ {
			copy(out.Data[r*lastTotal+offset:r*lastTotal+offset+width], t.Data[r*width:(r+1)*width])
		}
		offset += width
	}
	return out
}

// SliceChannels returns channels [from, to) of a rank-4 NHWC tensor.
func SliceChannels(t *Tensor, from, to int) *Tensor {
	t.check4("SliceChannels")
	c := t.Shape[3]
	if from < 0 || to > c || from >= to {
		panic(fmt.Sprintf("tensor: SliceChannels [%d, %d) out of range for %d channels", from, to, c))
	}
	width := to - from
	out := New(t.Shape[0], t.Shape[1], t.Shape[2], width)
	rows := t.Len() / c
	for r := 0; r < rows; r++ {
		copy(out.Data[r*width:(r+1)*width], t.Data[r*c+from:r*c+to])
	}
	return out
}

// RepeatChannel repeats a single-channel rank-4 tensor to the given
// channel count.
func RepeatChannel(t *Tensor, channels int) *Tensor {
	t.check4("RepeatChannel")
	if t.Shape[3] != 1 {
		panic(fmt.Sprintf("tensor: RepeatChannel requires one channel, got %d", t.Shape[3]))
	}
	out := New(t.Shape[0], t.Shape[1], t.Shape[2], channels)
	for i, v := range t.Data {
		base := i * channels
		for c := 0; c < channels; c++ {
			out.Data[base+c] = v
		}
	}
	return out
}
