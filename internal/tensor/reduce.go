package tensor

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// MeanLast averages over the last axis, dropping it. A rank-1 input
// reduces to a rank-0 tensor holding a single value.
func MeanLast(t *Tensor) *Tensor {
	rank := t.Rank()
	width := t.Shape[rank-1]
	out := New(t.Shape[:rank-1]...)
	for r := range out.Data {
		out.Data[r] = stat.Mean(t.Data[r*width:(r+1)*width], nil)
	}
	return out
}

// MeanSpatial averages a rank-4 NHWC tensor over its height and width
// axes, producing an (N, C) tensor.
func MeanSpatial(t *Tensor) *Tensor {
	t.check4("MeanSpatial")
	n, h, w, c := t.Shape[0], t.Shape[1], t.Shape[2], t.Shape[3]
	out := New(n, c)
	area := float64(h * w)
	for b := 0; b < n; b++ {
		batch := t.Data[b*h*w*c : (b+1)*h*w*c]
		for i, v := range batch {
			out.Data[b*c+i%c] += v
		}
	}
	for i := range out.Data {
		out.Data[i] /= area
	}
	return out
}

// MaxSpatial takes the maximum of a rank-4 NHWC tensor over its height
// and width axes, producing an (N, C) tensor.
func MaxSpatial(t *Tensor) *Tensor {
	t.check4("MaxSpatial")
	n, h, w, c := t.Shape[0], t.Shape[1], t.Shape[2], t.Shape[3]
	out := Full(math.Inf(-1), n, c)
	for b := 0; b < n; b++ {
		batch := t.Data[b*h*w*c : (b+1)*h*w*c]
		for i, v := range batch {
			j := b*c + i%c
			if v > out.Data[j] {
				out.Data[j] = v
			}
		}
	}
	return out
}

// MeanPerSample averages every axis past the batch axis, producing a
// rank-1 tensor of length N. A rank-1 input is returned as a copy.
func MeanPerSample(t *Tensor) *Tensor {
	if t.Rank() == 0 {
		panic("tensor: MeanPerSample requires at least one dimension")
	}
	n := t.Shape[0]
	size := t.Len() / n
	out := New(n)
	for b := 0; b < n; b++ {
		out.Data[b] = stat.Mean(t.Data[b*size:(b+1)*size], nil)
	}
	return out
}

// StdPerSample computes the population standard deviation over every
// axis past the batch axis, producing a rank-1 tensor of length N.
func StdPerSample(t *Tensor) *Tensor {
	if t.Rank() == 0 {
		panic("tensor: StdPerSample requires at least one dimension")
	}
	n := t.Shape[0]
	size := t.Len() / n
	out := New(n)
	for b := 0; b < n; b++ {
		out.Data[b] = stat.PopStdDev(t.Data[b*size:(b+1)*size], nil)
	}
	return out
}
