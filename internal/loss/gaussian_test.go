package loss

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestGaussianKernelUnitSum(t *testing.T) {
	for _, size := range []int{1, 3, 5, 11} {
		kernel, err := GaussianKernel(size, 1.5)
		if err != nil {
			t.Fatalf("GaussianKernel(%d, 1.5) error: %v", size, err)
		}
		wantShape := []int{size, size, 1, 1}
		for i, d := range wantShape {
			if kernel.Shape[i] != d {
				t.Fatalf("size %d: shape = %v, want %v", size, kernel.Shape, wantShape)
			}
		}
		if sum := floats.Sum(kernel.Data); !float64Near(sum, 1, 1e-12) {
			t.Errorf("size %d: kernel sum = %v, want 1", size, sum)
		}
	}
}

func TestGaussianKernelSymmetricWithCenterPeak(t *testing.T) {
	kernel, err := GaussianKernel(5, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	at := func(r, c int) float64 { return kernel.Data[r*5+c] }

	center := at(2, 2)
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			if at(r, c) > center {
				t.Errorf("kernel[%d][%d] = %v exceeds center %v", r, c, at(r, c), center)
			}
			if !float64Near(at(r, c), at(4-r, 4-c), 1e-12) {
				t.Errorf("kernel not symmetric at (%d, %d)", r, c)
			}
			if !float64Near(at(r, c), at(c, r), 1e-12) {
				t.Errorf("kernel not transpose-symmetric at (%d, %d)", r, c)
			}
		}
	}
}

func TestGaussianKernelSizeOne(t *testing.T) {
	kernel, err := GaussianKernel(1, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(kernel.Data) != 1 || !float64Near(kernel.Data[0], 1, 1e-12) {
		t.Errorf("1x1 kernel = %v, want [1]", kernel.Data)
	}
}

func TestGaussianKernelRejectsBadParameters(t *testing.T) {
	tests := []struct {
		size  int
		sigma float64
	}{
		{0, 1.5},
		{-3, 1.5},
		{5, 0},
		{5, -1},
	}
	for _, tt := range tests {
		_, err := GaussianKernel(tt.size, tt.sigma)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("GaussianKernel(%d, %v) error = %v, want ErrInvalidParameter", tt.size, tt.sigma, err)
		}
	}
}
