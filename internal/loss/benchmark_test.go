package loss

import (
	"testing"

	"github.com/dn0418/Deepfake-FaceSwap/internal/tensor"
)

func benchmarkPair(b *testing.B) (*tensor.Tensor, *tensor.Tensor) {
	b.Helper()
	return testImage(1, 64, 64, 3, 1), testImage(1, 64, 64, 3, 42)
}

func BenchmarkDSSIM(b *testing.B) {
	yTrue, yPred := benchmarkPair(b)
	dssim, err := NewDSSIM()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dssim.Call(yTrue, yPred); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMSSSIM(b *testing.B) {
	yTrue, yPred := benchmarkPair(b)
	msssim, err := NewMSSSIM(nil)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := msssim.Call(yTrue, yPred); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGradient(b *testing.B) {
	yTrue, yPred := benchmarkPair(b)
	gradient := NewGradient()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gradient.Call(yTrue, yPred); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGMSD(b *testing.B) {
	yTrue, yPred := benchmarkPair(b)
	gmsd := NewGMSD()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gmsd.Call(yTrue, yPred); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLossWrapper(b *testing.B) {
	yTrue, yPred := benchmarkPair(b)
	dssim, err := NewDSSIM()
	if err != nil {
		b.Fatal(err)
	}
	wrapper := NewLossWrapper()
	wrapper.AddLoss(dssim, 1.0, -1, FixedShape())
	wrapper.AddLoss(NewGradient(), 1.0, -1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := wrapper.Call(yTrue, yPred); err != nil {
			b.Fatal(err)
		}
	}
}
