package loss

import (
	"errors"
	"testing"

	"github.com/dn0418/Deepfake-FaceSwap/internal/tensor"
)

func TestLInfNormSinglePixelDeviation(t *testing.T) {
	// Two 1x4x4x1 tensors equal everywhere except one pixel with
	// |diff| = 0.2: the loss is exactly 0.2.
	yTrue := tensor.Full(0.5, 1, 4, 4, 1)
	yPred := yTrue.Clone()
	yPred.Set4(0, 2, 1, 0, 0.7)

	got, err := NewLInfNorm().Call(yTrue, yPred)
	if err != nil {
		t.Fatal(err)
	}
	if !float64Near(got.Data[0], 0.2, 1e-12) {
		t.Errorf("LInf = %v, want 0.2", got.Data[0])
	}
}

func TestLInfNormIdenticalImagesIsZero(t *testing.T) {
	img := testImage(3, 8, 8, 3, 1)
	got, err := NewLInfNorm().Call(img, img)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range got.Data {
		if v != 0 {
			t.Errorf("sample %d: LInf = %v, want 0", i, v)
		}
	}
}

func TestLInfNormAveragesChannelMaxima(t *testing.T) {
	// Channel 0 peaks at |diff| 0.2, channel 1 at 0.4: mean 0.3.
	yTrue := tensor.New(1, 2, 2, 2)
	yPred := tensor.New(1, 2, 2, 2)
	yPred.Set4(0, 0, 0, 0, 0.2)
	yPred.Set4(0, 1, 1, 1, -0.4)

	got, err := NewLInfNorm().Call(yTrue, yPred)
	if err != nil {
		t.Fatal(err)
	}
	if !float64Near(got.Data[0], 0.3, 1e-12) {
		t.Errorf("LInf = %v, want 0.3", got.Data[0])
	}
}

func TestLInfNormPerSample(t *testing.T) {
	yTrue := tensor.New(2, 2, 2, 1)
	yPred := tensor.New(2, 2, 2, 1)
	yPred.Set4(0, 0, 0, 0, 0.1)
	yPred.Set4(1, 1, 1, 0, 0.5)

	got, err := NewLInfNorm().Call(yTrue, yPred)
	if err != nil {
		t.Fatal(err)
	}
	if !float64Near(got.Data[0], 0.1, 1e-12) || !float64Near(got.Data[1], 0.5, 1e-12) {
		t.Errorf("LInf per sample = %v, want [0.1 0.5]", got.Data)
	}
}

func TestLInfNormShapeMismatch(t *testing.T) {
	_, err := NewLInfNorm().Call(tensor.New(1, 4, 4, 1), tensor.New(1, 4, 4, 3))
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("error = %v, want ErrShapeMismatch", err)
	}
}
