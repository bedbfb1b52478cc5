package faceswap

import (
	"testing"
)

func TestFacadeLossChain(t *testing.T) {
	dssim, err := DSSIM()
	if err != nil {
		t.Fatal(err)
	}

	wrapper := NewLossWrapper()
	wrapper.AddLoss(dssim, 1.0, -1, FixedShape())
	wrapper.AddLoss(Gradient(), 1.0, -1)

	img := NewTensor(1, 16, 16, 3)
	for i := range img.Data {
		img.Data[i] = 0.5
	}

	total, err := wrapper.Call(img, img)
	if err != nil {
		t.Fatal(err)
	}
	if total.Data[0] != 0 {
		t.Errorf("self-similarity loss = %v, want 0", total.Data[0])
	}
}
