package tensor

import (
	"testing"
)

func TestReflectPadTrailingEdge(t *testing.T) {
	// 1x3x3x1 image:
	//   1 2 3
	//   4 5 6
	//   7 8 9
	img := NewFrom([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, 1, 3, 3, 1)

	got := ReflectPad2D(img, 0, 1, 0, 1)
	// Mirroring excludes the border: appended column repeats column 1,
	// appended row repeats row 1.
	want := []float64{
		1, 2, 3, 2,
		4, 5, 6, 5,
		7, 8, 9, 8,
		4, 5, 6, 5,
	}
	if got.Shape[1] != 4 || got.Shape[2] != 4 {
		t.Fatalf("padded shape = %v, want [1 4 4 1]", got.Shape)
	}
	for i, v := range want {
		if got.Data[i] != v {
			t.Errorf("Data[%d] = %v, want %v", i, got.Data[i], v)
		}
	}
}

func TestReflectPadAllEdges(t *testing.T) {
	// 1x3x3x1 image padded by 2 on every edge, as GMSD does before its
	// 5x5 filter.
	img := NewFrom([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, 1, 3, 3, 1)
	got := ReflectPad2D(img, 2, 2, 2, 2)

	if got.Shape[1] != 7 || got.Shape[2] != 7 {
		t.Fatalf("padded shape = %v, want [1 7 7 1]", got.Shape)
	}
	// Row 0 mirrors input row 2 (7 8 9), itself mirrored horizontally.
	wantRow0 := []float64{9, 8, 7, 8, 9, 8, 7}
	for i, v := range wantRow0 {
		if got.Data[i] != v {
			t.Errorf("row 0 col %d = %v, want %v", i, got.Data[i], v)
		}
	}
	// Center row 3 is input row 1.
	wantRow3 := []float64{6, 5, 4, 5, 6, 5, 4}
	for i, v := range wantRow3 {
		if got.Data[3*7+i] != v {
			t.Errorf("row 3 col %d = %v, want %v", i, got.Data[3*7+i], v)
		}
	}
}

func TestReflectPadTooLargePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("padding >= dimension should panic")
		}
	}()
	ReflectPad2D(New(1, 2, 2, 1), 2, 0, 0, 0)
}

func TestAvgPool2x2(t *testing.T) {
	// 1x4x4x1 image counting 1..16; each 2x2 window averages its four
	// members.
	data := make([]float64, 16)
	for i := range data {
		data[i] = float64(i + 1)
	}
	img := NewFrom(data, 1, 4, 4, 1)

	got := AvgPool2D(img, 2, 2)
	want := []float64{3.5, 5.5, 11.5, 13.5}
	if got.Shape[1] != 2 || got.Shape[2] != 2 {
		t.Fatalf("pooled shape = %v, want [1 2 2 1]", got.Shape)
	}
	for i, v := range want {
		if !float64Near(got.Data[i], v, 1e-12) {
			t.Errorf("Data[%d] = %v, want %v", i, got.Data[i], v)
		}
	}
}

func TestAvgPoolKeepsChannelsSeparate(t *testing.T) {
	// Two channels with different constants must stay unmixed.
	img := New(1, 2, 2, 2)
	for i := 0; i < 4; i++ {
		img.Data[i*2] = 1
		img.Data[i*2+1] = 5
	}
	got := AvgPool2D(img, 2, 2)
	if got.Data[0] != 1 || got.Data[1] != 5 {
		t.Errorf("pooled pixel = (%v, %v), want (1, 5)", got.Data[0], got.Data[1])
	}
}

func TestAvgPoolValidPaddingDropsRemainder(t *testing.T) {
	// 5x5 input with 2x2 stride-2 pooling covers only the even 4x4
	// region.
	img := Full(1, 1, 5, 5, 1)
	got := AvgPool2D(img, 2, 2)
	if got.Shape[1] != 2 || got.Shape[2] != 2 {
		t.Errorf("pooled shape = %v, want [1 2 2 1]", got.Shape)
	}
}
