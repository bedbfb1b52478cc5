// Package align annotates detected faces with predicted landmark
// points. The pose-prediction model itself is an external collaborator
// supplied through the PosePredictor interface; this package is only
// the thin per-item transform that feeds images through it.
package align

import (
	"fmt"
	"log/slog"

	"github.com/dn0418/Deepfake-FaceSwap/internal/tensor"
)

// Point is a 2-D landmark coordinate in image pixels.
type Point struct {
	X int
	Y int
}

// Box is a detected face region in image pixels.
type Box struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Face is a detected face region together with its predicted landmark
// points, in the predictor's fixed point order.
type Face struct {
	Box       Box
	Landmarks []Point
}

// PosePredictor predicts the ordered landmark points for one face
// region of an image. Implementations wrap whatever pose model the
// host application loads.
type PosePredictor interface {
	Predict(image *tensor.Tensor, box Box) ([]Point, error)
}

// Item is one unit of work: an image with its detected faces. Err
// carries an upstream failure through the pipeline.
type Item struct {
	Image *tensor.Tensor
	Faces []Face
	Err   error
}

// Aligner is the landmark alignment worker.
type Aligner struct {
	model PosePredictor
}

// NewAligner creates an aligner around the given pose predictor.
func NewAligner(model PosePredictor) *Aligner {
	return &Aligner{model: model}
}

// Run consumes items from in until it is closed, annotates each item's
// faces with landmarks, and forwards them to out. An item carrying an
// upstream error is forwarded unmodified and stops the worker. out is
// closed on return.
func (a *Aligner) Run(in <-chan Item, out chan<- Item) {
	defer close(out)
	for item := range in {
		if item.Err != nil {
			out <- item
			return
		}
		faces, err := a.ProcessLandmarks(item.Image, item.Faces)
		if err != nil {
			item.Err = err
			out <- item
			return
		}
		item.Faces = faces
		out <- item
	}
	slog.Debug("aligner finished")
}

// ProcessLandmarks predicts landmarks for every detected face of one
// image, returning the annotated faces.
func (a *Aligner) ProcessLandmarks(image *tensor.Tensor, faces []Face) ([]Face, error) {
	annotated := make([]Face, 0, len(faces))
	for _, face := range faces {
		points, err := a.model.Predict(image, face.Box)
		if err != nil {
			return nil, fmt.Errorf("align: predict landmarks for %+v: %w", face.Box, err)
		}
		face.Landmarks = points
		annotated = append(annotated, face)
	}
	return annotated, nil
}
