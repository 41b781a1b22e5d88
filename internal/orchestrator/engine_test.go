//go:build headless

package orchestrator

import "testing"

const sampleGerber = `%FSLAX24Y24*%%MOMM*%%ADD10C,0.5*%D10*X0Y0D03*M02*`

func TestInitReturnsAReadyEngine(t *testing.T) {
	e, err := Init(64, 64)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer e.Close()
}

func TestAddLayerReturnsIncrementingIDs(t *testing.T) {
	e, _ := Init(64, 64)
	defer e.Close()

	r1, err := e.AddLayer(sampleGerber)
	if err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	r2, err := e.AddLayer(sampleGerber)
	if err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	if r1.LayerID == 0 || r2.LayerID == 0 || r1.LayerID == r2.LayerID {
		t.Errorf("got ids %d, %d, want two distinct nonzero ids", r1.LayerID, r2.LayerID)
	}
}

func TestRemoveLayerUnknownIDIsError(t *testing.T) {
	e, _ := Init(64, 64)
	defer e.Close()

	if err := e.RemoveLayer(999); err == nil {
		t.Error("expected an error removing an id that was never added")
	}
}

func TestRemoveLayerThenGetBoundaryExcludesIt(t *testing.T) {
	e, _ := Init(64, 64)
	defer e.Close()

	r, _ := e.AddLayer(sampleGerber)
	if err := e.RemoveLayer(r.LayerID); err != nil {
		t.Fatalf("RemoveLayer: %v", err)
	}
	b := e.GetBoundary()
	if b.MinX != 0 || b.MaxX != 0 {
		t.Errorf("boundary = %+v, want the zero box after removing the only layer", b)
	}
}

func TestClearRemovesEveryLayer(t *testing.T) {
	e, _ := Init(64, 64)
	defer e.Close()

	e.AddLayer(sampleGerber)
	e.AddLayer(sampleGerber)
	e.Clear()
	if len(e.LayerOrder()) != 0 {
		t.Errorf("got %d layers after Clear, want 0", len(e.LayerOrder()))
	}
}

func TestGetBoundaryUnionsAcrossLayers(t *testing.T) {
	e, _ := Init(64, 64)
	defer e.Close()

	const a = `%FSLAX24Y24*%%MOMM*%%ADD10C,0.2*%D10*X0Y0D03*M02*`
	const b = `%FSLAX24Y24*%%MOMM*%%ADD10C,0.2*%D10*X500000Y500000D03*M02*`
	e.AddLayer(a)
	e.AddLayer(b)

	boundary := e.GetBoundary()
	if !closeEnough(boundary.MaxX, 50.1, 1e-6) {
		t.Errorf("boundary.MaxX = %v, want ~50.1", boundary.MaxX)
	}
}

func closeEnough(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func TestRenderRejectsMismatchedRGBLength(t *testing.T) {
	e, _ := Init(64, 64)
	defer e.Close()

	r, _ := e.AddLayer(sampleGerber)
	_, err := e.Render([]uint32{r.LayerID}, []float32{1, 1}, 1, 0, 0, 1)
	if err == nil {
		t.Error("expected an error when rgb_flat isn't 3 floats per layer id")
	}
}

func TestRenderRejectsUnknownLayerID(t *testing.T) {
	e, _ := Init(64, 64)
	defer e.Close()

	_, err := e.Render([]uint32{42}, []float32{1, 1, 1}, 1, 0, 0, 1)
	if err == nil {
		t.Error("expected an error rendering an id that was never added")
	}
}

func TestRenderProducesASnapshotSizedToTheCanvas(t *testing.T) {
	e, _ := Init(32, 16)
	defer e.Close()

	r, _ := e.AddLayer(sampleGerber)
	snap, err := e.Render([]uint32{r.LayerID}, []float32{1, 1, 1}, 1, 0, 0, 1)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if snap.Width != 32 || snap.Height != 16 {
		t.Errorf("snapshot = %dx%d, want 32x16", snap.Width, snap.Height)
	}
}

func TestResizeChangesSubsequentRenderDimensions(t *testing.T) {
	e, _ := Init(32, 16)
	defer e.Close()

	r, _ := e.AddLayer(sampleGerber)
	if err := e.Resize(8, 8); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	snap, _ := e.Render([]uint32{r.LayerID}, []float32{1, 1, 1}, 1, 0, 0, 1)
	if snap.Width != 8 || snap.Height != 8 {
		t.Errorf("snapshot = %dx%d, want 8x8", snap.Width, snap.Height)
	}
}

func TestAddODBPPLayerFeedsTheSameBoundaryPipeline(t *testing.T) {
	e, _ := Init(64, 64)
	defer e.Close()

	const symbols = "$0 r1.0\n"
	const features = "P 5 5 0 0 0 $0 0\n"
	r, err := e.AddODBPPLayer(symbols, features)
	if err != nil {
		t.Fatalf("AddODBPPLayer: %v", err)
	}
	if len(r.Errors) != 0 {
		t.Errorf("unexpected soft errors: %v", r.Errors)
	}
	b := e.GetBoundary()
	if !closeEnough(b.MaxX, 5.5, 1e-9) {
		t.Errorf("boundary.MaxX = %v, want 5.5", b.MaxX)
	}
}
