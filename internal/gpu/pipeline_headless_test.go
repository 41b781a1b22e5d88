//go:build headless

package gpu

import (
	"testing"

	"github.com/gerberforge/engine/internal/sbuf"
)

func TestHeadlessPipelineAddLayerRejectsDuplicate(t *testing.T) {
	p, err := New(64, 64)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close()

	if err := p.AddLayer(1); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	if err := p.AddLayer(1); err == nil {
		t.Error("expected an error adding a duplicate layer id")
	}
}

func TestHeadlessPipelineUploadRequiresExistingLayer(t *testing.T) {
	p, _ := New(64, 64)
	defer p.Close()

	if err := p.Upload(5, sbuf.Sublayer{}); err == nil {
		t.Error("expected an error uploading to a layer that was never added")
	}
}

func TestHeadlessPipelineRenderSizesSnapshotToViewport(t *testing.T) {
	p, _ := New(32, 16)
	defer p.Close()

	snap, err := p.Render(nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if snap.Width != 32 || snap.Height != 16 {
		t.Errorf("snapshot dims = %dx%d, want 32x16", snap.Width, snap.Height)
	}
	if len(snap.Pixels) != 32*16*4 {
		t.Errorf("got %d pixel bytes, want %d", len(snap.Pixels), 32*16*4)
	}
}

func TestHeadlessPipelineResizeAffectsNextSnapshot(t *testing.T) {
	p, _ := New(32, 16)
	defer p.Close()

	if err := p.Resize(8, 8); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	snap, _ := p.Render(nil)
	if snap.Width != 8 || snap.Height != 8 {
		t.Errorf("snapshot dims = %dx%d, want 8x8", snap.Width, snap.Height)
	}
}

func TestHeadlessPipelineClearRemovesAllLayers(t *testing.T) {
	p, _ := New(16, 16)
	defer p.Close()
	p.AddLayer(1)
	p.AddLayer(2)
	p.Clear()
	if err := p.Upload(1, sbuf.Sublayer{}); err == nil {
		t.Error("expected Clear to remove layer 1")
	}
}
