package plot_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/meenmo/yieldcurve/curve"
	"github.com/meenmo/yieldcurve/marketdata/fred"
	"github.com/meenmo/yieldcurve/model"
	"github.com/meenmo/yieldcurve/plot"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderProducesPNG(t *testing.T) {
	t.Parallel()

	c := fred.SampleCurve()
	spline, err := model.NewSpline(c)
	if err != nil {
		t.Fatalf("NewSpline error: %v", err)
	}
	nss, err := model.FitNSS(c)
	if err != nil {
		t.Fatalf("FitNSS error: %v", err)
	}

	img, err := plot.Render(c, spline, nss, plot.Options{Points: 120})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if len(img) == 0 {
		t.Fatal("Render returned empty image")
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Fatal("Render output is not a PNG")
	}
}

func TestRenderObservedOnly(t *testing.T) {
	t.Parallel()

	img, err := plot.Render(fred.SampleCurve(), nil, nil, plot.Options{})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Fatal("Render output is not a PNG")
	}
}

func TestRenderTooFewPoints(t *testing.T) {
	t.Parallel()

	if _, err := plot.Render(curve.Curve{"2Y": 3.57}, nil, nil, plot.Options{}); err == nil {
		t.Fatal("Render: want error for single-point curve, got nil")
	}
}

func TestSaveWritesFile(t *testing.T) {
	t.Parallel()

	c := fred.SampleCurve()
	spline, err := model.NewSpline(c)
	if err != nil {
		t.Fatalf("NewSpline error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "curve.png")
	if err := plot.Save(path, c, spline, nil, plot.Options{Points: 60}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Fatal("saved file is not a PNG")
	}
}
