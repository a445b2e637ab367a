// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package capture

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cubesat-console/internal/client"
	"github.com/tomtom215/cubesat-console/internal/config"
	"github.com/tomtom215/cubesat-console/internal/models"
	"github.com/tomtom215/cubesat-console/internal/store"
)

const testDataset = "COPERNICUS/S2_SR_HARMONIZED"

type fakeAPI struct {
	mu            sync.Mutex
	captureCalls  int
	classifyCalls int
	storeCalls    int
	classifyPaths []string
	captureReqs   []models.CaptureRequest

	captureResult  models.CaptureResult
	captureErr     error
	classifyResult models.ClassificationResult
	classifyErr    error
	uploadURL      string
	storeErr       error
}

func (f *fakeAPI) RequestCapture(_ context.Context, req models.CaptureRequest) (models.CaptureResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.captureCalls++
	f.captureReqs = append(f.captureReqs, req)
	return f.captureResult, f.captureErr
}

func (f *fakeAPI) RequestClassification(_ context.Context, path string) (models.ClassificationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.classifyCalls++
	f.classifyPaths = append(f.classifyPaths, path)
	return f.classifyResult, f.classifyErr
}

func (f *fakeAPI) UploadImage(_ context.Context, _ string, _ io.Reader) (string, error) {
	return f.uploadURL, nil
}

func (f *fakeAPI) StoreImage(_ context.Context, _ models.ImageRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.storeCalls++
	return f.storeErr
}

func testCaptureConfig() config.CaptureConfig {
	return config.CaptureConfig{
		DefaultDataset:  testDataset,
		AllowedDatasets: []string{testDataset, "LANDSAT/LC08/C02/T1_L2"},
		StoreRecords:    true,
	}
}

func newTestWorkflow(api API) (*Workflow, *store.MemorySlot) {
	slot := store.NewMemorySlot()
	return NewWorkflow(api, slot, testCaptureConfig()), slot
}

func TestCapture_RejectsOutOfRangeWithoutNetwork(t *testing.T) {
	coords := []struct{ lat, lon float64 }{
		{90.0001, 0}, {-91, 0}, {0, 180.5}, {0, -181}, {1000, 1000},
	}
	for _, c := range coords {
		api := &fakeAPI{}
		w, _ := newTestWorkflow(api)

		_, err := w.Capture(context.Background(), c.lat, c.lon, "")
		if !client.IsValidation(err) {
			t.Errorf("(%v, %v): expected validation error, got %v", c.lat, c.lon, err)
		}
		if api.captureCalls != 0 {
			t.Errorf("(%v, %v): network layer called %d times", c.lat, c.lon, api.captureCalls)
		}
		if w.State() != StateIdle {
			t.Errorf("(%v, %v): state = %s, want idle", c.lat, c.lon, w.State())
		}
	}
}

func TestCapture_BoundaryCoordinatesAccepted(t *testing.T) {
	api := &fakeAPI{captureResult: models.CaptureResult{Products: map[string]string{"rgb_url": "images/x.png"}}}
	w, _ := newTestWorkflow(api)

	for _, c := range []struct{ lat, lon float64 }{{90, 180}, {-90, -180}, {0, 0}} {
		if _, err := w.Capture(context.Background(), c.lat, c.lon, ""); err != nil {
			t.Errorf("(%v, %v): unexpected error %v", c.lat, c.lon, err)
		}
	}
}

func TestCapture_NormalizesAndPersistsRawRGB(t *testing.T) {
	api := &fakeAPI{captureResult: models.CaptureResult{Products: map[string]string{
		"rgb_url":  `static\a\b\c.png`,
		"ndvi_url": "https://tiles/ndvi",
	}}}
	w, slot := newTestWorkflow(api)

	if _, err := w.Capture(context.Background(), 12.5, -3.25, ""); err != nil {
		t.Fatalf("Capture: %v", err)
	}

	got, ok, _ := slot.Get(context.Background())
	if !ok || got != "static/a/b/c.png" {
		t.Errorf("slot = %q (ok=%v), want static/a/b/c.png", got, ok)
	}
	if !strings.HasSuffix(got, "/a/b/c.png") {
		t.Errorf("stored path should end with /a/b/c.png, got %q", got)
	}
	if w.State() != StateCaptured {
		t.Errorf("state = %s, want captured", w.State())
	}
	snap := w.Snapshot()
	if len(snap.Products) != 2 || snap.RawRGBURL != got {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if api.storeCalls != 1 {
		t.Errorf("store_image calls = %d, want 1", api.storeCalls)
	}
}

func TestCapture_DatasetFallback(t *testing.T) {
	api := &fakeAPI{captureResult: models.CaptureResult{Products: map[string]string{"rgb_url": "images/x.png"}}}
	w, _ := newTestWorkflow(api)

	_, _ = w.Capture(context.Background(), 1, 1, "LANDSAT/LC08/C02/T1_L2")
	_, _ = w.Capture(context.Background(), 1, 1, "NOT/A/DATASET")
	_, _ = w.Capture(context.Background(), 1, 1, "")

	want := []string{"LANDSAT/LC08/C02/T1_L2", testDataset, testDataset}
	for i, req := range api.captureReqs {
		if req.Dataset != want[i] {
			t.Errorf("call %d dataset = %q, want %q", i, req.Dataset, want[i])
		}
	}
}

func TestCapture_FailureKeepsPreviousImage(t *testing.T) {
	api := &fakeAPI{captureResult: models.CaptureResult{Products: map[string]string{"rgb_url": "images/first.png"}}}
	w, slot := newTestWorkflow(api)
	if _, err := w.Capture(context.Background(), 1, 1, ""); err != nil {
		t.Fatalf("first capture: %v", err)
	}

	api.captureErr = &client.HTTPError{Status: http.StatusInternalServerError, Body: "boom"}
	_, err := w.Capture(context.Background(), 2, 2, "")
	if client.Kind(err) != client.KindHTTP {
		t.Fatalf("expected http error, got %v", err)
	}
	if w.State() != StateFailed {
		t.Errorf("state = %s, want failed", w.State())
	}
	got, _, _ := slot.Get(context.Background())
	if got != "images/first.png" {
		t.Errorf("slot = %q, previous capture should survive a failure", got)
	}
	if snap := w.Snapshot(); snap.Products["rgb_url"] != "images/first.png" || snap.LastError == "" {
		t.Errorf("unexpected snapshot after failure: %+v", snap)
	}
}

func TestCapture_StoreRecordFailureIsNotFatal(t *testing.T) {
	api := &fakeAPI{
		captureResult: models.CaptureResult{Products: map[string]string{"rgb_url": "images/x.png"}},
		storeErr:      errors.New("store down"),
	}
	w, _ := newTestWorkflow(api)
	if _, err := w.Capture(context.Background(), 1, 1, ""); err != nil {
		t.Fatalf("capture should succeed when the store call fails: %v", err)
	}
}

func TestClassify_RequiresStoredCapture(t *testing.T) {
	api := &fakeAPI{}
	w, _ := newTestWorkflow(api)

	_, err := w.Classify(context.Background(), nil)
	var preErr *client.PreconditionError
	if !errors.As(err, &preErr) {
		t.Fatalf("expected PreconditionError, got %v", err)
	}
	if api.classifyCalls != 0 {
		t.Errorf("network layer called %d times", api.classifyCalls)
	}
	if w.State() != StateIdle {
		t.Errorf("state = %s, want idle", w.State())
	}
}

func TestClassify_SendsServerRelativePath(t *testing.T) {
	api := &fakeAPI{classifyResult: models.ClassificationResult{Percentages: map[string]float64{"Forest": 70, "Water": 30.1}}}
	w, slot := newTestWorkflow(api)
	_ = slot.Set(context.Background(), "http://host/static/x/y.png")

	result, err := w.Classify(context.Background(), nil)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(api.classifyPaths) != 1 || api.classifyPaths[0] != "x/y.png" {
		t.Errorf("classify paths = %v, want [x/y.png]", api.classifyPaths)
	}
	if result.Total() <= 100 {
		t.Errorf("percentages should be passed through unnormalized, total %v", result.Total())
	}
	if w.State() != StateClassified {
		t.Errorf("state = %s, want classified", w.State())
	}
}

func TestClassify_ExplicitURLOverridesSlot(t *testing.T) {
	api := &fakeAPI{classifyResult: models.ClassificationResult{Percentages: map[string]float64{"Urban": 100}}}
	w, _ := newTestWorkflow(api)

	explicit := "/static/uploads/z.jpg"
	if _, err := w.Classify(context.Background(), &explicit); err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if api.classifyPaths[0] != "uploads/z.jpg" {
		t.Errorf("classify path = %q", api.classifyPaths[0])
	}
}

func TestClassify_FailureTransitionsToFailed(t *testing.T) {
	api := &fakeAPI{classifyErr: &models.UpstreamError{Endpoint: models.EndpointClassify, Message: "model unavailable"}}
	w, slot := newTestWorkflow(api)
	_ = slot.Set(context.Background(), "images/a.png")

	_, err := w.Classify(context.Background(), nil)
	if client.Kind(err) != client.KindUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if w.State() != StateFailed {
		t.Errorf("state = %s, want failed", w.State())
	}
}

func TestWorkflow_FullCycleTransitions(t *testing.T) {
	api := &fakeAPI{
		captureResult:  models.CaptureResult{Products: map[string]string{"rgb_url": "images/a.png"}},
		classifyResult: models.ClassificationResult{Percentages: map[string]float64{"Forest": 100}},
	}
	w, _ := newTestWorkflow(api)

	var mu sync.Mutex
	var seen []State
	w.OnTransition(func(tr Transition) {
		mu.Lock()
		seen = append(seen, tr.To)
		mu.Unlock()
	})

	ctx := context.Background()
	_, _ = w.Capture(ctx, 1, 2, "")
	_, _ = w.Classify(ctx, nil)
	_, _ = w.Capture(ctx, 3, 4, "")

	want := []State{StateCapturing, StateCaptured, StateClassifying, StateClassified, StateCapturing, StateCaptured}
	if len(seen) != len(want) {
		t.Fatalf("transitions = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("transition %d = %s, want %s", i, seen[i], want[i])
		}
	}
	if w.Snapshot().Classification != nil {
		t.Error("a new capture should clear the previous classification")
	}
}

func TestCapture_ConcurrentCapturesLastWriteWins(t *testing.T) {
	release := make(chan struct{})
	first := make(chan struct{})
	api := &orderedAPI{release: release, first: first}
	w, slot := newTestWorkflow(api)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = w.Capture(context.Background(), 1, 1, "") // blocks until released
	}()
	<-first
	go func() {
		defer wg.Done()
		_, _ = w.Capture(context.Background(), 2, 2, "")
		close(release)
	}()
	wg.Wait()

	got, _, _ := slot.Get(context.Background())
	if got != "images/1.png" {
		t.Errorf("slot = %q, want the response that arrived last (images/1.png)", got)
	}
}

// orderedAPI holds the first capture until the second has completed.
type orderedAPI struct {
	fakeAPI
	mu      sync.Mutex
	n       int
	release chan struct{}
	first   chan struct{}
}

func (o *orderedAPI) RequestCapture(_ context.Context, req models.CaptureRequest) (models.CaptureResult, error) {
	o.mu.Lock()
	o.n++
	n := o.n
	o.mu.Unlock()
	if n == 1 {
		close(o.first)
		<-o.release
		return models.CaptureResult{Products: map[string]string{"rgb_url": "images/1.png"}}, nil
	}
	return models.CaptureResult{Products: map[string]string{"rgb_url": "images/2.png"}}, nil
}

func TestUpload_StoresURLForClassify(t *testing.T) {
	api := &fakeAPI{uploadURL: `uploads\field.png`}
	w, slot := newTestWorkflow(api)

	if _, err := w.Upload(context.Background(), "notes.txt", strings.NewReader("x")); !client.IsValidation(err) {
		t.Errorf("expected validation error for non-image, got %v", err)
	}

	u, err := w.Upload(context.Background(), "field.png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	got, _, _ := slot.Get(context.Background())
	if u != "uploads/field.png" || got != u {
		t.Errorf("upload url = %q, slot = %q", u, got)
	}
	if w.State() != StateCaptured {
		t.Errorf("state = %s, want captured", w.State())
	}
}

func TestWorkflow_AgainstHTTPUpstream(t *testing.T) {
	var classifyBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/capture_image":
			_, _ = io.WriteString(w, `{"rgb_url": "http://upstream/static/images\\a.png", "evi_url": "https://tiles/evi"}`)
		case "/classify_image":
			_ = json.NewDecoder(r.Body).Decode(&classifyBody)
			_, _ = io.WriteString(w, `{"classification_percentages": {"Crops": 55.5, "Bare": 44.6}}`)
		case "/store_image":
			_, _ = io.WriteString(w, `{"message": "stored"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	api := client.NewCaptureClient(client.New(client.Config{BaseURL: server.URL}))
	w, slot := newTestWorkflow(api)

	ctx := context.Background()
	if _, err := w.Capture(ctx, 10, 20, ""); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	stored, _, _ := slot.Get(ctx)
	if stored != "http://upstream/static/images/a.png" {
		t.Errorf("stored = %q", stored)
	}

	if _, err := w.Classify(ctx, nil); err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if classifyBody["image_url"] != "images/a.png" {
		t.Errorf("classify body image_url = %q, want images/a.png", classifyBody["image_url"])
	}
}
