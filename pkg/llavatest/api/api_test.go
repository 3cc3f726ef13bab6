package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"kgeyst.com/llavatest/pkg/common"
	"kgeyst.com/llavatest/pkg/llavatest/domain"
)

type recordingView struct {
	mutex         sync.Mutex
	output        string
	appended      []string
	preview       *domain.SelectedImage
	previewError  string
	submitEnabled bool
}

func (r *recordingView) ShowOutput(text string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.output = text
}

func (r *recordingView) AppendOutput(text string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.appended = append(r.appended, text)
}

func (r *recordingView) ShowPreview(image *domain.SelectedImage) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.preview = image
}

func (r *recordingView) ShowPreviewError(message string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.preview = nil
	r.previewError = message
}

func (r *recordingView) SetSubmitEnabled(enabled bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.submitEnabled = enabled
}

type generateCall struct {
	raw  string
	body map[string]any
}

// inferenceServer records every POST it receives and answers with `status` and `body`.
type inferenceServer struct {
	*httptest.Server
	mutex  sync.Mutex
	calls  []generateCall
	status int
	body   string
}

func newInferenceServer(t *testing.T, status int, body string) *inferenceServer {
	t.Helper()
	s := &inferenceServer{status: status, body: body}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		call := generateCall{raw: string(data)}
		_ = json.Unmarshal(data, &call.body)
		s.mutex.Lock()
		s.calls = append(s.calls, call)
		s.mutex.Unlock()
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(s.body))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *inferenceServer) all() []generateCall {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]generateCall(nil), s.calls...)
}

func newTestApp(t *testing.T, inferenceURL string) (App, *recordingView) {
	t.Helper()
	view := &recordingView{submitEnabled: true}
	config := common.NewConfig(map[string]any{
		ConfigKeyInferenceURL: inferenceURL,
		ConfigKeyLogPath:      filepath.Join(t.TempDir(), "log.txt"),
	})
	app := NewApp(config, view)
	t.Cleanup(app.Stop)
	return app, view
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPromptWithoutImage(t *testing.T) {
	server := newInferenceServer(t, http.StatusOK, `{"response":"X"}`)
	app, view := newTestApp(t, server.URL)
	for _, prompt := range []string{"a", "What is in the picture?", "  spaces  ", "unicode: кошка 🐈"} {
		app.Submit(prompt)
		app.Wait()
		calls := server.all()
		last := calls[len(calls)-1]
		if last.body["prompt"] != prompt {
			t.Errorf("prompt = %v, want %q", last.body["prompt"], prompt)
		}
		if _, ok := last.body["images"]; ok {
			t.Errorf("body = %s, want no images", last.raw)
		}
		if last.body["model"] != domain.DefaultModel || last.body["stream"] != false {
			t.Errorf("body = %s, want the default model and stream=false", last.raw)
		}
	}
	if n := len(server.all()); n != 4 {
		t.Errorf("server received %d requests, want 4", n)
	}
	if view.output != "X" {
		t.Errorf("output = %q, want %q", view.output, "X")
	}
}

func TestPromptWithImageFile(t *testing.T) {
	server := newInferenceServer(t, http.StatusOK, `{"response":"A white square."}`)
	app, view := newTestApp(t, server.URL)
	data := pngBytes(t)
	path := filepath.Join(t.TempDir(), "my square.PNG")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	app.SelectImage(`"` + path + `"`)
	if view.preview == nil {
		t.Fatalf("no preview shown, appended = %q", view.appended)
	}
	app.Submit("Describe")
	app.Wait()
	calls := server.all()
	if len(calls) != 1 {
		t.Fatalf("server received %d requests, want 1", len(calls))
	}
	images, ok := calls[0].body["images"].([]any)
	if !ok || len(images) != 1 || images[0] != base64.StdEncoding.EncodeToString(data) {
		t.Errorf("images = %v, want the base64 of the file", calls[0].body["images"])
	}
	if view.output != "A white square." {
		t.Errorf("output = %q, want %q", view.output, "A white square.")
	}
}

func TestPromptWithImageURL(t *testing.T) {
	data := pngBytes(t)
	imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cat.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer imageServer.Close()
	server := newInferenceServer(t, http.StatusOK, `{"response":"ok"}`)
	app, view := newTestApp(t, server.URL)

	app.SelectImage(imageServer.URL + "/cat.png")
	if view.preview == nil || view.preview.Source != imageServer.URL+"/cat.png" {
		t.Fatalf("preview = %+v, appended = %q, want the downloaded image", view.preview, view.appended)
	}
	app.Submit("Describe")
	app.Wait()
	images, _ := server.all()[0].body["images"].([]any)
	if len(images) != 1 || images[0] != base64.StdEncoding.EncodeToString(data) {
		t.Errorf("images = %v, want the base64 of the download", images)
	}

	app.SelectImage(imageServer.URL + "/missing.png")
	if view.preview != nil || view.previewError == "" {
		t.Errorf("preview = %+v, want an error instead", view.preview)
	}
	if len(view.appended) != 1 || !strings.Contains(view.appended[0], "404") {
		t.Errorf("appended = %q, want the download failure", view.appended)
	}
}

func TestEmptyPrompt(t *testing.T) {
	server := newInferenceServer(t, http.StatusOK, `{"response":"X"}`)
	app, view := newTestApp(t, server.URL)
	app.Submit("")
	app.Wait()
	if n := len(server.all()); n != 0 {
		t.Errorf("server received %d requests, want 0", n)
	}
	if len(view.appended) != 1 || view.appended[0] != "Please enter a prompt" {
		t.Errorf("appended = %q, want the validation message", view.appended)
	}
}

func TestMissingResponseField(t *testing.T) {
	server := newInferenceServer(t, http.StatusOK, `{"done":true}`)
	app, view := newTestApp(t, server.URL)
	app.Submit("hi")
	app.Wait()
	if view.output != domain.NoResponsePlaceholder {
		t.Errorf("output = %q, want %q", view.output, domain.NoResponsePlaceholder)
	}
}

func TestServerError(t *testing.T) {
	server := newInferenceServer(t, http.StatusInternalServerError, "oops")
	app, view := newTestApp(t, server.URL)
	app.Submit("hi")
	app.Wait()
	if !strings.Contains(view.output, "500") || !strings.Contains(view.output, "oops") {
		t.Errorf("output = %q, want it to contain 500 and oops", view.output)
	}
	if !view.submitEnabled {
		t.Error("submit control is disabled")
	}
}

func TestConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	app, view := newTestApp(t, url)
	app.Submit("hi")
	app.Wait()
	if !strings.HasPrefix(view.output, "Error: ") || !strings.Contains(view.output, "connection refused") {
		t.Errorf("output = %q, want the connection failure described", view.output)
	}
	if !view.submitEnabled {
		t.Error("submit control is disabled after a transport failure")
	}
	// still responsive
	app.Submit("")
	app.Wait()
	if len(view.appended) != 1 {
		t.Errorf("appended = %q, want the validation message", view.appended)
	}
}

func TestCorruptedImage(t *testing.T) {
	server := newInferenceServer(t, http.StatusOK, `{"response":"X"}`)
	app, view := newTestApp(t, server.URL)
	path := filepath.Join(t.TempDir(), "broken.jpg")
	if err := os.WriteFile(path, []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	app.SelectImage(path)
	if view.preview != nil || view.previewError != "Error loading image" {
		t.Errorf("preview = %+v, previewError = %q, want the error placeholder", view.preview, view.previewError)
	}
	if len(view.appended) != 1 || !strings.HasPrefix(view.appended[0], "Error loading image: ") {
		t.Errorf("appended = %q, want one image error", view.appended)
	}
	app.Submit("still works")
	app.Wait()
	calls := server.all()
	if len(calls) != 1 || strings.Contains(calls[0].raw, "images") {
		t.Errorf("calls = %+v, want one request without images", calls)
	}
}

func TestClearImage(t *testing.T) {
	server := newInferenceServer(t, http.StatusOK, `{"response":"X"}`)
	app, _ := newTestApp(t, server.URL)
	path := filepath.Join(t.TempDir(), "cat.png")
	if err := os.WriteFile(path, pngBytes(t), 0644); err != nil {
		t.Fatal(err)
	}
	app.SelectImage(path)
	app.ClearImage()
	app.Submit("hi")
	app.Wait()
	if strings.Contains(server.all()[0].raw, "images") {
		t.Errorf("body = %s, want no images after ClearImage", server.all()[0].raw)
	}
}
