package demo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"ydwatch/internal/progress"
	"ydwatch/internal/status"
)

func get(t *testing.T, r http.Handler, path string) (progress.Snapshot, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var snap progress.Snapshot
	if w.Code == http.StatusOK && path != "/healthz" {
		if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return snap, w
}

func TestPlaylistScript(t *testing.T) {
	s := PlaylistScript(3, []int{2})
	if s.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", s.Len())
	}

	want := []progress.Snapshot{
		{Phase: progress.PhasePlaylistRunning, Progress: "Preparing for downloading"},
		{Phase: progress.PhasePlaylistRunning, Progress: "Downloading 1 of 3"},
		{Phase: progress.PhasePlaylistRunning, Progress: "Downloading 2 of 3", Outcomes: "1"},
		{Phase: progress.PhasePlaylistRunning, Progress: "Downloading 3 of 3", Outcomes: "12"},
		{Phase: progress.PhaseFinished, Progress: "Files downloaded(3) with 1 fails", Outcomes: "121"},
	}
	for i, w := range want {
		if got := s.Next(); got != w {
			t.Errorf("step %d = %+v, want %+v", i, got, w)
		}
	}
	if got := s.Next(); got != want[len(want)-1] {
		t.Errorf("after end = %+v, want last step repeated", got)
	}
}

func TestParseFailed(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "3", want: []int{3}},
		{in: "7, 3", want: []int{3, 7}},
		{in: "0", wantErr: true},
		{in: "3x", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFailed(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFailed(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFailed(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseFailed(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseFailed(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}

func TestRouterServesScripts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := NewServer(SingleScript(), PlaylistScript(2, nil), zerolog.Nop())
	r := srv.Router()

	snap, w := get(t, r, status.SinglePath)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s code = %d", status.SinglePath, w.Code)
	}
	if snap.Phase != progress.PhaseSingleRunning || snap.Progress != "Waiting" {
		t.Errorf("first single snapshot = %+v", snap)
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Errorf("missing %s header", RequestIDHeader)
	}

	snap, _ = get(t, r, status.PlaylistPath)
	if snap.Progress != "Preparing for downloading" {
		t.Errorf("first playlist snapshot = %+v", snap)
	}
	snap, _ = get(t, r, status.PlaylistPath)
	if snap.Progress != "Downloading 1 of 2" {
		t.Errorf("second playlist snapshot = %+v", snap)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reset", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("POST /reset code = %d", w.Code)
	}
	snap, _ = get(t, r, status.PlaylistPath)
	if snap.Progress != "Preparing for downloading" {
		t.Errorf("after reset playlist snapshot = %+v", snap)
	}

	_, w = get(t, r, "/healthz")
	if w.Code != http.StatusOK {
		t.Errorf("GET /healthz code = %d", w.Code)
	}
}

func TestRequestIDPropagates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewServer(SingleScript(), SingleScript(), zerolog.Nop()).Router()

	req := httptest.NewRequest(http.MethodGet, status.SinglePath, nil)
	req.Header.Set(RequestIDHeader, "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc" {
		t.Errorf("%s = %q, want %q", RequestIDHeader, got, "abc")
	}
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name      string
		allow     []string
		origin    string
		wantCode  int
		wantAllow string
	}{
		{name: "any origin", origin: "http://page.test", wantCode: http.StatusOK, wantAllow: "*"},
		{name: "listed origin", allow: []string{"http://page.test"}, origin: "http://page.test", wantCode: http.StatusOK, wantAllow: "http://page.test"},
		{name: "unlisted origin", allow: []string{"http://page.test"}, origin: "http://other.test", wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(SingleScript(), SingleScript(), zerolog.Nop())
			srv.AllowOrigins = tt.allow
			r := srv.Router()

			req := httptest.NewRequest(http.MethodGet, status.PlaylistPath, nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.wantCode {
				t.Fatalf("GET with Origin %q code = %d, want %d", tt.origin, w.Code, tt.wantCode)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}
