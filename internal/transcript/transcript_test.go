package transcript

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"podflow/internal/logger"
)

// fakeExecutor lets tests script subprocess behavior.
type fakeExecutor struct {
	lookPathErr error
	onExecute   func(dir, name string, args []string) (string, error)
	calls       [][]string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInDir(ctx, "", name, args...)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.onExecute != nil {
		return f.onExecute(dir, name, args)
	}
	return "", nil
}

func (f *fakeExecutor) LookPath(name string) (string, error) {
	if f.lookPathErr != nil {
		return "", f.lookPathErr
	}
	return "/usr/bin/" + name, nil
}

func serveAudio(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte("fake audio bytes"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchTranscribes(t *testing.T) {
	srv := serveAudio(t, http.StatusOK)
	tempDir := t.TempDir()

	exec := &fakeExecutor{
		onExecute: func(dir, name string, args []string) (string, error) {
			// whisper writes its text output next to the audio file
			audioPath := args[0]
			txtPath := strings.TrimSuffix(audioPath, ".mp3") + ".txt"
			if err := os.WriteFile(txtPath, []byte("hello transcript"), 0644); err != nil {
				return "", err
			}
			return "", nil
		},
	}

	svc := NewService(exec, logger.New("error"), "whisper", "base", tempDir)
	got, err := svc.Fetch(context.Background(), srv.URL, "2024-01-05_ep-1")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got != "hello transcript" {
		t.Errorf("transcript = %q, want hello transcript", got)
	}

	if len(exec.calls) != 1 {
		t.Fatalf("executor called %d times, want 1", len(exec.calls))
	}
	call := exec.calls[0]
	if call[0] != "whisper" {
		t.Errorf("binary = %q, want whisper", call[0])
	}
	wantArgs := []string{"--model", "base", "--output_format", "txt"}
	for _, w := range wantArgs {
		found := false
		for _, a := range call[1:] {
			if a == w {
				found = true
			}
		}
		if !found {
			t.Errorf("whisper args missing %q: %v", w, call[1:])
		}
	}

	// Temp audio and transcript are cleaned up either way.
	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir not cleaned up: %v", entries)
	}
}

func TestFetchToolUnavailable(t *testing.T) {
	srv := serveAudio(t, http.StatusOK)

	exec := &fakeExecutor{lookPathErr: fmt.Errorf("not found")}
	svc := NewService(exec, logger.New("error"), "whisper", "base", t.TempDir())

	got, err := svc.Fetch(context.Background(), srv.URL, "x")
	if err != nil {
		t.Fatalf("Fetch() error = %v, tool absence must not be an error", err)
	}
	if got != "" {
		t.Errorf("transcript = %q, want empty", got)
	}
	if len(exec.calls) != 0 {
		t.Error("whisper should not be invoked when unavailable")
	}
}

func TestFetchDownloadFailure(t *testing.T) {
	srv := serveAudio(t, http.StatusNotFound)

	exec := &fakeExecutor{}
	svc := NewService(exec, logger.New("error"), "whisper", "base", t.TempDir())

	if _, err := svc.Fetch(context.Background(), srv.URL, "x"); err == nil {
		t.Fatal("Fetch() should report download failure")
	}
	if len(exec.calls) != 0 {
		t.Error("whisper should not run after a failed download")
	}
}

func TestFetchWhisperFailureCleansUp(t *testing.T) {
	srv := serveAudio(t, http.StatusOK)
	tempDir := t.TempDir()

	exec := &fakeExecutor{
		onExecute: func(dir, name string, args []string) (string, error) {
			return "", fmt.Errorf("whisper crashed")
		},
	}
	svc := NewService(exec, logger.New("error"), "whisper", "base", tempDir)

	if _, err := svc.Fetch(context.Background(), srv.URL, "x"); err == nil {
		t.Fatal("Fetch() should report whisper failure")
	}

	audio := filepath.Join(tempDir, "podcast_audio_x.mp3")
	if _, err := os.Stat(audio); !os.IsNotExist(err) {
		t.Error("audio temp file should be removed after failure")
	}
}
