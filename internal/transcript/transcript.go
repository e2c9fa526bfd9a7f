// Package transcript downloads episode audio and attempts transcription
// with the whisper CLI. Everything here is best-effort: the summarizer
// must keep going with no transcript when any step fails.
package transcript

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"podflow/internal/logger"
	"podflow/pkg/executor"
)

const (
	// DownloadTimeout bounds the audio download.
	DownloadTimeout = 60 * time.Second
	// TranscribeTimeout bounds one whisper invocation.
	TranscribeTimeout = 10 * time.Minute
)

// Service fetches audio and runs the transcription tool.
type Service struct {
	exec    executor.Executor
	log     logger.Logger
	client  *http.Client
	binary  string
	model   string
	tempDir string
}

// NewService creates a transcription service. binary is the whisper
// executable name, model the whisper model size.
func NewService(exec executor.Executor, log logger.Logger, binary, model, tempDir string) *Service {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Service{
		exec:    exec,
		log:     log,
		client:  &http.Client{Timeout: DownloadTimeout},
		binary:  binary,
		model:   model,
		tempDir: tempDir,
	}
}

// Fetch downloads the audio and transcribes it. baseName keys the
// temporary files (normally "<date>_<slug>"). An empty transcript with a
// nil error means transcription was skipped (no tool); a non-nil error
// means a step failed. Callers treat both the same way: no transcript.
func (s *Service) Fetch(ctx context.Context, audioURL, baseName string) (string, error) {
	audioPath := filepath.Join(s.tempDir, fmt.Sprintf("podcast_audio_%s.mp3", baseName))

	if err := s.download(ctx, audioURL, audioPath); err != nil {
		return "", fmt.Errorf("download audio: %w", err)
	}
	defer s.cleanupTempFile(ctx, audioPath)

	if _, err := s.exec.LookPath(s.binary); err != nil {
		s.log.Info(ctx, "Transcription tool %q not available, skipping transcription", s.binary)
		return "", nil
	}

	s.log.Info(ctx, "Transcribing with Whisper: %s", audioPath)

	tctx, cancel := context.WithTimeout(ctx, TranscribeTimeout)
	defer cancel()

	// Run in the temp dir so whisper's text output lands next to the
	// audio file.
	args := []string{audioPath, "--model", s.model, "--output_format", "txt"}
	if _, err := s.exec.ExecuteInDir(tctx, s.tempDir, s.binary, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".txt"
	defer s.cleanupTempFile(ctx, txtPath)

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read transcript output: %w", err)
	}

	s.log.Info(ctx, "Transcription completed: %d bytes", len(data))
	return string(data), nil
}

func (s *Service) download(ctx context.Context, audioURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("audio fetch returned status %d", resp.StatusCode)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(destPath)
		return err
	}
	return nil
}

// cleanupTempFile removes a temporary file, logs if it fails
func (s *Service) cleanupTempFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
		}
	} else {
		s.log.Debug(ctx, "Cleaned up temp file: %s", path)
	}
}
