package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"wordsplice/internal/config"
	"wordsplice/internal/indexstore"
	"wordsplice/internal/sources"
)

// CheckWatson verifies that the speech-to-text endpoint accepts the
// configured key by fetching the configured model's description.
func CheckWatson(ctx context.Context, cfg config.Watson) Result {
	const name = "Watson speech-to-text"

	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url (only needed for transcribe)"}
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return Result{Name: name, Detail: "missing api key (only needed for transcribe)"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	endpoint, err := url.JoinPath(base, "v1", "models", cfg.Model)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("invalid url (%v)", err)}
	}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%v)", err)}
	}
	req.SetBasicAuth("apikey", strings.TrimSpace(cfg.APIKey))

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeRequestError(err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("reachable (model %s)", cfg.Model)}
	case http.StatusUnauthorized, http.StatusForbidden:
		return Result{Name: name, Detail: "auth failed (invalid api key)"}
	case http.StatusNotFound:
		return Result{Name: name, Detail: fmt.Sprintf("model %s not available", cfg.Model)}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%d)", resp.StatusCode)}
	}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSource reports whether src can be indexed: the audio must be readable
// with a supported extension, and either an index cache or a transcript must
// exist.
func CheckSource(src sources.Source) Result {
	name := src.Title + src.Extension
	if !src.ValidExtension() {
		return Result{Name: name, State: SourceUnusable, Detail: fmt.Sprintf("unsupported extension %q (want %s)", src.Extension, strings.Join(sources.ValidExtensions, " "))}
	}
	if err := unix.Access(src.AudioPath, unix.R_OK); err != nil {
		return Result{Name: name, State: SourceUnusable, Detail: fmt.Sprintf("audio not readable: %v", err)}
	}
	if indexstore.Exists(src.IndexPath) {
		return Result{Name: name, Passed: true, State: SourceIndexed, Detail: "index cached"}
	}
	if _, err := os.Stat(src.TranscriptPath); err == nil {
		return Result{Name: name, Passed: true, State: SourceTranscribed, Detail: "transcript present, index will be built"}
	}
	return Result{Name: name, State: SourceUntranscribed, Detail: "no transcript (run `wordsplice transcribe`)"}
}

func summarizeRequestError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "auth check timed out (endpoint unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "auth check timed out (endpoint unreachable)"
	}
	return fmt.Sprintf("auth check failed (%v)", err)
}
