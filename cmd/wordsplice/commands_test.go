package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wordsplice/internal/audio"
	"wordsplice/internal/testsupport"
)

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithWatson("secret-key", "https://example.invalid"))

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "confidence_threshold = 0.9")
	requireContains(t, out, "********")
	if strings.Contains(out, "secret-key") {
		t.Fatal("config show leaked the api key")
	}

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}
}

func TestDictCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	output := filepath.Join(env.audioDir, "dict.txt")

	out, _, err := runCLI(t, append([]string{"dict", "--output", output}, env.audio...), env.configPath, "")
	if err != nil {
		t.Fatalf("dict: %v", err)
	}
	requireContains(t, out, "Wrote 3 words")
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read dict: %v", err)
	}
	if string(data) != "cat\nsat\nthe\n" {
		t.Fatalf("dictionary = %q", data)
	}
}

func TestSpeakCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	scriptPath := filepath.Join(env.audioDir, "script.txt")
	testsupport.WriteFile(t, scriptPath, []byte("The cat sat"))
	output := filepath.Join(env.audioDir, "speech.wav")

	args := append([]string{"speak", "--script", scriptPath, "--output", output, "--tightness", "50"}, env.audio...)
	out, _, err := runCLI(t, args, env.configPath, "")
	if err != nil {
		t.Fatalf("speak: %v", err)
	}
	requireContains(t, out, "3 words from 2 sources")

	decoded, err := audio.DecodeFile(output)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	// 250ms + 500ms + 500ms, less 100ms per word
	if decoded.Len() != 7600 {
		t.Fatalf("frames = %d, want 7600", decoded.Len())
	}
}

func TestSpeakCommandMissingWords(t *testing.T) {
	env := setupCLITestEnv(t)
	scriptPath := filepath.Join(env.audioDir, "script.txt")
	testsupport.WriteFile(t, scriptPath, []byte("the dog sat"))
	output := filepath.Join(env.audioDir, "speech.wav")

	_, _, err := runCLI(t, append([]string{"speak", "-s", scriptPath, "-o", output}, env.audio...), env.configPath, "")
	if err == nil {
		t.Fatal("expected missing word failure")
	}
	requireContains(t, err.Error(), "dog")
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Fatalf("no output expected, stat err = %v", statErr)
	}
}

func TestWordsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, append([]string{"words"}, env.audio...), env.configPath, "")
	if err != nil {
		t.Fatalf("words: %v", err)
	}
	requireContains(t, out, "Confidence")
	requireContains(t, out, "lecture.wav")
	requireContains(t, out, "3 words from 2 sources (1 below threshold, 0 duplicates dropped)")
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, append([]string{"check"}, env.audio...), env.configPath, "")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "Log directory")
	requireContains(t, out, "interview.wav")

	missing := filepath.Join(env.audioDir, "untranscribed.wav")
	testsupport.WriteWAV(t, missing, testsupport.RampBuffer(testsupport.FixtureRate, 0.5, 0.5))
	out, _, err = runCLI(t, []string{"check", missing}, env.configPath, "")
	if err == nil {
		t.Fatal("expected check failure for untranscribed source")
	}
	requireContains(t, out, "untranscribed")
	requireContains(t, out, "run `wordsplice transcribe`")
}

func TestTranscribeCommand(t *testing.T) {
	body := testsupport.TranscriptJSON(t, testsupport.Chunk{{"hello", 0.1, 0.4, 0.97}, {"there", 0.4, 0.8, 0.91}})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pass, _ := r.BasicAuth(); pass != "secret-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write(body)
	}))
	defer server.Close()

	env := setupCLITestEnv(t, testsupport.WithWatson("secret-key", server.URL))
	target := filepath.Join(env.audioDir, "greeting.wav")
	testsupport.WriteWAV(t, target, testsupport.RampBuffer(testsupport.FixtureRate, 1, 0.5))

	out, _, err := runCLI(t, []string{"transcribe", target}, env.configPath, "y\n")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	requireContains(t, out, "paid transcription?")
	requireContains(t, out, "Transcript saved to")
	if _, err := os.Stat(filepath.Join(env.audioDir, "greeting-transcript.json")); err != nil {
		t.Fatalf("transcript not written: %v", err)
	}

	out, _, err = runCLI(t, []string{"transcribe", target}, env.configPath, "n\n")
	if err != nil {
		t.Fatalf("transcribe declined: %v", err)
	}
	requireContains(t, out, "Skipped")
}

func TestTranscribeRequiresCredentials(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"transcribe", env.audio[0]}, env.configPath, "")
	if err == nil {
		t.Fatal("expected configuration error")
	}
	requireContains(t, err.Error(), "watson.api_key")
}

func TestLogLevelFlagValidated(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"--log-level", "loud", "config", "show"}, env.configPath, ""); err == nil {
		t.Fatal("expected invalid log level to fail")
	}
}

func TestConfirmPrompt(t *testing.T) {
	var out strings.Builder
	confirm := newConfirm(strings.NewReader("yes\nno\n"), &out, false)
	if ok, err := confirm("first?"); err != nil || !ok {
		t.Fatalf("first answer = %v, %v", ok, err)
	}
	if ok, err := confirm("second?"); err != nil || ok {
		t.Fatalf("second answer = %v, %v", ok, err)
	}
	if ok, _ := confirm("eof?"); ok {
		t.Fatal("EOF should decline")
	}
	auto := newConfirm(strings.NewReader(""), &out, true)
	if ok, _ := auto("auto?"); !ok {
		t.Fatal("assume-yes should accept")
	}
	requireContains(t, out.String(), "first? [y/N]")
}
