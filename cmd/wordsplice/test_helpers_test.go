package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"wordsplice/internal/config"
	"wordsplice/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	audioDir   string
	audio      []string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("SPEECH_TO_TEXT_IAM_APIKEY", "")
	t.Setenv("SPEECH_TO_TEXT_URL", "")
	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	audioDir := filepath.Join(base, "audio")

	a := filepath.Join(audioDir, "interview.wav")
	testsupport.WriteWAV(t, a, testsupport.RampBuffer(testsupport.FixtureRate, 2, 0.5))
	testsupport.WriteTranscript(t, filepath.Join(audioDir, "interview-transcript.json"),
		testsupport.Chunk{{"the", 0.25, 0.5, 0.95}, {"cat", 0.5, 1.0, 0.93}, {"sat", 1.0, 1.5, 0.80}},
	)
	b := filepath.Join(audioDir, "lecture.wav")
	testsupport.WriteWAV(t, b, testsupport.RampBuffer(testsupport.FixtureRate, 2, 0.3))
	testsupport.WriteTranscript(t, filepath.Join(audioDir, "lecture-transcript.json"),
		testsupport.Chunk{{"sat", 0.0, 0.5, 0.94}},
	)

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		audioDir:   audioDir,
		audio:      []string{a, b},
	}
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
