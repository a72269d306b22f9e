package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveLogFilePathDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	path, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	if filepath.Base(path) != defaultLogFilename {
		t.Fatalf("default filename want %s got %s", defaultLogFilename, filepath.Base(path))
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		t.Fatalf("log dir should exist after resolve: %v", err)
	}
}

func TestReleaseModeWritesRotatedFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{
		Dir:      tmpDir,
		Filename: "fuelflow.log",
	})
	log.Info("order transition recorded")
	_ = log.Sync()

	raw, err := os.ReadFile(filepath.Join(tmpDir, "fuelflow.log"))
	if err != nil {
		t.Fatalf("read log file failed: %v", err)
	}
	if !strings.Contains(string(raw), "order transition recorded") {
		t.Fatalf("log file missing entry, got=%s", string(raw))
	}
}

func TestDebugModeStaysOnStderr(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{
		Dir:      tmpDir,
		Filename: "fuelflow.log",
	})
	log.Info("debug entry")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "fuelflow.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode must not create a log file")
	}
}
