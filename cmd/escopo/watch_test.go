package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchScriptRerunsOnWrite(t *testing.T) {
	path := writeScript(t, helloScript)
	other := filepath.Join(filepath.Dir(path), "other.esc")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	ran := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- watchScript(ctx, path, func() error {
			runs.Add(1)
			ran <- struct{}{}
			return nil
		}, func(err error) {
			t.Errorf("unexpected watch error: %v", err)
		})
	}()

	waitRun := func() {
		t.Helper()
		select {
		case <-ran:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for run (runs=%d)", runs.Load())
		}
	}

	waitRun()
	writeFile(t, other, "BLOCO X\n")
	writeFile(t, path, helloScript+"PRINT n\n")
	waitRun()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("watch did not stop after cancel")
	}
}

func TestWatchScriptReportsRunErrors(t *testing.T) {
	path := writeScript(t, helloScript)
	ctx, cancel := context.WithCancel(context.Background())

	var reported error
	err := watchScript(ctx, path, func() error {
		cancel()
		return errors.New("boom")
	}, func(err error) {
		reported = err
	})
	if err != nil {
		t.Fatalf("watch returned error: %v", err)
	}
	if reported == nil || reported.Error() != "boom" {
		t.Fatalf("expected run error to be reported, got %v", reported)
	}
}

func TestWatchScriptMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone", "script.esc")
	err := watchScript(context.Background(), missing, func() error { return nil }, func(error) {})
	if err == nil {
		t.Fatalf("expected error watching a missing directory")
	}
	if _, statErr := os.Stat(filepath.Dir(missing)); !os.IsNotExist(statErr) {
		t.Fatalf("test setup: directory should not exist")
	}
}
