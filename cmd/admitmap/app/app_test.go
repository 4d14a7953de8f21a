package app

import (
	"sync"
	"testing"

	"github.com/admitmap/admitmap"
)

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_Client_Singleton verifies that Client() returns the same instance.
func TestApp_Client_Singleton(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	c1, err := app.Client()
	if err != nil {
		t.Fatalf("Client() failed: %v", err)
	}

	c2, err := app.Client()
	if err != nil {
		t.Fatalf("Client() failed on second call: %v", err)
	}

	if c1 != c2 {
		t.Error("Client() returned different instances, expected singleton")
	}
}

// TestApp_Client_ThreadSafe verifies concurrent Client() calls are safe.
func TestApp_Client_ThreadSafe(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	const goroutines = 50
	var wg sync.WaitGroup
	results := make([]*admitmap.Client, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = app.Client()
		}(i)
	}
	wg.Wait()

	for i := 0; i < goroutines; i++ {
		if errs[i] != nil {
			t.Fatalf("Client() failed in goroutine %d: %v", i, errs[i])
		}
		if results[i] != results[0] {
			t.Errorf("goroutine %d got a different client instance", i)
		}
	}
}

// TestConfig_UpdateFromFlags verifies flag precedence over loaded config.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{
		Format:   "json",
		LogLevel: "info",
	}

	config.UpdateFromFlags(true, false, true, "yaml", "debug")

	if !config.Verbose {
		t.Error("Verbose not updated from flags")
	}
	if config.Quiet {
		t.Error("Quiet should remain false")
	}
	if !config.NoColor {
		t.Error("NoColor not updated from flags")
	}
	if config.Format != "yaml" {
		t.Errorf("Format = %s, want yaml", config.Format)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", config.LogLevel)
	}

	// Empty flag values must not clobber loaded config.
	config.UpdateFromFlags(false, false, false, "", "")
	if config.Format != "yaml" {
		t.Errorf("empty format flag clobbered Format, got %s", config.Format)
	}
	if config.LogLevel != "debug" {
		t.Errorf("empty log-level flag clobbered LogLevel, got %s", config.LogLevel)
	}
}
