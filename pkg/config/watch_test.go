package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/teapotcast/pkg/adapters/logger"
)

// waitForInterval reads configs until one carries want.
func waitForInterval(t *testing.T, ch <-chan Config, want int) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg, ok := <-ch:
			if !ok {
				t.Fatal("watch channel closed")
			}
			if cfg.FrameInterval < 1 {
				t.Fatalf("received invalid configuration %+v", cfg)
			}
			if cfg.FrameInterval == want {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for frame_interval %d", want)
		}
	}
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teapotcast.yaml")
	if err := os.WriteFile(path, []byte("frame_interval: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := Watch(ctx, path, logger.NewNoop())
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("frame_interval: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitForInterval(t, ch, 5)

	// Invalid content is skipped, the next valid write comes through.
	os.WriteFile(path, []byte("frame_interval: -1\n"), 0o644)
	os.WriteFile(path, []byte("frame_interval: 3\n"), 0o644)
	waitForInterval(t, ch, 3)

	// Other files in the directory are ignored.
	os.WriteFile(filepath.Join(filepath.Dir(path), "other.yaml"), []byte("frame_interval: 9\n"), 0o644)

	cancel()
	for range ch {
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "cfg.yaml"), logger.NewNoop())
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestFrameIntervals(t *testing.T) {
	in := make(chan Config)
	out := FrameIntervals(context.Background(), in)

	go func() {
		for _, n := range []int{2, 2, 3, 3, 1} {
			in <- Config{FrameInterval: n}
		}
		close(in)
	}()

	var got []int
	for n := range out {
		got = append(got, n)
	}
	want := []int{2, 3, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestFrameIntervals_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan Config, 1)
	out := FrameIntervals(ctx, in)

	// Nobody reads out, so the forwarder is parked on its send.
	in <- Config{FrameInterval: 4}
	time.Sleep(10 * time.Millisecond)
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-out:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("forwarder still running after cancellation")
		}
	}
}
