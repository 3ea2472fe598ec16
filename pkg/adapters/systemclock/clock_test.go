package systemclock

import (
	"testing"
	"time"
)

func TestClock_Ticker(t *testing.T) {
	c := New()
	ticker := c.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	start := c.Now()
	for i := 0; i < 3; i++ {
		select {
		case <-ticker.C():
		case <-time.After(time.Second):
			t.Fatalf("tick %d did not arrive", i)
		}
	}
	if elapsed := c.Now().Sub(start); elapsed < 10*time.Millisecond {
		t.Errorf("expected at least 10ms for 3 ticks, got %s", elapsed)
	}
}

func TestClock_StopIsRepeatable(t *testing.T) {
	ticker := New().NewTicker(time.Millisecond)
	ticker.Stop()
	ticker.Stop()
}
