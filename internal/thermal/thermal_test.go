package thermal

import (
	"context"
	"testing"
	"time"
)

func TestSleepIdler_PaysFullIntervalUnderCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	idler := NewSleepIdler(20 * time.Millisecond)
	start := time.Now()
	for i := 0; i < 3; i++ {
		idler.Idle(ctx)
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Fatalf("idler returned early under canceled context: 3 yields took %v, want >= 60ms", elapsed)
	}
}

func TestClock_IsMonotonic(t *testing.T) {
	c := NewClock()
	a := c.Now()
	time.Sleep(5 * time.Millisecond)
	b := c.Now()
	if b <= a {
		t.Fatalf("clock did not advance: %v then %v", a, b)
	}
}
