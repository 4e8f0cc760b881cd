package mailbox

import (
	"sync"
	"testing"
	"time"

	"github.com/wamphlett/softbox-controller/pkg/engine"
)

func TestLatestValueWins(t *testing.T) {
	m := New()
	m.Post(engine.Red)
	m.Post(engine.Green)
	m.Post(engine.Blue)

	select {
	case c := <-m.C():
		if c != engine.Blue {
			t.Fatalf("got %s, want blue", c)
		}
	default:
		t.Fatal("expected a pending colour")
	}
	select {
	case c := <-m.C():
		t.Fatalf("unexpected second colour %s", c)
	default:
	}
}

func TestPostAfterCloseIsDropped(t *testing.T) {
	m := New()
	m.Close()
	m.Close()
	m.Post(engine.Red)

	c, ok := <-m.C()
	if ok {
		t.Fatalf("expected closed channel, got %s", c)
	}
	if !m.Closed() {
		t.Fatal("expected mailbox to report closed")
	}
}

func TestPendingColourSurvivesClose(t *testing.T) {
	m := New()
	m.Post(engine.Violet)
	m.Close()

	if c, ok := <-m.C(); !ok || c != engine.Violet {
		t.Fatalf("got %s, %v, want violet", c, ok)
	}
	if _, ok := <-m.C(); ok {
		t.Fatal("expected channel to be drained")
	}
}

func TestConcurrentPostAndClose(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.Post(engine.RGB(i, j, 0))
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		for range m.C() {
		}
		close(done)
	}()

	time.Sleep(time.Millisecond)
	m.Close()
	wg.Wait()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not observe close")
	}
}
