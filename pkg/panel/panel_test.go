package panel

import (
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/wamphlett/softbox-controller/config"
)

type fakeReader struct {
	reading float64
	ok      bool
}

func (r *fakeReader) Read() (float64, bool) { return r.reading, r.ok }

type recordingControls struct {
	calls []string
}

func (c *recordingControls) NextEffect() { c.calls = append(c.calls, "next") }
func (c *recordingControls) StopEffect() { c.calls = append(c.calls, "stop") }

func (c *recordingControls) ApplyPreset(name string) error {
	c.calls = append(c.calls, "preset:"+name)
	return nil
}

func (c *recordingControls) AdjustSpeed(delta int) {
	if delta < 0 {
		c.calls = append(c.calls, "faster")
	} else {
		c.calls = append(c.calls, "slower")
	}
}

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func newTestPanel() (*Panel, *fakeReader, *recordingControls, *clock) {
	cfg := &config.Input{
		EffectTarget: []int{200},
		PresetTarget: []int{400},
		FasterTarget: []int{600},
		SlowerTarget: []int{800, 900},
		TargetRange:  40,
		HoldDuration: 2 * time.Second,
		ReadRate:     30 * time.Millisecond,
		SpeedStep:    50,
	}
	r := &fakeReader{}
	c := &recordingControls{}
	clk := &clock{t: time.Unix(0, 0)}
	p := New(cfg, r, c, log.New(io.Discard, "", 0))
	p.now = clk.now
	return p, r, c, clk
}

// press holds the reading for n polls, 30ms apart
func press(p *Panel, r *fakeReader, clk *clock, reading float64, n int) {
	r.reading, r.ok = reading, true
	for i := 0; i < n; i++ {
		p.poll()
		clk.t = clk.t.Add(30 * time.Millisecond)
	}
}

func TestPressNeedsTwoMatchingPolls(t *testing.T) {
	p, r, c, clk := newTestPanel()
	press(p, r, clk, 210, 1)
	if len(c.calls) != 0 {
		t.Fatalf("single poll should not press, got %v", c.calls)
	}
	press(p, r, clk, 195, 5)
	press(p, r, clk, 0, 1)
	if strings.Join(c.calls, ",") != "next" {
		t.Fatalf("calls = %v, want a single next", c.calls)
	}
}

func TestEachButton(t *testing.T) {
	p, r, c, clk := newTestPanel()
	for _, reading := range []float64{400, 600, 880, 400} {
		press(p, r, clk, reading, 2)
		press(p, r, clk, 0, 1)
	}
	want := "preset:White,faster,slower,preset:Red"
	if got := strings.Join(c.calls, ","); got != want {
		t.Fatalf("calls = %s, want %s", got, want)
	}
}

func TestHoldStopsEffect(t *testing.T) {
	p, r, c, clk := newTestPanel()
	// 80 polls at 30ms is 2.4s
	press(p, r, clk, 200, 80)
	if got := strings.Join(c.calls, ","); got != "next,stop" {
		t.Fatalf("calls = %s, want next,stop", got)
	}
}

func TestMissingReadingKeepsRegister(t *testing.T) {
	p, r, c, clk := newTestPanel()
	press(p, r, clk, 600, 1)
	r.ok = false
	p.poll()
	press(p, r, clk, 600, 1)
	if got := strings.Join(c.calls, ","); got != "faster" {
		t.Fatalf("calls = %s, want faster", got)
	}
}

func TestStartStop(t *testing.T) {
	p, _, _, _ := newTestPanel()
	p.Start()
	p.Stop()
	p.Stop()
}
