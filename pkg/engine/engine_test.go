package engine

import (
	"reflect"
	"testing"
)

func tickN(e *Engine, n int) []Color {
	out := make([]Color, n)
	for i := range out {
		out[i] = e.Tick()
	}
	return out
}

func TestNewEngineIsIdleAndWhite(t *testing.T) {
	e := New()
	if e.Running() || e.Kind() != EffectNone {
		t.Fatalf("expected idle engine, got %s", e.Kind())
	}
	if e.BaseColor() != White || e.Current() != White {
		t.Fatalf("expected white base, got %s / %s", e.BaseColor(), e.Current())
	}
	if e.Speed() != DefaultSpeed {
		t.Fatalf("expected default speed %d, got %d", DefaultSpeed, e.Speed())
	}
	if e.Palette() != nil {
		t.Fatalf("expected empty palette, got %v", e.Palette())
	}
}

func TestAlternatingEffectsRepeatWithPalettePeriod(t *testing.T) {
	base := Color{10, 120, 200}
	cases := []struct {
		kind EffectKind
		want []Color
	}{
		{EffectStrobe, []Color{base, Black}},
		{EffectPolice, []Color{Red, Blue}},
		{EffectAmbulance, []Color{Red, White}},
		{EffectCustom, []Color{base, {0, 20, 100}}},
		{EffectNeon, []Color{Red, Orange, Yellow, Green, Blue, Indigo, Violet}},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			e := New()
			e.SetBaseColor(base)
			e.StartEffect(tc.kind, 200)

			if !reflect.DeepEqual(e.Palette(), tc.want) {
				t.Fatalf("palette = %v, want %v", e.Palette(), tc.want)
			}
			first := tickN(e, len(tc.want))
			if !reflect.DeepEqual(first, tc.want) {
				t.Fatalf("first cycle = %v, want %v", first, tc.want)
			}
			second := tickN(e, len(tc.want))
			if !reflect.DeepEqual(second, first) {
				t.Fatalf("second cycle = %v, want %v", second, first)
			}
			if e.Step() != uint64(2*len(tc.want)) {
				t.Fatalf("step = %d, want %d", e.Step(), 2*len(tc.want))
			}
		})
	}
}

func TestNeonEighthTickMatchesFirst(t *testing.T) {
	e := New()
	e.StartEffect(EffectNeon, 100)
	colors := tickN(e, 8)
	if colors[7] != colors[0] {
		t.Fatalf("tick 8 = %s, want %s", colors[7], colors[0])
	}
}

func TestSunPulse(t *testing.T) {
	e := New()
	e.StartEffect(EffectSun, 50)
	colors := tickN(e, 101)

	if want := (Color{215, 160, 0}); colors[0] != want {
		t.Fatalf("step 0 = %s, want %s", colors[0], want)
	}
	if want := (Color{255, 200, 0}); colors[50] != want {
		t.Fatalf("step 50 = %s, want %s", colors[50], want)
	}
	if colors[100] != colors[0] {
		t.Fatalf("step 100 = %s, want %s", colors[100], colors[0])
	}
	// intensity 0.5 at step 25
	if want := (Color{235, 180, 0}); colors[25] != want {
		t.Fatalf("step 25 = %s, want %s", colors[25], want)
	}
	for i, c := range colors {
		if c.B != 0 {
			t.Fatalf("step %d changed blue channel: %s", i, c)
		}
	}
}

func TestMoonPulse(t *testing.T) {
	e := New()
	e.StartEffect(EffectMoon, 50)
	colors := tickN(e, 101)

	if want := (Color{170, 170, 225}); colors[0] != want {
		t.Fatalf("step 0 = %s, want %s", colors[0], want)
	}
	if want := (Color{200, 200, 255}); colors[50] != want {
		t.Fatalf("step 50 = %s, want %s", colors[50], want)
	}
	if colors[100] != colors[0] {
		t.Fatalf("step 100 = %s, want %s", colors[100], colors[0])
	}
}

func TestPulseTruncatesShift(t *testing.T) {
	// step 1: intensity 0.98, 40*0.98 = 39.2 -> 39
	got := pulse(Color{255, 200, 0}, 1, sunDepth, false)
	if want := (Color{216, 161, 0}); got != want {
		t.Fatalf("pulse = %s, want %s", got, want)
	}
	got = pulse(Color{10, 10, 10}, 0, moonDepth, true)
	if want := (Color{0, 0, 0}); got != want {
		t.Fatalf("pulse should clamp at zero, got %s", got)
	}
}

func TestStartEffectAlwaysResetsStep(t *testing.T) {
	e := New()
	e.StartEffect(EffectPolice, 100)
	tickN(e, 5)
	e.StartEffect(EffectPolice, 100)
	if e.Step() != 0 {
		t.Fatalf("restart step = %d, want 0", e.Step())
	}
	tickN(e, 3)
	e.StartEffect(EffectMoon, 300)
	if e.Step() != 0 || e.Kind() != EffectMoon || e.Speed() != 300 {
		t.Fatalf("unexpected state after switch: step=%d kind=%s speed=%d", e.Step(), e.Kind(), e.Speed())
	}
	if got := e.Tick(); got != (Color{170, 170, 225}) {
		t.Fatalf("first moon tick = %s", got)
	}
}

func TestSetBaseColorWhileCustomRebuildsPalette(t *testing.T) {
	e := New()
	e.StartEffect(EffectCustom, 100)
	tickN(e, 3)

	e.SetBaseColor(Color{150, 50, 250})
	if e.Step() != 3 {
		t.Fatalf("step = %d, want 3", e.Step())
	}
	// step 3 is odd, so the dimmed colour comes next
	if got, want := e.Tick(), (Color{50, 0, 150}); got != want {
		t.Fatalf("tick = %s, want %s", got, want)
	}
	if got, want := e.Tick(), (Color{150, 50, 250}); got != want {
		t.Fatalf("tick = %s, want %s", got, want)
	}
}

func TestSetBaseColorWhileOtherEffectKeepsPalette(t *testing.T) {
	e := New()
	e.StartEffect(EffectStrobe, 100)
	e.SetBaseColor(Red)
	if got := e.Tick(); got != White {
		t.Fatalf("strobe tick = %s, want white until restarted", got)
	}
	if e.Current() != White {
		t.Fatalf("current = %s, want white", e.Current())
	}
	e.StartEffect(EffectStrobe, 100)
	if got := e.Tick(); got != Red {
		t.Fatalf("restarted strobe tick = %s, want red", got)
	}
}

func TestSetBaseColorWhileIdleShowsImmediately(t *testing.T) {
	e := New()
	e.SetBaseColor(Blue)
	if e.Current() != Blue {
		t.Fatalf("current = %s, want blue", e.Current())
	}
	if got := e.Tick(); got != Blue {
		t.Fatalf("idle tick = %s, want blue", got)
	}
	if e.Step() != 0 {
		t.Fatalf("idle tick changed step to %d", e.Step())
	}
}

func TestStopEffectIsIdempotent(t *testing.T) {
	e := New()
	e.SetBaseColor(Green)
	e.StartEffect(EffectNeon, 100)
	tickN(e, 4)

	for i := 0; i < 3; i++ {
		e.StopEffect()
		if e.Running() || e.Palette() != nil {
			t.Fatalf("stop %d left engine running", i)
		}
		if got := e.Tick(); got != Green {
			t.Fatalf("tick after stop = %s, want green", got)
		}
		if e.Current() != Green {
			t.Fatalf("current after stop = %s, want green", e.Current())
		}
	}
}

func TestStartNoneEqualsStop(t *testing.T) {
	a, b := New(), New()
	for _, e := range []*Engine{a, b} {
		e.SetBaseColor(Yellow)
		e.StartEffect(EffectAmbulance, 400)
		tickN(e, 3)
	}
	a.StartEffect(EffectNone, 999)
	b.StopEffect()
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Fatalf("start(None) = %+v, stop = %+v", a.Snapshot(), b.Snapshot())
	}
}

func TestSetSpeedKeepsStepAndPalette(t *testing.T) {
	e := New()
	e.StartEffect(EffectNeon, 500)
	tickN(e, 4)
	e.SetSpeed(75)
	if e.Speed() != 75 || e.Step() != 4 || len(e.Palette()) != 7 {
		t.Fatalf("unexpected state: speed=%d step=%d palette=%d", e.Speed(), e.Step(), len(e.Palette()))
	}
	if got := e.Tick(); got != Blue {
		t.Fatalf("tick = %s, want blue", got)
	}
}

func TestLargeStepUsesModulo(t *testing.T) {
	e := New()
	e.StartEffect(EffectNeon, 50)
	e.step = 1<<63 + 3
	// 2^63 is 1 mod 7, so this step lands on index 4
	if got := e.Tick(); got != neonCycle[4] {
		t.Fatalf("tick = %s, want %s", got, neonCycle[4])
	}
}

func TestPaletteIsCopied(t *testing.T) {
	e := New()
	e.StartEffect(EffectPolice, 100)
	p := e.Palette()
	p[0] = Black
	if e.Tick() != Red {
		t.Fatal("mutating returned palette changed the engine")
	}
	e.StartEffect(EffectNeon, 100)
	e.palette[0] = Black
	e.StartEffect(EffectNeon, 100)
	if e.Tick() != Red {
		t.Fatal("neon palette shares storage across starts")
	}
}

func TestClampSpeed(t *testing.T) {
	cases := map[int]int{-1: MinSpeed, 0: MinSpeed, 50: 50, 500: 500, 1000: 1000, 5000: MaxSpeed}
	for in, want := range cases {
		if got := ClampSpeed(in); got != want {
			t.Errorf("ClampSpeed(%d) = %d, want %d", in, got, want)
		}
	}
}
