package config

import (
	"testing"
	"time"
)

func TestDefaultsMatchReferenceRecognizerFallbacks(t *testing.T) {
	tap := NewTapConfig()
	if tap.ClicksRequired != 1 || tap.CancelThreshold != 8 || tap.ClickTimeout != 100*time.Millisecond {
		t.Fatalf("unexpected tap defaults: %+v", tap)
	}

	lp := NewLongPressConfig()
	if lp.Duration != 500*time.Millisecond || lp.CancelThreshold != 8 {
		t.Fatalf("unexpected long press defaults: %+v", lp)
	}

	pan := NewPanConfig()
	if pan.BeginThreshold != 16 || pan.Axis != PanAxisBoth || pan.MinPoints != 1 || pan.MaxPoints != 0 {
		t.Fatalf("unexpected pan defaults: %+v", pan)
	}
}

func TestBuildersReturnModifiedCopiesWithoutMutatingReceiver(t *testing.T) {
	base := NewTapConfig()
	derived := base.WithClicksRequired(2).WithCancelThreshold(4).WithClickTimeout(50 * time.Millisecond)

	if base.ClicksRequired != 1 {
		t.Fatalf("builder mutated the receiver: base.ClicksRequired = %d", base.ClicksRequired)
	}
	if derived.ClicksRequired != 2 || derived.CancelThreshold != 4 || derived.ClickTimeout != 50*time.Millisecond {
		t.Fatalf("unexpected derived config: %+v", derived)
	}
}

func TestLoadRecognizerDefaultsOverridesOnlyNamedFields(t *testing.T) {
	doc := `
[tap]
clicks_required = 2

[pan]
axis = 1
`
	cfg, err := LoadRecognizerDefaults(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Tap.ClicksRequired != 2 {
		t.Fatalf("tap.clicks_required not applied: %+v", cfg.Tap)
	}
	if cfg.Tap.CancelThreshold != 8 {
		t.Fatalf("tap.cancel_threshold_px should keep its default, got %v", cfg.Tap.CancelThreshold)
	}
	if cfg.Pan.Axis != PanAxisX {
		t.Fatalf("pan.axis not applied: %+v", cfg.Pan)
	}
	if cfg.LongPress.Duration != 500*time.Millisecond {
		t.Fatalf("untouched long_press section should keep defaults, got %+v", cfg.LongPress)
	}
}

func TestLoadRecognizerDefaultsRejectsMalformedTOML(t *testing.T) {
	if _, err := LoadRecognizerDefaults("tap = ["); err == nil {
		t.Fatal("expected an error decoding malformed TOML")
	}
}
