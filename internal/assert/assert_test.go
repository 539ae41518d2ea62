package assert

import "testing"

func TestThat(t *testing.T) {
	defer func() {
		r := recover()
		if enabled && r == nil {
			t.Error("expected panic with assertions enabled")
		}
		if !enabled && r != nil {
			t.Errorf("unexpected panic in release build: %v", r)
		}
	}()
	That(false, "width must be positive, got %f", -1.0)
}

func TestThatHolds(t *testing.T) {
	That(true, "never fires")
}
