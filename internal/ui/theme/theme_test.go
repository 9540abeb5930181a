package theme

import "testing"

func TestApplyLight(t *testing.T) {
	t.Cleanup(func() { Use(Dark) })

	Apply("light")
	if Text != Light.Text {
		t.Errorf("Text = %v, want light text %v", Text, Light.Text)
	}
	if Primary != Light.Primary {
		t.Errorf("Primary = %v, want %v", Primary, Light.Primary)
	}
}

func TestApplyFallsBackToDark(t *testing.T) {
	t.Cleanup(func() { Use(Dark) })

	for _, name := range []string{"dark", "system", ""} {
		Apply("light")
		Apply(name)
		if Text != Dark.Text {
			t.Errorf("Apply(%q): Text = %v, want dark text %v", name, Text, Dark.Text)
		}
	}
}
