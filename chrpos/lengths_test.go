package chrpos

import "testing"

func TestLength(t *testing.T) {
	length, err := Length("grch37", 1)
	if err != nil {
		t.Fatal(err)
	}
	if length != 249250621 {
		t.Errorf("Expected 249250621, got %d", length)
	}

	if _, err := Length("GRCh38", 23); err != nil {
		t.Error(err)
	}

	if _, err := Length("hg17", 1); err == nil {
		t.Error("Expected an error for an unknown assembly")
	}

	if _, err := Length("grch38", 24); err == nil {
		t.Error("Expected an error for an unknown chromosome")
	}
}

func TestFraction(t *testing.T) {
	for _, v := range []struct {
		Position int64
		Expected float64
	}{
		{0, 0},
		{124625310, 124625310.0 / 249250621.0},
		{249250621, 1},
		{300000000, 1},
	} {
		got, err := Fraction("grch37", 1, v.Position)
		if err != nil {
			t.Fatal(err)
		}
		if got != v.Expected {
			t.Errorf("Position %d: expected %f, got %f", v.Position, v.Expected, got)
		}
	}
}
