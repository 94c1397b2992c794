package animation

import (
	"errors"
	"testing"
)

func TestParseInterpolation(t *testing.T) {
	tests := []struct {
		in      string
		want    Interpolation
		wantErr bool
	}{
		{"LINEAR", Linear, false},
		{"STEP", Step, false},
		{"CUBICSPLINE", CubicSpline, false},
		{"", 0, true},
		{"linear", 0, true},
		{"BEZIER", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInterpolation(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownInterpolation) {
					t.Errorf("error = %v, want ErrUnknownInterpolation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestParseTargetPath(t *testing.T) {
	for _, name := range []string{"translation", "rotation", "scale", "weights"} {
		p, err := ParseTargetPath(name)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if p.String() != name {
			t.Errorf("got %q, want %q", p.String(), name)
		}
	}

	if _, err := ParseTargetPath("matrix"); !errors.Is(err, ErrUnknownTargetPath) {
		t.Errorf("error = %v, want ErrUnknownTargetPath", err)
	}
}
