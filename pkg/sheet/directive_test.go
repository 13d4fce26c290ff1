package sheet

import "testing"

func TestEffectKinds(t *testing.T) {
	tests := []struct {
		effect Effect
		want   EffectKind
	}{
		{Fill{Color: RGB{R: 1}}, KindFill},
		{Border{Lines: BorderBox, Weight: BoxWeight}, KindBorder},
		{Span{}, KindSpan},
		{Align{Mode: AlignCenter}, KindAlign},
		{Font{Name: DefaultFont, Size: DefaultFontSize}, KindFont},
		{DefaultPadding, KindPadding},
	}
	for _, tt := range tests {
		if got := tt.effect.Kind(); got != tt.want {
			t.Errorf("%T.Kind() = %v, want %v", tt.effect, got, tt.want)
		}
	}
}

func TestBorderLines(t *testing.T) {
	var e Effect = Border{Lines: BorderBox, Weight: 1.25}
	b, ok := e.(Border)
	if !ok {
		t.Fatalf("effect = %T, want Border", e)
	}
	if b.Lines.String() != "box" || BorderGrid.String() != "grid" {
		t.Errorf("Lines = %v, want box", b.Lines)
	}
}
