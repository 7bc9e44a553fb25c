package extract

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func glyph(s string, x, y, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w, FontSize: 10}
}

func TestGroupByBaseline(t *testing.T) {
	// Two lines, glyphs deliberately interleaved. Y is the PDF baseline,
	// so the higher value is the upper line.
	texts := []pdf.Text{
		glyph("b", 10, 700, 5),
		glyph("x", 10, 650, 5),
		glyph("a", 5, 700, 5),
		glyph("y", 15, 650.5, 5), // within jitter tolerance of the lower line
	}

	lines := groupByBaseline(texts)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if len(lines[0]) != 2 || len(lines[1]) != 2 {
		t.Errorf("line sizes = %d, %d; want 2, 2", len(lines[0]), len(lines[1]))
	}
	if lines[0][0].Y != 700 {
		t.Errorf("first line baseline = %v, want 700 (top of page first)", lines[0][0].Y)
	}
}

func TestMergeLineJoinsAdjacentGlyphs(t *testing.T) {
	// "Hi" as two touching glyphs, then "there" far to the right.
	line := []pdf.Text{
		glyph("H", 10, 700, 6),
		glyph("i", 16, 700, 3),
		glyph("t", 50, 700, 4),
		glyph("h", 54, 700, 4),
	}

	fragments := mergeLine(line, 792)
	if len(fragments) != 2 {
		t.Fatalf("got %d fragments %v, want 2", len(fragments), fragments)
	}
	if fragments[0].Text != "Hi" || fragments[1].Text != "th" {
		t.Errorf("texts = %q, %q; want Hi, th", fragments[0].Text, fragments[1].Text)
	}
	if fragments[0].Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0 for native text", fragments[0].Confidence)
	}
}

func TestMergeLineFlipsCoordinates(t *testing.T) {
	line := []pdf.Text{glyph("A", 100, 700, 8)}

	fragments := mergeLine(line, 792)
	if len(fragments) != 1 {
		t.Fatalf("got %d fragments, want 1", len(fragments))
	}

	box := fragments[0].BBox
	// Baseline 700 with font size 10 on a 792pt page: top = 792-710=82,
	// bottom = 792-700=92. Y must grow downward.
	if box.Top() != 82 || box.Bottom() != 92 {
		t.Errorf("top/bottom = %v/%v, want 82/92", box.Top(), box.Bottom())
	}
	if box.Left() != 100 || box.Right() != 108 {
		t.Errorf("left/right = %v/%v, want 100/108", box.Left(), box.Right())
	}
}

func TestMergeLineUnsortedInput(t *testing.T) {
	// Reading order comes from X position, not emission order.
	line := []pdf.Text{
		glyph("world", 60, 700, 25),
		glyph("hello", 10, 700, 25),
	}

	fragments := mergeLine(line, 792)
	if len(fragments) != 2 {
		t.Fatalf("got %d fragments, want 2", len(fragments))
	}
	if fragments[0].Text != "hello" || fragments[1].Text != "world" {
		t.Errorf("order = %q, %q; want hello, world", fragments[0].Text, fragments[1].Text)
	}
}
