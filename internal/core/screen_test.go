package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(80, 24)
	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, want 80x24", s.Width(), s.Height())
	}
	blank := strings.Repeat(" ", 80)
	for y := 0; y < s.Height(); y++ {
		if got := s.Row(y); got != blank {
			t.Fatalf("Row(%d) = %q, want blank", y, got)
		}
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Fatalf("Get(5, 5) = %q, want 'X'", s.Get(5, 5))
	}

	points := []struct{ x, y int }{{-1, 0}, {10, 0}, {0, -1}, {0, 10}, {100, 100}}
	for _, p := range points {
		s.SetColor(p.x, p.y, 'A', ColorRock)
		if got := s.Get(p.x, p.y); got != ' ' {
			t.Errorf("Get(%d, %d) = %q, want space", p.x, p.y, got)
		}
		if got := s.GetCell(p.x, p.y).Color; got != ColorDefault {
			t.Errorf("GetCell(%d, %d).Color = %v, want default", p.x, p.y, got)
		}
	}
	if got := s.Row(-1); got != strings.Repeat(" ", 10) {
		t.Errorf("Row(-1) = %q, want blank", got)
	}
}

func TestScreenSetColor(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColor(1, 1, '^', ColorTree)

	cell := s.GetCell(1, 1)
	if cell.Rune != '^' || cell.Color != ColorTree {
		t.Errorf("GetCell(1, 1) = %+v, want a tree cell", cell)
	}

	s.Clear()
	if cell := s.GetCell(1, 1); cell.Rune != ' ' || cell.Color != ColorDefault {
		t.Errorf("after Clear GetCell(1, 1) = %+v", cell)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	if got := s.Row(1); !strings.HasPrefix(got, "  Hello") {
		t.Errorf("Row(1) = %q", got)
	}

	// Clipped at the right edge
	s.DrawText(17, 2, "World")
	if got := s.Row(2); !strings.HasSuffix(got, "Wor") {
		t.Errorf("Row(2) = %q, expected clipped text", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc", ColorNotice)

	if got := s.Row(0); got != "    abc    " {
		t.Errorf("Row(0) = %q", got)
	}
	if c := s.GetCell(4, 0).Color; c != ColorNotice {
		t.Errorf("color = %v, want notice", c)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawText(0, 1, "XXXXXX")
	s.DrawBox(NewRect(0, 0, 6, 4), ColorPanel)

	want := []string{"┌────┐", "│    │", "│    │", "└────┘"}
	for y, w := range want {
		if got := s.Row(y); got != w {
			t.Errorf("Row(%d) = %q, expected %q", y, got, w)
		}
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawHLine(2, 1, 5, '-', ColorPathMark)

	for x := 2; x < 7; x++ {
		if s.Get(x, 1) != '-' {
			t.Errorf("DrawHLine: expected '-' at (%d, 1), got %q", x, s.Get(x, 1))
		}
	}
	if s.Get(7, 1) != ' ' {
		t.Error("DrawHLine drew past its length")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	for y, line := range []string{"^ ^ ^", " o|o ", "*   *"} {
		s.DrawText(0, y, line)
	}
	if got, want := s.String(), "^ ^ ^\n o|o \n*   *"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}

	row0 := s.Row(0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	s.Resize(15, 8)
	row0 = s.Row(0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
}
