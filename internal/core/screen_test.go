package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.SetCell(0, -1, 'A', ColorEnemy)
	s.Tint(0, 100, ColorEnemy)

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.GetCell(100, 0).Color != ColorDefault {
		t.Error("Out of bounds GetCell should return a blank cell")
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(5, 1)

	s.SetCell(1, 0, 'g', ColorEnemy)
	s.Set(1, 0, 'G')
	if c := s.GetCell(1, 0); c.Rune != 'G' || c.Color != ColorEnemy {
		t.Errorf("Set should keep the colour, got %+v", c)
	}

	s.Tint(1, 0, ColorEnemyFrozen)
	if c := s.GetCell(1, 0); c.Rune != 'G' || c.Color != ColorEnemyFrozen {
		t.Errorf("Tint should keep the rune, got %+v", c)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.SetCell(x, y, 'X', ColorHUD)
		}
	}

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("After Clear, expected blank at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)

	s.DrawText(2, 1, "Wave 3", ColorHUD)
	if got := strings.TrimRight(s.Row(1), " "); got != "  Wave 3" {
		t.Errorf("Row(1) = %q", got)
	}
	if s.GetCell(2, 1).Color != ColorHUD {
		t.Error("DrawText should colour the text")
	}

	// Clipped at the right edge
	s.DrawText(17, 2, "abcdef", ColorDefault)
	if got := s.Row(2)[17:]; got != "abc" {
		t.Errorf("Expected clipped text 'abc', got %q", got)
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(0, 0, "→x", ColorDefault)
	if s.Get(0, 0) != '→' || s.Get(1, 0) != 'x' {
		t.Errorf("Multi-byte runes should occupy one cell each, got %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorMuted)

	if s.Get(1, 1) != '┌' {
		t.Errorf("Top-left corner should be '┌', got %q", s.Get(1, 1))
	}
	if s.Get(5, 1) != '┐' {
		t.Errorf("Top-right corner should be '┐', got %q", s.Get(5, 1))
	}
	if s.Get(1, 4) != '└' {
		t.Errorf("Bottom-left corner should be '└', got %q", s.Get(1, 4))
	}
	if s.Get(5, 4) != '┘' {
		t.Errorf("Bottom-right corner should be '┘', got %q", s.Get(5, 4))
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("Edges not drawn")
	}
	if s.Get(3, 2) != ' ' {
		t.Error("Box interior should stay empty")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'A')
	s.Set(2, 1, 'B')

	expected := "A  \n  B"
	if s.String() != expected {
		t.Errorf("String() = %q, expected %q", s.String(), expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.SetCell(2, 2, 'X', ColorEnemy)
	s.Set(8, 8, 'Y')

	s.Resize(5, 5)
	if s.Width() != 5 || s.Height() != 5 {
		t.Errorf("After resize, expected 5x5, got %dx%d", s.Width(), s.Height())
	}
	if c := s.GetCell(2, 2); c.Rune != 'X' || c.Color != ColorEnemy {
		t.Errorf("Content inside new bounds should be preserved, got %+v", c)
	}

	s.Resize(10, 10)
	if s.Get(8, 8) != ' ' {
		t.Error("Content outside the shrunk area should be lost")
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 1, "Hello", ColorDefault)

	if s.Row(1) != "Hello" {
		t.Errorf("Row(1) = %q, expected 'Hello'", s.Row(1))
	}
	if s.Row(-1) != "     " || s.Row(10) != "     " {
		t.Error("Out of bounds Row should return spaces")
	}
}
