package termcore

import "testing"

func TestSnapshotCloneIsIndependent(t *testing.T) {
	orig := Snapshot{
		Cells: []IndexedCell{
			{Line: 0, Column: 0, Cell: Cell{Char: 'a'}},
			{Line: 0, Column: 1, Cell: Cell{Char: 'b'}},
		},
		Selection: &Selection{
			Start: Point{Line: 0, Column: 0},
			End:   Point{Line: 0, Column: 1},
		},
		Title: "orig",
	}

	clone := orig.Clone()
	clone.Cells[0].Cell.Char = '!'
	clone.Selection.End.Column = 9

	if orig.Cells[0].Cell.Char != 'a' {
		t.Fatalf("mutating the clone's cells leaked into the original: %q", orig.Cells[0].Cell.Char)
	}
	if orig.Selection.End.Column != 1 {
		t.Fatalf("mutating the clone's selection leaked into the original: %d", orig.Selection.End.Column)
	}
}

func TestSnapshotCloneOfZeroValue(t *testing.T) {
	var zero Snapshot
	clone := zero.Clone()
	if clone.Cells != nil || clone.Selection != nil {
		t.Fatalf("expected nil cells and selection cloning the zero snapshot, got %+v", clone)
	}
}

func TestCellFlagsHas(t *testing.T) {
	f := FlagBold | FlagUnderline
	if !f.Has(FlagBold) || !f.Has(FlagUnderline) {
		t.Fatal("expected both set flags to be reported")
	}
	if f.Has(FlagItalic) {
		t.Fatal("expected unset flag to be absent")
	}
	if f.Has(FlagBold | FlagItalic) {
		t.Fatal("Has must require all bits of the mask")
	}
}

func TestModeHas(t *testing.T) {
	m := ModeBracketedPaste | ModeAlternateScreen
	if !m.Has(ModeBracketedPaste) {
		t.Fatal("expected bracketed paste mode to be reported")
	}
	if m.Has(ModeApplicationCursor) {
		t.Fatal("expected application cursor mode to be absent")
	}
}

func TestColorConstructors(t *testing.T) {
	c := RGBColor(1, 2, 3)
	if c.Kind != ColorRGB || c.R != 1 || c.G != 2 || c.B != 3 {
		t.Fatalf("unexpected RGB color: %+v", c)
	}
	n := NamedColor(7)
	if n.Kind != ColorNamed || n.Named != 7 {
		t.Fatalf("unexpected named color: %+v", n)
	}
	if DefaultColor.Kind != ColorDefault {
		t.Fatalf("unexpected default color kind: %v", DefaultColor.Kind)
	}
}
