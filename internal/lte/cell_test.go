package lte

import "testing"

func TestCellValidate(t *testing.T) {
	cases := []struct {
		name    string
		cell    Cell
		wantErr bool
	}{
		{"valid normal", Cell{NofPRB: 25, NofPorts: 2, CP: CPNormal, ID: 5}, false},
		{"valid extended", Cell{NofPRB: 100, NofPorts: 4, CP: CPExtended, ID: 503}, false},
		{"too few prb", Cell{NofPRB: 5, NofPorts: 1, CP: CPNormal}, true},
		{"too many prb", Cell{NofPRB: 101, NofPorts: 1, CP: CPNormal}, true},
		{"bad port count", Cell{NofPRB: 25, NofPorts: 3, CP: CPNormal}, true},
		{"negative id", Cell{NofPRB: 25, NofPorts: 1, CP: CPNormal, ID: -1}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cell.Validate()
			if (err != nil) != c.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

func TestNSymbPerSF(t *testing.T) {
	if got := NSymbPerSF(CPNormal); got != 14 {
		t.Errorf("NSymbPerSF(normal) = %d, want 14", got)
	}
	if got := NSymbPerSF(CPExtended); got != 12 {
		t.Errorf("NSymbPerSF(extended) = %d, want 12", got)
	}
}

func TestGridLen(t *testing.T) {
	c := Cell{NofPRB: 25, NofPorts: 1, CP: CPNormal, ID: 0}
	want := 14 * 25 * 12
	if got := c.GridLen(); got != want {
		t.Errorf("GridLen() = %d, want %d", got, want)
	}
}

func TestSymbolSz(t *testing.T) {
	cases := map[int]int{6: 128, 15: 256, 25: 384, 50: 768, 75: 1024, 100: 1536}
	for prb, want := range cases {
		if got := SymbolSz(prb); got != want {
			t.Errorf("SymbolSz(%d) = %d, want %d", prb, got, want)
		}
	}
}

func TestIDMod6(t *testing.T) {
	c := Cell{ID: 503}
	if got := c.IDMod6(); got != 503%6 {
		t.Errorf("IDMod6() = %d, want %d", got, 503%6)
	}
}
