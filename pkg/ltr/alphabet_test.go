package ltr

import "testing"

func TestDefaultAlphabet(t *testing.T) {
	a := DefaultAlphabet()
	if a.Size() != 28 {
		t.Fatalf("Size() = %d, want 28", a.Size())
	}
	if a.String() != DefaultSymbols {
		t.Errorf("String() = %q, want %q", a.String(), DefaultSymbols)
	}

	testCases := []struct {
		symbol rune
		index  int
		ok     bool
	}{
		{'a', 0, true},
		{'z', 25, true},
		{'A', 0, true},
		{'Q', 16, true},
		{'\'', 26, true},
		{'-', 27, true},
		{'1', 0, false},
		{'#', 0, false},
		{' ', 0, false},
		{'é', 0, false},
	}
	for _, tc := range testCases {
		idx, ok := a.IndexOf(tc.symbol)
		if ok != tc.ok || (ok && idx != tc.index) {
			t.Errorf("IndexOf(%q) = (%d, %v), want (%d, %v)", tc.symbol, idx, ok, tc.index, tc.ok)
		}
	}

	for i := 0; i < a.Size(); i++ {
		idx, ok := a.IndexOf(a.SymbolAt(i))
		if !ok || idx != i {
			t.Errorf("IndexOf(SymbolAt(%d)) = (%d, %v), want (%d, true)", i, idx, ok, i)
		}
	}
}

func TestNewAlphabet(t *testing.T) {
	testCases := []struct {
		name    string
		symbols string
		size    int
		wantErr bool
	}{
		{name: "Custom", symbols: "abc", size: 3},
		{name: "Unicode", symbols: "aäo", size: 3},
		{name: "Empty", symbols: "", wantErr: true},
		{name: "Duplicate", symbols: "abca", wantErr: true},
		{name: "Uppercase", symbols: "abC", wantErr: true},
		{name: "Too large", symbols: longSymbols(256), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := NewAlphabet(tc.symbols)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected an error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewAlphabet(%q) error = %v", tc.symbols, err)
			}
			if a.Size() != tc.size {
				t.Errorf("Size() = %d, want %d", a.Size(), tc.size)
			}
		})
	}
}

func TestAlphabetEqual(t *testing.T) {
	a, _ := NewAlphabet(DefaultSymbols)
	if !a.Equal(DefaultAlphabet()) {
		t.Error("alphabets with the same symbols should be equal")
	}
	b, _ := NewAlphabet("abcdefghijklmnopqrstuvwxyz-'")
	if a.Equal(b) {
		t.Error("alphabets with a different order should not be equal")
	}
}

// longSymbols returns n distinct lowercase-safe symbols.
func longSymbols(n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = rune(0x4e00 + i) // CJK ideographs have no case
	}
	return string(out)
}
