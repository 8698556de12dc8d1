package universe

import "testing"

func TestDefault(t *testing.T) {
	u := Default()
	if u.Len() != 11 {
		t.Fatalf("default universe has %d entries, want 11", u.Len())
	}
	if u.Entries()[0].Code != "XLC" {
		t.Errorf("first entry = %s, want XLC", u.Entries()[0].Code)
	}
	if got := u.Name("XLK"); got != "Technology" {
		t.Errorf("Name(XLK) = %q, want Technology", got)
	}
}

func TestRank(t *testing.T) {
	u := New([]Entry{{Code: "AAA", Name: "First"}, {Code: "BBB", Name: "Second"}})
	if u.Rank("AAA") != 0 || u.Rank("BBB") != 1 {
		t.Errorf("declared ranks = %d/%d, want 0/1", u.Rank("AAA"), u.Rank("BBB"))
	}
	if u.Rank("ZZZ") != 2 {
		t.Errorf("unknown code rank = %d, want %d (after all declared)", u.Rank("ZZZ"), u.Len())
	}
	if got := u.Name("ZZZ"); got != "ZZZ" {
		t.Errorf("unknown code name = %q, want the code itself", got)
	}
}
