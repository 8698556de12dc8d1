package universe

// Entry pairs an instrument code with its display name.
type Entry struct {
	Code string
	Name string
}

// Universe is a fixed, ordered basket of instruments. The declared order
// defines panel display priority; codes outside the universe rank last.
type Universe struct {
	entries []Entry
	rank    map[string]int
}

// New builds a Universe from an ordered entry list.
func New(entries []Entry) Universe {
	rank := make(map[string]int, len(entries))
	for i, e := range entries {
		if _, ok := rank[e.Code]; !ok {
			rank[e.Code] = i
		}
	}
	return Universe{entries: entries, rank: rank}
}

// Default returns the 11 US sector ETFs (GICS classification).
func Default() Universe {
	return New([]Entry{
		{Code: "XLC", Name: "Communication Services"},
		{Code: "XLY", Name: "Consumer Discretionary"},
		{Code: "XLP", Name: "Consumer Staples"},
		{Code: "XLE", Name: "Energy"},
		{Code: "XLF", Name: "Financials"},
		{Code: "XLV", Name: "Health Care"},
		{Code: "XLI", Name: "Industrials"},
		{Code: "XLB", Name: "Materials"},
		{Code: "XLRE", Name: "Real Estate"},
		{Code: "XLK", Name: "Technology"},
		{Code: "XLU", Name: "Utilities"},
	})
}

// Entries returns the declared instrument list in order.
func (u Universe) Entries() []Entry { return u.entries }

// Len returns the number of declared instruments.
func (u Universe) Len() int { return len(u.entries) }

// Rank returns the declared position of code, or Len() for unknown codes
// so they sort after every declared instrument.
func (u Universe) Rank(code string) int {
	if i, ok := u.rank[code]; ok {
		return i
	}
	return len(u.entries)
}

// Name returns the display name for code, falling back to the code itself.
func (u Universe) Name(code string) string {
	if i, ok := u.rank[code]; ok {
		return u.entries[i].Name
	}
	return code
}
