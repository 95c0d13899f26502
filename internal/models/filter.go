package models

// EntryFilter narrows an entry listing. Every field is optional and the
// predicates combine with AND.
type EntryFilter struct {
	// Mood restricts the listing to one category when set.
	Mood *Mood

	// StartDate and EndDate bound the entry date inclusively. They are
	// compared as strings, which is valid for YYYY-MM-DD.
	StartDate string
	EndDate   string

	// Offset skips that many matching entries, then Limit caps the result.
	// Zero disables either.
	Offset int
	Limit  int
}

// Match reports whether e satisfies the mood and date predicates.
func (f EntryFilter) Match(e Entry) bool {
	if f.Mood != nil && e.Mood != *f.Mood {
		return false
	}
	if f.StartDate != "" && e.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && e.Date > f.EndDate {
		return false
	}
	return true
}

// Window applies Offset and then Limit to an already ordered slice.
func (f EntryFilter) Window(list []Entry) []Entry {
	if f.Offset > 0 {
		if f.Offset >= len(list) {
			return []Entry{}
		}
		list = list[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(list) {
		list = list[:f.Limit]
	}
	return list
}

// Apply filters, orders and windows list, returning a new slice.
func (f EntryFilter) Apply(list []Entry) []Entry {
	out := make([]Entry, 0, len(list))
	for _, e := range list {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	SortEntries(out)
	return f.Window(out)
}
