package dropdown

// Entry is one selectable row: a candidate key or the add row.
type Entry struct {
	Key string
	Add bool
}

// Entries lists the selectable rows in display order.
func (v View) Entries() []Entry {
	out := make([]Entry, 0, len(v.Items)+1)
	for _, it := range v.Items {
		out = append(out, Entry{Key: it.Key})
	}
	if v.Add.Visible {
		out = append(out, Entry{Key: v.Add.Query, Add: true})
	}
	return out
}

// Selected returns the highlighted row.
func (v View) Selected() (Entry, bool) {
	i := v.selectedIndex()
	if i < 0 {
		return Entry{}, false
	}
	return v.Entries()[i], true
}

// Move shifts the highlight by delta rows. It reports false, leaving the
// view as is, when there is no row in that direction.
func (v View) Move(delta int) (View, bool) {
	from := v.selectedIndex()
	if from < 0 {
		return v, false
	}
	to := from + delta
	if to < 0 || to >= len(v.Entries()) {
		return v, false
	}

	out := v
	out.Items = append([]Item{}, v.Items...)
	for i := range out.Items {
		out.Items[i].Selected = i == to
	}
	out.Add.Selected = out.Add.Visible && to == len(out.Items)
	return out, true
}

// Next moves the highlight one row down.
func (v View) Next() (View, bool) { return v.Move(1) }

// Prev moves the highlight one row up.
func (v View) Prev() (View, bool) { return v.Move(-1) }

// Current is Selected under the cursor vocabulary.
func (v View) Current() (Entry, bool) { return v.Selected() }

func (v View) selectedIndex() int {
	for i, it := range v.Items {
		if it.Selected {
			return i
		}
	}
	if v.Add.Visible && v.Add.Selected {
		return len(v.Items)
	}
	return -1
}
