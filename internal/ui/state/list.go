package state

// SelectableList is an ordered set of labels with a wrap-around selection.
// selected is -1 when nothing is selected.
type SelectableList struct {
	items    []string
	selected int
}

// NewSelectableList selects the first item when items is non-empty.
func NewSelectableList(items []string) *SelectableList {
	l := &SelectableList{items: cloneItems(items), selected: -1}
	if len(l.items) > 0 {
		l.selected = 0
	}
	return l
}

// Items returns the current labels.
func (l *SelectableList) Items() []string {
	return l.items
}

// Len returns the number of items.
func (l *SelectableList) Len() int {
	return len(l.items)
}

// Selected returns the selected index. The index may be out of range after a
// refresh shrank the list; the next Next or Previous brings it back.
func (l *SelectableList) Selected() (int, bool) {
	if l.selected < 0 {
		return -1, false
	}
	return l.selected, true
}

// SelectedItem returns the selected label, if the selection is in range.
func (l *SelectableList) SelectedItem() (string, bool) {
	if l.selected < 0 || l.selected >= len(l.items) {
		return "", false
	}
	return l.items[l.selected], true
}

// Next advances the selection, wrapping to the first item.
func (l *SelectableList) Next() {
	n := len(l.items)
	if n == 0 {
		return
	}
	l.selected = (l.current() + 1) % n
}

// Previous moves the selection back, wrapping to the last item.
func (l *SelectableList) Previous() {
	n := len(l.items)
	if n == 0 {
		return
	}
	l.selected = (l.current() + n - 1) % n
}

func (l *SelectableList) current() int {
	if l.selected < 0 {
		return 0
	}
	return l.selected
}

// Select moves the selection to i when it is a valid index.
func (l *SelectableList) Select(i int) bool {
	if i < 0 || i >= len(l.items) || i == l.selected {
		return false
	}
	l.selected = i
	return true
}

// RefreshItems swaps in a new item set without re-clamping the selection. A
// list that had nothing selected selects its first item once it has one.
func (l *SelectableList) RefreshItems(items []string) {
	l.items = cloneItems(items)
	if l.selected < 0 && len(l.items) > 0 {
		l.selected = 0
	}
}

func cloneItems(items []string) []string {
	dup := make([]string, len(items))
	copy(dup, items)
	return dup
}
