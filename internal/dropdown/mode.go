package dropdown

import "strconv"

// Mode picks the navigation item the fragment is inserted after. The zero
// value is InsertAfterLast.
type Mode struct {
	index   int
	byIndex bool
}

// InsertAfterLast inserts after the last navigation item.
func InsertAfterLast() Mode {
	return Mode{}
}

// InsertAfterIndex inserts after the n-th (0-based) navigation item. When n
// is out of range the page is left alone.
func InsertAfterIndex(n int) Mode {
	return Mode{index: n, byIndex: true}
}

// target returns the index of the chosen item among count items.
func (m Mode) target(count int) (int, bool) {
	if count == 0 {
		return 0, false
	}
	if !m.byIndex {
		return count - 1, true
	}
	if m.index < 0 || m.index >= count {
		return 0, false
	}
	return m.index, true
}

func (m Mode) String() string {
	if m.byIndex {
		return "after-index:" + strconv.Itoa(m.index)
	}
	return "after-last"
}
