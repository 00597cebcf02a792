package components

// List tracks a cursor and scroll window over a collection of Count rows.
// The rows themselves live with the caller.
type List struct {
	Count    int
	Cursor   int
	Offset   int
	PageSize int
}

// NewList creates a list with the given page size.
func NewList(pageSize int) *List {
	if pageSize < 1 {
		pageSize = 1
	}
	return &List{PageSize: pageSize}
}

// Reset sets the row count and moves the cursor back to the top.
func (l *List) Reset(count int) {
	l.Count = count
	l.Cursor = 0
	l.Offset = 0
}

// SetCount changes the row count, keeping the cursor where it was when
// possible. Used after a row disappears from under the cursor.
func (l *List) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	l.Count = count
	if l.Cursor >= count {
		l.Cursor = count - 1
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Offset > l.Cursor {
		l.Offset = l.Cursor
	}
	if maxOffset := count - l.PageSize; l.Offset > maxOffset {
		l.Offset = max(maxOffset, 0)
	}
}

// Down moves the cursor down.
func (l *List) Down() {
	if l.Cursor < l.Count-1 {
		l.Cursor++
		if l.Cursor >= l.Offset+l.PageSize {
			l.Offset++
		}
	}
}

// Up moves the cursor up.
func (l *List) Up() {
	if l.Cursor > 0 {
		l.Cursor--
		if l.Cursor < l.Offset {
			l.Offset--
		}
	}
}

// Window returns the half-open range of visible rows.
func (l *List) Window() (start, end int) {
	end = l.Offset + l.PageSize
	if end > l.Count {
		end = l.Count
	}
	return l.Offset, end
}

// Selected returns the index of the selected row, -1 when empty.
func (l *List) Selected() int {
	if l.Count == 0 {
		return -1
	}
	return l.Cursor
}
