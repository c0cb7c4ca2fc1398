package table

// Cursor walks the first records of a table once. It is not restartable:
// after Next returns false it keeps returning false.
type Cursor struct {
	t     *Table
	limit int
	pos   int
	done  bool
}

// Preview returns a cursor over the first n records of t, or all of them
// when t has fewer. A negative n yields nothing.
func (t *Table) Preview(n int) *Cursor {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return &Cursor{t: t, limit: n}
}

// Next advances to the next record.
func (c *Cursor) Next() bool {
	if c.done {
		return false
	}
	if c.pos >= c.limit {
		c.done = true
		return false
	}
	c.pos++
	return true
}

// Record returns the current record. It is the zero Record before the
// first call to Next.
func (c *Cursor) Record() Record {
	if c.pos == 0 {
		return Record{}
	}
	return c.t.Record(c.pos - 1)
}

// Index returns the zero-based position of the current record.
func (c *Cursor) Index() int {
	return c.pos - 1
}
