package hashtable

type link struct {
	entry Entry
	next  *link
}

// chain is the owned sequence of entries hanging off one slot. New entries
// go to the head, so within a slot the newest key is visited first.
type chain struct {
	head *link
	size int
}

func (c *chain) len() int {
	return c.size
}

func (c *chain) empty() bool {
	return c.head == nil
}

func (c *chain) pushFront(key string, value int) {
	c.head = &link{entry: Entry{Key: key, Value: value}, next: c.head}
	c.size++
}

func (c *chain) find(key string) *Entry {
	for curr := c.head; curr != nil; curr = curr.next {
		if curr.entry.Key == key {
			return &curr.entry
		}
	}
	return nil
}

func (c *chain) remove(key string) bool {
	if c.head == nil {
		return false
	}
	if c.head.entry.Key == key {
		c.head = c.head.next
		c.size--
		return true
	}
	prev := c.head
	for curr := c.head.next; curr != nil; curr = curr.next {
		if curr.entry.Key == key {
			prev.next = curr.next
			c.size--
			return true
		}
		prev = curr
	}
	return false
}

func (c *chain) each(visit func(Entry) bool) bool {
	for curr := c.head; curr != nil; curr = curr.next {
		if !visit(curr.entry) {
			return false
		}
	}
	return true
}

func (c *chain) values() []Entry {
	if c.size == 0 {
		return nil
	}
	result := make([]Entry, c.size)
	curr := c.head
	for i := 0; curr != nil; i++ {
		result[i] = curr.entry
		curr = curr.next
	}
	return result
}

func (c *chain) clear() {
	c.head = nil
	c.size = 0
}
