package workout

// Section identifies one of the checklist groups of a workout
type Section int

const (
	SectionWarmup Section = iota
	SectionMain
	SectionCooldown
)

// Checklist tracks which items the user ticked off during a session.
// Not safe for concurrent use; the owner serializes access.
type Checklist struct {
	checked map[Section]map[int]struct{}
}

func NewChecklist() *Checklist {
	return &Checklist{checked: make(map[Section]map[int]struct{})}
}

// Toggle flips the checked state of an item and returns the new state
func (c *Checklist) Toggle(section Section, index int) bool {
	items, ok := c.checked[section]
	if !ok {
		items = make(map[int]struct{})
		c.checked[section] = items
	}
	if _, done := items[index]; done {
		delete(items, index)
		return false
	}
	items[index] = struct{}{}
	return true
}

func (c *Checklist) IsChecked(section Section, index int) bool {
	_, ok := c.checked[section][index]
	return ok
}

// Count returns how many items of a section are checked
func (c *Checklist) Count(section Section) int {
	return len(c.checked[section])
}

// Reset unchecks everything
func (c *Checklist) Reset() {
	c.checked = make(map[Section]map[int]struct{})
}
