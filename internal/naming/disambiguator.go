package naming

import "strconv"

// Disambiguator hands out unique names in first-seen order. The first claim
// of a name keeps it; repeats get a numeric suffix starting at 2.
type Disambiguator struct {
	sep    string
	counts map[string]int
	used   map[string]bool
}

// NewDisambiguator returns an accumulator that joins suffixes with sep.
// Reserved names are never handed out as-is.
func NewDisambiguator(sep string, reserved ...string) *Disambiguator {
	d := &Disambiguator{sep: sep, counts: map[string]int{}, used: map[string]bool{}}
	for _, r := range reserved {
		d.used[r] = true
	}
	return d
}

// Claim returns name, or name plus the next free suffix.
func (d *Disambiguator) Claim(name string) string {
	n := d.counts[name]
	candidate := name
	if n > 0 || d.used[name] {
		if n < 1 {
			n = 1
		}
		for {
			n++
			candidate = name + d.sep + strconv.Itoa(n)
			if !d.used[candidate] {
				break
			}
		}
	} else {
		n = 1
	}
	d.counts[name] = n
	d.used[candidate] = true
	return candidate
}
