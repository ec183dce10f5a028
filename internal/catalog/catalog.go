// Package catalog holds the ordered set of practice items for one cycle.
package catalog

import (
	"fmt"

	"github.com/abhisek/pinyin/internal/pinyin"
)

// Catalog is an immutable, ordered list of practice items.
type Catalog struct {
	items []Item
}

// New validates items and returns a catalog over a copy of them.
func New(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	cp := make([]Item, len(items))
	copy(cp, items)
	return &Catalog{items: cp}, nil
}

// Len returns the number of items. A nil catalog has length zero.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// At returns the item at index i. It panics when i is out of range, the
// same as a slice index.
func (c *Catalog) At(i int) Item {
	return c.items[i]
}

// Items returns a copy of the items in order.
func (c *Catalog) Items() []Item {
	cp := make([]Item, len(c.items))
	copy(cp, c.items)
	return cp
}

// Index returns the index of the first item with the given character, or -1.
func (c *Catalog) Index(character string) int {
	for i, it := range c.items {
		if it.Character == character {
			return i
		}
	}
	return -1
}

// Neighbors returns the indices adjacent to i, wrapping at both ends,
// without duplicates and never including i itself.
func (c *Catalog) Neighbors(i int) []int {
	n := len(c.items)
	if n < 2 {
		return nil
	}
	prev := (i - 1 + n) % n
	next := (i + 1) % n
	if prev == next {
		return []int{next}
	}
	return []int{prev, next}
}

// Nearest returns the index closest to i whose item satisfies match,
// searching outwards and preferring the later item on ties. It returns -1
// when no other item matches.
func (c *Catalog) Nearest(i int, match func(Item) bool) int {
	n := len(c.items)
	for d := 1; d < n; d++ {
		for _, j := range []int{i + d, i - d} {
			if j < 0 || j >= n {
				continue
			}
			if match(c.items[j]) {
				return j
			}
		}
	}
	return -1
}

// Default returns the built-in practice catalog.
func Default() *Catalog {
	c, err := New(defaultItems)
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
}

var defaultItems = []Item{
	{Character: "媽", Pinyin: "mā", Initial: "m", Final: "a", Tone: pinyin.ToneFirst, Meaning: "mother"},
	{Character: "麻", Pinyin: "má", Initial: "m", Final: "a", Tone: pinyin.ToneSecond, Meaning: "hemp"},
	{Character: "馬", Pinyin: "mǎ", Initial: "m", Final: "a", Tone: pinyin.ToneThird, Meaning: "horse"},
	{Character: "罵", Pinyin: "mà", Initial: "m", Final: "a", Tone: pinyin.ToneFourth, Meaning: "scold"},
	{Character: "吧", Pinyin: "ba", Initial: "b", Final: "a", Tone: pinyin.ToneNeutral, Meaning: "suggestion particle"},
	{Character: "爸", Pinyin: "bà", Initial: "b", Final: "a", Tone: pinyin.ToneFourth, Meaning: "father"},
	{Character: "打", Pinyin: "dǎ", Initial: "d", Final: "a", Tone: pinyin.ToneThird, Meaning: "to hit"},
	{Character: "大", Pinyin: "dà", Initial: "d", Final: "a", Tone: pinyin.ToneFourth, Meaning: "big"},
	{Character: "他", Pinyin: "tā", Initial: "t", Final: "a", Tone: pinyin.ToneFirst, Meaning: "he"},
	{Character: "她", Pinyin: "tā", Initial: "t", Final: "a", Tone: pinyin.ToneFirst, Meaning: "she"},
}
