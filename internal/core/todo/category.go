package todo

import "strings"

// Category classifies an item for presentation. The zero value is
// Uncategorized.
type Category int

const (
	Uncategorized Category = iota
	Quiz
	Homework
)

// Categories lists every category in display order.
var Categories = []Category{Quiz, Homework, Uncategorized}

// ParseCategory maps stored and user-entered names onto a Category. Anything
// unrecognized, including "" and "none", is Uncategorized.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiz":
		return Quiz
	case "hw", "homework":
		return Homework
	default:
		return Uncategorized
	}
}

// String returns the storage key: quiz, hw or none.
func (c Category) String() string {
	switch c {
	case Quiz:
		return "quiz"
	case Homework:
		return "hw"
	default:
		return "none"
	}
}

// Title returns the section heading for the category.
func (c Category) Title() string {
	switch c {
	case Quiz:
		return "Quiz"
	case Homework:
		return "HW"
	default:
		return "Uncategorized"
	}
}

// HasDeadline reports whether items of this category may carry a deadline in
// the add/edit forms.
func (c Category) HasDeadline() bool {
	return c == Quiz || c == Homework
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	*c = ParseCategory(string(b))
	return nil
}
