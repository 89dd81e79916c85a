package core

import "strings"

// Category is the closed set of expense categories. The zero value is not a
// valid category.
type Category uint8

const (
	Food Category = iota + 1
	Transport
	Bills
	Shopping
	Entertainment
	Health
	Education
	Other
)

const unknownCategoryColor = "#000000"

var categoryNames = [...]string{
	Food:          "Food",
	Transport:     "Transport",
	Bills:         "Bills",
	Shopping:      "Shopping",
	Entertainment: "Entertainment",
	Health:        "Health",
	Education:     "Education",
	Other:         "Other",
}

var categoryColors = [...]string{
	Food:          "#FF5B8D",
	Transport:     "#4F7FFA",
	Bills:         "#FFB800",
	Shopping:      "#0CC0A3",
	Entertainment: "#9D4EDD",
	Health:        "#FF8A48",
	Education:     "#637BD1",
	Other:         "#6A7280",
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryNames)-1)
	for c := Food; c <= Other; c++ {
		out = append(out, c)
	}
	return out
}

func (c Category) IsValid() bool {
	return c >= Food && c <= Other
}

func (c Category) String() string {
	if !c.IsValid() {
		return ""
	}
	return categoryNames[c]
}

// Color is the chart color for the category.
func (c Category) Color() string {
	if !c.IsValid() {
		return unknownCategoryColor
	}
	return categoryColors[c]
}

// ParseCategory matches a category name, ignoring case and surrounding space.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for c := Food; c <= Other; c++ {
		if strings.EqualFold(categoryNames[c], s) {
			return c, nil
		}
	}
	return 0, ErrInvalidCategory
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, ErrInvalidCategory
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
