package graph

import (
	"fmt"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// Labels maps label strings onto dense integer colors. A dictionary is
// filled while the database is loaded and frozen before mining starts;
// after that it is read without locking.
type Labels struct {
	colors map[string]int
	labels []string
	frozen bool
}

func NewLabels() *Labels {
	return &Labels{
		colors: make(map[string]int),
		labels: make([]string, 0, 10),
	}
}

func (c *Labels) Color(label string) int {
	if color, has := c.colors[label]; has {
		return color
	}
	if c.frozen {
		panic(errors.Errorf("label dictionary is frozen, cannot add %q", label))
	}
	color := len(c.labels)
	c.colors[label] = color
	c.labels = append(c.labels, label)
	return color
}

func (c *Labels) Lookup(label string) (int, bool) {
	color, has := c.colors[label]
	return color, has
}

func (c *Labels) Label(color int) string {
	if c == nil {
		return fmt.Sprintf("%d", color)
	}
	if color < 0 || color >= len(c.labels) {
		return fmt.Sprintf("color-[%d]", color)
	}
	return c.labels[color]
}

func (c *Labels) Len() int {
	return len(c.labels)
}

func (c *Labels) Freeze() {
	c.frozen = true
}

func (c *Labels) Frozen() bool {
	return c.frozen
}
