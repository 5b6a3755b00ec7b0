// Package characters finds which story roles take part in a passage and who
// is speaking.
package characters

import "slices"

// Role is a fixed character slot independent of in-story names.
type Role string

const (
	Protagonist Role = "protagonist"
	NPC1        Role = "npc_1"
	NPC2        Role = "npc_2"
	NPC3        Role = "npc_3"
)

// Slots lists roles in slot order.
var Slots = []Role{Protagonist, NPC1, NPC2, NPC3}

// MaxOnScreen is how many characters renderer can show at once. Passage
// never references more roles than that.
const MaxOnScreen = 2

// Aliases returns alternative names role may use in asset manifests.
func (r Role) Aliases() []string {
	if r == Protagonist {
		return []string{"main_char", "main_character"}
	}
	return nil
}

func (r Role) Known() bool {
	return slices.Contains(Slots, r)
}

// Cast is an ordered set of roles bounded by MaxOnScreen. Zero value is
// ready to use.
type Cast struct {
	roles []Role
}

// Add appends role keeping first seen order. It returns false when role is
// already present or cast is full.
func (c *Cast) Add(r Role) bool {
	if c.Contains(r) || c.Full() {
		return false
	}
	c.roles = append(c.roles, r)
	return true
}

func (c *Cast) Contains(r Role) bool {
	return slices.Contains(c.roles, r)
}

func (c *Cast) Full() bool {
	return len(c.roles) >= MaxOnScreen
}

func (c *Cast) Len() int {
	return len(c.roles)
}

// Roles returns roles in the order they were added.
func (c *Cast) Roles() []Role {
	return slices.Clone(c.roles)
}
