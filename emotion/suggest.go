package emotion

import "twc/characters"

type suggestion struct {
	flag     func(Context) bool
	emotions map[characters.Role][]string
}

// Order matters: earlier flags produce earlier suggestions.
var suggestions = []suggestion{
	{func(c Context) bool { return c.Beginning }, map[characters.Role][]string{
		characters.Protagonist: {"happy", "surprised"},
		characters.NPC1:        {"happy", "content"},
	}},
	{func(c Context) bool { return c.Conflict }, map[characters.Role][]string{
		characters.Protagonist: {"stressed", "angry", "surprised"},
		characters.NPC3:        {"angry", "fierce"},
		characters.NPC2:        {"worried", "concerned"},
	}},
	{func(c Context) bool { return c.Resolution }, map[characters.Role][]string{
		characters.Protagonist: {"happy", "relieved"},
		characters.NPC3:        {"defeated", "sad"},
		characters.NPC2:        {"happy", "proud"},
	}},
	{func(c Context) bool { return c.Transformation }, map[characters.Role][]string{
		characters.Protagonist: {"surprised", "happy"},
		characters.NPC1:        {"surprised", "amazed"},
	}},
	{func(c Context) bool { return c.Magic }, map[characters.Role][]string{
		characters.Protagonist: {"surprised", "confused"},
		characters.NPC2:        {"mysterious", "wise"},
	}},
	{func(c Context) bool { return c.Ending }, map[characters.Role][]string{
		characters.Protagonist: {"happy", "content"},
		characters.NPC1:        {"happy", "proud"},
	}},
}

// Suggest returns plausible emotions for role in given context, most likely
// first. Result may contain duplicates.
func Suggest(c Context, role characters.Role) []string {
	var out []string
	for _, s := range suggestions {
		if s.flag(c) {
			out = append(out, s.emotions[role]...)
		}
	}
	return out
}
