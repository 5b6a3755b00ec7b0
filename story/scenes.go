package story

import "twc/classify"

// DefaultBackground is used when no scene keyword matches.
const DefaultBackground = "scenery_0"

// DefaultScenes maps background assets to keywords describing the setting.
var DefaultScenes = []classify.Category{
	{Name: "scenery_1", Keywords: []string{"inside", "room", "house", "home", "interior", "indoor"}},
	{Name: "scenery_2", Keywords: []string{"outside", "garden", "forest", "woods", "nature", "outdoor"}},
	{Name: "scenery_3", Keywords: []string{"castle", "palace", "throne", "royal", "kingdom"}},
	{Name: "scenery_4", Keywords: []string{"battle", "fight", "war", "conflict", "combat", "attack"}},
	{Name: "scenery_5", Keywords: []string{"magical", "fantasy", "enchanted", "wonderland", "magic"}},
	{Name: "scenery_6", Keywords: []string{"night", "dark", "sleep", "dream", "evening", "midnight"}},
}

// SceneTagger selects background for passage text.
type SceneTagger struct {
	table    *classify.Table
	fallback string
}

// NewSceneTagger uses DefaultScenes when categories are empty and
// DefaultBackground when fallback is empty.
func NewSceneTagger(categories []classify.Category, fallback string) *SceneTagger {
	if len(categories) == 0 {
		categories = DefaultScenes
	}
	if len(fallback) == 0 {
		fallback = DefaultBackground
	}
	return &SceneTagger{table: classify.NewTable(categories), fallback: fallback}
}

// Tag returns highest scoring scene, first declared on ties.
func (st *SceneTagger) Tag(text string) string {
	if name, _, ok := st.table.Best(st.table.Score(text), nil); ok {
		return name
	}
	return st.fallback
}
