package manifest

import "strings"

// Asset file names seen in the wild mapped to emotion tags.
var emotionAliases = map[string]string{
	"smiling": "happy", "joy": "happy", "cheerful": "happy", "delighted": "happy", "excited": "happy", "thrilled": "happy",
	"unhappy": "sad", "depressed": "sad", "miserable": "sad", "grief": "sad", "sorrow": "sad",
	"mad": "angry", "furious": "angry", "rage": "angry", "fury": "angry", "fierce": "angry",
	"puzzled": "confused", "bewildered": "confused", "perplexed": "confused", "uncertain": "confused", "unsure": "confused",
	"worried": "stressed", "anxious": "stressed", "nervous": "stressed", "tense": "stressed", "afraid": "stressed", "scared": "stressed", "fear": "stressed",
	"shocked": "surprised", "amazed": "surprised", "astonished": "surprised", "stunned": "surprised", "wonder": "surprised",
	"doubtful": "suspicious", "skeptical": "suspicious", "distrustful": "suspicious", "wary": "suspicious",
	"asleep": "sleeping", "rest": "sleeping", "dream": "sleeping", "sleep": "sleeping",
	"weeping": "crying", "sobbing": "crying", "tears": "crying", "wailing": "crying",
	"irritated": "annoyed", "bothered": "annoyed", "frustrated": "annoyed",
	"laughing": "laugh", "giggle": "laugh", "chuckle": "laugh", "amused": "laugh",
}

// EmotionTag derives emotion tag from asset file name of character with
// given manifest key: "bg/Hero_Smiling.png" becomes "happy".
func EmotionTag(key, file string) string {
	tag := stem(file)
	for _, prefix := range []string{strings.ToLower(key) + "_", "hero_", "hero"} {
		if t, ok := strings.CutPrefix(tag, prefix); ok && len(t) > 0 {
			tag = t
			break
		}
	}
	tag = strings.Trim(tag, "_- ")
	if alias, ok := emotionAliases[tag]; ok {
		return alias
	}
	return tag
}
