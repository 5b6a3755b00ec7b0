package emotion

import "twc/classify"

// DefaultEmotions is emotion keyword table. Declaration order breaks ties
// between equally scored emotions.
var DefaultEmotions = []classify.Category{
	{Name: "happy", Keywords: []string{
		"happy", "joy", "excited", "thrilled", "delighted", "cheerful", "smile", "laugh",
		"welcomes", "greet", "hero", "sparkling", "victory", "wins", "triumph", "success",
		"celebrates", "rejoices", "glad", "pleased", "content", "satisfied",
		"dances", "sings", "plays", "enjoys", "loves", "appreciates", "blessed",
		"together forever", "lived happily", "peace", "harmony", "reunited",
	}},
	{Name: "sad", Keywords: []string{
		"sad", "crying", "tears", "depressed", "unhappy", "miserable", "grief", "sorrow",
		"tear", "broken", "destroyed", "lost", "defeated", "failed", "died", "death",
		"heartbroken", "devastated", "crushed", "disappointed", "hopeless", "despair",
		"weeps", "sobs", "mourns", "laments", "sighs", "droops",
	}},
	{Name: "angry", Keywords: []string{
		"angry", "mad", "furious", "rage", "fury", "irritated", "annoyed", "fierce",
		"shouts", "attack", "fights", "battles", "wars", "conflicts", "enraged",
		"strikes", "hits", "punches", "kicks", "throws", "destroys", "smashes",
		"boiling", "steaming", "livid", "outraged", "infuriated", "wrath",
	}},
	{Name: "confused", Keywords: []string{
		"confused", "puzzled", "bewildered", "perplexed", "uncertain", "unsure",
		"confuses", "doesn't remember", "forgets", "lost memory", "amnesia",
		"doesn't understand", "mystified", "baffled", "stumped", "clueless",
		"stares blankly", "looks around", "shakes head", "scratches head",
	}},
	{Name: "stressed", Keywords: []string{
		"stressed", "worried", "anxious", "nervous", "tense", "afraid", "scared", "fear",
		"panics", "battle", "war", "danger", "threat", "chase", "escape", "hiding",
		"trembles", "shakes", "sweats", "pants", "gasps", "hyperventilates",
		"trapped", "cornered", "surrounded", "outnumbered", "helpless",
	}},
	{Name: "surprised", Keywords: []string{
		"surprised", "shocked", "amazed", "astonished", "stunned", "wonder",
		"looks surprised", "flash", "suddenly", "unexpectedly", "out of nowhere",
		"magic", "transforms", "changes", "appears", "disappears", "materializes",
		"gasps", "jumps", "startles", "wide eyes", "open mouth", "jaw drops",
	}},
	{Name: "suspicious", Keywords: []string{
		"suspicious", "doubtful", "skeptical", "distrustful", "wary",
		"really don't remember", "questions", "doubts", "suspects", "wonders if",
		"carefully", "slowly", "hesitantly", "cautiously", "guardedly",
		"doesn't trust", "suspicious of", "looks sideways", "narrows eyes",
	}},
	{Name: "sleeping", Keywords: []string{
		"sleeping", "asleep", "rest", "dream", "sleep", "sleeps",
		"dreams", "dreaming", "resting", "napping", "dozing", "slumbering",
		"yawns", "stretches", "wakes up", "falls asleep", "drifts off",
	}},
	{Name: "crying", Keywords: []string{
		"crying", "weeping", "sobbing", "tears", "wailing",
		"tears fall", "eyes water", "sniffles", "whimpers", "moans",
		"cries out", "bursts into tears", "breaks down", "emotional",
	}},
	{Name: "annoyed", Keywords: []string{
		"annoyed", "irritated", "bothered", "frustrated",
		"rolls eyes", "sighs", "groans", "complains", "grumbles",
		"impatient", "exasperated", "fed up", "tired of", "had enough",
	}},
	{Name: "laugh", Keywords: []string{
		"laugh", "laughing", "giggle", "chuckle", "amused",
		"jokes", "funny", "humorous", "entertained", "delighted",
		"guffaws", "chortles", "snickers", "cackles", "roars with laughter",
	}},
}
