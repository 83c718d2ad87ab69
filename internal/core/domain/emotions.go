package domain

// ReferenceSentence anchors a label to its canonical meaning. The engine
// embeds these once at startup and matches user text against the resulting
// centroids. Order matters: similarity ties resolve to the first entry.
type ReferenceSentence struct {
	Label    string
	Sentence string
}

// FallbackEmotion is the label substituted when no emotion centroid scores
// above the confidence floor.
const FallbackEmotion = "neutral"

// EmotionSentences are the canonical sentences for each recognized emotion.
var EmotionSentences = []ReferenceSentence{
	{"happy", "I feel joyful and excited."},
	{"sad", "I am feeling very down and depressed."},
	{"angry", "I am really mad and frustrated."},
	{"neutral", "I feel okay and calm."},
	{"excited", "I am thrilled and enthusiastic."},
	{"relaxed", "I am feeling peaceful and calm."},
	{"nostalgic", "I am feeling reminiscent of the past."},
}

// IntentSentences are the canonical sentences for each conversational intent.
var IntentSentences = []ReferenceSentence{
	{"greeting", "Hello! How are you today?"},
	{"music_request", "Can you recommend some music?"},
	{"mood_share", "I'm feeling happy today."},
	{"preference", "I like rock music."},
	{"question", "What kind of music do you like?"},
	{"gratitude", "Thank you for the recommendations."},
	{"complaint", "I don't like these songs."},
}

// ToxicTerms are matched as case-insensitive substrings. No word-boundary
// checks are done, so a term embedded inside a longer benign word will still
// trip the gate. Known limitation, kept as-is.
var ToxicTerms = []string{"hate", "kill", "hurt", "stupid", "idiot", "damn", "fuck", "shit"}

// Characteristics describes the musical profile of an emotion.
type Characteristics struct {
	Tempo    string // fast, slow, moderate
	Mode     string // major, minor, variable
	Energy   string // high, low, moderate
	Keywords []string
}

// EmotionTraits maps each emotion to its musical characteristics. Unknown
// emotions fall back to the neutral entry.
var EmotionTraits = map[string]Characteristics{
	"happy": {
		Tempo:    "fast",
		Mode:     "major",
		Energy:   "high",
		Keywords: []string{"upbeat", "dance", "party", "fun", "energetic", "pop", "disco", "funk"},
	},
	"sad": {
		Tempo:    "slow",
		Mode:     "minor",
		Energy:   "low",
		Keywords: []string{"melancholic", "slow", "emotional", "dark", "piano", "acoustic", "ballad", "folk"},
	},
	"angry": {
		Tempo:    "fast",
		Mode:     "minor",
		Energy:   "high",
		Keywords: []string{"intense", "heavy", "loud", "aggressive", "metal", "rock", "punk", "hardcore"},
	},
	"neutral": {
		Tempo:    "moderate",
		Mode:     "variable",
		Energy:   "moderate",
		Keywords: []string{"balanced", "standard", "classic", "mainstream"},
	},
	"excited": {
		Tempo:    "fast",
		Mode:     "major",
		Energy:   "high",
		Keywords: []string{"energetic", "dance", "upbeat", "party", "edm", "electronic"},
	},
	"relaxed": {
		Tempo:    "slow",
		Mode:     "variable",
		Energy:   "low",
		Keywords: []string{"chill", "calm", "peaceful", "ambient", "lofi", "jazz", "acoustic"},
	},
	"nostalgic": {
		Tempo:    "moderate",
		Mode:     "variable",
		Energy:   "moderate",
		Keywords: []string{"oldies", "retro", "classic", "throwback", "80s", "90s", "70s"},
	},
}

// TraitsFor returns the characteristics for an emotion, defaulting to the
// neutral profile when the label is unknown.
func TraitsFor(emotion string) Characteristics {
	if c, ok := EmotionTraits[emotion]; ok {
		return c
	}
	return EmotionTraits[FallbackEmotion]
}
