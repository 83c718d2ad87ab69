package domain

// EmotionGenres maps each emotion to its default genre list, used when the
// caller supplies no genre preferences.
var EmotionGenres = map[string][]string{
	"happy":     {"pop", "dance", "electronic", "funk", "disco", "reggae"},
	"sad":       {"blues", "acoustic", "classical", "jazz", "indie", "folk"},
	"angry":     {"metal", "rock", "punk", "hardcore", "industrial", "grunge"},
	"neutral":   {"alternative", "indie", "pop rock", "ambient", "world"},
	"excited":   {"edm", "dance", "house", "techno", "dubstep", "drum and bass"},
	"relaxed":   {"lo-fi", "ambient", "chillout", "jazz", "classical", "acoustic"},
	"nostalgic": {"classic rock", "oldies", "80s", "70s", "90s", "soul", "motown"},
}

// FallbackGenres is used when an emotion has no configured genre list.
var FallbackGenres = []string{"pop", "rock", "alternative", "electronic", "indie"}

// GenreDescriptions gives each known genre a short free-text description
// used for semantic matching against the conversation. Genres missing here
// get a synthesized description instead.
var GenreDescriptions = map[string]string{
	"pop":           "Catchy, upbeat commercial music with strong melodies",
	"rock":          "Guitar-driven music with attitude and energy",
	"hip hop":       "Rhythmic music with rapping and urban beats",
	"jazz":          "Improvisational music with complex harmonies and rhythms",
	"classical":     "Orchestral or chamber music from the western tradition",
	"electronic":    "Computer-generated music with synthesizers and digital sounds",
	"country":       "Folk-derived music with storytelling and rural themes",
	"r&b":           "Rhythm and blues with soulful vocals and grooves",
	"metal":         "Heavy, aggressive rock music with distorted guitars",
	"indie":         "Alternative music from independent labels with unique sounds",
	"folk":          "Traditional acoustic music with storytelling",
	"blues":         "Emotional music with specific chord progressions and soulful vocals",
	"reggae":        "Jamaican music with offbeat rhythms and positive messages",
	"punk":          "Fast, aggressive rock with anti-establishment themes",
	"soul":          "Emotional, gospel-influenced r&b music",
	"funk":          "Rhythmic dance music with prominent bass lines",
	"disco":         "Upbeat dance music from the 70s with four-on-the-floor beats",
	"ambient":       "Atmospheric music focusing on sound textures rather than rhythm",
	"edm":           "Electronic dance music designed for clubs and festivals",
	"lo-fi":         "Low fidelity relaxing beats, often with nostalgic elements",
	"house":         "Electronic dance music with four-on-the-floor beats and samples",
	"techno":        "Repetitive, electronic dance music with artificial sounds",
	"acoustic":      "Unplugged, natural instrument-based music",
	"alternative":   "Non-mainstream rock music with diverse influences",
	"dubstep":       "Electronic music with emphasized sub-bass and rhythmic patterns",
	"trap":          "Hip hop subgenre with heavy bass, rapid hi-hats, and dark themes",
	"classic rock":  "Rock music from the 60s to 80s with guitar solos and anthems",
	"80s":           "Synthesizer-heavy pop and rock music from the 1980s",
	"90s":           "Diverse music from the 1990s including grunge, pop, and early hip hop",
	"oldies":        "Popular music from the 50s and 60s with simple structures",
	"grunge":        "Dark, heavy rock from the early 90s with distorted guitars",
	"drum and bass": "Fast breakbeat electronic music with heavy bass lines",
	"chillout":      "Relaxing, downtempo electronic music",
	"world":         "Music drawing from diverse global traditions and instruments",
}
