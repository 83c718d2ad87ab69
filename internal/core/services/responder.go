package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/moodtune-labs/moodtune/backend/internal/core/ports"
)

// SafetyReply is returned for any toxic message, identical every time and
// independent of every other input.
const SafetyReply = "Let's keep the conversation positive. I'm here to help."

// UnavailableReply substitutes for any generator transport or provider error.
const UnavailableReply = "My music brain is taking a quick break. Let's try again in a moment."

// replyMarker separates the generator's framing from the reply text we keep.
const replyMarker = "REPLY:"

// minGeneratedLength is the shortest generated reply worth showing.
const minGeneratedLength = 20

// emotionTemplates holds three reply templates per recognized emotion.
// Anything unrecognized, including the neutral fallback, uses defaultTemplates.
var emotionTemplates = map[string][]string{
	"happy": {
		"That's great to hear! Want to celebrate with some upbeat music?",
		"Awesome! How about some energetic tracks?",
		"Good vibes only! Any specific song requests?",
	},
	"sad": {
		"I'm here for you. Maybe some soothing music could help?",
		"Sad days happen. Do you have a comfort song?",
		"Music can be healing. Want me to find some soulful tunes?",
	},
	"angry": {
		"I get that. Some powerful music might be a good release!",
		"Let it out! Maybe a high-energy track?",
		"Feeling intense? I can find some hard-hitting beats.",
	},
	"nostalgic": {
		"Ah, nostalgia! Any favorite old-school tracks?",
		"Music is a time machine! Want some retro vibes?",
		"Let's rewind time with some classics.",
	},
	"relaxed": {
		"Chilling is a mood. How about some smooth beats?",
		"Relaxing sounds good! Maybe some gentle music?",
		"Want some peaceful tracks to maintain the vibe?",
	},
	"excited": {
		"Let's turn up the energy! How about some upbeat tracks?",
		"Feeling pumped? Maybe some high-energy beats?",
		"Excitement calls for some danceable music!",
	},
	"neutral": {
		"Music is always a good idea. What are you in the mood for?",
		"Let's find something that fits your day.",
		"I can work with that. Want me to pick something out?",
	},
}

var defaultTemplates = []string{
	"Got it! Let's chat more about music.",
	"Tell me more about what you're looking for!",
	"I'd love to help you find the perfect track.",
}

// fillerReplies stand in when a generated reply fails the acceptance rule.
var fillerReplies = []string{
	"Let's keep the music talk going. What are you listening to lately?",
	"I'm all ears. Tell me more about the mood you're after.",
	"Say the word and I'll line up something that fits.",
}

// Responder turns a classified message into reply text. When a generator is
// configured it delegates the non-toxic branch to it; otherwise it picks
// from the fixed templates.
type Responder struct {
	generator ports.ResponseGenerator
	rng       *lockedRand
}

// NewResponder builds a responder. generator may be nil for template-only
// mode; rng is required and must be dedicated to this responder.
func NewResponder(generator ports.ResponseGenerator, rng *rand.Rand) *Responder {
	return &Responder{generator: generator, rng: newLockedRand(rng)}
}

// Respond selects the reply for one message. The toxic branch wins over
// everything else and always returns the same safety string. This method
// never fails: generator errors are swallowed and replaced.
func (r *Responder) Respond(ctx context.Context, text, intent, emotion string, genres []string, toxic bool) string {
	if toxic {
		return SafetyReply
	}

	if r.generator != nil {
		return r.generated(ctx, text, emotion)
	}

	templates, ok := emotionTemplates[emotion]
	if !ok {
		templates = defaultTemplates
	}
	reply := templates[r.rng.Intn(len(templates))]

	if phrase := genrePhrase(genres); phrase != "" {
		reply = reply + " " + phrase
	}
	return reply
}

// generated asks the external generator for a reply and applies the
// marker-extraction and minimum-length acceptance rules.
func (r *Responder) generated(ctx context.Context, text, emotion string) string {
	prompt := fmt.Sprintf(
		"You are a friendly music chat companion. The user seems to be feeling %s. They said: %q. Write a short conversational reply after the marker %s",
		emotion, text, replyMarker,
	)

	raw, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("WARN responder: generator failed: %v", err)
		return UnavailableReply
	}

	reply := raw
	if idx := strings.Index(raw, replyMarker); idx >= 0 {
		reply = raw[idx+len(replyMarker):]
	}
	reply = strings.TrimSpace(reply)
	if len(reply) >= minGeneratedLength {
		return reply
	}
	return fillerReplies[r.rng.Intn(len(fillerReplies))]
}

// genrePhrase renders the ranked genre list in prose. One genre gets its own
// sentence, two are joined with "or", three to five are comma-joined with a
// final "or".
func genrePhrase(genres []string) string {
	switch {
	case len(genres) == 0:
		return ""
	case len(genres) == 1:
		return fmt.Sprintf("Some %s might suit your mood.", genres[0])
	case len(genres) == 2:
		return fmt.Sprintf("You might enjoy some %s or %s right now.", genres[0], genres[1])
	default:
		listed := strings.Join(genres[:len(genres)-1], ", ")
		return fmt.Sprintf("Based on your mood, I'd recommend %s, or %s.", listed, genres[len(genres)-1])
	}
}
