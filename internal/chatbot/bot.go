package chatbot

import (
	"context"
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
	"time"
)

type Category string

const (
	CategoryGreeting Category = "greeting"
	CategoryIdentity Category = "identity"
	CategoryProjects Category = "projects"
	CategoryFarewell Category = "farewell"
	CategoryDefault  Category = "default"
)

var (
	greetingRe = regexp.MustCompile(`\b(hi|hello|hey|hiya|howdy|greetings|good (morning|afternoon|evening))\b`)
	identityRe = regexp.MustCompile(`\b(who are you|who is|your name|about you|yourself|tell me about|background|experience|skills)\b`)
	projectsRe = regexp.MustCompile(`\b(projects?|portfolio|work|built|build|apps?|showcase)\b`)
	farewellRe = regexp.MustCompile(`\b(bye|goodbye|see you|see ya|later|thanks|thank you|cheers)\b`)
)

var replies = map[Category][]string{
	CategoryGreeting: {
		"Hi there! Ask me about the projects on this site or the person behind them.",
		"Hello! Curious about something in the portfolio?",
		"Hey! I can tell you about the work showcased here.",
	},
	CategoryIdentity: {
		"I'm a small assistant for this portfolio. The author is a developer who enjoys building for the web; the About section has the details.",
		"This site belongs to a software developer. I'm just the helpful bot that lives in the corner.",
	},
	CategoryProjects: {
		"Featured projects are on the home page, and the full list is on the Projects page.",
		"Every project card links to the live work. Head to the Projects page to browse them all.",
		"There's a gallery of projects on this site. Pick one to see its summary and link.",
	},
	CategoryFarewell: {
		"Thanks for stopping by!",
		"Goodbye! Feel free to reach out through the contact form.",
		"See you around!",
	},
	CategoryDefault: {
		"I'm not sure I follow. Try asking about projects or who made this site.",
		"I only know a little about this portfolio. Ask about the projects or the author.",
		"Could you rephrase that? Questions about the work here are my specialty.",
	},
}

// Classify maps a message to a category. Rules are tried in order and the
// first match wins; identity questions that mention projects fall through to projects.
func Classify(message string) Category {
	m := strings.ToLower(strings.TrimSpace(message))
	switch {
	case greetingRe.MatchString(m):
		return CategoryGreeting
	case identityRe.MatchString(m) && !projectsRe.MatchString(m):
		return CategoryIdentity
	case projectsRe.MatchString(m):
		return CategoryProjects
	case farewellRe.MatchString(m):
		return CategoryFarewell
	default:
		return CategoryDefault
	}
}

// Replies returns the candidate replies of a category.
func Replies(c Category) []string {
	return replies[c]
}

// Bot answers chat messages after a randomized delay.
type Bot struct {
	minDelay time.Duration
	maxDelay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func New(minDelay, maxDelay time.Duration) *Bot {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Bot{
		minDelay: minDelay,
		maxDelay: maxDelay,
		rng:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
	}
}

// Reply classifies message and picks one of the category's replies uniformly.
// It returns ctx.Err() if the context ends during the delay.
func (b *Bot) Reply(ctx context.Context, message string) (string, Category, error) {
	cat := Classify(message)
	candidates := replies[cat]

	b.mu.Lock()
	reply := candidates[b.rng.IntN(len(candidates))]
	delay := b.minDelay
	if span := b.maxDelay - b.minDelay; span > 0 {
		delay += time.Duration(b.rng.Int64N(int64(span) + 1))
	}
	b.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", cat, ctx.Err()
		case <-timer.C:
		}
	}

	return reply, cat, nil
}
