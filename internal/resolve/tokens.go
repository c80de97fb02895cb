package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joebot/emotic/internal/catalog"
)

// Scanner resolves emote codes and inline temperature conversions from a
// message's tokens.
type Scanner struct {
	store     *catalog.Store
	onResolve func()
}

// NewScanner creates a token scanner reading from the given catalog store.
// onResolve, if set, is invoked for every emote resolution served.
func NewScanner(store *catalog.Store, onResolve func()) *Scanner {
	return &Scanner{store: store, onResolve: onResolve}
}

// Scan walks the tokens from last to first and returns a reply for the first
// token that resolves. The rightmost recognized token wins; an emote match
// late in the message beats a temperature pattern earlier in it.
func (s *Scanner) Scan(words []string) (Reply, bool) {
	snap := s.store.Snapshot()

	for i := len(words) - 1; i >= 0; i-- {
		word := words[i]

		if strings.HasPrefix(word, "#") && len(word) > 1 {
			if reply, ok := s.emote(snap, word[1:], false); ok {
				return reply, true
			}
		} else if len(word) > 2 && strings.HasPrefix(word, ":") && strings.HasSuffix(word, ":") {
			if reply, ok := s.emote(snap, word[1:len(word)-1], true); ok {
				return reply, true
			}
		}

		switch word {
		case "C":
			if i >= 1 {
				if celsius, err := strconv.Atoi(words[i-1]); err == nil {
					return temperatureCard(celsius, "°C", celsius*9/5+32, "°F"), true
				}
			}
		case "F":
			if i >= 1 {
				if fahrenheit, err := strconv.Atoi(words[i-1]); err == nil {
					return temperatureCard(fahrenheit, "°F", (fahrenheit-32)*5/9, "°C"), true
				}
			}
		}
	}

	return Reply{}, false
}

func (s *Scanner) emote(snap *catalog.Snapshot, code string, fold bool) (Reply, bool) {
	entry, ok := snap.Lookup(code, fold)
	if !ok {
		return Reply{}, false
	}
	if s.onResolve != nil {
		s.onResolve()
	}
	return TextReply(snap.ImageURL(entry)), true
}

func temperatureCard(from int, fromUnit string, to int, toUnit string) Reply {
	return Reply{Card: &Card{
		Title: "Temperature",
		Body:  fmt.Sprintf("%d %s = %d %s", from, fromUnit, to, toUnit),
	}}
}
