package catalog

import "strings"

// Source identifies which upstream feed an entry came from. The source
// determines how the entry's image URL is built.
type Source int

const (
	SourceTwitch Source = iota
	SourceBTTV
	SourceFFZ
)

func (s Source) String() string {
	switch s {
	case SourceTwitch:
		return "twitch"
	case SourceBTTV:
		return "bttv"
	case SourceFFZ:
		return "ffz"
	}
	return "unknown"
}

// Entry is one known emote code. Codes are not unique across entries; the
// tie-break rules live in Snapshot.Lookup.
type Entry struct {
	Code   string
	ID     string
	Source Source
	Set    int
}

// Global reports whether the entry belongs to a globally available emote set.
// Global entries outrank every other set sharing the same code.
func (e Entry) Global() bool {
	return e.Set == 0 || e.Set == 457
}

const (
	twitchImageURL = "http://emote.3v.fi/2.0/"
	ffzImageURL    = "http://cdn.frankerfacez.com/emoticon/"
	imageSize      = "2x"
)

// Snapshot is one immutable generation of the emote catalog. It is never
// mutated after construction; the store replaces whole snapshots atomically.
type Snapshot struct {
	Entries []Entry

	// ImageTemplate is the BTTV URL template with {{id}} and {{image}}
	// placeholders, supplied by the BTTV feed.
	ImageTemplate string
}

// Lookup resolves a code to the best matching entry. The first pass compares
// codes case-sensitively; when fold is set and the first pass matched nothing,
// a second case-insensitive pass runs. Within a pass a global-set entry wins
// outright, otherwise the highest set number seen wins.
func (s *Snapshot) Lookup(code string, fold bool) (Entry, bool) {
	if e, ok := s.scan(code, false); ok {
		return e, true
	}
	if fold {
		return s.scan(code, true)
	}
	return Entry{}, false
}

func (s *Snapshot) scan(code string, fold bool) (Entry, bool) {
	var (
		best    Entry
		found   bool
		bestSet = -2
	)
	for _, e := range s.Entries {
		if e.Code == "" {
			continue
		}
		if fold {
			if !strings.EqualFold(e.Code, code) {
				continue
			}
		} else if e.Code != code {
			continue
		}
		if e.Global() {
			return e, true
		}
		if e.Set > bestSet {
			best = e
			found = true
			bestSet = e.Set
		}
	}
	return best, found
}

// ImageURL builds the resolved image URL for an entry.
func (s *Snapshot) ImageURL(e Entry) string {
	switch e.Source {
	case SourceTwitch:
		return twitchImageURL + e.ID + ".png"
	case SourceBTTV:
		url := strings.ReplaceAll(s.ImageTemplate, "{{id}}", e.ID)
		url = strings.ReplaceAll(url, "{{image}}", imageSize)
		return "https:" + url
	case SourceFFZ:
		return ffzImageURL + e.ID + "/2"
	}
	return ""
}
