package domain

import "time"

// ParsedFeed is a fetched feed document
type ParsedFeed struct {
	Title   string
	Link    string
	Entries []RawEntry
}

// RawEntry is a single feed entry as fetched, before normalization
type RawEntry struct {
	Title           string
	Link            string
	Content         string     // full content body (HTML), may be empty
	Description     string     // description or summary field (HTML), may be empty
	Published       string     // raw published date as found in the document
	PublishedParsed *time.Time // published date parsed by the feed library, if any
}

// NormalizedEntry is a raw entry with its content converted to plain text
type NormalizedEntry struct {
	RawEntry
	Text      string
	Published *time.Time
}
