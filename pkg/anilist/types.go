package anilist

import (
	"html"
	"regexp"
)

// Media is one anime as returned by AniList, with the synopsis already
// reduced to plain text.
type Media struct {
	ID       int
	Romaji   string
	English  string
	Native   string
	Synonyms []string
	Synopsis string
	CoverURL string
}

// Titles returns every non-empty title variant and synonym.
func (m *Media) Titles() []string {
	titles := make([]string, 0, 3+len(m.Synonyms))
	for _, t := range []string{m.Romaji, m.English, m.Native} {
		if t != "" {
			titles = append(titles, t)
		}
	}
	for _, s := range m.Synonyms {
		if s != "" {
			titles = append(titles, s)
		}
	}
	return titles
}

// graphqlRequest is the POST body for the GraphQL endpoint.
type graphqlRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

// mediaResponse is the GraphQL response envelope.
type mediaResponse struct {
	Data struct {
		Media *mediaJSON `json:"Media"`
	} `json:"data"`
}

type mediaJSON struct {
	ID    int `json:"id"`
	Title struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
		Native  string `json:"native"`
	} `json:"title"`
	Synonyms    []string `json:"synonyms"`
	Description string   `json:"description"`
	CoverImage  struct {
		ExtraLarge string `json:"extraLarge"`
		Large      string `json:"large"`
	} `json:"coverImage"`
}

func (m *mediaJSON) toMedia() *Media {
	cover := m.CoverImage.ExtraLarge
	if cover == "" {
		cover = m.CoverImage.Large
	}
	return &Media{
		ID:       m.ID,
		Romaji:   m.Title.Romaji,
		English:  m.Title.English,
		Native:   m.Title.Native,
		Synonyms: m.Synonyms,
		Synopsis: stripHTML(m.Description),
		CoverURL: cover,
	}
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// stripHTML unescapes HTML entities and removes markup, leaving plain
// text suitable for display.
func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	return tagPattern.ReplaceAllString(html.UnescapeString(s), "")
}
