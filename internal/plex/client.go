// Package plex queries a Plex Media Server for the active playback
// session and for library section locations.
package plex

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// Client interacts with the Plex Media Server API.
type Client struct {
	baseURL    string
	token      string
	user       string
	libraries  map[string]bool
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Plex client scoped to one user and a set of
// library section names.
func NewClient(baseURL, token, user string, libraries []string, log *slog.Logger) *Client {
	libs := make(map[string]bool, len(libraries))
	for _, name := range libraries {
		libs[name] = true
	}
	if log != nil {
		log = log.With("component", "plex")
	}
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		token:     token,
		user:      user,
		libraries: libs,
		log:       log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := xml.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// sessionXML is one Video element of /status/sessions.
type sessionXML struct {
	GUID                string `xml:"guid,attr"`
	Title               string `xml:"title,attr"`
	GrandparentTitle    string `xml:"grandparentTitle,attr"`
	ParentIndex         int    `xml:"parentIndex,attr"`
	Index               int    `xml:"index,attr"`
	ViewOffset          int64  `xml:"viewOffset,attr"`
	LibrarySectionTitle string `xml:"librarySectionTitle,attr"`
	User                struct {
		Title string `xml:"title,attr"`
	} `xml:"User"`
	Player struct {
		State string `xml:"state,attr"`
	} `xml:"Player"`
}

// sessionsResponse is the XML response from /status/sessions.
type sessionsResponse struct {
	XMLName  xml.Name     `xml:"MediaContainer"`
	Sessions []sessionXML `xml:"Video"`
}

// ActiveSession returns the first playback session belonging to the
// configured user inside one of the configured libraries, or nil when
// there is none.
func (c *Client) ActiveSession(ctx context.Context) (*Session, error) {
	var result sessionsResponse
	if err := c.get(ctx, "/status/sessions", &result); err != nil {
		return nil, fmt.Errorf("sessions: %w", err)
	}

	for _, s := range result.Sessions {
		if s.User.Title != c.user {
			continue
		}
		if !c.libraries[s.LibrarySectionTitle] {
			continue
		}

		title := s.GrandparentTitle
		if title == "" {
			title = s.Title
		}
		season, episode := s.ParentIndex, s.Index
		if season < 1 {
			season = 1
		}
		if episode < 1 {
			episode = 1
		}

		return &Session{
			GUID:     s.GUID,
			Title:    title,
			Season:   season,
			Episode:  episode,
			Position: float64(s.ViewOffset) / 1000.0,
			Paused:   s.Player.State == "paused",
			User:     s.User.Title,
			Library:  s.LibrarySectionTitle,
		}, nil
	}

	return nil, nil
}

// Section represents a Plex library section.
type Section struct {
	Key       string     `xml:"key,attr"`
	Title     string     `xml:"title,attr"`
	Type      string     `xml:"type,attr"`
	Locations []Location `xml:"Location"`
}

// Location represents a library section's filesystem location.
type Location struct {
	Path string `xml:"path,attr"`
}

// sectionsResponse is the XML response from /library/sections.
type sectionsResponse struct {
	XMLName  xml.Name  `xml:"MediaContainer"`
	Sections []Section `xml:"Directory"`
}

// GetSections returns all library sections.
func (c *Client) GetSections(ctx context.Context) ([]Section, error) {
	var result sectionsResponse
	if err := c.get(ctx, "/library/sections", &result); err != nil {
		return nil, fmt.Errorf("sections: %w", err)
	}
	return result.Sections, nil
}

// LibraryRoots returns the deduplicated, existing filesystem locations
// of the named library sections. Used when no roots are configured
// explicitly.
func (c *Client) LibraryRoots(ctx context.Context, names []string) ([]string, error) {
	sections, err := c.GetSections(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	seen := make(map[string]bool)
	var roots []string
	for _, sec := range sections {
		if !wanted[sec.Title] {
			continue
		}
		for _, loc := range sec.Locations {
			if loc.Path == "" || seen[loc.Path] {
				continue
			}
			seen[loc.Path] = true
			info, err := os.Stat(loc.Path)
			if err != nil || !info.IsDir() {
				if c.log != nil {
					c.log.Warn("library location not accessible locally, skipping",
						"section", sec.Title, "path", loc.Path)
				}
				continue
			}
			roots = append(roots, loc.Path)
		}
	}

	return roots, nil
}
