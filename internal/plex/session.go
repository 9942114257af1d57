package plex

// Session is the remote playback descriptor for one user/library.
// Recomputed on every poll; never persisted.
type Session struct {
	GUID     string  // opaque identifier, stable for one playback
	Title    string  // series title (grandparent), falling back to the item title
	Season   int     // defaults to 1 when the server omits it
	Episode  int     // defaults to 1 when the server omits it
	Position float64 // playback position in seconds
	Paused   bool
	User     string
	Library  string
}
