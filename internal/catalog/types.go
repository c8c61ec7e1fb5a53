package catalog

// CollectionNode is one row of the playlist hierarchy. A node with children
// acts as a folder; a childless node with track rows is an exportable
// playlist. ParentID is empty or "root" for top-level nodes.
type CollectionNode struct {
	ID       string
	Name     string
	ParentID string
	Seq      int
}

// TrackRef is one playlist/track association as stored by the catalog.
// FolderRef and FileRef are raw values: they may be percent-encoded, carry a
// file:// scheme, or redundantly repeat the filename. pathresolve turns the
// pair into a usable path.
type TrackRef struct {
	Title      string
	Artist     string
	FolderRef  string
	FileRef    string
	TrackOrder int
}
