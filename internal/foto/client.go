package foto

import "context"

// Client provides an interface to the photo service for a single user
// session. Implementations own the session token: Login establishes it,
// Logout invalidates it, and the listing calls require it.
type Client interface {
	// Login opens an authenticated session for the configured user.
	Login(ctx context.Context) error

	// Logout closes the session. Safe to call when no session is open.
	Logout(ctx context.Context) error

	// ListFolders returns the immediate children of the given folder in the
	// given space. folderID 0 is the root of the space. Implementations
	// return the complete child list, paging through the service as needed.
	ListFolders(ctx context.Context, space Space, folderID int64) ([]Folder, error)

	// ListAlbums returns all albums visible to the user.
	ListAlbums(ctx context.Context) ([]Album, error)

	// ListAlbumItems returns all items of the given album.
	ListAlbumItems(ctx context.Context, albumID int64) ([]Item, error)

	// UserInfo returns details about the authenticated user.
	UserInfo(ctx context.Context) (*UserInfo, error)
}

// Account pairs a configured username with the client that speaks for it.
type Account struct {
	Username string
	Client   Client
}
