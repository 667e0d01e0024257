package testutil

import (
	"context"
	"sync"

	"fotolink/internal/foto"
)

// MockClient is an in-memory foto.Client for testing. Folder trees are
// registered per space with AddFolders, albums and their items with
// AddAlbum, and listing failures injected with FailFolder.
type MockClient struct {
	mu sync.Mutex

	// User is returned by UserInfo.
	User foto.UserInfo

	// LoginErr fails Login when set.
	LoginErr error

	// LogoutErr fails Logout when set.
	LogoutErr error

	// AlbumsErr fails ListAlbums when set.
	AlbumsErr error

	folders    map[foto.Space]map[int64][]foto.Folder
	folderErrs map[foto.Space]map[int64]error
	albums     []foto.Album
	items      map[int64][]foto.Item

	Logins  int
	Logouts int
}

// NewMockClient creates an empty mock client. Unregistered folders list
// as empty, matching a service response with no children.
func NewMockClient() *MockClient {
	return &MockClient{
		User:       foto.UserInfo{Name: "test_user"},
		folders:    make(map[foto.Space]map[int64][]foto.Folder),
		folderErrs: make(map[foto.Space]map[int64]error),
		items:      make(map[int64][]foto.Item),
	}
}

// AddFolders registers children under parentID in the given space.
func (m *MockClient) AddFolders(space foto.Space, parentID int64, children ...foto.Folder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.folders[space] == nil {
		m.folders[space] = make(map[int64][]foto.Folder)
	}
	m.folders[space][parentID] = append(m.folders[space][parentID], children...)
}

// FailFolder makes listing folderID in the given space fail with err.
func (m *MockClient) FailFolder(space foto.Space, folderID int64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.folderErrs[space] == nil {
		m.folderErrs[space] = make(map[int64]error)
	}
	m.folderErrs[space][folderID] = err
}

// AddAlbum registers an album and its items.
func (m *MockClient) AddAlbum(album foto.Album, items ...foto.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.albums = append(m.albums, album)
	m.items[album.ID] = append(m.items[album.ID], items...)
}

func (m *MockClient) Login(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoginErr != nil {
		return m.LoginErr
	}
	m.Logins++
	return nil
}

func (m *MockClient) Logout(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LogoutErr != nil {
		return m.LogoutErr
	}
	m.Logouts++
	return nil
}

func (m *MockClient) ListFolders(_ context.Context, space foto.Space, folderID int64) ([]foto.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.folderErrs[space][folderID]; err != nil {
		return nil, err
	}
	return m.folders[space][folderID], nil
}

func (m *MockClient) ListAlbums(context.Context) ([]foto.Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AlbumsErr != nil {
		return nil, m.AlbumsErr
	}
	return m.albums, nil
}

func (m *MockClient) ListAlbumItems(_ context.Context, albumID int64) ([]foto.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[albumID], nil
}

func (m *MockClient) UserInfo(context.Context) (*foto.UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user := m.User
	return &user, nil
}

// Compile-time check
var _ foto.Client = (*MockClient)(nil)
