package foto_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fotolink/internal/foto"
	"fotolink/internal/testutil"
)

func TestService_CacheFolders(t *testing.T) {
	photoRoots := map[int64]string{2: "/volume1/homes/alice/Photos"}

	t.Run("merges personal and shared spaces of all users", func(t *testing.T) {
		alice := testutil.NewMockClient()
		alice.AddFolders(foto.SpacePersonal, 0, foto.Folder{ID: 1, Name: "/Photos", OwnerID: 2})
		alice.AddFolders(foto.SpaceShared, 0, foto.Folder{ID: 50, Name: "/Family", OwnerID: 9})

		bob := testutil.NewMockClient()
		bob.AddFolders(foto.SpacePersonal, 0, foto.Folder{ID: 7, Name: "/Mobile", OwnerID: 4})
		// Bob sees the same shared folder.
		bob.AddFolders(foto.SpaceShared, 0, foto.Folder{ID: 50, Name: "/Family", OwnerID: 9})

		store := testutil.NewMockCacheStore()
		accounts := []foto.Account{
			{Username: "alice", Client: alice},
			{Username: "bob", Client: bob},
		}
		svc := foto.NewService(accounts, store, testutil.NewMockLinks(), 2, "albums", photoRoots, foto.NewNopLogger())

		stats, err := svc.CacheFolders(context.Background())
		if err != nil {
			t.Fatalf("CacheFolders() error = %v", err)
		}

		if stats.Users != 2 {
			t.Errorf("Users = %d, want 2", stats.Users)
		}
		if stats.Folders != 3 {
			t.Errorf("Folders = %d, want 3", stats.Folders)
		}
		if stats.Warnings != 0 {
			t.Errorf("Warnings = %d, want 0", stats.Warnings)
		}

		if len(store.Folders) != 3 {
			t.Fatalf("saved %d folders, want 3", len(store.Folders))
		}
		if store.Folders[50].Name != "/Family" {
			t.Errorf("shared folder = %+v, want /Family", store.Folders[50])
		}

		if alice.Logins != 1 || alice.Logouts != 1 {
			t.Errorf("alice sessions = %d/%d, want 1/1", alice.Logins, alice.Logouts)
		}
		if bob.Logins != 1 || bob.Logouts != 1 {
			t.Errorf("bob sessions = %d/%d, want 1/1", bob.Logins, bob.Logouts)
		}
	})

	t.Run("listing failures count as warnings, not errors", func(t *testing.T) {
		client := testutil.NewMockClient()
		client.AddFolders(foto.SpacePersonal, 0, foto.Folder{ID: 1, Name: "/Photos", OwnerID: 2})
		client.FailFolder(foto.SpacePersonal, 1, errors.New("timeout"))

		store := testutil.NewMockCacheStore()
		svc := foto.NewService([]foto.Account{{Username: "alice", Client: client}},
			store, testutil.NewMockLinks(), 2, "albums", photoRoots, foto.NewNopLogger())

		stats, err := svc.CacheFolders(context.Background())
		if err != nil {
			t.Fatalf("CacheFolders() error = %v", err)
		}

		if stats.Warnings != 1 {
			t.Errorf("Warnings = %d, want 1", stats.Warnings)
		}
		if len(store.Folders) != 1 {
			t.Errorf("saved %d folders, want 1", len(store.Folders))
		}
	})

	t.Run("login failure aborts the run", func(t *testing.T) {
		client := testutil.NewMockClient()
		client.LoginErr = errors.New("invalid credentials")

		svc := foto.NewService([]foto.Account{{Username: "alice", Client: client}},
			testutil.NewMockCacheStore(), testutil.NewMockLinks(), 2, "albums", photoRoots, foto.NewNopLogger())

		_, err := svc.CacheFolders(context.Background())
		if err == nil {
			t.Fatal("CacheFolders() expected error")
		}
		if !strings.Contains(err.Error(), "alice") {
			t.Errorf("error = %v, want it to name the user", err)
		}
	})

	t.Run("save failure propagates", func(t *testing.T) {
		store := testutil.NewMockCacheStore()
		store.SaveErr = errors.New("disk full")

		svc := foto.NewService([]foto.Account{{Username: "alice", Client: testutil.NewMockClient()}},
			store, testutil.NewMockLinks(), 2, "albums", photoRoots, foto.NewNopLogger())

		_, err := svc.CacheFolders(context.Background())
		if err == nil {
			t.Fatal("CacheFolders() expected error")
		}
		if !strings.Contains(err.Error(), "saving folder cache") {
			t.Errorf("error = %v, want save failure", err)
		}
	})
}

func TestService_LinkAlbums(t *testing.T) {
	created := time.Date(2022, 3, 10, 12, 0, 0, 0, time.UTC)
	photoRoots := map[int64]string{2: "/volume1/homes/alice/Photos"}

	t.Run("links albums using the cached folders", func(t *testing.T) {
		client := testutil.NewMockClient()
		client.AddAlbum(
			foto.Album{ID: 1, Name: "2022 Spring", OwnerID: 2, CreateTime: created},
			foto.Item{Filename: "IMG_001.jpg", FolderID: 30, OwnerID: 2},
		)

		store := testutil.NewMockCacheStore()
		store.Folders = foto.FolderMap{30: {Name: "/Photos/2022", OwnerID: 2}}

		links := testutil.NewMockLinks()
		svc := foto.NewService([]foto.Account{{Username: "alice", Client: client}},
			store, links, 2, "albums", photoRoots, foto.NewNopLogger())

		stats, err := svc.LinkAlbums(context.Background())
		if err != nil {
			t.Fatalf("LinkAlbums() error = %v", err)
		}

		if stats.Albums != 1 || stats.Created != 1 {
			t.Errorf("stats = %+v, want 1 album, 1 created", stats)
		}
		want := "../../users/2/Photos/2022/IMG_001.jpg"
		if got := links.Links["albums/2022/2022 Spring/IMG_001.jpg"]; got != want {
			t.Errorf("item link = %q, want %q", got, want)
		}
		if client.Logins != 1 || client.Logouts != 1 {
			t.Errorf("sessions = %d/%d, want 1/1", client.Logins, client.Logouts)
		}
	})

	t.Run("missing cache points at the cache step", func(t *testing.T) {
		svc := foto.NewService([]foto.Account{{Username: "alice", Client: testutil.NewMockClient()}},
			testutil.NewMockCacheStore(), testutil.NewMockLinks(), 2, "albums", photoRoots, foto.NewNopLogger())

		_, err := svc.LinkAlbums(context.Background())
		if err == nil {
			t.Fatal("LinkAlbums() expected error")
		}
		if !errors.Is(err, foto.ErrCacheMissing) {
			t.Errorf("error = %v, want ErrCacheMissing", err)
		}
		if !strings.Contains(err.Error(), "run the cache step first") {
			t.Errorf("error = %v, want pointer to the cache step", err)
		}
	})

	t.Run("item inconsistent with the cache aborts", func(t *testing.T) {
		client := testutil.NewMockClient()
		client.AddAlbum(
			foto.Album{ID: 1, Name: "2022 Spring", OwnerID: 2, CreateTime: created},
			foto.Item{Filename: "IMG_001.jpg", FolderID: 999, OwnerID: 2},
		)

		store := testutil.NewMockCacheStore()
		store.Folders = foto.FolderMap{30: {Name: "/Photos/2022", OwnerID: 2}}

		svc := foto.NewService([]foto.Account{{Username: "alice", Client: client}},
			store, testutil.NewMockLinks(), 2, "albums", photoRoots, foto.NewNopLogger())

		_, err := svc.LinkAlbums(context.Background())
		if err == nil {
			t.Fatal("LinkAlbums() expected error")
		}
		if !strings.Contains(err.Error(), "not in cache") {
			t.Errorf("error = %v, want folder-not-in-cache", err)
		}
	})

	t.Run("album listing failure names the user", func(t *testing.T) {
		client := testutil.NewMockClient()
		client.AlbumsErr = errors.New("session expired")

		store := testutil.NewMockCacheStore()
		store.Folders = foto.FolderMap{}

		svc := foto.NewService([]foto.Account{{Username: "alice", Client: client}},
			store, testutil.NewMockLinks(), 2, "albums", photoRoots, foto.NewNopLogger())

		_, err := svc.LinkAlbums(context.Background())
		if err == nil {
			t.Fatal("LinkAlbums() expected error")
		}
		if !strings.Contains(err.Error(), "alice") {
			t.Errorf("error = %v, want it to name the user", err)
		}
	})
}
