package synology

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"fotolink/internal/foto"
)

// ListFolders returns all immediate children of folderID in the given
// space, assembling pages until the service returns a short one.
func (c *Client) ListFolders(ctx context.Context, space foto.Space, folderID int64) ([]foto.Folder, error) {
	api := apiFolder
	if space == foto.SpaceShared {
		api = apiTeamFolder
	}

	var folders []foto.Folder
	for offset := 0; ; offset += pageSize {
		params := url.Values{}
		params.Set("id", strconv.FormatInt(folderID, 10))
		params.Set("offset", strconv.Itoa(offset))
		params.Set("limit", strconv.Itoa(pageSize))

		var data struct {
			List []struct {
				ID          int64  `json:"id"`
				Name        string `json:"name"`
				OwnerUserID int64  `json:"owner_user_id"`
			} `json:"list"`
		}
		if err := c.call(ctx, "entry.cgi", api, 2, "list", params, &data); err != nil {
			return nil, fmt.Errorf("listing %s folders under %d: %w", space, folderID, err)
		}

		for _, f := range data.List {
			folders = append(folders, foto.Folder{ID: f.ID, Name: f.Name, OwnerID: f.OwnerUserID})
		}
		if len(data.List) < pageSize {
			return folders, nil
		}
	}
}

// ListAlbums returns all albums visible to the session user.
func (c *Client) ListAlbums(ctx context.Context) ([]foto.Album, error) {
	var albums []foto.Album
	for offset := 0; ; offset += pageSize {
		params := url.Values{}
		params.Set("offset", strconv.Itoa(offset))
		params.Set("limit", strconv.Itoa(pageSize))

		var data struct {
			List []struct {
				ID          int64  `json:"id"`
				Name        string `json:"name"`
				OwnerUserID int64  `json:"owner_user_id"`
				CreateTime  int64  `json:"create_time"`
			} `json:"list"`
		}
		if err := c.call(ctx, "entry.cgi", apiAlbum, 2, "list", params, &data); err != nil {
			return nil, fmt.Errorf("listing albums: %w", err)
		}

		for _, a := range data.List {
			albums = append(albums, foto.Album{
				ID:         a.ID,
				Name:       a.Name,
				OwnerID:    a.OwnerUserID,
				CreateTime: time.Unix(a.CreateTime, 0),
			})
		}
		if len(data.List) < pageSize {
			return albums, nil
		}
	}
}

// ListAlbumItems returns all items of the given album. The item endpoint
// rejects older protocol versions for album listings, hence version 6.
func (c *Client) ListAlbumItems(ctx context.Context, albumID int64) ([]foto.Item, error) {
	var items []foto.Item
	for offset := 0; ; offset += pageSize {
		params := url.Values{}
		params.Set("album_id", strconv.FormatInt(albumID, 10))
		params.Set("offset", strconv.Itoa(offset))
		params.Set("limit", strconv.Itoa(pageSize))

		var data struct {
			List []struct {
				Filename    string `json:"filename"`
				FolderID    int64  `json:"folder_id"`
				OwnerUserID int64  `json:"owner_user_id"`
			} `json:"list"`
		}
		if err := c.call(ctx, "entry.cgi", apiItem, 6, "list", params, &data); err != nil {
			return nil, fmt.Errorf("listing items of album %d: %w", albumID, err)
		}

		for _, it := range data.List {
			items = append(items, foto.Item{Filename: it.Filename, FolderID: it.FolderID, OwnerID: it.OwnerUserID})
		}
		if len(data.List) < pageSize {
			return items, nil
		}
	}
}

// UserInfo returns the authenticated user's details.
func (c *Client) UserInfo(ctx context.Context) (*foto.UserInfo, error) {
	var data struct {
		Name string `json:"name"`
	}
	if err := c.call(ctx, "entry.cgi", apiUserInfo, 1, "me", nil, &data); err != nil {
		return nil, fmt.Errorf("fetching user info: %w", err)
	}
	return &foto.UserInfo{Name: data.Name}, nil
}
