// Package synology implements the photo service client against the
// Synology Web API: session management on auth.cgi and the Foto browse
// endpoints on entry.cgi.
package synology

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fotolink/internal/foto"
)

const (
	apiAuth       = "SYNO.API.Auth"
	apiFolder     = "SYNO.Foto.Browse.Folder"
	apiTeamFolder = "SYNO.FotoTeam.Browse.Folder"
	apiAlbum      = "SYNO.Foto.Browse.Album"
	apiItem       = "SYNO.Foto.Browse.Item"
	apiUserInfo   = "SYNO.Foto.UserInfo"
)

// pageSize is the listing page length; the service caps list responses
// at 1000 entries.
const pageSize = 1000

// Options configures a Client for one account.
type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	Session  string
	DeviceID string

	// VerifyCertificate enables TLS certificate verification. NAS boxes
	// commonly serve self-signed certificates, so the default is off.
	VerifyCertificate bool

	Logger foto.Logger
}

// Client speaks the photo service's web API for a single account. Login
// stores the session id and every later call carries it. Login and Logout
// must not run concurrently with other calls; the listing calls between
// them are read-only and may fan out.
type Client struct {
	baseURL  string
	username string
	password string
	session  string
	deviceID string
	http     *http.Client
	logger   foto.Logger
	sid      string
}

// NewClient creates a client for the service at opts.Host:opts.Port.
func NewClient(opts Options) *Client {
	httpClient := &http.Client{}
	if !opts.VerifyCertificate {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = foto.NewNopLogger()
	}

	return &Client{
		baseURL:  fmt.Sprintf("https://%s:%d/webapi", opts.Host, opts.Port),
		username: opts.Username,
		password: opts.Password,
		session:  opts.Session,
		deviceID: opts.DeviceID,
		http:     httpClient,
		logger:   logger,
	}
}

// Login opens a session with the configured credentials.
func (c *Client) Login(ctx context.Context) error {
	params := url.Values{}
	params.Set("account", c.username)
	params.Set("passwd", c.password)
	params.Set("session", c.session)
	params.Set("format", "sid")
	if c.deviceID != "" {
		params.Set("device_id", c.deviceID)
	}

	var data struct {
		SID string `json:"sid"`
	}
	if err := c.call(ctx, "auth.cgi", apiAuth, 3, "login", params, &data); err != nil {
		return fmt.Errorf("login as %s: %w", c.username, err)
	}
	c.sid = data.SID
	c.logger.Debug("session opened", "user", c.username)
	return nil
}

// Logout closes the session. Calling it without a session is a no-op.
func (c *Client) Logout(ctx context.Context) error {
	if c.sid == "" {
		return nil
	}

	params := url.Values{}
	params.Set("session", c.session)
	if err := c.call(ctx, "auth.cgi", apiAuth, 1, "logout", params, nil); err != nil {
		return fmt.Errorf("logout %s: %w", c.username, err)
	}
	c.sid = ""
	c.logger.Debug("session closed", "user", c.username)
	return nil
}

// envelope is the service's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code int `json:"code"`
	} `json:"error"`
}

// call performs one API request and decodes the data payload into out.
// The session id, when present, is attached automatically.
func (c *Client) call(ctx context.Context, cgi, api string, version int, method string, params url.Values, out any) error {
	form := url.Values{}
	form.Set("api", api)
	form.Set("version", strconv.Itoa(version))
	form.Set("method", method)
	for key, values := range params {
		form[key] = values
	}
	if c.sid != "" {
		form.Set("_sid", c.sid)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+cgi, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building %s request: %w", api, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", api, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %s", api, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", api, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decoding %s response: %w", api, err)
	}
	if !env.Success {
		return &Error{API: api, Code: env.Error.Code}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding %s data: %w", api, err)
		}
	}
	return nil
}

// Compile-time check that Client implements foto.Client
var _ foto.Client = (*Client)(nil)
