// Package client is a Go client for the Scireda REST API, with helpers for
// lazily expanding the folder tree and autosaving note edits.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL *url.URL
	http    *http.Client

	mu    sync.RWMutex
	token string
}

type options struct {
	httpClient *http.Client
	timeout    time.Duration
	proxyURL   string
	token      string
}

type Option func(*options)

// WithHTTPClient replaces the underlying http.Client; proxy and timeout
// options are then ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithProxy routes requests through an http, https or socks5 proxy.
func WithProxy(proxyURL string) Option {
	return func(o *options) { o.proxyURL = proxyURL }
}

func WithToken(token string) Option {
	return func(o *options) { o.token = token }
}

// New returns a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	o := options{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		if httpClient, err = newHTTPClient(o.timeout, o.proxyURL); err != nil {
			return nil, err
		}
	}
	return &Client{baseURL: parsed, http: httpClient, token: o.token}, nil
}

// Token returns the bearer token currently in use.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

type authResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, email, username, password string) (User, error) {
	var res authResult
	body := map[string]string{"email": email, "username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, body, &res); err != nil {
		return User{}, err
	}
	c.setToken(res.Token)
	return res.User, nil
}

// Login authenticates and keeps the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var res authResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &res); err != nil {
		return User{}, err
	}
	c.setToken(res.Token)
	return res.User, nil
}

// Logout revokes all of the user's tokens on the server.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil); err != nil {
		return err
	}
	c.setToken("")
	return nil
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &user)
	return user, err
}

func (c *Client) Networks(ctx context.Context) ([]Network, error) {
	var networks []Network
	err := c.do(ctx, http.MethodGet, "/api/networks", nil, nil, &networks)
	return networks, err
}

func (c *Client) CreateNetwork(ctx context.Context, name string) (Network, error) {
	var network Network
	err := c.do(ctx, http.MethodPost, "/api/networks", nil, map[string]string{"name": name}, &network)
	return network, err
}

func (c *Client) RenameNetwork(ctx context.Context, id, name string) (Network, error) {
	var network Network
	err := c.do(ctx, http.MethodPut, "/api/networks/"+url.PathEscape(id), nil, map[string]string{"name": name}, &network)
	return network, err
}

func (c *Client) DeleteNetwork(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/networks/"+url.PathEscape(id), nil, nil, nil)
}

// TopLevelFolders returns the network's root folders, each expanded one level.
func (c *Client) TopLevelFolders(ctx context.Context, networkID string) ([]FolderContent, error) {
	var contents []FolderContent
	err := c.do(ctx, http.MethodGet, "/api/folders/top-level", url.Values{"networkId": {networkID}}, nil, &contents)
	return contents, err
}

// Folder returns one folder with its direct notes and subfolders.
func (c *Client) Folder(ctx context.Context, id string) (FolderContent, error) {
	var content FolderContent
	err := c.do(ctx, http.MethodGet, "/api/folders/"+url.PathEscape(id), nil, nil, &content)
	return content, err
}

func (c *Client) CreateFolder(ctx context.Context, folder NewFolder) (Folder, error) {
	var created Folder
	err := c.do(ctx, http.MethodPost, "/api/folders", nil, folder, &created)
	return created, err
}

// MoveFolder reparents a folder; a nil parentID moves it to the top level.
func (c *Client) MoveFolder(ctx context.Context, id string, parentID *string) (Folder, error) {
	var moved Folder
	body := map[string]*string{"parentId": parentID}
	err := c.do(ctx, http.MethodPut, "/api/folders/"+url.PathEscape(id), nil, body, &moved)
	return moved, err
}

func (c *Client) RenameFolder(ctx context.Context, id, name string) (Folder, error) {
	var renamed Folder
	err := c.do(ctx, http.MethodPut, "/api/folders/"+url.PathEscape(id), nil, map[string]string{"name": name}, &renamed)
	return renamed, err
}

// DeleteFolder deletes a folder. Use IsDeleteBlocked to inspect a refusal.
func (c *Client) DeleteFolder(ctx context.Context, id string, force bool) error {
	query := url.Values{"force": {strconv.FormatBool(force)}}
	return c.do(ctx, http.MethodDelete, "/api/folders/"+url.PathEscape(id), query, nil, nil)
}

func (c *Client) TopLevelNotes(ctx context.Context, networkID string) ([]Note, error) {
	var notes []Note
	err := c.do(ctx, http.MethodGet, "/api/notes/top-level", url.Values{"networkId": {networkID}}, nil, &notes)
	return notes, err
}

func (c *Client) FolderNotes(ctx context.Context, folderID string) ([]Note, error) {
	var notes []Note
	err := c.do(ctx, http.MethodGet, "/api/notes", url.Values{"folderId": {folderID}}, nil, &notes)
	return notes, err
}

func (c *Client) Note(ctx context.Context, id string) (Note, error) {
	var note Note
	err := c.do(ctx, http.MethodGet, "/api/notes/"+url.PathEscape(id), nil, nil, &note)
	return note, err
}

func (c *Client) CreateNote(ctx context.Context, note NewNote) (Note, error) {
	var created Note
	err := c.do(ctx, http.MethodPost, "/api/notes", nil, note, &created)
	return created, err
}

func (c *Client) UpdateNote(ctx context.Context, id string, update NoteUpdate) (Note, error) {
	var updated Note
	err := c.do(ctx, http.MethodPut, "/api/notes/"+url.PathEscape(id), nil, update, &updated)
	return updated, err
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
