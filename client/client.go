// Package client is a Go client for the Upper English API. It keeps the
// session cookie across calls and caches the roster aggregate, reloading it
// after every successful mutation so reads stay local and cheap.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	echoapi "github.com/upperenglish/backend/apps/api/echo"
	"github.com/upperenglish/backend/core/classroom"
	"github.com/upperenglish/backend/core/group"
	"github.com/upperenglish/backend/core/roster"
	"github.com/upperenglish/backend/core/student"
)

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	StatusCode int
	Message    string            `json:"error"`
	Fields     map[string]string `json:"-"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
	}
	if len(e.Fields) > 0 {
		pairs := make([]string, 0, len(e.Fields))
		for k, v := range e.Fields {
			pairs = append(pairs, k+": "+v)
		}
		return fmt.Sprintf("api: %d: %s", e.StatusCode, strings.Join(pairs, "; "))
	}
	return fmt.Sprintf("api: %d", e.StatusCode)
}

type Client struct {
	baseURL string
	http    *http.Client

	mu            sync.RWMutex
	authenticated bool
	roster        roster.Roster
}

// New creates a Client for the API at baseURL. The returned client owns a
// cookie jar; one Client is one session.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating cookie jar")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: 30 * time.Second},
	}, nil
}

// Authenticate exchanges the shared password for a session cookie and
// performs the initial roster load.
func (c *Client) Authenticate(ctx context.Context, password string) error {
	var resp echoapi.AuthResponse
	err := c.do(ctx, http.MethodPost, "/authenticate", nil, echoapi.AuthenticateRequest{Password: password}, &resp)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.authenticated = resp.IsAuthenticated
	c.mu.Unlock()

	return c.Reload(ctx)
}

// IsAuthenticated reports whether this client holds a session. It reflects
// the last authentication exchange, not the cookie's remaining lifetime.
func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authenticated
}

// Roster returns the cached aggregate of teachers, students and groups.
func (c *Client) Roster() roster.Roster {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roster
}

// Reload refetches the roster aggregate. On failure the cache is left as it
// was.
func (c *Client) Reload(ctx context.Context) error {
	var rst roster.Roster
	if err := c.do(ctx, http.MethodGet, "/protected/listTeachersStudentsGroups", nil, nil, &rst); err != nil {
		return err
	}

	c.mu.Lock()
	c.roster = rst
	c.mu.Unlock()
	return nil
}

func (c *Client) RegisterStudent(ctx context.Context, data student.NewStudent) (student.Student, error) {
	var resp echoapi.StudentResponse
	if err := c.do(ctx, http.MethodPost, "/protected/registerStudent", nil, data, &resp); err != nil {
		return student.Student{}, err
	}
	return resp.Student, c.Reload(ctx)
}

func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	q := url.Values{"id": {id}}
	if err := c.do(ctx, http.MethodDelete, "/protected/deleteStudent", q, nil, nil); err != nil {
		return err
	}
	return c.Reload(ctx)
}

func (c *Client) RegisterGroup(ctx context.Context, data group.NewGroup) (group.Group, error) {
	var resp echoapi.GroupResponse
	if err := c.do(ctx, http.MethodPost, "/protected/registerGroup", nil, data, &resp); err != nil {
		return group.Group{}, err
	}
	return resp.Group, c.Reload(ctx)
}

func (c *Client) EditGroup(ctx context.Context, data group.EditGroup) (group.Group, error) {
	var resp echoapi.GroupResponse
	if err := c.do(ctx, http.MethodPost, "/protected/editGroup", nil, data, &resp); err != nil {
		return group.Group{}, err
	}
	return resp.Group, c.Reload(ctx)
}

func (c *Client) DeleteGroup(ctx context.Context, id string) error {
	q := url.Values{"id": {id}}
	if err := c.do(ctx, http.MethodDelete, "/protected/deleteGroup", q, nil, nil); err != nil {
		return err
	}
	return c.Reload(ctx)
}

func (c *Client) RegisterClassroom(ctx context.Context, data classroom.NewClassroom) (classroom.Classroom, error) {
	var resp echoapi.ClassroomResponse
	if err := c.do(ctx, http.MethodPost, "/protected/registerClassroom", nil, data, &resp); err != nil {
		return classroom.Classroom{}, err
	}
	return resp.Classroom, c.Reload(ctx)
}

func (c *Client) DeleteClassroom(ctx context.Context, id string) error {
	q := url.Values{"id": {id}}
	if err := c.do(ctx, http.MethodDelete, "/protected/deleteClassroom", q, nil, nil); err != nil {
		return err
	}
	return c.Reload(ctx)
}

// ListClassrooms fetches one page of classroom records. Listings are never
// cached; every call hits the server.
func (c *Client) ListClassrooms(ctx context.Context, search, after, before string) (echoapi.ClassroomListResponse, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if after != "" {
		q.Set("after", after)
	}
	if before != "" {
		q.Set("before", before)
	}

	var resp echoapi.ClassroomListResponse
	err := c.do(ctx, http.MethodGet, "/protected/listClassrooms", q, nil, &resp)
	return resp, err
}

// ListClassroomsByStudent fetches one page of records mentioning the named
// student.
func (c *Client) ListClassroomsByStudent(ctx context.Context, name, after, before string) (echoapi.StudentClassroomListResponse, error) {
	q := url.Values{"student": {name}}
	if after != "" {
		q.Set("after", after)
	}
	if before != "" {
		q.Set("before", before)
	}

	var resp echoapi.StudentClassroomListResponse
	err := c.do(ctx, http.MethodGet, "/protected/listClassroomsByStudent", q, nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return errors.Wrap(err, "decoding response body")
		}
	}
	return nil
}

func decodeAPIError(status int, raw []byte) error {
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(raw, apiErr); err == nil && apiErr.Message != "" {
		return apiErr
	}
	// validation errors come back as a flat field map
	fields := map[string]string{}
	if err := json.Unmarshal(raw, &fields); err == nil {
		apiErr.Fields = fields
	}
	return apiErr
}
