package controllers_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"inkwell/app/models"
	"inkwell/config"
	"inkwell/initialize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-pass-123"
)

func newTestApp(t *testing.T) (*initialize.App, *httptest.Server) {
	t.Helper()
	cfg := &config.Config{
		DB: config.DB{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")},
		Session: config.Session{
			Secret: "test-secret", Issuer: "inkwell-test",
			CookieName: "inkwell_session", ExpMin: 60,
		},
		SMTP:        config.SMTP{Host: "127.0.0.1", Port: 1, From: "blog@example.com", To: "owner@example.com", Timeout: time.Second},
		Admin:       config.Admin{Email: adminEmail, Password: adminPassword, Name: "Admin"},
		TemplateDir: "../../templates",
	}
	app, err := initialize.BuildWithConfig(cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(app.Router)
	t.Cleanup(func() {
		srv.Close()
		_ = app.Close()
	})
	return app, srv
}

// newClient returns a cookie-carrying client that does not follow
// redirects, so tests can assert on Location headers.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

var csrfRe = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

func fetch(t *testing.T, client *http.Client, rawURL string) (string, int) {
	t.Helper()
	resp, err := client.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body), resp.StatusCode
}

// csrfToken loads a form page so the client picks up the CSRF cookie
// and returns the matching form token.
func csrfToken(t *testing.T, client *http.Client, pageURL string) string {
	t.Helper()
	body, status := fetch(t, client, pageURL)
	require.Equal(t, http.StatusOK, status)
	m := csrfRe.FindStringSubmatch(body)
	require.NotNil(t, m, "form page should embed a csrf token")
	return m[1]
}

func postForm(t *testing.T, client *http.Client, rawURL string, values url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(rawURL, values)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func register(t *testing.T, client *http.Client, base, name, email, password string) *http.Response {
	t.Helper()
	token := csrfToken(t, client, base+"/register")
	return postForm(t, client, base+"/register", url.Values{
		"csrf_token": {token},
		"name":       {name},
		"email":      {email},
		"password":   {password},
	})
}

func login(t *testing.T, client *http.Client, base, email, password string) *http.Response {
	t.Helper()
	token := csrfToken(t, client, base+"/login")
	return postForm(t, client, base+"/login", url.Values{
		"csrf_token": {token},
		"email":      {email},
		"password":   {password},
	})
}

func loginAdmin(t *testing.T, client *http.Client, base string) {
	t.Helper()
	resp := login(t, client, base, adminEmail, adminPassword)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func createPost(t *testing.T, client *http.Client, base, title string) *http.Response {
	t.Helper()
	token := csrfToken(t, client, base+"/new-post")
	return postForm(t, client, base+"/new-post", url.Values{
		"csrf_token": {token},
		"title":      {title},
		"subtitle":   {"A subtitle"},
		"img_url":    {"https://example.com/cover.png"},
		"body":       {"<p>Some rich text.</p>"},
	})
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, srv := newTestApp(t)
	client := newClient(t)

	resp := register(t, client, srv.URL, "Ada", "ada@example.com", "correct-horse")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	other := newClient(t)
	resp = register(t, other, srv.URL, "Imposter", "ada@example.com", "other-password")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	body, _ := fetch(t, other, srv.URL+"/login")
	assert.Contains(t, body, "You already signed up with that email, log in instead!")

	// the first account is unaffected
	third := newClient(t)
	resp = login(t, third, srv.URL, "ada@example.com", "correct-horse")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestLoginWrongPasswordNeverAuthenticates(t *testing.T) {
	_, srv := newTestApp(t)
	client := newClient(t)
	resp := register(t, client, srv.URL, "Ada", "ada@example.com", "correct-horse")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	fresh := newClient(t)
	resp = login(t, fresh, srv.URL, "ada@example.com", "wrong-horse")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	body, _ := fetch(t, fresh, srv.URL+"/login")
	assert.Contains(t, body, "Incorrect password, please try again.")

	// no session was established
	body, _ = fetch(t, fresh, srv.URL+"/")
	assert.Contains(t, body, `href="/login"`)
	assert.NotContains(t, body, `href="/logout"`)
}

func TestLoginUnknownEmail(t *testing.T) {
	_, srv := newTestApp(t)
	client := newClient(t)
	resp := login(t, client, srv.URL, "nobody@example.com", "whatever-pass")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	body, _ := fetch(t, client, srv.URL+"/login")
	assert.Contains(t, body, "This email does not exist, please try again.")
}

func TestAnonymousCommentRedirectsToLogin(t *testing.T) {
	app, srv := newTestApp(t)
	admin := newClient(t)
	loginAdmin(t, admin, srv.URL)
	resp := createPost(t, admin, srv.URL, "Hello World")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	anon := newClient(t)
	token := csrfToken(t, anon, srv.URL+"/post/1")
	resp = postForm(t, anon, srv.URL+"/post/1", url.Values{
		"csrf_token": {token},
		"body":       {"drive-by comment"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	body, _ := fetch(t, anon, srv.URL+"/login")
	assert.Contains(t, body, "You need to login or register to add comments.")

	var count int64
	require.NoError(t, app.DB.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count, "no comment row for an anonymous attempt")
}

func TestAuthenticatedComment(t *testing.T) {
	_, srv := newTestApp(t)
	admin := newClient(t)
	loginAdmin(t, admin, srv.URL)
	createPost(t, admin, srv.URL, "Hello World")

	user := newClient(t)
	resp := register(t, user, srv.URL, "Bob", "bob@example.com", "correct-horse")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	token := csrfToken(t, user, srv.URL+"/post/1")
	resp = postForm(t, user, srv.URL+"/post/1", url.Values{
		"csrf_token": {token},
		"body":       {"Great post!"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/post/1", resp.Header.Get("Location"))

	body, _ := fetch(t, user, srv.URL+"/post/1")
	assert.Contains(t, body, "Great post!")
	assert.Contains(t, body, "Bob")
	assert.Contains(t, body, "www.gravatar.com/avatar/")
}

func TestNonAdminNewPostHardReject(t *testing.T) {
	_, srv := newTestApp(t)
	client := newClient(t)
	resp := register(t, client, srv.URL, "Bob", "bob@example.com", "correct-horse")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, err := client.Get(srv.URL + "/new-post")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))
}

func TestAnonymousNewPostRedirects(t *testing.T) {
	_, srv := newTestApp(t)
	client := newClient(t)
	resp, err := client.Get(srv.URL + "/new-post")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestDuplicateTitleRejected(t *testing.T) {
	app, srv := newTestApp(t)
	admin := newClient(t)
	loginAdmin(t, admin, srv.URL)

	resp := createPost(t, admin, srv.URL, "Hello World")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp = createPost(t, admin, srv.URL, "Hello World")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/new-post", resp.Header.Get("Location"))

	body, _ := fetch(t, admin, srv.URL+"/new-post")
	assert.Contains(t, body, "You already wrote a blog post with that title!")

	var count int64
	require.NoError(t, app.DB.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	body, status := fetch(t, admin, srv.URL+"/post/1")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Hello World")
}

func TestEditTitleConflictLeavesTargetUnchanged(t *testing.T) {
	_, srv := newTestApp(t)
	admin := newClient(t)
	loginAdmin(t, admin, srv.URL)
	createPost(t, admin, srv.URL, "First")
	createPost(t, admin, srv.URL, "Second")

	token := csrfToken(t, admin, srv.URL+"/edit-post/2")
	resp := postForm(t, admin, srv.URL+"/edit-post/2", url.Values{
		"csrf_token": {token},
		"title":      {"First"},
		"subtitle":   {"changed"},
		"img_url":    {"https://example.com/other.png"},
		"body":       {"changed"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/edit-post/2", resp.Header.Get("Location"))

	body, status := fetch(t, admin, srv.URL+"/post/2")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Second")
	assert.NotContains(t, body, "changed")
}

func TestEditPost(t *testing.T) {
	_, srv := newTestApp(t)
	admin := newClient(t)
	loginAdmin(t, admin, srv.URL)
	createPost(t, admin, srv.URL, "Hello World")

	token := csrfToken(t, admin, srv.URL+"/edit-post/1")
	resp := postForm(t, admin, srv.URL+"/edit-post/1", url.Values{
		"csrf_token": {token},
		"title":      {"Hello Again"},
		"subtitle":   {"Revised"},
		"img_url":    {"https://example.com/cover.png"},
		"body":       {"<p>Updated.</p>"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/post/1", resp.Header.Get("Location"))

	body, _ := fetch(t, admin, srv.URL+"/post/1")
	assert.Contains(t, body, "Hello Again")
	assert.Contains(t, body, "Revised")
}

func TestDeletePostThenNotFound(t *testing.T) {
	_, srv := newTestApp(t)
	admin := newClient(t)
	loginAdmin(t, admin, srv.URL)
	createPost(t, admin, srv.URL, "Hello World")

	token := csrfToken(t, admin, srv.URL+"/post/1")
	resp := postForm(t, admin, srv.URL+"/delete-post/1", url.Values{"csrf_token": {token}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	body, status := fetch(t, admin, srv.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "Hello World")

	body, status = fetch(t, admin, srv.URL+"/post/1")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "Page Not Found")
}

func TestDeleteViaGetNotAllowed(t *testing.T) {
	_, srv := newTestApp(t)
	admin := newClient(t)
	loginAdmin(t, admin, srv.URL)
	createPost(t, admin, srv.URL, "Hello World")

	resp, err := admin.Get(srv.URL + "/delete-post/1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestViewMissingPostNotFound(t *testing.T) {
	_, srv := newTestApp(t)
	client := newClient(t)
	body, status := fetch(t, client, srv.URL+"/post/999")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "Page Not Found")
}

func TestPostWithoutCSRFRejected(t *testing.T) {
	_, srv := newTestApp(t)
	client := newClient(t)
	resp := postForm(t, client, srv.URL+"/register", url.Values{
		"name":     {"Ada"},
		"email":    {"ada@example.com"},
		"password": {"correct-horse"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterValidationRedisplaysForm(t *testing.T) {
	_, srv := newTestApp(t)
	client := newClient(t)
	token := csrfToken(t, client, srv.URL+"/register")
	resp := postForm(t, client, srv.URL+"/register", url.Values{
		"csrf_token": {token},
		"name":       {"Ada"},
		"email":      {"not-an-email"},
		"password":   {"short"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Enter a valid email address.")
	assert.Contains(t, string(body), "Password must be at least 8 characters.")
	// submitted values are kept on redisplay
	assert.Contains(t, string(body), `value="Ada"`)
}

func TestLogoutEndsSession(t *testing.T) {
	_, srv := newTestApp(t)
	client := newClient(t)
	resp := register(t, client, srv.URL, "Ada", "ada@example.com", "correct-horse")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	body, _ := fetch(t, client, srv.URL+"/")
	require.Contains(t, body, `href="/logout"`)

	resp, err := client.Get(srv.URL + "/logout")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	body, _ = fetch(t, client, srv.URL+"/")
	assert.Contains(t, body, `href="/login"`)
}

func TestContactFailureSurfacedToUser(t *testing.T) {
	// SMTP points at a closed port, so the send fails fast and the
	// page reports it instead of crashing the request.
	_, srv := newTestApp(t)
	client := newClient(t)
	token := csrfToken(t, client, srv.URL+"/contact")
	resp := postForm(t, client, srv.URL+"/contact", url.Values{
		"csrf_token": {token},
		"name":       {"Ada"},
		"email":      {"ada@example.com"},
		"number":     {"555-0101"},
		"message":    {"Hello there"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Your message could not be sent")
	// the submitted form is kept for retry
	assert.Contains(t, string(body), "Hello there")
}

func TestHomeListsPostsForAnonymous(t *testing.T) {
	_, srv := newTestApp(t)
	admin := newClient(t)
	loginAdmin(t, admin, srv.URL)
	createPost(t, admin, srv.URL, "Hello World")

	anon := newClient(t)
	body, status := fetch(t, anon, srv.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Hello World")
	assert.Contains(t, body, "A subtitle")
	assert.False(t, strings.Contains(body, "Create New Post"), "admin controls hidden from anonymous visitors")
}
