package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vallamsettyashok/portfolio/internal/contact"
	"github.com/vallamsettyashok/portfolio/internal/profile"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeInbox struct {
	mu    sync.Mutex
	forms []contact.Form
	err   error
}

func (f *fakeInbox) Deliver(_ context.Context, form contact.Form) (string, error) {
	if err := form.Validate(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.forms = append(f.forms, form)
	return "ref-1", nil
}

func (f *fakeInbox) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeInbox) delivered() []contact.Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]contact.Form(nil), f.forms...)
}

func newTestRouter(t *testing.T, inbox Deliverer, assetsDir string) (*gin.Engine, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	log := logrus.New()
	log.SetOutput(&logs)
	log.SetLevel(logrus.DebugLevel)

	r, err := NewRouter(Options{
		Profile:   profile.MustLoad(),
		Inbox:     inbox,
		Owner:     "owner@example.com",
		AssetsDir: assetsDir,
		Log:       log,
	})
	require.NoError(t, err)
	return r, &logs
}

func postJSON(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIndex_RendersProfile(t *testing.T) {
	r, _ := newTestRouter(t, &fakeInbox{}, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Vallamsetty Ashok")
	assert.Contains(t, body, "HCL Technologies")
	assert.Contains(t, body, "Selenium WebDriver (Java), TestNG")
	assert.Contains(t, body, `hx-post="/contact"`)
	assert.Contains(t, body, `href="/resume.pdf"`)
}

func TestContactFormFragment(t *testing.T) {
	r, _ := newTestRouter(t, &fakeInbox{}, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contact-form", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="message"`)
}

func TestSubmitAPI(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		inboxErr   error
		wantStatus int
		wantKey    string
	}{
		{name: "accepted", body: `{"name":"Jane","email":"jane@x.com","message":"Hi"}`, wantStatus: http.StatusOK, wantKey: "id"},
		{name: "missing email", body: `{"name":"Jane","message":"Hi"}`, wantStatus: http.StatusBadRequest, wantKey: "error"},
		{name: "missing message", body: `{"email":"jane@x.com","message":""}`, wantStatus: http.StatusBadRequest, wantKey: "error"},
		{name: "malformed", body: `{"email":`, wantStatus: http.StatusBadRequest, wantKey: "error"},
		{name: "delivery failure", body: `{"email":"jane@x.com","message":"Hi"}`, inboxErr: errors.New("smtp down"), wantStatus: http.StatusBadGateway, wantKey: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter(t, &fakeInbox{err: tt.inboxErr}, "")

			w := postJSON(r, tt.body)

			require.Equal(t, tt.wantStatus, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp[tt.wantKey])
			assert.NotContains(t, w.Body.String(), "smtp down")
		})
	}
}

func TestSubmitAPI_WithContactClient(t *testing.T) {
	inbox := &fakeInbox{}
	r, _ := newTestRouter(t, inbox, "")
	srv := httptest.NewServer(r)
	defer srv.Close()

	client, err := contact.NewAPIClient(srv.URL, srv.Client())
	require.NoError(t, err)

	state := contact.NewState(contact.Form{Name: "Jane", Email: "jane@x.com", Message: "Hi"})
	var opened []string
	flow := contact.NewFlow(state, client, contact.MailFallback{
		Owner:  "owner@example.com",
		Opener: contact.OpenerFunc(func(uri string) { opened = append(opened, uri) }),
	}, nil)

	require.NoError(t, flow.Submit(context.Background()))
	assert.Equal(t, contact.StatusSent, state.Status())
	assert.Empty(t, opened)
	forms := inbox.delivered()
	require.Len(t, forms, 1)
	assert.Equal(t, "Hi", forms[0].Message)

	inbox.setErr(errors.New("smtp down"))
	state.SetField(contact.FieldMessage, "Again")
	err = flow.Submit(context.Background())

	var rej *contact.RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, http.StatusBadGateway, rej.StatusCode)
	assert.Equal(t, contact.StatusSentViaMailClient, state.Status())
	assert.Len(t, opened, 1)
}

func TestSubmitForm(t *testing.T) {
	post := func(r http.Handler, v url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(v.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("success", func(t *testing.T) {
		inbox := &fakeInbox{}
		r, _ := newTestRouter(t, inbox, "")

		w := post(r, url.Values{"name": {"Jane"}, "email": {"jane@x.com"}, "message": {"Hi"}})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Message sent.")
		assert.Len(t, inbox.delivered(), 1)
	})

	t.Run("validation", func(t *testing.T) {
		r, _ := newTestRouter(t, &fakeInbox{}, "")

		w := post(r, url.Values{"name": {"Jane"}})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), contact.MsgMissingFields)
		assert.NotContains(t, w.Body.String(), "mailto:")
	})

	t.Run("delivery failure links mailto draft", func(t *testing.T) {
		r, _ := newTestRouter(t, &fakeInbox{err: errors.New("down")}, "")

		w := post(r, url.Values{"name": {"Jane & Doe"}, "email": {"jane@x.com"}, "message": {"Hi"}})

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "form-error")
		assert.Contains(t, body, "Use the link below to send it from your email client.")
		assert.NotContains(t, body, "Falling back to opening")
		assert.Contains(t, body, "mailto:owner@example.com?subject=Portfolio%20contact%20from%20Jane%20%26%20Doe")
	})

	t.Run("bind failure is logged", func(t *testing.T) {
		r, logs := newTestRouter(t, &fakeInbox{}, "")

		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("name=Jane"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), contact.MsgMissingFields)
		assert.Contains(t, logs.String(), "invalid contact form")
	})
}

func TestNewRouter_NilLogger(t *testing.T) {
	r, err := NewRouter(Options{
		Profile: profile.MustLoad(),
		Inbox:   &fakeInbox{},
		Owner:   "owner@example.com",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t, &fakeInbox{}, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStaticAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resume.pdf"), []byte("%PDF-1.4"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.css"), []byte("body{}"), 0o600))

	r, _ := newTestRouter(t, &fakeInbox{}, dir)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resume.pdf", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Equal(t, "%PDF-1.4", string(body))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile.jpg", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestIDAndAccessLog(t *testing.T) {
	r, logs := newTestRouter(t, &fakeInbox{}, "")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	req.RemoteAddr = "203.0.113.7:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	out := logs.String()
	assert.Contains(t, out, "request_id=abc-123")
	assert.Contains(t, out, "client=")
	assert.NotContains(t, out, "203.0.113.7")

	logs.Reset()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DNT", "1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.NotContains(t, logs.String(), "client=")

	logs.Reset()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Empty(t, logs.String())
}

func TestIPHasher(t *testing.T) {
	t.Parallel()

	h := newIPHasher()
	assert.Equal(t, h.hash("198.51.100.1"), h.hash("198.51.100.1"))
	assert.NotEqual(t, h.hash("198.51.100.1"), h.hash("198.51.100.2"))
	assert.Len(t, h.hash("198.51.100.1"), 16)
	assert.NotEqual(t, h.hash("198.51.100.1"), newIPHasher().hash("198.51.100.1"))
}
