package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLog, hook = test.NewNullLogger()

func TestMain(m *testing.M) {
	testLog.SetLevel(logrus.DebugLevel)
	os.Exit(m.Run())
}

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
	io.WriteString(w, "ok")
}

func TestWrapOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Wrap(http.HandlerFunc(ok), mark("inner"), mark("outer"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestLogging(t *testing.T) {
	hook.Reset()
	h := Logging(testLog)(http.HandlerFunc(ok))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/status?x=1", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "handled request", entry.Message)
	assert.Equal(t, http.StatusTeapot, entry.Data["status_code"])
	assert.Equal(t, "/status?x=1", entry.Data["uri"])
	assert.Equal(t, false, entry.Data["hijacked"])
}

func TestLoggingImplicitStatus(t *testing.T) {
	hook.Reset()
	h := Logging(testLog)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusOK, hook.LastEntry().Data["status_code"])
}

func TestLoggingHijackUnsupported(t *testing.T) {
	h := Logging(testLog)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, err := w.(http.Hijacker).Hijack()
		assert.Error(t, err)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
}

func TestRecover(t *testing.T) {
	hook.Reset()
	h := Recover(testLog)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/play", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "boom", hook.LastEntry().Data["panic"])
}

func TestRecoverAfterWrite(t *testing.T) {
	h := Recover(testLog)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("late")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestCors(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		want    string
	}{
		{"any", nil, "http://a.test", "*"},
		{"listed", []string{"http://a.test"}, "http://a.test", "http://a.test"},
		{"not listed", []string{"http://a.test"}, "http://b.test", ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h := Cors(test.origins)(http.HandlerFunc(ok))
			r := httptest.NewRequest("GET", "/status", nil)
			r.Header.Set("Origin", test.origin)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)
			assert.Equal(t, test.want, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
