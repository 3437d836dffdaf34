package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/paradict-backend/pkg/ctxutil"
)

func serveRequestID(t *testing.T, req *http.Request) (ctxID, ctxIP string, rec *httptest.ResponseRecorder) {
	t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = ctxutil.RequestIDFromCtx(r.Context())
		ctxIP = ctxutil.ClientIPFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec = httptest.NewRecorder()
	RequestID()(handler).ServeHTTP(rec, req)
	return ctxID, ctxIP, rec
}

func TestRequestID_ReuseIncoming(t *testing.T) {
	incomingID := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incomingID)

	gotID, _, rec := serveRequestID(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, incomingID, gotID)
	assert.Equal(t, incomingID, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_GenerateNew(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	gotID, _, rec := serveRequestID(t, req)

	_, err := uuid.Parse(gotID)
	assert.NoError(t, err)
	assert.Equal(t, gotID, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_RejectsMalformedIncoming(t *testing.T) {
	cases := map[string]string{
		"too long":    strings.Repeat("a", maxRequestIDLen+1),
		"non ascii":   "แมว",
		"control chr": "abc\x01def",
	}

	for name, incoming := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, incoming)

			gotID, _, _ := serveRequestID(t, req)

			assert.NotEqual(t, incoming, gotID)
			_, err := uuid.Parse(gotID)
			assert.NoError(t, err)
		})
	}
}

func TestRequestID_StoresClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:51234"

	_, gotIP, _ := serveRequestID(t, req)
	assert.Equal(t, "203.0.113.7", gotIP)
}

func TestClientIP_NoPort(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7"

	assert.Equal(t, "203.0.113.7", clientIP(req))
}
