package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubVerifier struct {
	err   error
	token string
}

func (s *stubVerifier) VerifyToken(tokenStr string) error {
	s.token = tokenStr
	return s.err
}

func runAdminAuth(v *stubVerifier, header string) (*httptest.ResponseRecorder, bool) {
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/drafts", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	NewMiddleware(v).AdminAuth(next).ServeHTTP(rr, req)
	return rr, reached
}

func TestAdminAuthAcceptsValidBearer(t *testing.T) {
	v := &stubVerifier{}
	rr, reached := runAdminAuth(v, "Bearer good-token")

	if !reached || rr.Code != http.StatusOK {
		t.Fatalf("valid token should pass: code=%d reached=%v", rr.Code, reached)
	}
	if v.token != "good-token" {
		t.Fatalf("verifier got wrong token: %q", v.token)
	}
}

func TestAdminAuthRejectsMissingHeader(t *testing.T) {
	rr, reached := runAdminAuth(&stubVerifier{}, "")
	if reached || rr.Code != http.StatusUnauthorized {
		t.Fatalf("missing header should 401: code=%d reached=%v", rr.Code, reached)
	}
}

func TestAdminAuthRejectsMalformedHeader(t *testing.T) {
	rr, reached := runAdminAuth(&stubVerifier{}, "Token abc")
	if reached || rr.Code != http.StatusUnauthorized {
		t.Fatalf("malformed header should 401: code=%d reached=%v", rr.Code, reached)
	}
}

func TestAdminAuthRejectsBadToken(t *testing.T) {
	v := &stubVerifier{err: errors.New("expired")}
	rr, reached := runAdminAuth(v, "Bearer stale")
	if reached || rr.Code != http.StatusUnauthorized {
		t.Fatalf("bad token should 401: code=%d reached=%v", rr.Code, reached)
	}
}
