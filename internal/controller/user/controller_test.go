package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tsootsoo/dictees/internal/correction"
	"github.com/tsootsoo/dictees/internal/dto"
	"github.com/tsootsoo/dictees/internal/middleware"
	"github.com/tsootsoo/dictees/internal/service"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func sessionToken(t *testing.T, userID string) string {
	t.Helper()
	claims := middleware.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, "user-1"))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return resp
}

type fakeValidationService struct {
	resp  *dto.ValidateDictationResponse
	err   error
	calls int
	sc    service.SubmissionContext
	req   dto.ValidateDictationRequest
}

func (f *fakeValidationService) Validate(_ context.Context, sc service.SubmissionContext, req dto.ValidateDictationRequest) (*dto.ValidateDictationResponse, error) {
	f.calls++
	f.sc, f.req = sc, req
	return f.resp, f.err
}

func newValidateRouter(vs service.DictationValidationService) (*gin.Engine, *middleware.ProfileCookie) {
	cookie := middleware.NewProfileCookie(testSecret, false)
	ctrl := NewDictationController(nil, vs)
	r := gin.New()
	r.POST("/dictations/:id/validate", middleware.Auth(testSecret), cookie.Require(), ctrl.ValidateDictation)
	return r, cookie
}

func validateBody(dictationID string) map[string]any {
	return map[string]any{
		"dictationId":  dictationID,
		"studentText":  "Le chas dort.",
		"originalText": "Le chat dort.",
		"profileAge":   8,
	}
}

func TestValidateDictation_Success(t *testing.T) {
	dictationID := uuid.NewString()
	profileID := uuid.New()
	vs := &fakeValidationService{resp: &dto.ValidateDictationResponse{
		Success:  true,
		Analysis: correction.DefaultAnalysis(),
		Outcome:  string(correction.OutcomeStrict),
	}}
	router, cookie := newValidateRouter(vs)

	w := doJSON(t, router, http.MethodPost, "/dictations/"+dictationID+"/validate", validateBody(dictationID),
		&http.Cookie{Name: middleware.ProfileCookieName, Value: cookie.Sign(profileID)})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var body struct {
		Success  bool `json:"success"`
		Analysis struct {
			Stats map[string]int `json:"stats"`
		} `json:"analysis"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Success || body.Analysis.Stats["pourcentage_mots_bien_orthographies"] != 100 {
		t.Errorf("body = %s", w.Body.String())
	}
	if vs.sc.UserID != "user-1" || vs.sc.ProfileID != profileID {
		t.Errorf("submission context = %+v", vs.sc)
	}
	if vs.req.ProfileAge != 8 {
		t.Errorf("request = %+v", vs.req)
	}
}

func TestValidateDictation_IDCaseInsensitive(t *testing.T) {
	dictationID := uuid.NewString()
	vs := &fakeValidationService{resp: &dto.ValidateDictationResponse{Success: true, Analysis: correction.DefaultAnalysis()}}
	router, cookie := newValidateRouter(vs)

	w := doJSON(t, router, http.MethodPost, "/dictations/"+strings.ToUpper(dictationID)+"/validate", validateBody(dictationID),
		&http.Cookie{Name: middleware.ProfileCookieName, Value: cookie.Sign(uuid.New())})
	if w.Code != http.StatusOK || vs.calls != 1 {
		t.Fatalf("status = %d, calls = %d, body %s", w.Code, vs.calls, w.Body.String())
	}
}

func TestValidateDictation_Rejections(t *testing.T) {
	dictationID := uuid.NewString()
	profileCookie := func(c *middleware.ProfileCookie) *http.Cookie {
		return &http.Cookie{Name: middleware.ProfileCookieName, Value: c.Sign(uuid.New())}
	}

	t.Run("missing fields", func(t *testing.T) {
		vs := &fakeValidationService{}
		router, cookie := newValidateRouter(vs)
		body := validateBody(dictationID)
		delete(body, "studentText")

		w := doJSON(t, router, http.MethodPost, "/dictations/"+dictationID+"/validate", body, profileCookie(cookie))
		if w.Code != http.StatusBadRequest || decodeError(t, w).Message != "Missing required fields" {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		if vs.calls != 0 {
			t.Error("service must not be called")
		}
	})

	t.Run("no profile selected", func(t *testing.T) {
		vs := &fakeValidationService{}
		router, _ := newValidateRouter(vs)

		w := doJSON(t, router, http.MethodPost, "/dictations/"+dictationID+"/validate", validateBody(dictationID))
		if w.Code != http.StatusBadRequest || decodeError(t, w).Message != "No profile selected" {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("tampered profile cookie", func(t *testing.T) {
		vs := &fakeValidationService{}
		router, _ := newValidateRouter(vs)
		forged := &http.Cookie{Name: middleware.ProfileCookieName, Value: uuid.NewString() + ".deadbeef"}

		w := doJSON(t, router, http.MethodPost, "/dictations/"+dictationID+"/validate", validateBody(dictationID), forged)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("id mismatch", func(t *testing.T) {
		vs := &fakeValidationService{}
		router, cookie := newValidateRouter(vs)

		w := doJSON(t, router, http.MethodPost, "/dictations/"+uuid.NewString()+"/validate", validateBody(dictationID), profileCookie(cookie))
		if w.Code != http.StatusBadRequest || vs.calls != 0 {
			t.Fatalf("status = %d, calls = %d", w.Code, vs.calls)
		}
	})

	t.Run("invalid body id", func(t *testing.T) {
		vs := &fakeValidationService{}
		router, cookie := newValidateRouter(vs)

		w := doJSON(t, router, http.MethodPost, "/dictations/"+dictationID+"/validate", validateBody("dictee-1"), profileCookie(cookie))
		if w.Code != http.StatusBadRequest || vs.calls != 0 {
			t.Fatalf("status = %d, calls = %d", w.Code, vs.calls)
		}
	})

	t.Run("no session", func(t *testing.T) {
		router, _ := newValidateRouter(&fakeValidationService{})
		req := httptest.NewRequest(http.MethodPost, "/dictations/"+dictationID+"/validate", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", w.Code)
		}
	})
}

func TestValidateDictation_ServiceErrors(t *testing.T) {
	dictationID := uuid.NewString()
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"malformed model output", &correction.MalformedResponseError{Excerpt: "not json"}, http.StatusInternalServerError, "Failed to analyze dictation"},
		{"model call failed", &correction.ModelInvocationError{Provider: "openai", Err: context.DeadlineExceeded}, http.StatusInternalServerError, "Failed to analyze dictation"},
		{"foreign profile", service.ErrProfileNotFound, http.StatusNotFound, "Profile not found"},
		{"unknown dictation", service.ErrNotFound, http.StatusNotFound, "Not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, cookie := newValidateRouter(&fakeValidationService{err: tc.err})
			w := doJSON(t, router, http.MethodPost, "/dictations/"+dictationID+"/validate", validateBody(dictationID),
				&http.Cookie{Name: middleware.ProfileCookieName, Value: cookie.Sign(uuid.New())})
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			if got := decodeError(t, w).Message; got != tc.message {
				t.Errorf("message = %q, want %q", got, tc.message)
			}
		})
	}
}
