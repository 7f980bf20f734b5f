package user

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tsootsoo/dictees/internal/dto"
	"github.com/tsootsoo/dictees/internal/middleware"
	"github.com/tsootsoo/dictees/internal/service"
)

// fakeProfileService serves profiles of "user-1" only.
type fakeProfileService struct {
	service.ProfileService
	profiles []dto.ProfileResponse
}

func (f *fakeProfileService) GetProfile(_ context.Context, userID string, id uuid.UUID) (*dto.ProfileResponse, error) {
	if userID != "user-1" {
		return nil, service.ErrProfileNotFound
	}
	for i := range f.profiles {
		if f.profiles[i].ID == id.String() {
			return &f.profiles[i], nil
		}
	}
	return nil, service.ErrProfileNotFound
}

func (f *fakeProfileService) LatestProfile(_ context.Context, userID string) (*dto.ProfileResponse, error) {
	if userID != "user-1" || len(f.profiles) == 0 {
		return nil, nil
	}
	return &f.profiles[0], nil
}

func newCurrentProfileRouter(ps service.ProfileService) (*gin.Engine, *middleware.ProfileCookie) {
	cookie := middleware.NewProfileCookie(testSecret, false)
	ctrl := NewCurrentProfileController(ps, cookie)
	r := gin.New()
	g := r.Group("", middleware.Auth(testSecret))
	g.GET("/current-profile", ctrl.GetCurrentProfile)
	g.POST("/current-profile", ctrl.SelectProfile)
	g.DELETE("/current-profile", ctrl.ClearCurrentProfile)
	return r, cookie
}

func decodeCurrent(t *testing.T, body []byte) dto.CurrentProfileResponse {
	t.Helper()
	var resp dto.CurrentProfileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestGetCurrentProfile_FallsBackToLatest(t *testing.T) {
	latest := uuid.New()
	router, cookie := newCurrentProfileRouter(&fakeProfileService{profiles: []dto.ProfileResponse{{ID: latest.String(), FirstName: "Noa"}}})

	w := doJSON(t, router, http.MethodGet, "/current-profile", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decodeCurrent(t, w.Body.Bytes())
	if resp.CurrentProfile == nil || resp.CurrentProfile.FirstName != "Noa" || !resp.FromFallback {
		t.Fatalf("body = %s", w.Body.String())
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), middleware.ProfileCookieName+"="+cookie.Sign(latest)) {
		t.Errorf("fallback should select the profile, Set-Cookie = %q", w.Header().Get("Set-Cookie"))
	}
}

func TestGetCurrentProfile_FromCookie(t *testing.T) {
	older, newer := uuid.New(), uuid.New()
	router, cookie := newCurrentProfileRouter(&fakeProfileService{profiles: []dto.ProfileResponse{
		{ID: newer.String(), FirstName: "Récent"},
		{ID: older.String(), FirstName: "Léa"},
	}})

	w := doJSON(t, router, http.MethodGet, "/current-profile", nil,
		&http.Cookie{Name: middleware.ProfileCookieName, Value: cookie.Sign(older)})
	resp := decodeCurrent(t, w.Body.Bytes())
	if resp.CurrentProfile == nil || resp.CurrentProfile.FirstName != "Léa" || resp.FromFallback {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestGetCurrentProfile_NoProfiles(t *testing.T) {
	router, _ := newCurrentProfileRouter(&fakeProfileService{})

	w := doJSON(t, router, http.MethodGet, "/current-profile", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"currentProfile":null`) {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestSelectProfile(t *testing.T) {
	own := uuid.New()
	router, cookie := newCurrentProfileRouter(&fakeProfileService{profiles: []dto.ProfileResponse{{ID: own.String(), FirstName: "Léa"}}})

	w := doJSON(t, router, http.MethodPost, "/current-profile", dto.SelectProfileRequest{ProfileID: own.String()})
	if w.Code != http.StatusOK || !strings.Contains(w.Header().Get("Set-Cookie"), cookie.Sign(own)) {
		t.Fatalf("status = %d, Set-Cookie = %q", w.Code, w.Header().Get("Set-Cookie"))
	}

	w = doJSON(t, router, http.MethodPost, "/current-profile", dto.SelectProfileRequest{ProfileID: uuid.NewString()})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown profile: status = %d", w.Code)
	}
	if w.Header().Get("Set-Cookie") != "" {
		t.Error("unknown profile must not be selected")
	}

	w = doJSON(t, router, http.MethodPost, "/current-profile", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing id: status = %d", w.Code)
	}
}
