package api_test

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rechord-client/api"
	"rechord-client/config"
	"rechord-client/models"

	"github.com/felixge/httpsnoop"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

// newStubServer wires a mux router the way the real backend fronts its API:
// CORS plus request logging around every route.
func newStubServer(t *testing.T, register func(*mux.Router)) *httptest.Server {
	t.Helper()

	router := mux.NewRouter()
	register(router)

	logged := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics := httpsnoop.CaptureMetrics(router, w, r)
		log.Printf("stub request method=%s path=%s status=%d", r.Method, r.URL.Path, metrics.Code)
	})
	handler := gorillaHandlers.CORS(gorillaHandlers.AllowedOrigins([]string{"*"}))(logged)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(server *httptest.Server) *api.Client {
	return api.NewClient(config.Config{
		API:    config.APIConfig{BaseURL: server.URL, Timeout: 5 * time.Second},
		Avatar: config.AvatarConfig{JPEGQuality: 80},
	})
}

const profileJSON = `{
	"id": 7,
	"full_name": "Ada Lovelace",
	"username": "ada",
	"email": "ada@example.com",
	"phone": "555",
	"blog_link": "https://ada.example",
	"is_private": 1,
	"location_permission": 0,
	"languages": ["en", "tr"],
	"avatar_link": "https://cdn.example/avatar.jpg"
}`

func TestFetchProfileBareShape(t *testing.T) {
	var gotAuth string
	server := newStubServer(t, func(router *mux.Router) {
		router.HandleFunc("/clients/show/{id}", func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			assert.Equal(t, "7", mux.Vars(r)["id"])
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(profileJSON))
		}).Methods("POST")
	})

	wire, err := newTestClient(server).FetchProfile(context.Background(), 7, "token-abc")
	assert.NoError(t, err)
	assert.Equal(t, "Bearer token-abc", gotAuth)

	profile := models.DefaultProfile()
	profile.Merge(wire)
	assert.Equal(t, int64(7), profile.ID)
	assert.Equal(t, "Ada Lovelace", profile.Name)
	assert.Equal(t, "ada", profile.Username)
	assert.True(t, profile.IsPrivate)
	assert.False(t, profile.LocationPermission)
	assert.Equal(t, []string{"en", "tr"}, profile.Languages.Slice())
	assert.Equal(t, "https://cdn.example/avatar.jpg", profile.AvatarLink)
}

func TestFetchProfileWrappedShapeMatchesBare(t *testing.T) {
	server := newStubServer(t, func(router *mux.Router) {
		router.HandleFunc("/clients/show/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data": ` + profileJSON + `}`))
		}).Methods("POST")
	})

	wire, err := newTestClient(server).FetchProfile(context.Background(), 7, "token")
	assert.NoError(t, err)

	bare := models.DefaultProfile()
	wrapped := models.DefaultProfile()
	var bareWire models.WireProfile
	assert.NoError(t, json.Unmarshal([]byte(profileJSON), &bareWire))
	bare.Merge(bareWire)
	wrapped.Merge(wire)
	assert.Equal(t, bare, wrapped)
}

func TestFetchProfileNeitherShape(t *testing.T) {
	for name, body := range map[string]string{
		"array":        `[1, 2, 3]`,
		"scalar":       `42`,
		"null":         `null`,
		"invalid json": `{not-json`,
		"bad wrapped":  `{"data": "nope"}`,
	} {
		t.Run(name, func(t *testing.T) {
			server := newStubServer(t, func(router *mux.Router) {
				router.HandleFunc("/clients/show/{id}", func(w http.ResponseWriter, r *http.Request) {
					w.Write([]byte(body))
				}).Methods("POST")
			})

			_, err := newTestClient(server).FetchProfile(context.Background(), 7, "token")
			var decodeErr *api.DecodeError
			assert.ErrorAs(t, err, &decodeErr)
		})
	}
}

func TestFetchProfileNon2xxStatus(t *testing.T) {
	server := newStubServer(t, func(router *mux.Router) {
		router.HandleFunc("/clients/show/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}).Methods("POST")
	})

	_, err := newTestClient(server).FetchProfile(context.Background(), 7, "token")
	var requestErr *api.RequestError
	assert.ErrorAs(t, err, &requestErr)
	assert.Equal(t, http.StatusForbidden, requestErr.Status)
}

func TestFetchProfileTransportFailure(t *testing.T) {
	server := newStubServer(t, func(router *mux.Router) {})
	server.Close()

	_, err := newTestClient(server).FetchProfile(context.Background(), 7, "token")
	var requestErr *api.RequestError
	assert.ErrorAs(t, err, &requestErr)
	assert.Equal(t, 0, requestErr.Status)
}
