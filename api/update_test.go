package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"rechord-client/api"
	"rechord-client/models"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestUpdateProfileSendsWireFields(t *testing.T) {
	var gotForm map[string][]string
	var gotContentType, gotAuth string
	server := newStubServer(t, func(router *mux.Router) {
		router.HandleFunc("/clients/{id}", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "7", mux.Vars(r)["id"])
			gotContentType = r.Header.Get("Content-Type")
			gotAuth = r.Header.Get("Authorization")
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			gotForm = r.MultipartForm.Value
		}).Methods("POST")
	})

	name := "Ada"
	private := true
	languages := models.NewLanguageSet("en", "tr")
	update := models.ProfileUpdate{Name: &name, IsPrivate: &private, Languages: &languages}

	err := newTestClient(server).UpdateProfile(context.Background(), 7, update, "token-abc")
	assert.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotContentType, "multipart/form-data"))
	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.Equal(t, map[string][]string{
		"full_name":  {"Ada"},
		"is_private": {"1"},
		"languages":  {"en,tr"},
	}, gotForm)
}

func TestUpdateProfileOmitsAbsentFields(t *testing.T) {
	var gotForm map[string][]string
	server := newStubServer(t, func(router *mux.Router) {
		router.HandleFunc("/clients/{id}", func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			gotForm = r.MultipartForm.Value
		}).Methods("POST")
	})

	email := ""
	update := models.ProfileUpdate{Email: &email}

	err := newTestClient(server).UpdateProfile(context.Background(), 7, update, "token")
	assert.NoError(t, err)

	// A present-but-empty field still goes on the wire; absent fields do not.
	assert.Equal(t, map[string][]string{"email": {""}}, gotForm)
}

func TestUpdateProfileNon2xxStatus(t *testing.T) {
	server := newStubServer(t, func(router *mux.Router) {
		router.HandleFunc("/clients/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}).Methods("POST")
	})

	err := newTestClient(server).UpdateProfile(context.Background(), 7, models.ProfileUpdate{}, "token")
	var requestErr *api.RequestError
	assert.ErrorAs(t, err, &requestErr)
	assert.Equal(t, http.StatusUnprocessableEntity, requestErr.Status)
}
