package syncer

import (
	"context"
	"fmt"
	"image"

	"rechord-client/models"
	"rechord-client/session"
	"rechord-client/store"
)

// ProfileAPI is the slice of the API client the controller needs.
type ProfileAPI interface {
	FetchProfile(ctx context.Context, id int64, token string) (models.WireProfile, error)
	UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate, token string) error
	UploadAvatar(ctx context.Context, img image.Image, clientID int64, token string) error
}

// Status reports how a save concluded.
type Status string

const (
	// StatusSaved means the server accepted every step.
	StatusSaved Status = "saved"
	// StatusSavedLocally means there was no session; the edit was kept as a
	// local draft and no request was made.
	StatusSavedLocally Status = "saved locally"
)

// anonymousDraftID keys the draft written when no client id is known.
const anonymousDraftID = 0

// Controller owns the editable profile for one editing session. It is not
// safe for concurrent saves; a screen issues one load/save at a time.
type Controller struct {
	client  ProfileAPI
	drafts  store.DraftStore
	profile models.Profile
	avatar  image.Image
}

// NewController seeds the editable profile with concrete defaults. drafts may
// be nil, in which case an anonymous save succeeds without persisting.
func NewController(client ProfileAPI, drafts store.DraftStore) *Controller {
	return &Controller{client: client, drafts: drafts, profile: models.DefaultProfile()}
}

// Profile exposes the editable state for the presentation layer to bind to.
func (c *Controller) Profile() *models.Profile {
	return &c.profile
}

// StageAvatar records a locally picked image to upload on the next save.
func (c *Controller) StageAvatar(img image.Image) {
	c.avatar = img
}

// Load fetches the profile and merges each present server field into local
// state. Anonymous sessions are a no-op: local defaults stand. On failure the
// local state is unchanged.
func (c *Controller) Load(ctx context.Context, sess session.Session) error {
	auth, ok := session.Credentials(sess)
	if !ok {
		return nil
	}

	wire, err := c.client.FetchProfile(ctx, auth.ClientID, auth.Token)
	if err != nil {
		return fmt.Errorf("could not load profile: %w", err)
	}

	c.profile.Merge(wire)
	return nil
}

// Save pushes the editable fields, then the staged avatar if any. The field
// update always completes before the avatar upload begins, and a failed
// update prevents the upload from being attempted; there is no rollback of a
// partially applied save. Without a session the edit is kept as a local
// draft and no request is made.
func (c *Controller) Save(ctx context.Context, sess session.Session) (Status, error) {
	auth, ok := session.Credentials(sess)
	if !ok {
		if c.drafts != nil {
			if err := c.drafts.SaveDraft(ctx, anonymousDraftID, c.profile); err != nil {
				return "", fmt.Errorf("could not keep local draft: %w", err)
			}
		}
		return StatusSavedLocally, nil
	}

	update := models.UpdateFromProfile(c.profile)
	if err := c.client.UpdateProfile(ctx, auth.ClientID, update, auth.Token); err != nil {
		return "", fmt.Errorf("could not save profile: %w", err)
	}

	if c.avatar != nil {
		if err := c.client.UploadAvatar(ctx, c.avatar, auth.ClientID, auth.Token); err != nil {
			return "", fmt.Errorf("could not upload avatar: %w", err)
		}
	}

	return StatusSaved, nil
}

// RestoreDraft replaces the editable state with a previously kept draft, if
// one exists.
func (c *Controller) RestoreDraft(ctx context.Context) (bool, error) {
	if c.drafts == nil {
		return false, nil
	}
	draft, found, err := c.drafts.LoadDraft(ctx, anonymousDraftID)
	if err != nil {
		return false, fmt.Errorf("could not restore draft: %w", err)
	}
	if !found {
		return false, nil
	}
	c.profile = draft
	return true, nil
}
