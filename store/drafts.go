package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"rechord-client/config"
	"rechord-client/models"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// DraftStore persists profile edits made without a session so an offline
// save survives a process restart. Client id 0 holds the anonymous draft.
type DraftStore interface {
	SaveDraft(ctx context.Context, clientID int64, profile models.Profile) error
	LoadDraft(ctx context.Context, clientID int64) (models.Profile, bool, error)
	Close() error
}

var openDB = sql.Open

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(cfg config.DraftConfig) (*SQLiteStore, error) {
	db, err := openDB("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("error opening draft database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS drafts (
		client_id INTEGER PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("error preparing draft schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) SaveDraft(ctx context.Context, clientID int64, profile models.Profile) error {
	payload, err := json.Marshal(newDraftRecord(profile))
	if err != nil {
		return fmt.Errorf("error encoding draft: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO drafts (client_id, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(client_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		clientID, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error saving draft: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadDraft(ctx context.Context, clientID int64) (models.Profile, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM drafts WHERE client_id = ?", clientID).Scan(&payload)
	if err == sql.ErrNoRows {
		return models.Profile{}, false, nil
	}
	if err != nil {
		return models.Profile{}, false, fmt.Errorf("error loading draft: %w", err)
	}

	var record draftRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return models.Profile{}, false, fmt.Errorf("error decoding draft: %w", err)
	}
	return record.profile(), true, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// draftRecord is the stored form of a profile; the language set flattens to a
// list for JSON.
type draftRecord struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"full_name"`
	Username           string   `json:"username"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	Website            string   `json:"blog_link"`
	BioLink            string   `json:"bio_link"`
	IsPrivate          bool     `json:"is_private"`
	LocationPermission bool     `json:"location_permission"`
	Languages          []string `json:"languages"`
	AvatarLink         string   `json:"avatar_link"`
}

func newDraftRecord(p models.Profile) draftRecord {
	return draftRecord{
		ID:                 p.ID,
		Name:               p.Name,
		Username:           p.Username,
		Email:              p.Email,
		Phone:              p.Phone,
		Website:            p.Website,
		BioLink:            p.BioLink,
		IsPrivate:          p.IsPrivate,
		LocationPermission: p.LocationPermission,
		Languages:          p.Languages.Slice(),
		AvatarLink:         p.AvatarLink,
	}
}

func (r draftRecord) profile() models.Profile {
	return models.Profile{
		ID:                 r.ID,
		Name:               r.Name,
		Username:           r.Username,
		Email:              r.Email,
		Phone:              r.Phone,
		Website:            r.Website,
		BioLink:            r.BioLink,
		IsPrivate:          r.IsPrivate,
		LocationPermission: r.LocationPermission,
		Languages:          models.NewLanguageSet(r.Languages...),
		AvatarLink:         r.AvatarLink,
	}
}
