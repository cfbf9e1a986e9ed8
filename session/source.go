package session

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"rechord-client/secretmanager"

	"github.com/golang-jwt/jwt/v4"
)

var (
	getSecret = secretmanager.GetSecret
	timeNow   = time.Now
)

// FromEnv builds a session from RECHORD_TOKEN and RECHORD_CLIENT_ID. Anything
// missing, malformed, or expired yields Anonymous.
func FromEnv() Session {
	token := os.Getenv("RECHORD_TOKEN")
	clientID, err := strconv.ParseInt(os.Getenv("RECHORD_CLIENT_ID"), 10, 64)
	if token == "" || err != nil {
		return Anonymous{}
	}
	return fromCredentials(token, clientID)
}

// FromSecret builds a session from a Secrets Manager secret holding
// {"token": ..., "client_id": ...}.
func FromSecret(name string) (Session, error) {
	secretJSON, err := getSecret(name)
	if err != nil {
		return nil, fmt.Errorf("error retrieving session secret: %w", err)
	}

	var payload struct {
		Token    string `json:"token"`
		ClientID int64  `json:"client_id"`
	}
	if err := json.Unmarshal([]byte(secretJSON), &payload); err != nil {
		return nil, fmt.Errorf("error parsing session secret JSON: %w", err)
	}
	if payload.Token == "" || payload.ClientID == 0 {
		return Anonymous{}, nil
	}
	return fromCredentials(payload.Token, payload.ClientID), nil
}

func fromCredentials(token string, clientID int64) Session {
	if tokenExpired(token) {
		log.Println("Bearer token is expired; starting anonymous session")
		return Anonymous{}
	}
	return Authenticated{Token: token, ClientID: clientID}
}

// tokenExpired inspects the exp claim of a JWT-shaped token without verifying
// the signature. Opaque tokens pass through as valid.
func tokenExpired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(timeNow())
}
