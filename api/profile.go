package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"sort"

	"rechord-client/models"
)

// responseShape tags the two accepted profile response layouts: the profile
// object at the top level, or the same object nested under a "data" key.
type responseShape int

const (
	shapeBare responseShape = iota
	shapeWrapped
)

func (s responseShape) String() string {
	if s == shapeWrapped {
		return "wrapped"
	}
	return "bare"
}

// FetchProfile retrieves profile id and returns the wire fields the server
// sent. Callers merge the result into their local state field by field.
func (c *Client) FetchProfile(ctx context.Context, id int64, token string) (models.WireProfile, error) {
	const op = "fetch profile"

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("clients/show/%d", id), token, "", nil)
	if err != nil {
		return models.WireProfile{}, newRequestError(op, 0, err)
	}

	body, err := c.do(op, req)
	if err != nil {
		return models.WireProfile{}, err
	}

	shape, payload, err := classifyProfileResponse(body)
	if err != nil {
		return models.WireProfile{}, &DecodeError{Op: op, Err: err}
	}

	var wire models.WireProfile
	if err := json.Unmarshal(payload, &wire); err != nil {
		return models.WireProfile{}, &DecodeError{Op: op, Err: fmt.Errorf("%s shape: %w", shape, err)}
	}
	return wire, nil
}

// classifyProfileResponse picks a shape by inspecting the envelope, rather
// than attempting one decode and falling back on failure. Either way the
// chosen payload must be a JSON object; null and scalar bodies match neither
// shape.
func classifyProfileResponse(body []byte) (responseShape, json.RawMessage, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return shapeBare, nil, err
	}
	if len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		if !isJSONObject(envelope.Data) {
			return shapeWrapped, nil, errors.New("wrapped payload is not an object")
		}
		return shapeWrapped, envelope.Data, nil
	}
	if !isJSONObject(body) {
		return shapeBare, nil, errors.New("payload is not an object")
	}
	return shapeBare, body, nil
}

func isJSONObject(payload []byte) bool {
	trimmed := bytes.TrimLeft(payload, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// UpdateProfile pushes a partial field set as multipart form data. Only
// fields present in the update are written; the caller decides what to send.
func (c *Client) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate, token string) error {
	const op = "update profile"

	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	fields := update.WireFields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writer.WriteField(name, fields[name]); err != nil {
			return &EncodeError{Op: op, Err: err}
		}
	}
	if err := writer.Close(); err != nil {
		return &EncodeError{Op: op, Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("clients/%d", id), token, writer.FormDataContentType(), &buffer)
	if err != nil {
		return newRequestError(op, 0, err)
	}

	_, err = c.do(op, req)
	return err
}
