package api

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"rechord-client/models"
)

var jpegEncode = jpeg.Encode

// UploadAvatar re-encodes the picked image as JPEG at the configured quality
// and uploads it under the fixed field name and filename the backend expects.
func (c *Client) UploadAvatar(ctx context.Context, img image.Image, clientID int64, token string) error {
	const op = "upload avatar"

	var encoded bytes.Buffer
	if err := jpegEncode(&encoded, img, &jpeg.Options{Quality: c.jpegQuality}); err != nil {
		return &EncodeError{Op: op, Err: err}
	}

	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)
	if err := writer.WriteField("client_id", models.FormatClientID(clientID)); err != nil {
		return &EncodeError{Op: op, Err: err}
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="avatar"; filename="avatar.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := writer.CreatePart(header)
	if err != nil {
		return &EncodeError{Op: op, Err: err}
	}
	if _, err := part.Write(encoded.Bytes()); err != nil {
		return &EncodeError{Op: op, Err: err}
	}
	if err := writer.Close(); err != nil {
		return &EncodeError{Op: op, Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, "avatar", token, writer.FormDataContentType(), &buffer)
	if err != nil {
		return newRequestError(op, 0, err)
	}

	_, err = c.do(op, req)
	return err
}
