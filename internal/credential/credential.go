// Package credential turns a person's identity into a scannable QR payload
// and recovers it from scanned text.
package credential

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// ErrMalformed signals scanned text that does not decode into a credential.
var ErrMalformed = errors.New("malformed credential")

// Credential is the structured payload embedded in a person's QR code.
type Credential struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

const qrSize = 256

// Encode renders the credential as a QR PNG and returns it base64-encoded,
// ready to embed in a JSON response. Deterministic for a given input.
func Encode(id int64, name, email string) (string, error) {
	payload, err := json.Marshal(Credential{ID: id, Name: name, Email: email})
	if err != nil {
		return "", fmt.Errorf("marshal credential: %w", err)
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, qrSize)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

// Decode parses scanned credential text. The id field is required and must be
// positive; anything else is ErrMalformed.
func Decode(text string) (Credential, error) {
	var c Credential
	if err := json.Unmarshal([]byte(text), &c); err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if c.ID <= 0 {
		return Credential{}, fmt.Errorf("%w: missing id", ErrMalformed)
	}
	return c, nil
}
