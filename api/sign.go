package api

import (
	"crypto/hmac"
	"crypto/md5" //nolint:gosec // the gateway's body digest is MD5
	"crypto/sha1" //nolint:gosec // the gateway verifies HMAC-SHA1
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the minute-granularity timestamp carried in X-Megam-DATE.
const DateLayout = "2006-01-02 15:04"

// Credentials identify the caller. Password is the base64 form the gateway stores.
// Empty strings count as absent.
type Credentials struct {
	Email    string
	APIKey   string
	Password string
}

// KeySource names where the HMAC key comes from.
type KeySource int

const (
	KeyNone KeySource = iota
	KeyAPIKey
	KeyPassword
)

func (k KeySource) String() string {
	switch k {
	case KeyAPIKey:
		return "api_key"
	case KeyPassword:
		return "password"
	default:
		return "none"
	}
}

// KeySource picks the HMAC key, first match wins:
// password without api key, then api key, then nothing.
func (c Credentials) KeySource() KeySource {
	switch {
	case c.Password != "" && c.APIKey == "":
		return KeyPassword
	case c.APIKey != "":
		return KeyAPIKey
	default:
		return KeyNone
	}
}

func (c Credentials) hmacKey() ([]byte, error) {
	switch c.KeySource() {
	case KeyPassword:
		key, err := base64.StdEncoding.Strict().DecodeString(c.Password)
		if err != nil {
			return nil, fmt.Errorf("decode password: %w", err)
		}
		return key, nil
	case KeyAPIKey:
		return []byte(c.APIKey), nil
	default:
		return []byte{}, nil
	}
}

// SignedHeaders are the values of X-Megam-HMAC and X-Megam-DATE for one request.
type SignedHeaders struct {
	HMAC string
	Date string
}

// Sign computes the signature the gateway expects for path and body at now. The
// result is only valid within the minute of now.
func Sign(creds Credentials, path string, body []byte, now time.Time) (SignedHeaders, error) {
	key, err := creds.hmacKey()
	if err != nil {
		return SignedHeaders{}, err
	}

	date := now.Format(DateLayout)
	digest := md5.Sum(body) //nolint:gosec
	data := date + "\n" + path + "\n" + base64.StdEncoding.EncodeToString(digest[:])
	data = strings.TrimRight(data, " \t\r\n")

	mac := hmac.New(sha1.New, key)
	mac.Write([]byte(data))

	return SignedHeaders{
		HMAC: creds.Email + ":" + hex.EncodeToString(mac.Sum(nil)),
		Date: date,
	}, nil
}

// Signer signs with a replaceable clock.
type Signer struct {
	Now func() time.Time
}

func (s Signer) Sign(creds Credentials, path string, body []byte) (SignedHeaders, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return Sign(creds, path, body, now())
}
