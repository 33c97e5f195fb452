package feedtoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/julianstephens/weekwise/internal/constants"
)

// claims is the signed payload of a feed token. The token is a stateless
// capability: there is no server-side revocation list.
type claims struct {
	Sub      string `json:"sub"`
	Scope    string `json:"scope"`
	IssuedAt int64  `json:"iat"`
	Expires  int64  `json:"exp"`
}

// Issuer mints and verifies signed calendar-feed tokens.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

// New creates an Issuer signing with the given secret.
func New(secret []byte) *Issuer {
	return &Issuer{secret: secret, now: time.Now}
}

// WithClock overrides the issuer's time source. Used by tests to exercise
// expiry without waiting.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// Issue mints a feed token for the given user, valid for ~180 days.
func (i *Issuer) Issue(userID string) (string, time.Time, error) {
	issuedAt := i.now().UTC()
	expiresAt := issuedAt.Add(constants.FeedTokenTTLDays * 24 * time.Hour)

	payload, err := json.Marshal(claims{
		Sub:      userID,
		Scope:    constants.FeedTokenScope,
		IssuedAt: issuedAt.Unix(),
		Expires:  expiresAt.Unix(),
	})
	if err != nil {
		return "", time.Time{}, err
	}

	body := base64.RawURLEncoding.EncodeToString(payload)
	token := body + "." + i.sign(body)
	return token, expiresAt, nil
}

// Verify checks a feed token and returns the subject user ID. An invalid
// token (malformed, bad signature, expired, or wrong scope) reports ok=false;
// it is an expected client-side condition, never an error.
func (i *Issuer) Verify(token string) (string, bool) {
	body, sig, found := strings.Cut(token, ".")
	if !found || body == "" || sig == "" {
		return "", false
	}

	if !hmac.Equal([]byte(i.sign(body)), []byte(sig)) {
		return "", false
	}

	payload, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return "", false
	}

	var c claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return "", false
	}
	if c.Scope != constants.FeedTokenScope {
		return "", false
	}
	if c.Sub == "" {
		return "", false
	}
	if i.now().UTC().Unix() >= c.Expires {
		return "", false
	}

	return c.Sub, true
}

func (i *Issuer) sign(body string) string {
	mac := hmac.New(sha256.New, i.secret)
	mac.Write([]byte(body))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
