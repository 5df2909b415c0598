package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose salts. Each token class signs with its own derived key so a token
// issued for one purpose cannot be redeemed for another.
const (
	SaltPasswordReset = "password-reset-salt"
)

// DefaultMaxAge is how long a token stays redeemable unless the caller asks
// for a tighter bound.
const DefaultMaxAge = 30 * time.Minute

var ErrInvalid = errors.New("invalid or expired token")

// Codec issues and verifies signed tokens that carry a single integer
// identifier and their issue time. Expiry is checked at verification against
// a caller-supplied maximum age, not embedded in the token.
type Codec struct {
	key []byte
	now func() time.Time
}

func New(secret, salt string) *Codec {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(salt))
	return &Codec{
		key: mac.Sum(nil),
		now: time.Now,
	}
}

type claims struct {
	UserID int `json:"uid"`
	jwt.RegisteredClaims
}

// Issue signs a token embedding id and the current time. It never fails for
// valid codec state; the error return only surfaces signing problems.
func (c *Codec) Issue(id int) (string, error) {
	cl := claims{
		UserID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(c.now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the embedded identifier if the signature matches this
// codec's purpose key and the token is no older than maxAge. Any parse,
// signature or age failure is reported uniformly as ErrInvalid.
func (c *Codec) Verify(tok string, maxAge time.Duration) (int, error) {
	var cl claims
	_, err := jwt.ParseWithClaims(tok, &cl, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.key, nil
	}, jwt.WithIssuedAt(), jwt.WithTimeFunc(c.now))
	if err != nil {
		return 0, ErrInvalid
	}

	if cl.UserID <= 0 || cl.IssuedAt == nil {
		return 0, ErrInvalid
	}
	if c.now().Sub(cl.IssuedAt.Time) > maxAge {
		return 0, ErrInvalid
	}

	return cl.UserID, nil
}
