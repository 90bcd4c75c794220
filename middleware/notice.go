package middleware

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/hkdf"
)

const (
	NoticeCookieName = "blogly_notice"

	noticeStoreKey   = "notice_store"
	noticePendingKey = "notice_pending"
	noticeTTL        = 10 * time.Minute
)

type noticeClaims struct {
	Messages []string `json:"msgs"`
	jwt.RegisteredClaims
}

// NoticeStore keeps one-shot notices in a signed cookie between a redirect
// and the next rendered page.
type NoticeStore struct {
	key    []byte
	secure bool
}

// NewNoticeStore derives the cookie signing key from the application secret.
func NewNoticeStore(secret string, secure bool) (*NoticeStore, error) {
	if secret == "" {
		return nil, errors.New("notice store needs a secret key")
	}

	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("blogly notice cookie"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("derive notice key: %w", err)
	}

	return &NoticeStore{key: key, secure: secure}, nil
}

// Middleware loads pending notices from the request cookie. A cookie that
// fails verification is dropped.
func (s *NoticeStore) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(noticeStoreKey, s)

		if raw, err := c.Cookie(NoticeCookieName); err == nil && raw != "" {
			msgs, err := s.decode(raw)
			if err != nil {
				s.clear(c)
			} else {
				c.Set(noticePendingKey, msgs)
			}
		}

		c.Next()
	}
}

// AddNotice queues msg for the next rendered page. It must be called before
// the response is written.
func AddNotice(c *gin.Context, msg string) {
	s, ok := storeFrom(c)
	if !ok {
		return
	}

	msgs := append(append([]string(nil), pending(c)...), msg)
	token, err := s.encode(msgs)
	if err != nil {
		_ = c.Error(fmt.Errorf("encode notice: %w", err))
		return
	}

	c.Set(noticePendingKey, msgs)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(NoticeCookieName, token, int(noticeTTL.Seconds()), "/", "", s.secure, true)
}

// PopNotices returns the pending notices and clears them so they are shown
// only once.
func PopNotices(c *gin.Context) []string {
	msgs := pending(c)
	if len(msgs) == 0 {
		return nil
	}

	c.Set(noticePendingKey, []string(nil))
	if s, ok := storeFrom(c); ok {
		s.clear(c)
	}
	return msgs
}

func (s *NoticeStore) encode(msgs []string) (string, error) {
	now := time.Now()
	claims := noticeClaims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(noticeTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

func (s *NoticeStore) decode(raw string) ([]string, error) {
	claims := &noticeClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims.Messages, nil
}

func (s *NoticeStore) clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(NoticeCookieName, "", -1, "/", "", s.secure, true)
}

func storeFrom(c *gin.Context) (*NoticeStore, bool) {
	v, ok := c.Get(noticeStoreKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*NoticeStore)
	return s, ok
}

func pending(c *gin.Context) []string {
	v, ok := c.Get(noticePendingKey)
	if !ok {
		return nil
	}
	msgs, _ := v.([]string)
	return msgs
}
