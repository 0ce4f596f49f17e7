package session

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/config"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
)

var ErrNoSession = errors.New("session not found or expired")

const keyPrefix = "session:"

// Session is the authenticated identity attached to a request.
type Session struct {
	ID       string     `json:"-"`
	UserID   int        `json:"userId"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

type claims struct {
	UserID   int        `json:"uid"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Store keeps sessions in Redis; the cookie carries an HS256 token whose jti is the session key.
type Store struct {
	client     *redis.Client
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
}

func NewStore(client *redis.Client, cfg config.Session) *Store {
	return &Store{
		client:     client,
		secret:     []byte(cfg.Secret),
		ttl:        cfg.TTL,
		cookieName: cfg.CookieName,
		secure:     cfg.Secure,
	}
}

func key(id string) string {
	return keyPrefix + id
}

// Create stores a new session for user and returns it with its signed token.
func (s *Store) Create(ctx context.Context, user model.User) (Session, string, error) {
	sess := Session{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return Session{}, "", err
	}
	if err := s.client.Set(ctx, key(sess.ID), data, s.ttl).Err(); err != nil {
		return Session{}, "", errors.Wrap(err, "redis set")
	}

	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}).SignedString(s.secret)
	if err != nil {
		return Session{}, "", errors.Wrap(err, "sign token")
	}
	return sess, token, nil
}

// Resolve verifies the token and loads its session; a revoked session fails even with a valid token.
func (s *Store) Resolve(ctx context.Context, token string) (Session, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Session{}, ErrNoSession
	}

	data, err := s.client.Get(ctx, key(c.ID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNoSession
		}
		return Session{}, errors.Wrap(err, "redis get")
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, errors.Wrap(err, "decode session")
	}
	if sess.UserID != c.UserID {
		return Session{}, ErrNoSession
	}
	sess.ID = c.ID
	return sess, nil
}

func (s *Store) Destroy(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return errors.Wrap(err, "redis del")
	}
	return nil
}

func (s *Store) CookieName() string {
	return s.cookieName
}

func (s *Store) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Store) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
