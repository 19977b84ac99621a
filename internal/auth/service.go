package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fdg312/culinary-hub/internal/appstate"
	"github.com/fdg312/culinary-hub/internal/config"
	"github.com/fdg312/culinary-hub/internal/nutrition"
	"github.com/fdg312/culinary-hub/internal/storage"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidRequest = errors.New("email and password are required")
	ErrEmailTaken     = errors.New("an account with this email already exists")
	ErrUserNotFound   = errors.New("no account found with this email")
	ErrWrongPassword  = errors.New("incorrect password")
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrInvalidToken   = errors.New("invalid token")
)

const defaultUserName = "User"

// Service is a local, single-device account stand-in. It keeps users and the
// current session in the key-value store and makes no security claims beyond
// not storing plaintext passwords.
type Service struct {
	config   *config.Config
	store    storage.Store
	state    *appstate.State
	hashCost int
	now      func() time.Time
}

func NewService(cfg *config.Config, store storage.Store, state *appstate.State) *Service {
	return &Service{
		config:   cfg,
		store:    store,
		state:    state,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// Register creates an account and signs it in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrInvalidRequest
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := findUser(users, email); ok {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = defaultUserName
	}
	user := StoredUser{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.saveUsers(ctx, append(users, user)); err != nil {
		return nil, err
	}

	return s.signIn(ctx, user)
}

// Login checks credentials and starts a session.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidRequest
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	user, ok := findUser(users, email)
	if !ok {
		return nil, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}

	return s.signIn(ctx, user)
}

// Logout ends the session. Logging out twice is not an error.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, storage.KeySession); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Current returns the signed-in user, or ErrNotLoggedIn when there is no
// valid session.
func (s *Service) Current(ctx context.Context) (*Session, error) {
	raw, err := s.store.Get(ctx, storage.KeySession)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var doc sessionDocument
	if err := json.Unmarshal(raw, &doc); err != nil || doc.AccessToken == "" {
		return nil, ErrNotLoggedIn
	}
	email, expiresAt, err := s.VerifyJWT(doc.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotLoggedIn, err)
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	user, ok := findUser(users, email)
	if !ok {
		return nil, ErrNotLoggedIn
	}
	return &Session{Email: user.Email, Name: user.Name, ExpiresAt: expiresAt}, nil
}

func (s *Service) signIn(ctx context.Context, user StoredUser) (*Session, error) {
	now := s.now()
	exp := now.Add(time.Duration(s.config.JWTTTLMinutes) * time.Minute)

	token, err := s.generateJWT(user.Email, now, exp)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JWT: %w", err)
	}
	raw, err := json.Marshal(sessionDocument{AccessToken: token})
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, storage.KeySession, raw); err != nil {
		return nil, fmt.Errorf("write session: %w", err)
	}

	if s.state != nil {
		if _, err := s.state.UpdateProfile(ctx, func(p *nutrition.Profile) {
			p.Email = user.Email
			if user.Name != "" {
				p.Name = user.Name
			}
		}); err != nil {
			_ = s.store.Delete(ctx, storage.KeySession)
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	return &Session{Email: user.Email, Name: user.Name, ExpiresAt: exp.Truncate(time.Second)}, nil
}

func (s *Service) generateJWT(subject string, now, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"iss": s.config.JWTIssuer,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// VerifyJWT checks a session token and returns its subject and expiry.
func (s *Service) VerifyJWT(tokenString string) (string, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithIssuer(s.config.JWTIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", time.Time{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", time.Time{}, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", time.Time{}, ErrInvalidToken
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return "", time.Time{}, ErrInvalidToken
	}
	return sub, exp.Time, nil
}

func (s *Service) loadUsers(ctx context.Context) ([]StoredUser, error) {
	raw, err := s.store.Get(ctx, storage.KeyUsers)
	if errors.Is(err, storage.ErrNotFound) {
		return []StoredUser{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	var users []StoredUser
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *Service) saveUsers(ctx context.Context, users []StoredUser) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, storage.KeyUsers, raw); err != nil {
		return fmt.Errorf("write users: %w", err)
	}
	return nil
}

func findUser(users []StoredUser, email string) (StoredUser, bool) {
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return StoredUser{}, false
}
