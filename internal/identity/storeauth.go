package identity

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tooldex/tooldex/internal/domain"
	"github.com/tooldex/tooldex/internal/kv"
	"github.com/tooldex/tooldex/internal/store"
)

// StoreAuth keeps accounts in the users collection of whatever store
// adapter the process runs on, and marks the active session in the kv
// namespace. It backs every in-process backend; only the rest backend
// authenticates elsewhere.
type StoreAuth struct {
	adapter store.Adapter
	kv      kv.Store
	cost    int
}

// session is the blob written under kv.KeySession.
type session struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

func NewStoreAuth(adapter store.Adapter, kvStore kv.Store) *StoreAuth {
	return &StoreAuth{adapter: adapter, kv: kvStore, cost: bcrypt.DefaultCost}
}

func (s *StoreAuth) SignUp(ctx context.Context, email, password, name string) Result {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return failure(MsgInvalidCredentials)
	}

	existing, err := s.adapter.Get(ctx, domain.CollectionUsers, store.Filters{"email": email})
	if err == nil && len(existing) > 0 {
		return failure(MsgEmailExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return failure(MsgInvalidCredentials)
	}

	rec := store.Record{
		"email":    email,
		"password": string(hash),
		"name":     name,
		"role":     domain.RoleUser,
		"status":   domain.UserActive,
	}
	res, err := s.adapter.Save(ctx, domain.CollectionUsers, rec)
	if err != nil {
		return failure("Could not create account")
	}

	user := recordToUser(rec)
	user.ID = res.ID
	if err := s.writeSession(ctx, user); err != nil {
		return failure("Could not create account")
	}
	return success(&user)
}

func (s *StoreAuth) SignIn(ctx context.Context, email, password string) Result {
	email = normalizeEmail(email)

	recs, err := s.adapter.Get(ctx, domain.CollectionUsers, store.Filters{"email": email})
	if err != nil || len(recs) == 0 {
		return failure(MsgInvalidCredentials)
	}
	user := recordToUser(recs[0])

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return failure(MsgInvalidCredentials)
	}
	if user.Status == domain.UserBlocked {
		return failure(MsgAccountBlocked)
	}

	if err := s.writeSession(ctx, user); err != nil {
		return failure(MsgInvalidCredentials)
	}
	return success(&user)
}

func (s *StoreAuth) SignOut(ctx context.Context) error {
	return s.kv.Delete(ctx, kv.KeySession)
}

func (s *StoreAuth) CurrentUser(ctx context.Context) (*domain.User, error) {
	raw, err := s.kv.Get(ctx, kv.KeySession)
	if err != nil {
		return nil, nil // signed out, or the marker is unreadable
	}
	var sess session
	if err := json.Unmarshal(raw, &sess); err != nil || sess.UserID == "" {
		return nil, nil
	}

	recs, err := s.adapter.Get(ctx, domain.CollectionUsers, store.Filters{"id": sess.UserID})
	if err != nil || len(recs) == 0 {
		return nil, nil
	}
	user := recordToUser(recs[0]).Sanitized()
	return &user, nil
}

func (s *StoreAuth) writeSession(ctx context.Context, user domain.User) error {
	raw, err := json.Marshal(session{UserID: user.ID, Email: user.Email})
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, kv.KeySession, raw)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// recordToUser decodes an adapter record through JSON so timestamp strings
// land in the typed fields.
func recordToUser(rec store.Record) domain.User {
	var u domain.User
	raw, err := json.Marshal(rec)
	if err != nil {
		return u
	}
	_ = json.Unmarshal(raw, &u)
	if u.CreatedAt.IsZero() {
		if ts, ok := rec["createdAt"].(string); ok {
			if parsed, perr := time.Parse(time.RFC3339Nano, ts); perr == nil {
				u.CreatedAt = parsed
			}
		}
	}
	return u
}
