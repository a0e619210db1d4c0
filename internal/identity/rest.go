package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tooldex/tooldex/internal/domain"
	"github.com/tooldex/tooldex/internal/kv"
)

// Rest authenticates against a remote HTTP API and keeps the issued token
// under kv.KeyAuthToken so the rest store adapter can attach it to its
// requests.
type Rest struct {
	baseURL string
	client  *http.Client
	kv      kv.Store
}

func NewRest(baseURL string, kvStore kv.Store) *Rest {
	return &Rest{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		kv:      kvStore,
	}
}

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type authEnvelope struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
	Err   string       `json:"error"`
}

func (r *Rest) SignIn(ctx context.Context, email, password string) Result {
	return r.exchange(ctx, "/auth/login", credentialsPayload{
		Email:    normalizeEmail(email),
		Password: password,
	}, MsgInvalidCredentials)
}

func (r *Rest) SignUp(ctx context.Context, email, password, name string) Result {
	return r.exchange(ctx, "/auth/register", credentialsPayload{
		Email:    normalizeEmail(email),
		Password: password,
		Name:     name,
	}, MsgEmailExists)
}

func (r *Rest) SignOut(ctx context.Context) error {
	return r.kv.Delete(ctx, kv.KeyAuthToken)
}

func (r *Rest) CurrentUser(ctx context.Context) (*domain.User, error) {
	token, err := r.kv.Get(ctx, kv.KeyAuthToken)
	if err != nil || len(token) == 0 {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, nil
	}
	req.Header.Set("Authorization", "Bearer "+string(token))

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, nil
	}
	clean := user.Sanitized()
	return &clean, nil
}

// exchange posts credentials and, on success, stores the issued token.
// fallbackMsg covers remote failures that come back without a message.
func (r *Rest) exchange(ctx context.Context, path string, payload credentialsPayload, fallbackMsg string) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		return failure(fallbackMsg)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return failure(fallbackMsg)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return failure(fmt.Sprintf("Service unavailable: %v", err))
	}
	defer resp.Body.Close()

	var envelope authEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return failure(fallbackMsg)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if envelope.Err != "" {
			return failure(envelope.Err)
		}
		return failure(fallbackMsg)
	}

	if envelope.Token != "" {
		if err := r.kv.Set(ctx, kv.KeyAuthToken, []byte(envelope.Token)); err != nil {
			return failure(fallbackMsg)
		}
	}
	if envelope.User == nil {
		return failure(fallbackMsg)
	}
	return success(envelope.User)
}
