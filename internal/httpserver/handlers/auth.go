package handlers

import (
	"net/http"

	"github.com/tooldex/tooldex/internal/domain"
	"github.com/tooldex/tooldex/internal/httpserver/deps"
	"github.com/tooldex/tooldex/internal/httpserver/mw"
	"github.com/tooldex/tooldex/internal/identity"
	"github.com/tooldex/tooldex/internal/logger"
	"github.com/tooldex/tooldex/internal/store"
)

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login handles POST /auth/login. Bad credentials are 401, a blocked
// account 403, and success carries a signed token.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body credentialsBody
		if err := decodeBody(r, &body); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed body"})
			return
		}

		res := d.Auth.SignIn(r.Context(), body.Email, body.Password)
		if !res.Success {
			status := http.StatusUnauthorized
			if res.Err == identity.MsgAccountBlocked {
				status = http.StatusForbidden
			}
			respondJSON(w, status, errorResponse{Error: res.Err})
			return
		}
		issueToken(w, d, res.User)
	}
}

// Register handles POST /auth/register. A taken email is a 409.
func Register(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body credentialsBody
		if err := decodeBody(r, &body); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed body"})
			return
		}

		res := d.Auth.SignUp(r.Context(), body.Email, body.Password, body.Name)
		if !res.Success {
			status := http.StatusBadRequest
			if res.Err == identity.MsgEmailExists {
				status = http.StatusConflict
			}
			respondJSON(w, status, errorResponse{Error: res.Err})
			return
		}
		issueToken(w, d, res.User)
	}
}

// Logout handles POST /auth/logout.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Auth.SignOut(r.Context()); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Me handles GET /auth/me behind RequireAuth: it resolves the token's user
// against the users collection so a blocked or deleted account stops
// resolving immediately, not at token expiry.
func Me(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := mw.ClaimsFrom(r.Context())
		if claims == nil {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
			return
		}

		recs, err := d.Store.Get(r.Context(), domain.CollectionUsers,
			store.Filters{"id": claims.UserID})
		if err != nil || len(recs) == 0 {
			// The rest backend keeps its accounts remotely; fall through to
			// the authenticator's own session.
			if user, uerr := d.Auth.CurrentUser(r.Context()); uerr == nil && user != nil && user.ID == claims.UserID {
				respondJSON(w, http.StatusOK, user)
				return
			}
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unknown user"})
			return
		}
		rec := recs[0]
		if rec["status"] == domain.UserBlocked {
			respondJSON(w, http.StatusForbidden, errorResponse{Error: identity.MsgAccountBlocked})
			return
		}
		delete(rec, "password")
		respondJSON(w, http.StatusOK, rec)
	}
}

func issueToken(w http.ResponseWriter, d deps.Deps, user *domain.User) {
	token, err := identity.GenerateToken(user.ID, user.Role, d.JWTSecret, d.TokenTTL)
	if err != nil {
		d.Logger.Error("token signing failed", logger.Error(err))
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}
