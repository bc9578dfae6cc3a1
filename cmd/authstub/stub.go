package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// account is one seeded login. The raw payloads deliberately vary
// field spellings per endpoint, matching the production backend's
// behavior the normalizer exists for.
type account struct {
	id       int64
	login    string
	password string
	name     string
	email    string
	tipo     string
	roles    []string
	corrID   int64 // 0 = none
}

type stub struct {
	cfg stubConfig
	log *slog.Logger

	accounts map[string]*account

	mu       sync.Mutex
	refresh  map[string]string // refresh token -> login
	sessions map[string]string // access token jti -> login
}

func newStub(cfg stubConfig, log *slog.Logger) *stub {
	return &stub{
		cfg: cfg,
		log: log,
		accounts: map[string]*account{
			"admin": {
				id: 1, login: "admin", password: "secret1",
				name: "Administrator", email: "admin@example.com",
				tipo: "ADMIN", roles: []string{"ROLE_ADMIN"},
			},
			"jdoe": {
				id: 2, login: "jdoe", password: "secret1",
				name: "John Doe", email: "jdoe@example.com",
				tipo: "ADVOGADO", roles: []string{"ROLE_ADVOGADO"},
			},
			"maria": {
				id: 3, login: "maria", password: "secret1",
				name: "Maria Silva", email: "maria@example.com",
				// Role claim intentionally absent: the login response
				// for correspondents omits it upstream too.
				tipo: "CORRESPONDENTE", roles: []string{},
				corrID: 7,
			},
		},
		refresh:  make(map[string]string),
		sessions: make(map[string]string),
	}
}

func (s *stub) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Post("/login", s.handleLogin)
	r.Post("/refresh", s.handleRefresh)
	r.Get("/me", s.handleMe)
	r.Get("/validate", s.handleValidate)
	r.Get("/correspondent/{id}", s.handleCorrespondent)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

func (s *stub) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login    string `json:"login"`
		Password string `json:"senha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	acct, ok := s.accounts[req.Login]
	if !ok || acct.password != req.Password {
		s.log.Info("login rejected", slog.String("login", req.Login))
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	access, refresh := s.issue(acct)

	// Login is the lightweight response: alternate name spelling and
	// a flat correspondent id key.
	resp := map[string]any{
		"token":        access,
		"refreshToken": refresh,
		"id":           acct.id,
		"login":        acct.login,
		"nomeCompleto": acct.name,
		"tipo":         acct.tipo,
		"roles":        acct.roles,
		"ativo":        true,
	}
	if acct.corrID != 0 {
		resp["correspondenteId"] = acct.corrID
	}

	s.log.Info("login accepted", slog.String("login", acct.login))
	writeJSON(w, http.StatusOK, resp)
}

func (s *stub) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	login, ok := s.refresh[req.RefreshToken]
	if ok {
		delete(s.refresh, req.RefreshToken)
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, "unknown refresh token", http.StatusUnauthorized)
		return
	}

	access, refresh := s.issue(s.accounts[login])
	writeJSON(w, http.StatusOK, map[string]string{
		"token":        access,
		"refreshToken": refresh,
	})
}

func (s *stub) handleMe(w http.ResponseWriter, r *http.Request) {
	acct, ok := s.authenticate(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// The profile endpoint is the heavyweight response: canonical
	// name key, alternate email key, Spring-style authorities, and a
	// nested correspondent object.
	authorities := make([]map[string]string, 0, len(acct.roles))
	for _, role := range acct.roles {
		authorities = append(authorities, map[string]string{"authority": role})
	}

	resp := map[string]any{
		"id":             acct.id,
		"login":          acct.login,
		"nome":           acct.name,
		"emailPrincipal": acct.email,
		"tipo":           acct.tipo,
		"authorities":    authorities,
		"ativo":          true,
	}
	if acct.corrID != 0 {
		resp["correspondente"] = map[string]any{"id": acct.corrID}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *stub) handleValidate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(r); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "valid"})
}

func (s *stub) handleCorrespondent(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(r); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	for _, acct := range s.accounts {
		if acct.corrID == id {
			writeJSON(w, http.StatusOK, map[string]any{
				"id":    id,
				"nome":  acct.name,
				"email": acct.email,
				"ativo": true,
			})
			return
		}
	}

	http.Error(w, "not found", http.StatusNotFound)
}

// issue mints an access/refresh pair and records both.
func (s *stub) issue(acct *account) (access, refresh string) {
	jti := uuid.NewString()
	access = s.mintToken(acct.login, jti)
	refresh = uuid.NewString()

	s.mu.Lock()
	s.sessions[jti] = acct.login
	s.refresh[refresh] = acct.login
	s.mu.Unlock()

	return access, refresh
}

// mintToken builds an HS256 JWT. The core under test only reads exp,
// but a properly signed token keeps the stub honest for other tools.
func (s *stub) mintToken(login, jti string) string {
	enc := func(v any) string {
		data, _ := json.Marshal(v)
		return base64.RawURLEncoding.EncodeToString(data)
	}

	header := enc(map[string]string{"typ": "JWT", "alg": "HS256"})
	claims := enc(map[string]any{
		"sub": login,
		"jti": jti,
		"exp": time.Now().Add(s.cfg.TokenTTL).Unix(),
		"iat": time.Now().Unix(),
	})

	payload := header + "." + claims
	mac := hmac.New(sha256.New, []byte(s.cfg.Secret))
	mac.Write([]byte(payload))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	return payload + "." + sig
}

// authenticate resolves the bearer token to a seeded account. Expired
// and unknown tokens are rejected.
func (s *stub) authenticate(r *http.Request) (*account, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return nil, false
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, false
	}

	payload := parts[0] + "." + parts[1]
	mac := hmac.New(sha256.New, []byte(s.cfg.Secret))
	mac.Write([]byte(payload))
	if base64.RawURLEncoding.EncodeToString(mac.Sum(nil)) != parts[2] {
		return nil, false
	}

	data, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, false
	}

	var claims struct {
		Sub string `json:"sub"`
		Jti string `json:"jti"`
		Exp int64  `json:"exp"`
	}
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, false
	}
	if time.Now().Unix() >= claims.Exp {
		return nil, false
	}

	s.mu.Lock()
	login, ok := s.sessions[claims.Jti]
	s.mu.Unlock()
	if !ok || login != claims.Sub {
		return nil, false
	}

	acct, ok := s.accounts[login]
	return acct, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Status is already written; an encode failure has no recovery.
	_ = json.NewEncoder(w).Encode(v)
}
