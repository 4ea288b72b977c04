package middleware

import (
	"net/http"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hongminglow/catalog-be/internal/auth"
	"github.com/hongminglow/catalog-be/internal/http/respond"
)

// TokenDecoder verifies bearer tokens.
type TokenDecoder interface {
	Decode(token string, verify bool) (*auth.Claims, error)
}

// Gate authenticates every request that does not target a public path.
// Public entries ending in "/" match any path below them; other entries
// match the path itself and anything nested under it.
type Gate struct {
	tokens TokenDecoder
	public []string
}

// NewGate builds a gate over the given public paths.
func NewGate(tokens TokenDecoder, publicPaths []string) *Gate {
	public := make([]string, 0, len(publicPaths))
	for _, p := range publicPaths {
		if p = strings.TrimSpace(p); p != "" {
			public = append(public, p)
		}
	}
	return &Gate{tokens: tokens, public: public}
}

// IsPublic reports whether p bypasses authentication.
func (g *Gate) IsPublic(p string) bool {
	if p == "" {
		p = "/"
	}
	trailing := strings.HasSuffix(p, "/")
	p = path.Clean(p)
	if trailing && p != "/" {
		p += "/"
	}
	for _, entry := range g.public {
		if strings.HasSuffix(entry, "/") {
			if strings.HasPrefix(p, entry) {
				return true
			}
			continue
		}
		if p == entry || strings.HasPrefix(p, entry+"/") {
			return true
		}
	}
	return false
}

// Wrap returns next behind the gate.
func (g *Gate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.IsPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		principal, err := g.authenticate(r)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="catalog-be"`)
			respond.Fail(w, r, err)
			return
		}

		zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("user_id", principal.Subject)
		})
		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	})
}

func (g *Gate) authenticate(r *http.Request) (auth.Principal, error) {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return auth.Principal{}, auth.ErrMissingToken
	}
	claims, err := g.tokens.Decode(token, true)
	if err != nil {
		return auth.Principal{}, err
	}
	if claims.Kind == auth.KindRefresh {
		return auth.Principal{}, auth.ErrWrongTokenKind
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return auth.Principal{}, auth.ErrMissingSubject
	}
	return auth.Principal{Subject: claims.Subject, Claims: claims}, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
