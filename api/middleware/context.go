package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	"github.com/hanamura/noodlehouse-backend/pkg/logger"
)

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	languageKey  contextKey = "language"

	sessionIDHeader = "X-Session-Id"
	languageHeader  = "Accept-Language"
)

// Session ensures every request carries a session identifier. Anonymous
// visitors get a fresh one, echoed back so the client can persist it.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(sessionIDHeader))
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			w.Header().Set(sessionIDHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSessionID stores the session identifier on the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDFromContext returns the request's session identifier.
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIDKey).(string); ok {
		return v
	}
	return ""
}

// Language resolves the display language from the lang query parameter or
// the Accept-Language header, defaulting to Chinese like the storefront.
func Language() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.URL.Query().Get("lang"))
			if raw == "" {
				raw = primaryLanguageTag(r.Header.Get(languageHeader))
			}
			lang, err := enums.ParseLanguage(raw)
			if err != nil {
				lang = enums.LanguageZH
			}
			next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), lang)))
		})
	}
}

// WithLanguage stores the display language on the context.
func WithLanguage(ctx context.Context, lang enums.Language) context.Context {
	return context.WithValue(ctx, languageKey, lang)
}

// LanguageFromContext returns the request's display language.
func LanguageFromContext(ctx context.Context) enums.Language {
	if v, ok := ctx.Value(languageKey).(enums.Language); ok {
		return v
	}
	return enums.LanguageZH
}

// primaryLanguageTag reduces an Accept-Language header to its first base
// tag, so "ja-JP,ja;q=0.9" resolves to "ja".
func primaryLanguageTag(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	first := strings.SplitN(header, ",", 2)[0]
	first = strings.SplitN(first, ";", 2)[0]
	first = strings.SplitN(strings.TrimSpace(first), "-", 2)[0]
	return strings.ToLower(first)
}
