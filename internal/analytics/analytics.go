package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Envelope is what we store with every event.
type Envelope struct {
	UserID       int
	SessionID    string
	Platform     string
	AppVersion   string
	DeviceLocale string
}

// FromRequest extracts event envelope fields from request headers.
// Backend-trustable fields only.
func FromRequest(r *http.Request) Envelope {
	platform := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Platform")))
	switch platform {
	case "ios", "android", "web", "cli":
	default:
		platform = "unknown"
	}

	locale := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if locale == "" {
		locale = strings.TrimSpace(r.Header.Get("X-Device-Locale"))
	}

	return Envelope{
		SessionID:    strings.TrimSpace(r.Header.Get("X-Session-Id")),
		Platform:     platform,
		AppVersion:   strings.TrimSpace(r.Header.Get("X-App-Version")),
		DeviceLocale: locale,
	}
}

// SourceEventKeyFromRequest returns the client-provided idempotency key, if
// any. Duplicate keys make repeated inserts no-ops.
func SourceEventKeyFromRequest(r *http.Request) string {
	if k := strings.TrimSpace(r.Header.Get("Idempotency-Key")); k != "" {
		return k
	}
	return strings.TrimSpace(r.Header.Get("X-Source-Event-Key"))
}

// Log inserts one analytics event. Best effort: a nil db (stateless mode),
// an unmarshalable props value or a failed insert never break the request
// that triggered the event.
func Log(ctx context.Context, db *sql.DB, env Envelope, eventName string, props any, sourceEventKey string) error {
	if db == nil || eventName == "" {
		return nil
	}

	b, err := json.Marshal(props)
	if err != nil {
		return nil
	}

	if sourceEventKey != "" {
		_, _ = db.ExecContext(ctx, `
			INSERT INTO analytics_events (
				event_id, event_name, event_time,
				session_id, platform, app_version, device_locale,
				source_event_key, properties
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb)
			ON CONFLICT (source_event_key) DO NOTHING
		`, uuid.NewString(), eventName, time.Now().UTC(),
			nullIfEmpty(env.SessionID), env.Platform, env.AppVersion, nullIfEmpty(env.DeviceLocale),
			sourceEventKey, string(b),
		)
		return nil
	}

	_, _ = db.ExecContext(ctx, `
		INSERT INTO analytics_events (
			event_id, event_name, event_time,
			session_id, platform, app_version, device_locale,
			properties
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb)
	`, uuid.NewString(), eventName, time.Now().UTC(),
		nullIfEmpty(env.SessionID), env.Platform, env.AppVersion, nullIfEmpty(env.DeviceLocale),
		string(b),
	)

	return nil
}

func nullIfEmpty(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// TierFromScore buckets a composite priority (0-10 scale) for dashboards.
func TierFromScore(score float64) string {
	switch {
	case score >= 8:
		return "P1"
	case score >= 5:
		return "P2"
	default:
		return "P3"
	}
}
