package sync

import (
	"strings"
	"time"
)

// Memos activity types.
const (
	ActivityMemoCreated = "memos.memo.created"
	ActivityMemoUpdated = "memos.memo.updated"
	ActivityMemoDeleted = "memos.memo.deleted"
)

// MemosWebhookPayload matches Memos API v1 webhook format.
type MemosWebhookPayload struct {
	ActivityType string `json:"activityType"` // e.g., "memos.memo.created"
	Creator      string `json:"creator"`
	Memo         struct {
		Name string `json:"name"` // e.g., "memos/123"
		UID  string `json:"uid"`  // Short UID (Base58)
	} `json:"memo"`
}

// Key returns the note key the payload refers to.
func (p MemosWebhookPayload) Key() string {
	if p.Memo.UID != "" {
		return p.Memo.UID
	}
	if after, ok := strings.CutPrefix(p.Memo.Name, "memos/"); ok {
		return after
	}
	return ""
}

// SecurityConfig guards the webhook endpoint.
type SecurityConfig struct {
	Secret          string   // Shared token; empty disables the check
	AllowedIPs      []string // Exact IPs or CIDR ranges; empty allows all
	RateLimitPerMin int
}

// Options tunes background processing.
type Options struct {
	Timeout    time.Duration // Per event; default 2m
	MaxRetries int           // GetNote attempts on update; default 3
	Backoff    time.Duration // First retry delay, doubled each attempt; default 2s
}
