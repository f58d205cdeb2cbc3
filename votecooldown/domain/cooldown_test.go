package domain

import (
	"testing"
	"time"
)

func TestStorageKey_MatchesPersistedFormat(t *testing.T) {
	if got := StorageKey("TopG.org"); got != "vote_cooldown_TopG.org" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestEncodeExpiry_IsEpochMillis(t *testing.T) {
	at := time.UnixMilli(1729339200123)
	if got := EncodeExpiry(at); got != "1729339200123" {
		t.Fatalf("expected epoch millis, got %q", got)
	}
}

func TestDecodeExpiry_RoundTripsAndTrims(t *testing.T) {
	got, ok := DecodeExpiry(" 1729339200123\n")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UnixMilli() != 1729339200123 {
		t.Fatalf("unexpected millis %d", got.UnixMilli())
	}
}

func TestDecodeExpiry_RejectsMalformed(t *testing.T) {
	for _, v := range []string{"", "   ", "abc", "12h", "1.5e12", "NaN"} {
		if _, ok := DecodeExpiry(v); ok {
			t.Fatalf("expected %q to be rejected", v)
		}
	}
}

func TestRecord_ExpiredAtBoundary(t *testing.T) {
	now := time.UnixMilli(1_000_000)
	rec := Record{Site: "s", ExpiresAt: now}
	if !rec.Expired(now) {
		t.Fatalf("expiresAt == now must count as expired")
	}
	rec.ExpiresAt = now.Add(time.Millisecond)
	if rec.Expired(now) {
		t.Fatalf("expected record to still block")
	}
}
