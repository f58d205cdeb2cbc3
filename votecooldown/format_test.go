package votecooldown

import (
	"testing"
	"time"
)

func TestFormatCountdown(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{-5 * time.Second, "00:00:00"},
		{999 * time.Millisecond, "00:00:00"},
		{time.Second, "00:00:01"},
		{11*time.Hour + 59*time.Minute, "11:59:00"},
		{12*time.Hour - time.Millisecond, "11:59:59"},
		{12 * time.Hour, "12:00:00"},
		{100*time.Hour + 5*time.Second, "100:00:05"},
	}
	for _, c := range cases {
		if got := FormatCountdown(c.in); got != c.want {
			t.Fatalf("FormatCountdown(%s): expected %s, got %s", c.in, c.want, got)
		}
	}
}

func TestRetryAfterSeconds_RoundsUp(t *testing.T) {
	if got := retryAfterSeconds(1500 * time.Millisecond); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := retryAfterSeconds(12 * time.Hour); got != 43200 {
		t.Fatalf("expected 43200, got %d", got)
	}
	if got := retryAfterSeconds(-time.Second); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestAlreadyVotedMessage_FollowsCooldown(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{12 * time.Hour, MsgAlreadyVoted},
		{time.Hour, "You can only vote once every 1 hour per site"},
		{90 * time.Minute, "You can only vote once every 90 minutes per site"},
		{1500 * time.Millisecond, "You can only vote once every 1.5s per site"},
	}
	for _, c := range cases {
		if got := alreadyVotedMessage(c.d); got != c.want {
			t.Fatalf("%s: expected %q, got %q", c.d, c.want, got)
		}
	}
}
