package ratelimit

import (
	"strings"
	"testing"
	"time"
)

func TestPerSecond(t *testing.T) {
	limit := PerSecond(100, 200)
	if limit.Rate != 100 || limit.Burst != 200 || limit.Period != time.Second {
		t.Fatalf("unexpected limit: %+v", limit)
	}

	// 突发上限不允许低于 QPS
	limit = PerSecond(100, 0)
	if limit.Burst != 100 {
		t.Fatalf("expected burst raised to 100, got %d", limit.Burst)
	}
}

func TestPrefixed(t *testing.T) {
	key := prefixed("ip:10.0.0.1")
	if !strings.HasPrefix(key, "shopping:ratelimit:") {
		t.Fatalf("key missing service prefix: %s", key)
	}
	if !strings.HasSuffix(key, "ip:10.0.0.1") {
		t.Fatalf("key lost caller suffix: %s", key)
	}
}
