package cache

import (
	"context"
	"fmt"
	"time"
)

const transitionClaimTTL = 10 * time.Minute

// TransitionClaimKey identifies one transition attempt: one order, one target
// status, one actor. The same key is also stored on the audit note so retries
// dedupe even when Redis is disabled.
func TransitionClaimKey(orderID uint, toStatus, actor string) string {
	return fmt.Sprintf("order:transition:%d:%s:%s", orderID, toStatus, actor)
}

// ClaimTransition takes a short-lived first-writer claim for a transition
// attempt. Returns true when this caller holds the claim, and true when the
// cache is disabled so the database constraints decide alone.
func ClaimTransition(ctx context.Context, key string) (bool, error) {
	if !Enabled() {
		return true, nil
	}
	return redisClient.SetNX(ctx, buildKey(key), 1, transitionClaimTTL).Result()
}

// ReleaseTransition drops a claim after a failed attempt so the caller can
// retry without waiting for the TTL.
func ReleaseTransition(ctx context.Context, key string) {
	if !Enabled() {
		return
	}
	redisClient.Del(ctx, buildKey(key))
}
