package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// epochReference is the fixed instant from which rotation epochs are counted.
// Changing this value would re-key every tenant, so it is frozen forever.
var epochReference = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// ParseRotationPolicy parses a tenant key rotation policy into a rotation
// period. Accepted forms are "<n>d" (e.g. "90d"), the legacy "<n>Days" form
// (e.g. "90Days"), and "none" or "" for no rotation. Returns zero duration
// for no rotation.
func ParseRotationPolicy(policy string) (time.Duration, error) {
	switch policy {
	case "", "none":
		return 0, nil
	}

	digits := policy
	switch {
	case strings.HasSuffix(policy, "Days"):
		digits = strings.TrimSuffix(policy, "Days")
	case strings.HasSuffix(policy, "d"):
		digits = strings.TrimSuffix(policy, "d")
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidRotationPolicy, policy)
	}

	days, err := strconv.Atoi(digits)
	if err != nil || days <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRotationPolicy, policy)
	}

	return time.Duration(days) * 24 * time.Hour, nil
}

// EpochAt computes the rotation epoch for the given policy at the given
// instant. Epochs partition time into fixed windows counted from a frozen
// reference instant, so the computation is a pure function of wall-clock time:
// advancing the clock past a window boundary changes which key new tokens use
// without invalidating keys derived for earlier epochs.
func EpochAt(policy string, at time.Time) (uint64, error) {
	period, err := ParseRotationPolicy(policy)
	if err != nil {
		return 0, err
	}
	if period == 0 {
		return 0, nil
	}

	elapsed := at.UTC().Sub(epochReference)
	if elapsed < 0 {
		return 0, nil
	}

	return uint64(elapsed / period), nil
}

// FormatKeyID encodes the tenant and rotation epoch that produced a derived
// key. The key ID is stored alongside each ciphertext so the same key can be
// re-derived for decryption after the tenant's active epoch advances.
func FormatKeyID(tenantID string, epoch uint64) string {
	return fmt.Sprintf("%s:%d", tenantID, epoch)
}

// ParseKeyID decodes a stored encryption key ID into its tenant and epoch
// parts. Returns ErrInvalidKeyID if the value is malformed.
func ParseKeyID(keyID string) (tenantID string, epoch uint64, err error) {
	idx := strings.LastIndex(keyID, ":")
	if idx <= 0 || idx == len(keyID)-1 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidKeyID, keyID)
	}

	epoch, err = strconv.ParseUint(keyID[idx+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidKeyID, keyID)
	}

	return keyID[:idx], epoch, nil
}
