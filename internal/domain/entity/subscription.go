package entity

import "time"

// SubscriptionPlan names a vendor subscription tier.
type SubscriptionPlan string

const (
	// PlanBasic is the entry tier.
	PlanBasic SubscriptionPlan = "basic"
	// PlanPro is the paid tier.
	PlanPro SubscriptionPlan = "pro"
)

// String returns the string representation of the SubscriptionPlan.
func (p SubscriptionPlan) String() string {
	return string(p)
}

// IsValid checks if the SubscriptionPlan is a known value.
func (p SubscriptionPlan) IsValid() bool {
	switch p {
	case PlanBasic, PlanPro:
		return true
	default:
		return false
	}
}

// VendorSubscription represents a vendor's subscription to a platform plan.
// Expired rows are deactivated by a periodic sweep, not deleted.
type VendorSubscription struct {
	ID        uint
	VendorID  uint
	Plan      SubscriptionPlan
	IsActive  bool
	StartedAt time.Time
	ExpiresAt time.Time
	UpdatedAt time.Time
}

// IsExpired reports whether the subscription has passed its expiry at the
// given instant.
func (s *VendorSubscription) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
