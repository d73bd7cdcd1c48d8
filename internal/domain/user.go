package domain

import "strings"

// UserTier is the subscription level of a user.
type UserTier int

const (
	TierGuest UserTier = iota
	TierNormal
	TierPro
)

// Room limits for house rooms per tier.
const (
	GuestRoomLimit  = 4
	NormalRoomLimit = 7
)

// String returns the string representation of the tier
func (t UserTier) String() string {
	switch t {
	case TierGuest:
		return "guest"
	case TierNormal:
		return "normal"
	case TierPro:
		return "pro"
	default:
		return "unknown"
	}
}

// ParseUserTier converts a string into a UserTier.
func ParseUserTier(s string) (UserTier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "guest":
		return TierGuest, true
	case "normal":
		return TierNormal, true
	case "pro":
		return TierPro, true
	default:
		return TierGuest, false
	}
}

// RoomLimit returns the maximum number of house rooms for the tier.
// The second value is false when the tier is unlimited.
func (t UserTier) RoomLimit() (int, bool) {
	switch t {
	case TierGuest:
		return GuestRoomLimit, true
	case TierNormal:
		return NormalRoomLimit, true
	default:
		return 0, false
	}
}

// RoomUser is the user the room feature is presented to.
type RoomUser struct {
	Tier              UserTier
	HasEditPermission bool
}

// NewRoomUser creates a RoomUser.
func NewRoomUser(tier UserTier, hasEditPermission bool) RoomUser {
	return RoomUser{Tier: tier, HasEditPermission: hasEditPermission}
}

// IsPro returns true for pro users.
func (u RoomUser) IsPro() bool {
	return u.Tier == TierPro
}

// IsGuest returns true for guest users.
func (u RoomUser) IsGuest() bool {
	return u.Tier == TierGuest
}

// RoomLimit returns the house room limit of the user's tier.
func (u RoomUser) RoomLimit() (int, bool) {
	return u.Tier.RoomLimit()
}

// CanAddHouseRoom reports whether a user with currentCount house rooms
// may add another one.
func (u RoomUser) CanAddHouseRoom(currentCount int) bool {
	limit, limited := u.RoomLimit()
	if !limited {
		return true
	}
	return currentCount < limit
}
