package store

import "time"

// Keychain is a named collection of authentication keys shared across
// OSPF, IS-IS and BGP instances. An interface or neighbor references a
// keychain by name; the active key within it is selected by SendLifetime.
type Keychain struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:255" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Keys []KeychainKey `gorm:"foreignKey:KeychainID;constraint:OnDelete:CASCADE" json:"keys,omitempty"`
}

// KeychainKey is a single keyed entry within a Keychain.
type KeychainKey struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	KeychainID string `gorm:"index;uniqueIndex:idx_keychain_key_id;not null;size:36" json:"keychain_id"`
	KeyID      uint32 `gorm:"uniqueIndex:idx_keychain_key_id;not null" json:"key_id"`
	Algorithm  string `gorm:"not null;size:20" json:"algorithm"` // cleartext, md5, hmac-sha1, hmac-sha256
	Secret     string `gorm:"type:text;not null" json:"-"`

	SendLifetimeStart *time.Time `json:"send_lifetime_start,omitempty"`
	SendLifetimeEnd   *time.Time `json:"send_lifetime_end,omitempty"`
	AcceptLifetimeStart *time.Time `json:"accept_lifetime_start,omitempty"`
	AcceptLifetimeEnd   *time.Time `json:"accept_lifetime_end,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// SRLabelRangeBinding persists a segment-routing global block or SRLB
// reservation so label allocations survive a restart.
type SRLabelRangeBinding struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:255" json:"name"`
	Start     uint32    `gorm:"not null" json:"start"`
	End       uint32    `gorm:"not null" json:"end"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// StaticRoute is a northbound-configured static route injected into the
// shared RIB alongside protocol-learned routes. Redistribution policy is
// out of scope; static routes are simply one more southbound source.
type StaticRoute struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Prefix    string    `gorm:"uniqueIndex:idx_static_route_prefix_nh;not null;size:64" json:"prefix"`
	Nexthop   string    `gorm:"uniqueIndex:idx_static_route_prefix_nh;not null;size:64" json:"nexthop"`
	Metric    uint32    `gorm:"default:1" json:"metric"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AllModels returns all GORM models for auto-migration.
func AllModels() []any {
	return []any{
		&Keychain{},
		&KeychainKey{},
		&SRLabelRangeBinding{},
		&StaticRoute{},
	}
}
