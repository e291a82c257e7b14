package domain

import "strings"

// ShareReq is the body accepted by the bridge's POST /share. Region and
// TTL fall back to the configured defaults when empty, and are matched
// case-insensitively.
type ShareReq struct {
	Secret     string `json:"secret" validate:"required,max=65536"`
	Passphrase string `json:"passphrase,omitempty"`
	Region     string `json:"region,omitempty" validate:"omitempty,oneof=eu us"`
	TTL        string `json:"ttl,omitempty" validate:"omitempty,oneof=7d 1d 1h 604800 86400 3600"`
}

// Normalize lowercases and trims Region and TTL, the form their tags accept.
func (r *ShareReq) Normalize() {
	r.Region = strings.ToLower(strings.TrimSpace(r.Region))
	r.TTL = strings.ToLower(strings.TrimSpace(r.TTL))
}

type ShareRes struct {
	URL    string `json:"url"`
	Region string `json:"region"`
	TTL    string `json:"ttl"`
}

// RegionRes and TTLRes describe the available variants to bridge clients.
type RegionRes struct {
	Key        string `json:"key"`
	Title      string `json:"title"`
	APIBaseURL string `json:"api_base_url"`
	WebBaseURL string `json:"web_base_url"`
}

type TTLRes struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Display string `json:"display"`
}
