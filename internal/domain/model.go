package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Region is a deployment of the one-time secret service. The set of
// regions is closed: the only values are the Region* variables below.
type Region struct {
	key        string
	title      string
	apiBaseURL string
	webBaseURL string
}

var (
	RegionEU = Region{
		key:        "eu",
		title:      "EU",
		apiBaseURL: "https://eu.onetimesecret.com/api/v2",
		webBaseURL: "https://eu.onetimesecret.com/secret",
	}
	RegionUS = Region{
		key:        "us",
		title:      "US",
		apiBaseURL: "https://us.onetimesecret.com/api/v2",
		webBaseURL: "https://us.onetimesecret.com/secret",
	}
)

func (r Region) Key() string        { return r.key }
func (r Region) Title() string      { return r.title }
func (r Region) APIBaseURL() string { return r.apiBaseURL }
func (r Region) WebBaseURL() string { return r.webBaseURL }

// IsZero reports whether r is the zero Region rather than a known variant.
func (r Region) IsZero() bool { return r.key == "" }

// ConcealURL is the endpoint that creates a secret in this region.
func (r Region) ConcealURL() string { return r.apiBaseURL + ConcealPath }

// ShareURL joins the web base URL with a secret identifier.
func (r Region) ShareURL(identifier string) string {
	return r.webBaseURL + "/" + identifier
}

func (r Region) String() string { return r.title }

// Regions lists every known region, default first.
func Regions() []Region {
	return []Region{RegionEU, RegionUS}
}

// ParseRegion resolves a region key (case insensitive).
func ParseRegion(s string) (Region, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range Regions() {
		if r.key == s {
			return r, nil
		}
	}
	return Region{}, fmt.Errorf("unknown region %q: must be one of: eu, us", s)
}

// TTL is a time-to-live choice for a secret. Like Region, the set is closed.
type TTL struct {
	key     string
	value   string
	display string
}

var (
	TTLSevenDays = TTL{key: "7d", value: "604800", display: "7 days"}
	TTLOneDay    = TTL{key: "1d", value: "86400", display: "1 day"}
	TTLOneHour   = TTL{key: "1h", value: "3600", display: "1 hour"}
)

func (t TTL) Key() string     { return t.key }
func (t TTL) Value() string   { return t.value }
func (t TTL) Display() string { return t.display }
func (t TTL) IsZero() bool    { return t.key == "" }
func (t TTL) String() string  { return t.display }

// TTLs lists every known TTL, default first.
func TTLs() []TTL {
	return []TTL{TTLSevenDays, TTLOneDay, TTLOneHour}
}

// ParseTTL accepts either the short key (7d, 1d, 1h) or the seconds value.
func ParseTTL(s string) (TTL, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range TTLs() {
		if t.key == s || t.value == s {
			return t, nil
		}
	}
	return TTL{}, fmt.Errorf("unknown ttl %q: must be one of: 7d, 1d, 1h", s)
}

// ConcealReq is the body posted to the conceal endpoint.
type ConcealReq struct {
	Secret SecretReq `json:"secret"`
}

type SecretReq struct {
	Secret     string  `json:"secret" validate:"required"`
	TTL        string  `json:"ttl" validate:"required,numeric"`
	Passphrase *string `json:"passphrase,omitempty" validate:"omitnil,min=1"`
}

// NewConcealReq builds a request; an empty passphrase is left out entirely.
func NewConcealReq(text, passphrase string, ttl TTL) ConcealReq {
	req := ConcealReq{Secret: SecretReq{Secret: text, TTL: ttl.Value()}}
	if passphrase != "" {
		req.Secret.Passphrase = &passphrase
	}
	return req
}

type ConcealRes struct {
	Success *bool          `json:"success" validate:"required"`
	Shrimp  string         `json:"shrimp"`
	Custid  string         `json:"custid"`
	Message string         `json:"message,omitempty"`
	Record  *Record        `json:"record" validate:"required"`
	Details map[string]any `json:"details"`
}

type Record struct {
	Metadata RecordItem `json:"metadata" validate:"-"`
	Secret   RecordItem `json:"secret"`
}

// RecordItem holds the identifier of a metadata or secret record. Any
// other fields the service sends are kept in Extra.
type RecordItem struct {
	Identifier string                     `json:"identifier" validate:"required"`
	Extra      map[string]json.RawMessage `json:"-"`
}

func (ri *RecordItem) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	if raw, ok := fields["identifier"]; ok {
		if err := json.Unmarshal(raw, &ri.Identifier); err != nil {
			return fmt.Errorf("identifier: %w", err)
		}
		delete(fields, "identifier")
	}
	if len(fields) > 0 {
		ri.Extra = fields
	}
	return nil
}

// Succeeded reports whether the service accepted the secret.
func (r ConcealRes) Succeeded() bool {
	return r.Success != nil && *r.Success
}
