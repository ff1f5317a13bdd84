package domain

import (
	"strconv"
	"time"
)

type Role string

const (
	RoleRegular Role = "regular"
	RolePremium Role = "premium"
	RoleOwner   Role = "owner"
)

// ParseRole maps a stored role string to a Role. Unknown and empty values
// read as RoleRegular.
func ParseRole(s string) Role {
	switch Role(s) {
	case RolePremium:
		return RolePremium
	case RoleOwner:
		return RoleOwner
	default:
		return RoleRegular
	}
}

func (r Role) Valid() bool {
	return r == RoleRegular || r == RolePremium || r == RoleOwner
}

// Title is the human-readable role name.
func (r Role) Title() string {
	switch r {
	case RolePremium:
		return "Premium"
	case RoleOwner:
		return "Owner"
	default:
		return "Regular"
	}
}

func (r *Role) UnmarshalText(text []byte) error {
	*r = ParseRole(string(text))
	return nil
}

type User struct {
	Identity       string    `json:"identity"`
	Handle         string    `json:"handle"`
	ExternalHandle string    `json:"externalHandle,omitempty"`
	DisplayName    string    `json:"displayName,omitempty"`
	Role           Role      `json:"role"`
	RegisteredAt   time.Time `json:"registeredAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// State is the persisted registry document.
type State struct {
	Users []User `json:"users"`
}

// Clone returns a deep copy so callers can mutate without touching the original.
func (s State) Clone() State {
	users := make([]User, len(s.Users))
	copy(users, s.Users)
	return State{Users: users}
}

type Message struct {
	ID          int
	ChatID      int64
	Username    string
	FirstName   string
	LastName    string
	Text        string
	Command     string
	Argument    string
	HasArgument bool
}

// Identity is the registry key for the sender of a message.
func (m *Message) Identity() string {
	return strconv.FormatInt(m.ChatID, 10)
}

// DisplayName joins first and last name the way Telegram clients show them.
func (m *Message) DisplayName() string {
	if m.LastName == "" {
		return m.FirstName
	}
	if m.FirstName == "" {
		return m.LastName
	}
	return m.FirstName + " " + m.LastName
}

type Format int

const (
	Plain Format = iota
	Markdown
)

type Article struct {
	Title       string
	Description string
	URL         string
}

type Weather struct {
	City          string
	Region        string
	Country       string
	TimeZone      string
	LocalTime     string
	TempC         float64
	TempF         float64
	Humidity      int
	WindKph       float64
	WindDir       string
	Condition     string
	ConditionIcon string
}

type Action string

const (
	Typing       Action = "typing"
	SendingPhoto Action = "sending_photo"
)
