package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Role is the account type.
type Role int

const (
	RoleClient        Role = 1
	RoleAdministrator Role = 2
)

var roleNames = map[Role]string{
	RoleClient:        "Client",
	RoleAdministrator: "Administrator",
}

func (r Role) String() string { return nameOf(r, roleNames) }
func (r Role) IsValid() bool { _, ok := roleNames[r]; return ok }
func (r Role) MarshalJSON() ([]byte, error) { return json.Marshal(r.String()) }

func (r *Role) UnmarshalJSON(b []byte) error { return unmarshalEnum(b, r, "role", roleNames) }

// ParseRole accepts "Administrator", "administrator" or "2".
func ParseRole(s string) (Role, error) { return parseEnum(s, "role", roleNames) }

// Size is the shoe size, stored and rendered as the plain number.
type Size int

const (
	Size7  Size = 7
	Size8  Size = 8
	Size9  Size = 9
	Size10 Size = 10
)

var sizeNames = map[Size]string{Size7: "7", Size8: "8", Size9: "9", Size10: "10"}

func (s Size) String() string { return nameOf(s, sizeNames) }
func (s Size) IsValid() bool { _, ok := sizeNames[s]; return ok }

func (s *Size) UnmarshalJSON(b []byte) error { return unmarshalEnum(b, s, "size", sizeNames) }

func ParseSize(v string) (Size, error) { return parseEnum(v, "size", sizeNames) }

// Color of a product.
type Color int

const (
	ColorWhite Color = 1
	ColorBlack Color = 2
	ColorGray  Color = 3
)

var colorNames = map[Color]string{ColorWhite: "White", ColorBlack: "Black", ColorGray: "Gray"}

func (c Color) String() string { return nameOf(c, colorNames) }
func (c Color) IsValid() bool { _, ok := colorNames[c]; return ok }
func (c Color) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }
func (c *Color) UnmarshalJSON(b []byte) error { return unmarshalEnum(b, c, "color", colorNames) }

func ParseColor(s string) (Color, error) { return parseEnum(s, "color", colorNames) }

// OrderStatus is the lifecycle stage of an order. Any status may follow any
// other.
type OrderStatus int

const (
	StatusInProcess OrderStatus = 1
	StatusPaid      OrderStatus = 2
	StatusShipped   OrderStatus = 3
	StatusDelivered OrderStatus = 4
)

var statusNames = map[OrderStatus]string{
	StatusInProcess: "InProcess",
	StatusPaid:      "Paid",
	StatusShipped:   "Shipped",
	StatusDelivered: "Delivered",
}

var statusDisplay = map[OrderStatus]string{
	StatusInProcess: "In process",
	StatusPaid:      "Paid",
	StatusShipped:   "Shipped",
	StatusDelivered: "Delivered",
}

func (s OrderStatus) String() string { return nameOf(s, statusNames) }
func (s OrderStatus) IsValid() bool { _, ok := statusNames[s]; return ok }
func (s OrderStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// Display is the human label shown by clients.
func (s OrderStatus) Display() string { return nameOf(s, statusDisplay) }

func (s *OrderStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, s, "status", statusNames)
}

func ParseOrderStatus(v string) (OrderStatus, error) { return parseEnum(v, "status", statusNames) }

func nameOf[E ~int](v E, names map[E]string) string {
	if n, ok := names[v]; ok {
		return n
	}
	return strconv.Itoa(int(v))
}

// parseEnum matches a name case-insensitively or a known integer value.
func parseEnum[E ~int](raw, kind string, names map[E]string) (E, error) {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil {
		if _, ok := names[E(n)]; ok {
			return E(n), nil
		}
		return 0, fmt.Errorf("invalid %s %q", kind, raw)
	}
	for v, name := range names {
		if strings.EqualFold(name, s) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("invalid %s %q", kind, raw)
}

// unmarshalEnum accepts a JSON string or number. Unknown integers are kept
// so validation can report them as a field error instead of a decode error.
func unmarshalEnum[E ~int](b []byte, dst *E, kind string, names map[E]string) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := parseEnum(s, kind, names)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid %s %s", kind, string(b))
	}
	*dst = E(n)
	return nil
}
