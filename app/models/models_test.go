package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnums(t *testing.T) {
	r, err := ParseRole("administrator")
	require.NoError(t, err)
	assert.Equal(t, RoleAdministrator, r)

	r, err = ParseRole("1")
	require.NoError(t, err)
	assert.Equal(t, RoleClient, r)

	_, err = ParseRole("Guest")
	assert.Error(t, err)

	s, err := ParseSize("9")
	require.NoError(t, err)
	assert.Equal(t, Size9, s)

	_, err = ParseSize("11")
	assert.Error(t, err)

	c, err := ParseColor(" gray ")
	require.NoError(t, err)
	assert.Equal(t, ColorGray, c)

	st, err := ParseOrderStatus("SHIPPED")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, st)

	st, err = ParseOrderStatus("4")
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, st)

	_, err = ParseOrderStatus("0")
	assert.Error(t, err)
}

func TestEnumJSON(t *testing.T) {
	var in struct {
		Role   Role        `json:"role"`
		Size   Size        `json:"size"`
		Color  Color       `json:"color"`
		Status OrderStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"Administrator","size":8,"color":2,"status":"paid"}`), &in))
	assert.Equal(t, RoleAdministrator, in.Role)
	assert.Equal(t, Size8, in.Size)
	assert.Equal(t, ColorBlack, in.Color)
	assert.Equal(t, StatusPaid, in.Status)

	out, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"Administrator","size":8,"color":"Black","status":"Paid"}`, string(out))

	// Unknown numbers decode and are rejected later by validation.
	require.NoError(t, json.Unmarshal([]byte(`{"color":9}`), &in))
	assert.False(t, in.Color.IsValid())

	assert.Error(t, json.Unmarshal([]byte(`{"color":"Purple"}`), &in))
}

func TestStatusDisplay(t *testing.T) {
	assert.Equal(t, "In process", StatusInProcess.Display())
	assert.Equal(t, "InProcess", StatusInProcess.String())
	assert.Equal(t, "Delivered", StatusDelivered.Display())
}

func TestUserHelpers(t *testing.T) {
	u := User{FirstName: "Ana", LastName: "Gómez", Role: RoleAdministrator}
	assert.Equal(t, "Ana Gómez", u.FullName())
	assert.True(t, u.IsAdmin())

	u = User{FirstName: "Ana"}
	assert.Equal(t, "Ana", u.FullName())
	assert.False(t, u.IsAdmin())
}

func TestProductAvailability(t *testing.T) {
	assert.True(t, Product{Stock: 1}.IsAvailable())
	assert.False(t, Product{Stock: 0}.IsAvailable())
}

func TestOrderTotal(t *testing.T) {
	price := decimal.RequireFromString("450000.50")
	o := Order{Items: []OrderItem{
		{Quantity: 2, UnitPrice: price, Subtotal: LineSubtotal(price, 2)},
		{Quantity: 1, UnitPrice: decimal.NewFromInt(10), Subtotal: LineSubtotal(decimal.NewFromInt(10), 1)},
	}}
	assert.True(t, decimal.RequireFromString("900011").Equal(o.Total()))
}

func TestBeforeCreateAssignsID(t *testing.T) {
	var b Base
	require.NoError(t, b.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, b.ID)

	id := uuid.New()
	b = Base{ID: id}
	require.NoError(t, b.BeforeCreate(nil))
	assert.Equal(t, id, b.ID)
}

func TestDecimalMarshalsAsNumber(t *testing.T) {
	out, err := json.Marshal(Product{Price: decimal.RequireFromString("129.90")})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"price":129.9`)
}
