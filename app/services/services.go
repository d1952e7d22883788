// Package services holds one method per use case, grouped by aggregate.
//
// Every method returns a result.Result for outcomes the caller should show
// to the user (not found, validation, conflict) and a plain error only for
// infrastructure failures, which the HTTP layer turns into a 500.
package services

import (
	"context"

	"github.com/kicksup/kicksup/pkg/event"
)

// User-facing failure messages.
const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgUsernameTaken      = "Username already exists"
	MsgUserNotFound       = "User not found"
	MsgUserHasOrders      = "The user has orders and cannot be deleted"
	MsgProductNotFound    = "Product not found"
	MsgCodeTaken          = "A product with this code already exists"
	MsgCodeTakenByOther   = "Another product already uses this code"
	MsgProductHasOrders   = "The product has orders and cannot be deleted. Set its stock to zero instead."
	MsgOrderNotFound      = "Order not found"
	MsgEmptyOrder         = "An order must contain at least one product"
	MsgBadQuantity        = "Quantity must be greater than zero"
	MsgProductsNotFound   = "One or more products were not found"
)

func fire(ctx context.Context, d event.Dispatcher, e event.Event) {
	if d != nil {
		d.Dispatch(ctx, e)
	}
}
