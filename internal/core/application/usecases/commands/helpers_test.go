package commands_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"schoolstore/internal/core/domain/model/catalog"
	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustPhone(t *testing.T, raw string) kernel.Phone {
	t.Helper()
	phone, err := kernel.NewPhone(raw)
	require.NoError(t, err)
	return phone
}

func mustMoney(t *testing.T, paise int64) kernel.Money {
	t.Helper()
	money, err := kernel.NewMoney(paise)
	require.NoError(t, err)
	return money
}

func mustDims(t *testing.T, l, w, h float64) kernel.Dimensions {
	t.Helper()
	dims, err := kernel.NewDimensions(l, w, h)
	require.NoError(t, err)
	return dims
}

func testCatalogItem(t *testing.T, name string, pricePaise int64, stock int) *catalog.Item {
	t.Helper()
	item, err := catalog.RestoreItem(
		kernel.NewUUID(), kernel.NewUUID(), name,
		mustMoney(t, pricePaise), stock, 200, mustDims(t, 20, 15, 2), true,
	)
	require.NoError(t, err)
	return item
}

func testSchool(t *testing.T, code, name string) *catalog.School {
	t.Helper()
	school, err := catalog.RestoreSchool(kernel.NewUUID(), code, name,
		"12 MG Road, Pune", true)
	require.NoError(t, err)
	return school
}

// testPendingOrder builds an order awaiting payment with one 500-paise line
// and a payment link attached.
func testPendingOrder(t *testing.T, paymentRef string) *order.Order {
	t.Helper()
	line, err := order.NewItem(kernel.NewUUID(), "Class IV Booklist", 1, mustMoney(t, 50000))
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		mustPhone(t, "+919876543210"),
		"Asha",
		kernel.NewUUID(),
		order.DeliverySchool,
		"",
		[]order.Item{line},
		mustMoney(t, 0),
		"test request",
	)
	require.NoError(t, err)
	if paymentRef != "" {
		require.NoError(t, aggregate.AttachPaymentLink(paymentRef, "https://pay.test/"+paymentRef))
	}
	return aggregate
}
