package receipt

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmanager/internal/sales"
)

func testSale() *sales.Sale {
	return &sales.Sale{
		ID:        "0c2b4e9e-1111-2222-3333-444455556666",
		Total:     decimal.NewFromFloat(15.00),
		CreatedAt: time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
		Items: []sales.LineItem{
			{
				ProductID:   "p1",
				ProductName: "Analog Watch",
				Quantity:    3,
				UnitPrice:   decimal.NewFromFloat(5.00),
				Subtotal:    decimal.NewFromFloat(15.00),
			},
		},
	}
}

func testGenerator() *Generator {
	return NewGenerator(Identity{
		Name:    "Rama Watch & Mobile Shopee",
		Address: "Viman Nagar, Pune - 411014",
		Phone:   "+91-9815267856",
	})
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := testGenerator().Render(testSale(), &buf)
	require.NoError(t, err)

	require.NotZero(t, buf.Len())
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "output must be a PDF document")
}

func TestRender_Idempotent(t *testing.T) {
	gen := testGenerator()
	sale := testSale()

	var first, second bytes.Buffer
	require.NoError(t, gen.Render(sale, &first))
	require.NoError(t, gen.Render(sale, &second))

	assert.True(t, bytes.Equal(first.Bytes(), second.Bytes()),
		"rendering the same persisted sale twice must be byte-identical")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRender_WriteFailure(t *testing.T) {
	err := testGenerator().Render(testSale(), failingWriter{})
	assert.ErrorIs(t, err, ErrRender)
}
