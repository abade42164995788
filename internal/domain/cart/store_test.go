package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
)

func testProduct(id int64, name string, price int64) catalog.Product {
	return catalog.Product{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromInt(price),
		Stock: 10,
	}
}

func TestAddProduct_NewLine(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.AddProduct(testProduct(1, "Shirt", 1200)))

	lines, err := store.Lines()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), lines[0].ProductID)
	assert.Equal(t, "Shirt", lines[0].Name)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.True(t, lines[0].Price.Equal(decimal.NewFromInt(1200)))
}

func TestAddProduct_SameProductIncrementsQuantity(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.AddProduct(testProduct(1, "Shirt", 1200)))
	require.NoError(t, store.AddProduct(testProduct(1, "Shirt", 1200)))

	lines, err := store.Lines()
	require.NoError(t, err)
	require.Len(t, lines, 1, "adding the same product twice must not duplicate the line")
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestAddProduct_PreservesInsertionOrder(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.AddProduct(testProduct(1, "Shirt", 1200)))
	require.NoError(t, store.AddProduct(testProduct(2, "Jeans", 2200)))
	require.NoError(t, store.AddProduct(testProduct(1, "Shirt", 1200)))

	lines, err := store.Lines()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Shirt", lines[0].Name, "first add stays first")
	assert.Equal(t, "Jeans", lines[1].Name)
}

func TestIncrementLine(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.AddProduct(testProduct(1, "Shirt", 1200)))

	require.NoError(t, store.IncrementLine(0))

	lines, _ := store.Lines()
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestDecrementLine_AboveOne(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.AddProduct(testProduct(1, "Shirt", 1200)))
	require.NoError(t, store.IncrementLine(0))

	require.NoError(t, store.DecrementLine(0))

	lines, _ := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestDecrementLine_AtOneRemovesLine(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.AddProduct(testProduct(1, "Shirt", 1200)))

	require.NoError(t, store.DecrementLine(0))

	lines, _ := store.Lines()
	assert.Empty(t, lines, "a quantity-1 line is removed, never decremented to zero")
}

func TestRemoveLine(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.AddProduct(testProduct(1, "Shirt", 1200)))
	require.NoError(t, store.AddProduct(testProduct(2, "Jeans", 2200)))

	require.NoError(t, store.RemoveLine(0))

	lines, _ := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Jeans", lines[0].Name)
}

func TestLineOperations_IndexOutOfRange(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.AddProduct(testProduct(1, "Shirt", 1200)))

	assert.ErrorIs(t, store.IncrementLine(5), ErrIndexOutOfRange)
	assert.ErrorIs(t, store.DecrementLine(-1), ErrIndexOutOfRange)
	assert.ErrorIs(t, store.RemoveLine(1), ErrIndexOutOfRange)
	assert.ErrorIs(t, store.OverridePrice(2, decimal.NewFromInt(100)), ErrIndexOutOfRange)
}

func TestOverridePrice_PositiveValue(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.AddProduct(testProduct(1, "Shirt", 1200)))

	require.NoError(t, store.OverridePrice(0, decimal.NewFromInt(1000)))

	lines, _ := store.Lines()
	assert.True(t, lines[0].Price.Equal(decimal.NewFromInt(1000)))
}

func TestOverridePrice_NonPositiveRejectedSilently(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.AddProduct(testProduct(1, "Shirt", 1200)))

	require.NoError(t, store.OverridePrice(0, decimal.Zero))
	require.NoError(t, store.OverridePrice(0, decimal.NewFromInt(-50)))

	lines, _ := store.Lines()
	assert.True(t, lines[0].Price.Equal(decimal.NewFromInt(1200)), "non-positive override leaves the price unchanged")
}

func TestClear(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.AddProduct(testProduct(1, "Shirt", 1200)))
	require.NoError(t, store.AddProduct(testProduct(2, "Jeans", 2200)))

	require.NoError(t, store.Clear())

	lines, _ := store.Lines()
	assert.Empty(t, lines)
}

func TestSubtotal(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.AddProduct(testProduct(1, "Shirt", 1200)))
	require.NoError(t, store.AddProduct(testProduct(1, "Shirt", 1200)))
	require.NoError(t, store.AddProduct(testProduct(2, "Cap", 400)))

	subtotal, err := store.Subtotal()
	require.NoError(t, err)
	assert.True(t, subtotal.Equal(decimal.NewFromInt(2800)))
}
