package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanvirhs/resto/internal/domain/models"
	"github.com/tanvirhs/resto/internal/repository/flatfile"
)

func newTestCatalog(t *testing.T) (*Service, *flatfile.MenuRepository) {
	t.Helper()

	store, err := flatfile.NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	repo := flatfile.NewMenuRepository(store, "menu.txt")

	svc, err := NewService(repo, nil)
	require.NoError(t, err)
	return svc, repo
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func TestAddItemAppliesTaxOnce(t *testing.T) {
	svc, _ := newTestCatalog(t)

	item, err := svc.AddItem("Burger", mustDecimal(t, "5.00"), 10)
	require.NoError(t, err)

	assert.Equal(t, "5.33", item.UnitPrice.StringFixed(2))
	assert.Equal(t, 10, item.Stock)
}

func TestAddItemRejectsDuplicates(t *testing.T) {
	svc, _ := newTestCatalog(t)

	_, err := svc.AddItem("Burger", mustDecimal(t, "5.00"), 10)
	require.NoError(t, err)

	_, err = svc.AddItem("Burger", mustDecimal(t, "4.00"), 3)
	var duplicateErr *models.DuplicateItemError
	require.ErrorAs(t, err, &duplicateErr)
	assert.Equal(t, "Burger", duplicateErr.Name)
}

func TestAddItemRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestCatalog(t)

	cases := []struct {
		name      string
		itemName  string
		basePrice string
		stock     int
	}{
		{"empty name", "   ", "5.00", 10},
		{"negative price", "Burger", "-1.00", 10},
		{"negative stock", "Burger", "5.00", -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddItem(tc.itemName, mustDecimal(t, tc.basePrice), tc.stock)
			var inputErr *models.InvalidInputError
			require.ErrorAs(t, err, &inputErr)
		})
	}
}

func TestUpdateItemReplacesOnlySuppliedFields(t *testing.T) {
	svc, _ := newTestCatalog(t)

	_, err := svc.AddItem("Burger", mustDecimal(t, "5.00"), 10)
	require.NoError(t, err)

	newStock := 25
	item, err := svc.UpdateItem("Burger", nil, &newStock)
	require.NoError(t, err)
	assert.Equal(t, "5.33", item.UnitPrice.StringFixed(2), "price must survive a stock-only update")
	assert.Equal(t, 25, item.Stock)

	newPrice := mustDecimal(t, "6.757")
	item, err = svc.UpdateItem("Burger", &newPrice, nil)
	require.NoError(t, err)
	assert.Equal(t, "6.76", item.UnitPrice.StringFixed(2), "price is rounded, tax is not reapplied")
	assert.Equal(t, 25, item.Stock, "stock must survive a price-only update")
}

func TestUpdateItemUnknownName(t *testing.T) {
	svc, _ := newTestCatalog(t)

	stock := 5
	_, err := svc.UpdateItem("Pasta", nil, &stock)
	var notFoundErr *models.ItemNotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "Pasta", notFoundErr.Name)
}

func TestItemsPreservesInsertionOrder(t *testing.T) {
	svc, _ := newTestCatalog(t)

	for _, name := range []string{"Pizza", "Burger", "Apple Pie"} {
		_, err := svc.AddItem(name, mustDecimal(t, "2.00"), 1)
		require.NoError(t, err)
	}

	items := svc.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "Pizza", items[0].Name)
	assert.Equal(t, "Burger", items[1].Name)
	assert.Equal(t, "Apple Pie", items[2].Name)
}

func TestCatalogPersistsAcrossReload(t *testing.T) {
	svc, repo := newTestCatalog(t)

	_, err := svc.AddItem("Burger", mustDecimal(t, "5.00"), 10)
	require.NoError(t, err)
	_, err = svc.AddItem("Pizza", mustDecimal(t, "10.00"), 4)
	require.NoError(t, err)

	reloaded, err := NewService(repo, nil)
	require.NoError(t, err)

	items := reloaded.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Burger", items[0].Name)
	assert.Equal(t, "5.33", items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, 10, items[0].Stock)
	assert.Equal(t, "Pizza", items[1].Name)
}

func TestApplyOrderDeductsStockAndSnapshotsPrice(t *testing.T) {
	svc, _ := newTestCatalog(t)

	_, err := svc.AddItem("Burger", mustDecimal(t, "5.00"), 10)
	require.NoError(t, err)

	committed, err := svc.ApplyOrder([]models.BasketLine{{ItemName: "Burger", Quantity: 3}})
	require.NoError(t, err)
	require.Len(t, committed, 1)
	assert.Equal(t, "5.33", committed[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "15.99", committed[0].LineTotal().StringFixed(2))

	item, err := svc.Get("Burger")
	require.NoError(t, err)
	assert.Equal(t, 7, item.Stock)
}

func TestApplyOrderIsAllOrNothing(t *testing.T) {
	svc, _ := newTestCatalog(t)

	_, err := svc.AddItem("Burger", mustDecimal(t, "5.00"), 10)
	require.NoError(t, err)
	_, err = svc.AddItem("Pizza", mustDecimal(t, "10.00"), 2)
	require.NoError(t, err)

	before := svc.Items()

	_, err = svc.ApplyOrder([]models.BasketLine{
		{ItemName: "Burger", Quantity: 3},
		{ItemName: "Pizza", Quantity: 5},
	})
	var stockErr *models.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Pizza", stockErr.Item)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)

	assert.Equal(t, before, svc.Items(), "a rejected order must leave every item untouched")
}

func TestApplyOrderUnknownItem(t *testing.T) {
	svc, _ := newTestCatalog(t)

	_, err := svc.AddItem("Burger", mustDecimal(t, "5.00"), 10)
	require.NoError(t, err)

	_, err = svc.ApplyOrder([]models.BasketLine{
		{ItemName: "Burger", Quantity: 1},
		{ItemName: "Sushi", Quantity: 1},
	})
	var notFoundErr *models.ItemNotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "Sushi", notFoundErr.Name)

	item, err := svc.Get("Burger")
	require.NoError(t, err)
	assert.Equal(t, 10, item.Stock)
}

func TestApplyOrderFollowsDisplayOrder(t *testing.T) {
	svc, _ := newTestCatalog(t)

	for _, name := range []string{"Pizza", "Burger"} {
		_, err := svc.AddItem(name, mustDecimal(t, "2.00"), 10)
		require.NoError(t, err)
	}

	committed, err := svc.ApplyOrder([]models.BasketLine{
		{ItemName: "Burger", Quantity: 1},
		{ItemName: "Pizza", Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, committed, 2)
	assert.Equal(t, "Pizza", committed[0].ItemName)
	assert.Equal(t, "Burger", committed[1].ItemName)
}

func TestStockNeverGoesNegative(t *testing.T) {
	svc, _ := newTestCatalog(t)

	_, err := svc.AddItem("Burger", mustDecimal(t, "5.00"), 7)
	require.NoError(t, err)

	for range 10 {
		_, err := svc.ApplyOrder([]models.BasketLine{{ItemName: "Burger", Quantity: 2}})
		if err != nil {
			var stockErr *models.InsufficientStockError
			require.ErrorAs(t, err, &stockErr)
		}
		item, getErr := svc.Get("Burger")
		require.NoError(t, getErr)
		assert.GreaterOrEqual(t, item.Stock, 0)
	}
}
