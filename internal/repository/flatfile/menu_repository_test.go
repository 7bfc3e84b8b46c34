package flatfile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanvirhs/resto/internal/domain/models"
)

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func TestMenuRepositorySaveLoadRoundTrip(t *testing.T) {
	repo := NewMenuRepository(newTestStore(t), "menu.txt")

	want := []models.MenuItem{
		{Name: "Burger", UnitPrice: mustDecimal(t, "5.33"), Stock: 10},
		{Name: "Fried Rice", UnitPrice: mustDecimal(t, "12.78"), Stock: 0},
		{Name: "Pizza", UnitPrice: mustDecimal(t, "10.65"), Stock: 4},
	}
	require.NoError(t, repo.Save(want))

	got, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.True(t, want[i].UnitPrice.Equal(got[i].UnitPrice), "price mismatch for %s", want[i].Name)
		assert.Equal(t, want[i].Stock, got[i].Stock)
	}
}

func TestMenuRepositoryLoadMissingFileIsEmptyCatalog(t *testing.T) {
	repo := NewMenuRepository(newTestStore(t), "menu.txt")

	items, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMenuRepositorySnapshotLineFormat(t *testing.T) {
	store := newTestStore(t)
	repo := NewMenuRepository(store, "menu.txt")

	require.NoError(t, repo.Save([]models.MenuItem{
		{Name: "Burger", UnitPrice: mustDecimal(t, "5.33"), Stock: 10},
	}))

	lines, err := store.ReadLines("menu.txt")
	require.NoError(t, err)
	require.Equal(t, []string{"Burger|5.33|10"}, lines)
}

func TestMenuRepositoryRejectsMalformedLines(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"missing field", "Burger|5.33"},
		{"bad price", "Burger|cheap|10"},
		{"bad stock", "Burger|5.33|many"},
		{"negative stock", "Burger|5.33|-2"},
		{"empty name", "|5.33|10"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newTestStore(t)
			require.NoError(t, store.WriteAllLines("menu.txt", []string{tc.line}))

			repo := NewMenuRepository(store, "menu.txt")
			_, err := repo.Load()
			var persistenceErr *models.PersistenceError
			require.ErrorAs(t, err, &persistenceErr)
		})
	}
}
