package services

import (
	"testing"

	"github.com/SalamHyped/BeanToMug-sub000/configs"
	"github.com/SalamHyped/BeanToMug-sub000/entity"
	"github.com/SalamHyped/BeanToMug-sub000/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pricingWith(t *testing.T, vat float64) (*PricingService, catalogFixture) {
	t.Helper()
	db := openTestDB(t)
	f := seedCatalog(t, db)
	p := NewPricingService(repository.NewCatalogRepository(db), NewCustomizationService(), configs.StaticSettings{VAT: vat})
	return p, f
}

func TestQuoteBasePlusSelectedOptions(t *testing.T) {
	p, f := pricingWith(t, 0.07)

	q, err := p.Quote(f.Espresso.ID, []uint{f.Large.ID, f.Vanilla.ID})
	require.NoError(t, err)

	assert.Equal(t, "Espresso", q.ItemName)
	assert.Equal(t, int64(5500+1000+500), q.UnitPrice)
	assert.ElementsMatch(t, []uint{f.Large.ID, f.Vanilla.ID}, func() []uint {
		ids := make([]uint, 0, len(q.Ingredients))
		for _, ing := range q.Ingredients {
			ids = append(ids, ing.ID)
		}
		return ids
	}())
}

func TestQuoteAutoFillAddsNothing(t *testing.T) {
	p, f := pricingWith(t, 0.07)

	q, err := p.Quote(f.Espresso.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(5500), q.UnitPrice)
	require.Len(t, q.Ingredients, 1)
	assert.Equal(t, f.Small.ID, q.Ingredients[0].ID)
	assert.True(t, q.Ingredients[0].AutoFilled)
}

func TestQuoteUnknownItem(t *testing.T) {
	p, _ := pricingWith(t, 0.07)

	_, err := p.Quote(99999, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuoteDisabledItem(t *testing.T) {
	db := openTestDB(t)
	f := seedCatalog(t, db)
	require.NoError(t, db.Model(&entity.MenuItem{}).Where("id = ?", f.Espresso.ID).Update("enabled", false).Error)
	p := NewPricingService(repository.NewCatalogRepository(db), NewCustomizationService(), configs.StaticSettings{VAT: 0.07})

	_, err := p.Quote(f.Espresso.ID, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVATRoundsHalfUp(t *testing.T) {
	p := NewPricingService(nil, nil, configs.StaticSettings{VAT: 0.07})

	assert.Equal(t, int64(385), p.VAT(5500))   // 385.0 พอดี
	assert.Equal(t, int64(704), p.VAT(10050))  // 703.5 → 704
	assert.Equal(t, int64(0), p.VAT(0))

	vat, total := p.Totals(10050)
	assert.Equal(t, int64(704), vat)
	assert.Equal(t, int64(10754), total)
}

// ราคาเดิมทุกครั้งเมื่อ catalog ไม่เปลี่ยน
func TestQuoteIsStableAcrossCalls(t *testing.T) {
	p, f := pricingWith(t, 0.07)

	a, err := p.Quote(f.Espresso.ID, []uint{f.Large.ID})
	require.NoError(t, err)
	b, err := p.Quote(f.Espresso.ID, []uint{f.Large.ID})
	require.NoError(t, err)
	assert.Equal(t, a.UnitPrice, b.UnitPrice)
	assert.Equal(t, a.Ingredients, b.Ingredients)
}
