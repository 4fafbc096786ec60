package services

import (
	"testing"

	"github.com/SalamHyped/BeanToMug-sub000/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func espressoGroups() []repository.CatalogGroup {
	return []repository.CatalogGroup{
		{
			TypeID: 1, TypeName: "Size", Required: true,
			Members: []repository.CatalogMember{
				{ID: 10, Name: "Small", Price: 0, Enabled: true},
				{ID: 11, Name: "Large", Price: 1000, Enabled: true},
			},
		},
		{
			TypeID: 2, TypeName: "Syrup", MultiSelect: true,
			Members: []repository.CatalogMember{
				{ID: 20, Name: "Vanilla Syrup", Price: 500, Enabled: true},
				{ID: 21, Name: "Caramel Syrup", Price: 500, Enabled: true},
			},
		},
	}
}

func TestResolveAutoFillsRequiredGroup(t *testing.T) {
	s := NewCustomizationService()

	res, err := s.Resolve(espressoGroups(), nil)
	require.NoError(t, err)

	require.Len(t, res.Ingredients, 1)
	assert.Equal(t, uint(10), res.Ingredients[0].ID)
	assert.True(t, res.Ingredients[0].AutoFilled)
	assert.Equal(t, int64(0), res.Ingredients[0].Price, "default ที่เติมให้ต้องไม่คิดเงิน")
	assert.Equal(t, int64(0), res.Extra)
	assert.Empty(t, res.SelectedIDs())
}

func TestResolveExplicitSelectionAddsPrice(t *testing.T) {
	s := NewCustomizationService()

	res, err := s.Resolve(espressoGroups(), []uint{11, 20})
	require.NoError(t, err)

	assert.Equal(t, int64(1500), res.Extra)
	require.Len(t, res.Ingredients, 2)
	for _, ing := range res.Ingredients {
		assert.False(t, ing.AutoFilled)
	}
	assert.ElementsMatch(t, []uint{11, 20}, res.SelectedIDs())
}

// เลือก default เอง (Small ราคา 0) ก็นับเป็น selection ปกติ ไม่ใช่ auto-fill
func TestResolveExplicitDefaultIsNotAutoFilled(t *testing.T) {
	s := NewCustomizationService()

	res, err := s.Resolve(espressoGroups(), []uint{10})
	require.NoError(t, err)

	require.Len(t, res.Ingredients, 1)
	assert.False(t, res.Ingredients[0].AutoFilled)
	assert.Equal(t, []uint{10}, res.SelectedIDs())
}

func TestResolveRejectsUnknownIngredient(t *testing.T) {
	s := NewCustomizationService()

	_, err := s.Resolve(espressoGroups(), []uint{999})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ReasonUnknownIngredient, verr.Reason)
	assert.Equal(t, uint(999), verr.IngredientID)
}

func TestResolveRejectsDisabledSelection(t *testing.T) {
	s := NewCustomizationService()
	groups := espressoGroups()
	groups[1].Members[0].Enabled = false

	_, err := s.Resolve(groups, []uint{20})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ReasonIngredientUnavailable, verr.Reason)
}

func TestResolveRejectsOutOfStockPhysicalSelection(t *testing.T) {
	s := NewCustomizationService()
	groups := []repository.CatalogGroup{{
		TypeID: 3, TypeName: "Milk", IsPhysical: true,
		Members: []repository.CatalogMember{
			{ID: 30, Name: "Oat Milk", Price: 700, Enabled: true, Stock: 0},
		},
	}}

	_, err := s.Resolve(groups, []uint{30})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ReasonIngredientUnavailable, verr.Reason)
}

func TestResolveRejectsTwoPicksInSingleSelectGroup(t *testing.T) {
	s := NewCustomizationService()

	_, err := s.Resolve(espressoGroups(), []uint{10, 11})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ReasonTooManySelections, verr.Reason)
	assert.Equal(t, "Size", verr.Group)
}

// required group ที่ default หมด → ข้ามไปหยิบตัวถัดไปที่ยังหยิบได้
func TestResolveAutoFillSkipsUnavailableDefault(t *testing.T) {
	s := NewCustomizationService()
	groups := espressoGroups()
	groups[0].Members[0].Enabled = false

	res, err := s.Resolve(groups, nil)
	require.NoError(t, err)
	require.Len(t, res.Ingredients, 1)
	assert.Equal(t, uint(11), res.Ingredients[0].ID)
	assert.True(t, res.Ingredients[0].AutoFilled)
	assert.Equal(t, int64(0), res.Ingredients[0].Price)
}

func TestResolveFailsWhenRequiredGroupExhausted(t *testing.T) {
	s := NewCustomizationService()
	groups := espressoGroups()
	groups[0].Members[0].Enabled = false
	groups[0].Members[1].Enabled = false

	_, err := s.Resolve(groups, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ReasonRequiredUnavailable, verr.Reason)
	assert.Equal(t, "Size", verr.Group)
}

// input เดิมต้องได้ผลเดิมทุกครั้ง
func TestResolveIsDeterministic(t *testing.T) {
	s := NewCustomizationService()

	a, err := s.Resolve(espressoGroups(), []uint{11, 20})
	require.NoError(t, err)
	b, err := s.Resolve(espressoGroups(), []uint{11, 20})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
