package services

import (
	"testing"

	"github.com/SalamHyped/BeanToMug-sub000/configs"
	"github.com/SalamHyped/BeanToMug-sub000/entity"
	"github.com/SalamHyped/BeanToMug-sub000/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func cartStack(t *testing.T) (*gorm.DB, catalogFixture, *CartService) {
	t.Helper()
	db := openTestDB(t)
	f := seedCatalog(t, db)
	pricing := NewPricingService(repository.NewCatalogRepository(db), NewCustomizationService(), configs.StaticSettings{VAT: 0.07})
	cart := NewCartService(db, repository.NewCartRepository(db), repository.NewOrderRepository(db), pricing)
	return db, f, cart
}

func addUser(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	u := entity.User{FirstName: "Mali", Email: "mali@example.com", Password: "x"}
	require.NoError(t, db.Create(&u).Error)
	return u.ID
}

func TestLineKeyIgnoresSelectionOrder(t *testing.T) {
	assert.Equal(t,
		lineKey(7, []uint{3, 1, 2}),
		lineKey(7, []uint{2, 3, 1}),
	)
	assert.NotEqual(t,
		lineKey(7, []uint{1, 2}),
		lineKey(7, []uint{1, 2, 3}),
	)
	assert.NotEqual(t, lineKey(7, nil), lineKey(8, nil))
}

func TestGuestAddMergesIdenticalCustomization(t *testing.T) {
	_, f, cart := cartStack(t)
	bag := &memBag{}

	require.NoError(t, cart.AddLine(0, bag, &AddLineIn{MenuItemID: f.Espresso.ID, Qty: 1, IngredientIDs: []uint{f.Large.ID, f.Vanilla.ID}}))
	// ลำดับ id สลับกัน ต้องยุบเป็น line เดิม
	require.NoError(t, cart.AddLine(0, bag, &AddLineIn{MenuItemID: f.Espresso.ID, Qty: 2, IngredientIDs: []uint{f.Vanilla.ID, f.Large.ID}}))

	v, err := cart.Get(0, bag)
	require.NoError(t, err)
	require.Len(t, v.Lines, 1)
	assert.Equal(t, 3, v.Lines[0].Qty)
	assert.Equal(t, int64(7000), v.Lines[0].UnitPrice)
	assert.Equal(t, int64(21000), v.Subtotal)
}

func TestGuestAddDifferentCustomizationSplitsLines(t *testing.T) {
	_, f, cart := cartStack(t)
	bag := &memBag{}

	require.NoError(t, cart.AddLine(0, bag, &AddLineIn{MenuItemID: f.Espresso.ID, Qty: 1, IngredientIDs: []uint{f.Large.ID}}))
	require.NoError(t, cart.AddLine(0, bag, &AddLineIn{MenuItemID: f.Espresso.ID, Qty: 1, IngredientIDs: []uint{f.Small.ID}}))

	v, err := cart.Get(0, bag)
	require.NoError(t, err)
	assert.Len(t, v.Lines, 2)
}

func TestGuestUpdateQtyZeroRemovesLine(t *testing.T) {
	_, f, cart := cartStack(t)
	bag := &memBag{}

	require.NoError(t, cart.AddLine(0, bag, &AddLineIn{MenuItemID: f.Espresso.ID, Qty: 2}))
	v, err := cart.Get(0, bag)
	require.NoError(t, err)
	require.Len(t, v.Lines, 1)

	require.NoError(t, cart.UpdateQty(0, bag, v.Lines[0].ID, 0))
	v, err = cart.Get(0, bag)
	require.NoError(t, err)
	assert.Empty(t, v.Lines)
}

func TestGuestRemoveUnknownLine(t *testing.T) {
	_, _, cart := cartStack(t)
	assert.ErrorIs(t, cart.RemoveLine(0, &memBag{}, 42), ErrNotFound)
}

func TestOwnerAddCreatesDraftWithPriceSnapshot(t *testing.T) {
	db, f, cart := cartStack(t)
	userID := addUser(t, db)

	require.NoError(t, cart.AddLine(userID, nil, &AddLineIn{MenuItemID: f.Espresso.ID, Qty: 2, IngredientIDs: []uint{f.Large.ID}}))

	var draft entity.Order
	require.NoError(t, db.Where("user_id = ? AND is_draft = ?", userID, true).
		Preload("OrderItems.Ingredients").First(&draft).Error)
	require.Len(t, draft.OrderItems, 1)
	li := draft.OrderItems[0]
	assert.Equal(t, int64(6500), li.UnitPrice)
	assert.Equal(t, int64(13000), li.Total)
	assert.Equal(t, int64(13000), draft.Subtotal)
	assert.Equal(t, int64(910), draft.VAT) // 7%
	assert.Equal(t, int64(13910), draft.Total)
}

func TestOwnerAddMergesByCustomization(t *testing.T) {
	db, f, cart := cartStack(t)
	userID := addUser(t, db)

	require.NoError(t, cart.AddLine(userID, nil, &AddLineIn{MenuItemID: f.Espresso.ID, Qty: 1, IngredientIDs: []uint{f.Large.ID}}))
	require.NoError(t, cart.AddLine(userID, nil, &AddLineIn{MenuItemID: f.Espresso.ID, Qty: 1, IngredientIDs: []uint{f.Large.ID}}))

	v, err := cart.Get(userID, nil)
	require.NoError(t, err)
	require.Len(t, v.Lines, 1)
	assert.Equal(t, 2, v.Lines[0].Qty)
	assert.Equal(t, int64(13000), v.Lines[0].Total)
}

// backend ฝั่ง DB ต้องตอบเหมือนฝั่ง session เมื่อ line ไม่มีจริง
func TestOwnerUpdateQtyUnknownLine(t *testing.T) {
	db, f, cart := cartStack(t)
	userID := addUser(t, db)
	require.NoError(t, cart.AddLine(userID, nil, &AddLineIn{MenuItemID: f.Espresso.ID, Qty: 1}))

	assert.ErrorIs(t, cart.UpdateQty(userID, nil, 9999, 2), ErrNotFound)
}

func TestOwnerRemoveUnknownLine(t *testing.T) {
	db, f, cart := cartStack(t)
	userID := addUser(t, db)
	require.NoError(t, cart.AddLine(userID, nil, &AddLineIn{MenuItemID: f.Espresso.ID, Qty: 1}))

	assert.ErrorIs(t, cart.RemoveLine(userID, nil, 9999), ErrNotFound)
}

// ลบ line แล้วแถว ingredient ของ line นั้นต้องหายจริง ไม่ใช่ soft delete
func TestOwnerRemoveLineCleansIngredientRows(t *testing.T) {
	db, f, cart := cartStack(t)
	userID := addUser(t, db)
	require.NoError(t, cart.AddLine(userID, nil, &AddLineIn{MenuItemID: f.Espresso.ID, Qty: 1, IngredientIDs: []uint{f.Large.ID}}))

	v, err := cart.Get(userID, nil)
	require.NoError(t, err)
	require.Len(t, v.Lines, 1)
	require.NoError(t, cart.RemoveLine(userID, nil, v.Lines[0].ID))

	var n int64
	require.NoError(t, db.Unscoped().Model(&entity.OrderItemIngredient{}).
		Where("order_item_id = ?", v.Lines[0].ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestOwnerClearEmptiesDraft(t *testing.T) {
	db, f, cart := cartStack(t)
	userID := addUser(t, db)

	require.NoError(t, cart.AddLine(userID, nil, &AddLineIn{MenuItemID: f.Espresso.ID, Qty: 1}))
	require.NoError(t, cart.Clear(userID, nil))

	v, err := cart.Get(userID, nil)
	require.NoError(t, err)
	assert.Empty(t, v.Lines)
	assert.Equal(t, int64(0), v.Total)

	var draft entity.Order
	require.NoError(t, db.Where("user_id = ? AND is_draft = ?", userID, true).First(&draft).Error)
	assert.Equal(t, int64(0), draft.Subtotal)
}

func TestSetOrderTypeRejectsGarbage(t *testing.T) {
	_, _, cart := cartStack(t)
	assert.Error(t, cart.SetOrderType(0, &memBag{}, entity.OrderType("Delivery")))
}

func TestMergeOnLoginMovesGuestLinesIntoDraft(t *testing.T) {
	db, f, cart := cartStack(t)
	userID := addUser(t, db)
	bag := &memBag{}

	require.NoError(t, cart.AddLine(0, bag, &AddLineIn{MenuItemID: f.Espresso.ID, Qty: 2, IngredientIDs: []uint{f.Vanilla.ID}}))
	require.NoError(t, cart.MergeOnLogin(bag, userID))

	// session ต้องว่างหลัง merge สำเร็จ
	assert.Empty(t, bag.GuestCart().Lines)

	v, err := cart.Get(userID, nil)
	require.NoError(t, err)
	require.Len(t, v.Lines, 1)
	assert.Equal(t, 2, v.Lines[0].Qty)
	assert.Equal(t, int64(6000), v.Lines[0].UnitPrice)
}

func TestMergeOnLoginCombinesMatchingLines(t *testing.T) {
	db, f, cart := cartStack(t)
	userID := addUser(t, db)
	bag := &memBag{}

	require.NoError(t, cart.AddLine(userID, nil, &AddLineIn{MenuItemID: f.Espresso.ID, Qty: 1, IngredientIDs: []uint{f.Large.ID}}))
	require.NoError(t, cart.AddLine(0, bag, &AddLineIn{MenuItemID: f.Espresso.ID, Qty: 2, IngredientIDs: []uint{f.Large.ID}}))

	require.NoError(t, cart.MergeOnLogin(bag, userID))

	v, err := cart.Get(userID, nil)
	require.NoError(t, err)
	require.Len(t, v.Lines, 1)
	assert.Equal(t, 3, v.Lines[0].Qty)
}

// ราคาใน session เชื่อไม่ได้ — line ที่ merge เข้าต้องคิดจาก catalog ปัจจุบัน
func TestMergeOnLoginReprices(t *testing.T) {
	db, f, cart := cartStack(t)
	userID := addUser(t, db)
	bag := &memBag{}

	require.NoError(t, cart.AddLine(0, bag, &AddLineIn{MenuItemID: f.Espresso.ID, Qty: 1, IngredientIDs: []uint{f.Large.ID}}))
	// ราคา Large ขึ้นระหว่างที่ guest ยังไม่ล็อกอิน
	require.NoError(t, db.Model(&entity.Ingredient{}).Where("id = ?", f.Large.ID).Update("price", 2000).Error)

	require.NoError(t, cart.MergeOnLogin(bag, userID))

	v, err := cart.Get(userID, nil)
	require.NoError(t, err)
	require.Len(t, v.Lines, 1)
	assert.Equal(t, int64(7500), v.Lines[0].UnitPrice)
}

func TestMergeOnLoginNoGuestLinesIsNoop(t *testing.T) {
	db, _, cart := cartStack(t)
	userID := addUser(t, db)

	require.NoError(t, cart.MergeOnLogin(&memBag{}, userID))

	var n int64
	require.NoError(t, db.Model(&entity.Order{}).Where("user_id = ?", userID).Count(&n).Error)
	assert.Equal(t, int64(0), n, "ไม่ควรสร้าง draft เปล่า")
}
