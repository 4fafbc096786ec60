package repository

import (
	"github.com/SalamHyped/BeanToMug-sub000/entity"
	"gorm.io/gorm"
)

type CatalogRepository struct{ DB *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// มุมมอง read-only ของ catalog ที่ resolver ใช้
type CatalogMember struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Price      int64   `json:"price"`
	Stock      float64 `json:"stock"`
	IsPhysical bool    `json:"isPhysical"`
	Enabled    bool    `json:"enabled"`
}

type CatalogGroup struct {
	TypeID      uint            `json:"typeId"`
	TypeName    string          `json:"typeName"`
	Category    string          `json:"category"`
	Required    bool            `json:"required"`
	MultiSelect bool            `json:"multiSelect"`
	IsPhysical  bool            `json:"isPhysical"`
	Members     []CatalogMember `json:"members"`
}

// เอาเมนูพื้นฐาน (id, price, enabled)
func (r *CatalogRepository) GetItemBasics(id uint) (entity.MenuItem, error) {
	var m entity.MenuItem
	err := r.DB.Select("id, item_name, price, enabled").First(&m, id).Error
	return m, err
}

// GroupsForItem อ่านกลุ่ม ingredient ของเมนูสด ๆ จาก DB ทุกครั้ง
// ห้าม cache — เส้นทาง revalidate ตอน checkout พึ่งความสดของข้อมูลนี้
func (r *CatalogRepository) GroupsForItem(itemID uint) ([]CatalogGroup, error) {
	var joins []entity.ItemIngredientType
	if err := r.DB.Where("menu_item_id = ?", itemID).
		Order("sort_order").Find(&joins).Error; err != nil {
		return nil, err
	}
	if len(joins) == 0 {
		return []CatalogGroup{}, nil
	}

	typeIDs := make([]uint, 0, len(joins))
	for _, j := range joins {
		typeIDs = append(typeIDs, j.IngredientTypeID)
	}

	var types []entity.IngredientType
	if err := r.DB.Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("ingredients.id")
	}).Where("id IN ?", typeIDs).Find(&types).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]entity.IngredientType, len(types))
	for _, t := range types {
		byID[t.ID] = t
	}

	out := make([]CatalogGroup, 0, len(joins))
	for _, j := range joins {
		t, ok := byID[j.IngredientTypeID]
		if !ok {
			continue
		}
		g := CatalogGroup{
			TypeID:      t.ID,
			TypeName:    t.TypeName,
			Category:    t.Category,
			Required:    j.Required,
			MultiSelect: t.MultiSelect,
			IsPhysical:  t.IsPhysical,
			Members:     make([]CatalogMember, 0, len(t.Ingredients)),
		}
		for _, ing := range t.Ingredients {
			g.Members = append(g.Members, CatalogMember{
				ID:         ing.ID,
				Name:       ing.Name,
				Price:      ing.Price,
				Stock:      ing.Stock,
				IsPhysical: t.IsPhysical,
				Enabled:    ing.Enabled,
			})
		}
		out = append(out, g)
	}
	return out, nil
}

// รายการเมนูสำหรับหน้า list
func (r *CatalogRepository) ListItems() ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.Where("enabled = ?", true).Order("id").Find(&items).Error
	return items, err
}
