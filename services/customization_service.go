package services

import (
	"github.com/SalamHyped/BeanToMug-sub000/repository"
)

// CustomizationService ตรวจ selection ของลูกค้ากับ catalog แล้วคิดราคาเพิ่ม
// เป็น pure function ต่อ input — เรียกซ้ำด้วย input เดิมได้ผลเดิมเสมอ
type CustomizationService struct{}

func NewCustomizationService() *CustomizationService {
	return &CustomizationService{}
}

type ResolvedIngredient struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"` // 0 เมื่อเป็น default ที่ auto-fill
	AutoFilled bool   `json:"autoFilled"`
}

type ResolvedSelection struct {
	Ingredients []ResolvedIngredient `json:"ingredients"`
	Extra       int64                `json:"extra"` // ราคาบวกเพิ่มจากที่ลูกค้าเลือกเอง
}

// SelectedIDs คืนเฉพาะ id ที่ลูกค้าเลือกเอง (ตัด auto-fill ออก)
// ใช้ตอน re-resolve เพื่อให้ default ถูกเลือกใหม่จาก catalog ปัจจุบัน
func (r *ResolvedSelection) SelectedIDs() []uint {
	out := make([]uint, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if !ing.AutoFilled {
			out = append(out, ing.ID)
		}
	}
	return out
}

func memberAvailable(g repository.CatalogGroup, m repository.CatalogMember) bool {
	if !m.Enabled {
		return false
	}
	if g.IsPhysical && m.Stock <= 0 {
		return false
	}
	return true
}

// Resolve ทำสามขั้นตามกติกา:
//  1. id ที่เลือกต้องอยู่ใน catalog และยังขายอยู่ → บวกราคา
//  2. กลุ่ม required ที่ไม่ได้เลือกอะไรเลย → หยิบตัวแรกที่ available ให้ฟรี
//  3. เซ็ตสุดท้าย = ที่เลือก ∪ ที่ auto-fill
func (s *CustomizationService) Resolve(groups []repository.CatalogGroup, selected []uint) (*ResolvedSelection, error) {
	selSet := make(map[uint]bool, len(selected))
	for _, id := range selected {
		selSet[id] = true
	}

	// id ที่ส่งมาต้องหาเจอใน catalog ของเมนูนี้
	known := make(map[uint]bool)
	for _, g := range groups {
		for _, m := range g.Members {
			known[m.ID] = true
		}
	}
	for _, id := range selected {
		if !known[id] {
			return nil, &ValidationError{Reason: ReasonUnknownIngredient, IngredientID: id}
		}
	}

	out := &ResolvedSelection{Ingredients: make([]ResolvedIngredient, 0, len(groups))}

	for _, g := range groups {
		picked := 0
		for _, m := range g.Members {
			if !selSet[m.ID] {
				continue
			}
			if !memberAvailable(g, m) {
				return nil, &ValidationError{
					Reason: ReasonIngredientUnavailable, Group: g.TypeName, IngredientID: m.ID,
				}
			}
			picked++
			if picked > 1 && !g.MultiSelect {
				return nil, &ValidationError{
					Reason: ReasonTooManySelections, Group: g.TypeName, IngredientID: m.ID,
				}
			}
			out.Extra += m.Price
			out.Ingredients = append(out.Ingredients, ResolvedIngredient{
				ID: m.ID, Name: m.Name, Price: m.Price,
			})
		}

		// default-selection policy: required group ว่าง → ตัวแรกที่หยิบได้ ราคา 0
		if g.Required && picked == 0 {
			filled := false
			for _, m := range g.Members {
				if memberAvailable(g, m) {
					out.Ingredients = append(out.Ingredients, ResolvedIngredient{
						ID: m.ID, Name: m.Name, Price: 0, AutoFilled: true,
					})
					filled = true
					break
				}
			}
			if !filled {
				return nil, &ValidationError{Reason: ReasonRequiredUnavailable, Group: g.TypeName}
			}
		}
	}

	return out, nil
}
