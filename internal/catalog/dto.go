package catalog

import (
	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/pkg/db/models"
	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// ProductDTO is the API shape of a menu entry, already localized.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Rating      decimal.Decimal `json:"rating"`
	Badges      []string        `json:"badges"`
	Specs       []SpecDTO       `json:"specs"`
}

// SpecDTO is one purchasable size/variant of a product.
type SpecDTO struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	IsDefault     bool             `json:"isDefault"`
}

// SideItemDTO is an add-on available for any line item.
type SideItemDTO struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// localize picks the variant for lang, falling back to the base (Chinese)
// copy when the translation is empty.
func localize(lang enums.Language, base, en, ja string) string {
	switch lang {
	case enums.LanguageEN:
		if en != "" {
			return en
		}
	case enums.LanguageJA:
		if ja != "" {
			return ja
		}
	}
	return base
}

// ToProductDTO maps a product row and its specs for the given language.
func ToProductDTO(p *models.Product, lang enums.Language) ProductDTO {
	dto := ProductDTO{
		ID:          p.ID,
		Name:        localize(lang, p.Name, p.NameEN, p.NameJA),
		Description: localize(lang, p.Description, p.DescriptionEN, p.DescriptionJA),
		Image:       p.Image,
		Category:    p.Category,
		Rating:      p.Rating,
		Badges:      []string(p.Badges),
		Specs:       make([]SpecDTO, 0, len(p.Specs)),
	}
	for i := range p.Specs {
		dto.Specs = append(dto.Specs, ToSpecDTO(&p.Specs[i], lang))
	}
	return dto
}

// ToSpecDTO maps one spec row for the given language.
func ToSpecDTO(s *models.ProductSpec, lang enums.Language) SpecDTO {
	return SpecDTO{
		ID:            s.ID,
		Name:          localize(lang, s.Name, s.NameEN, s.NameJA),
		Price:         s.Price,
		OriginalPrice: s.OriginalPrice,
		IsDefault:     s.IsDefault,
	}
}

// ToSideItemDTO maps one side item row for the given language.
func ToSideItemDTO(s *models.SideItem, lang enums.Language) SideItemDTO {
	return SideItemDTO{
		ID:    s.ID,
		Name:  localize(lang, s.Name, s.NameEN, s.NameJA),
		Price: s.Price,
	}
}
