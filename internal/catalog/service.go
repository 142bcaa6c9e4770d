package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/internal/pricing"
	"github.com/hanamura/noodlehouse-backend/pkg/db/models"
	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	pkgerrors "github.com/hanamura/noodlehouse-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes menu reads and selection resolution for the cart.
type Service interface {
	ListProducts(ctx context.Context, lang enums.Language) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID, lang enums.Language) (*ProductDTO, error)
	ListSideItems(ctx context.Context, lang enums.Language) ([]SideItemDTO, error)
	ResolveSelection(ctx context.Context, input SelectionInput) (*Selection, error)
}

// SelectionInput identifies a product, one of its specs and a set of side
// items chosen by the client.
type SelectionInput struct {
	ProductID uuid.UUID
	SpecID    uuid.UUID
	AddOnIDs  []uuid.UUID
	Language  enums.Language
}

// Selection carries server-side prices and display copy for one chosen
// configuration. Clients never supply amounts; they come from here.
type Selection struct {
	ProductID   uuid.UUID
	ProductName string
	Image       string
	SpecID      uuid.UUID
	SpecName    string
	UnitPrice   decimal.Decimal
	AddOns      []SelectedAddOn
}

// SelectedAddOn is one resolved side item on a selection.
type SelectedAddOn struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
}

// PricingAddOns converts the selection's add-ons to the engine's shape.
func (s *Selection) PricingAddOns() []pricing.AddOn {
	if len(s.AddOns) == 0 {
		return nil
	}
	out := make([]pricing.AddOn, 0, len(s.AddOns))
	for _, a := range s.AddOns {
		out = append(out, pricing.AddOn{ID: a.ID, Price: a.Price})
	}
	return out
}

type catalogRepo interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListSideItems(ctx context.Context) ([]models.SideItem, error)
}

type service struct {
	repo catalogRepo
}

// NewService wires the catalog service against its repository.
func NewService(repo catalogRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: repo}, nil
}

// ListProducts returns the active menu for the given language.
func (s *service) ListProducts(ctx context.Context, lang enums.Language) ([]ProductDTO, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, ToProductDTO(&products[i], lang))
	}
	return out, nil
}

// GetProduct returns one active product or a not-found error.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID, lang enums.Language) (*ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	dto := ToProductDTO(product, lang)
	return &dto, nil
}

// ListSideItems returns the active side items for the given language.
func (s *service) ListSideItems(ctx context.Context, lang enums.Language) ([]SideItemDTO, error) {
	sides, err := s.repo.ListSideItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list side items")
	}
	out := make([]SideItemDTO, 0, len(sides))
	for i := range sides {
		out = append(out, ToSideItemDTO(&sides[i], lang))
	}
	return out, nil
}

// ResolveSelection validates a client's product/spec/add-on choice and
// returns the authoritative prices for it. Duplicate add-on IDs are
// rejected; a selection is a set.
func (s *service) ResolveSelection(ctx context.Context, input SelectionInput) (*Selection, error) {
	product, err := s.repo.FindProductByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	var spec *models.ProductSpec
	for i := range product.Specs {
		if product.Specs[i].ID == input.SpecID {
			spec = &product.Specs[i]
			break
		}
	}
	if spec == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "spec not found for product")
	}

	selection := &Selection{
		ProductID:   product.ID,
		ProductName: localize(input.Language, product.Name, product.NameEN, product.NameJA),
		Image:       product.Image,
		SpecID:      spec.ID,
		SpecName:    localize(input.Language, spec.Name, spec.NameEN, spec.NameJA),
		UnitPrice:   spec.Price,
	}

	if len(input.AddOnIDs) == 0 {
		return selection, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(input.AddOnIDs))
	for _, id := range input.AddOnIDs {
		if _, dup := seen[id]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate side item in selection")
		}
		seen[id] = struct{}{}
	}

	sides, err := s.repo.ListSideItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list side items")
	}
	byID := make(map[uuid.UUID]*models.SideItem, len(sides))
	for i := range sides {
		byID[sides[i].ID] = &sides[i]
	}
	for _, id := range input.AddOnIDs {
		side, ok := byID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "side item not found")
		}
		selection.AddOns = append(selection.AddOns, SelectedAddOn{
			ID:    side.ID,
			Name:  localize(input.Language, side.Name, side.NameEN, side.NameJA),
			Price: side.Price,
		})
	}
	return selection, nil
}
