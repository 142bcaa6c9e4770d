package catalog

import (
	"context"
	"fmt"

	"github.com/hanamura/noodlehouse-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// Seeder populates an empty catalog with the launch menu. It is a no-op on
// any database that already has products.
type Seeder struct {
	repo *Repository
}

// NewSeeder binds the seeder to the catalog repository.
func NewSeeder(repo *Repository) *Seeder {
	return &Seeder{repo: repo}
}

// Run inserts the fixture menu when the products table is empty.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	count, err := s.repo.CountProducts(ctx)
	if err != nil {
		return false, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if err := s.repo.CreateProducts(ctx, fixtureProducts()); err != nil {
		return false, fmt.Errorf("seed products: %w", err)
	}
	if err := s.repo.CreateSideItems(ctx, fixtureSideItems()); err != nil {
		return false, fmt.Errorf("seed side items: %w", err)
	}
	return true, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func fixtureProducts() []models.Product {
	return []models.Product{
		{
			Name:          "招牌豚骨拉面",
			NameEN:        "Signature Tonkotsu Ramen",
			NameJA:        "特製豚骨ラーメン",
			Description:   "浓郁豚骨汤底，配叉烧和溏心蛋",
			DescriptionEN: "Rich pork bone broth with chashu and soft-boiled egg",
			DescriptionJA: "濃厚豚骨スープ、チャーシューと半熟卵入り",
			Image:         "/signature-tonkotsu-ramen.png",
			Category:      "ramen",
			Rating:        dec("4.8"),
			Badges:        []string{"招牌"},
			Position:      1,
			Specs: []models.ProductSpec{
				{Name: "标准碗", NameEN: "Regular", NameJA: "並盛", Price: dec("28"), IsDefault: true, Position: 1},
				{Name: "大碗", NameEN: "Large", NameJA: "大盛", Price: dec("34"), OriginalPrice: decPtr("38"), Position: 2},
			},
		},
		{
			Name:          "酱油拉面",
			NameEN:        "Shoyu Ramen",
			NameJA:        "醤油ラーメン",
			Description:   "清澈酱油汤底，笋干海苔",
			DescriptionEN: "Clear soy sauce broth with bamboo shoots and nori",
			DescriptionJA: "あっさり醤油スープ、メンマと海苔添え",
			Image:         "/shoyu-ramen.png",
			Category:      "ramen",
			Rating:        dec("4.6"),
			Position:      2,
			Specs: []models.ProductSpec{
				{Name: "标准碗", NameEN: "Regular", NameJA: "並盛", Price: dec("23"), IsDefault: true, Position: 1},
				{Name: "大碗", NameEN: "Large", NameJA: "大盛", Price: dec("28"), Position: 2},
			},
		},
		{
			Name:          "味噌拉面",
			NameEN:        "Miso Ramen",
			NameJA:        "味噌ラーメン",
			Description:   "北海道风味味噌汤底，玉米黄油",
			DescriptionEN: "Hokkaido-style miso broth with corn and butter",
			DescriptionJA: "北海道風味噌スープ、コーンバター入り",
			Image:         "/miso-ramen.png",
			Category:      "ramen",
			Rating:        dec("4.7"),
			Badges:        []string{"人气"},
			Position:      3,
			Specs: []models.ProductSpec{
				{Name: "标准碗", NameEN: "Regular", NameJA: "並盛", Price: dec("26"), IsDefault: true, Position: 1},
				{Name: "大碗", NameEN: "Large", NameJA: "大盛", Price: dec("31"), Position: 2},
			},
		},
		{
			Name:          "地狱辣味拉面",
			NameEN:        "Spicy Hell Ramen",
			NameJA:        "地獄の激辛ラーメン",
			Description:   "特辣汤底，挑战你的极限",
			DescriptionEN: "Extra spicy broth for the brave",
			DescriptionJA: "激辛スープ、挑戦者求む",
			Image:         "/spicy-hell-ramen.png",
			Category:      "ramen",
			Rating:        dec("4.5"),
			Badges:        []string{"新品"},
			Position:      4,
			Specs: []models.ProductSpec{
				{Name: "标准碗", NameEN: "Regular", NameJA: "並盛", Price: dec("29"), IsDefault: true, Position: 1},
			},
		},
		{
			Name:          "日式煎饺",
			NameEN:        "Gyoza",
			NameJA:        "焼き餃子",
			Description:   "香脆底面，六只装",
			DescriptionEN: "Pan-fried dumplings, six pieces",
			DescriptionJA: "カリッと焼いた餃子、六個入り",
			Image:         "/gyoza.png",
			Category:      "sides",
			Rating:        dec("4.9"),
			Position:      5,
			Specs: []models.ProductSpec{
				{Name: "6只", NameEN: "6 pcs", NameJA: "6個", Price: dec("12"), IsDefault: true, Position: 1},
				{Name: "12只", NameEN: "12 pcs", NameJA: "12個", Price: dec("22"), Position: 2},
			},
		},
		{
			Name:          "抹茶冰淇淋",
			NameEN:        "Matcha Ice Cream",
			NameJA:        "抹茶アイス",
			Description:   "宇治抹茶，口感绵密",
			DescriptionEN: "Uji matcha, smooth and creamy",
			DescriptionJA: "宇治抹茶のなめらかアイス",
			Image:         "/matcha-ice-cream.png",
			Category:      "desserts",
			Rating:        dec("4.4"),
			Position:      6,
			Specs: []models.ProductSpec{
				{Name: "单球", NameEN: "Single", NameJA: "シングル", Price: dec("9"), IsDefault: true, Position: 1},
			},
		},
	}
}

func fixtureSideItems() []models.SideItem {
	return []models.SideItem{
		{Name: "溏心蛋", NameEN: "Soft-Boiled Egg", NameJA: "味玉", Price: dec("3"), Position: 1},
		{Name: "叉烧加量", NameEN: "Extra Chashu", NameJA: "チャーシュー増し", Price: dec("8"), Position: 2},
		{Name: "海苔", NameEN: "Nori", NameJA: "海苔", Price: dec("2"), Position: 3},
		{Name: "笋干", NameEN: "Bamboo Shoots", NameJA: "メンマ", Price: dec("3"), Position: 4},
		{Name: "加面", NameEN: "Extra Noodles", NameJA: "替え玉", Price: dec("5"), Position: 5},
	}
}
