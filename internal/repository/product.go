package repository

import (
	"context"
	"stablecart-api/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Seed(ctx context.Context) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error)
	List(ctx context.Context, category string) ([]*model.Product, error)
	Search(ctx context.Context, query string) ([]*model.Product, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func price(currency string, amount string) model.ProductPrice {
	return model.ProductPrice{Currency: currency, Amount: decimal.RequireFromString(amount)}
}

func (r *productRepoImpl) Seed(ctx context.Context) error {
	products := []model.Product{
		{ID: "hw-wallet-s1", Name: "Ledger Sling S1", Description: "Entry-level hardware wallet", Category: "hardware", Stock: 120,
			Prices: []model.ProductPrice{price("USDC", "79.00"), price("USDT", "79.00"), price("DAI", "79.50")}},
		{ID: "hw-wallet-x2", Name: "Ledger Sling X2", Description: "Bluetooth hardware wallet", Category: "hardware", Stock: 60,
			Prices: []model.ProductPrice{price("USDC", "149.00"), price("USDT", "149.00")}},
		{ID: "node-kit-pro", Name: "Node Runner Kit Pro", Description: "Plug-and-play validator node", Category: "hardware", Stock: 25,
			Prices: []model.ProductPrice{price("USDC", "599.00")}},
		{ID: "tee-hodl", Name: "HODL Tee", Description: "Organic cotton, acid-resistant print", Category: "apparel", Stock: 500,
			Prices: []model.ProductPrice{price("USDC", "24.00"), price("DAI", "24.00"), price("PYUSD", "23.50")}},
		{ID: "cap-satoshi", Name: "Satoshi Cap", Description: "Embroidered genesis block cap", Category: "apparel", Stock: 300,
			Prices: []model.ProductPrice{price("USDT", "19.00"), price("USDC", "19.00")}},
		{ID: "giftcard-100", Name: "Stablecart Gift Card 100", Description: "100 USD-pegged store credit", Category: "giftcards", Stock: 9999,
			Prices: []model.ProductPrice{price("USDC", "100.00"), price("USDT", "100.00"), price("DAI", "100.00"), price("FDUSD", "100.00")}},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Prices").
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Preload("Prices").
		Where("id IN ?", productIDs).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) List(ctx context.Context, category string) ([]*model.Product, error) {
	q := r.db.WithContext(ctx).Preload("Prices")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var products []*model.Product
	err := q.Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Search(ctx context.Context, query string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Preload("Prices").
		Where("name LIKE ? OR description LIKE ?", "%"+query+"%", "%"+query+"%").
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}
