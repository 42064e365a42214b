package service

import (
	"context"
	"fmt"

	"stablecart-api/internal/dto"
	"stablecart-api/internal/model"
	"stablecart-api/internal/repository"
)

type ProductService interface {
	List(ctx context.Context, category string) ([]*dto.ProductResponse, error)
	Search(ctx context.Context, query string) ([]*dto.ProductResponse, error)
	Get(ctx context.Context, productID string) (*dto.ProductResponse, error)
}

type productServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
	}
}

func (s *productServiceImpl) List(ctx context.Context, category string) ([]*dto.ProductResponse, error) {
	products, err := s.productRepo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return toProductResponses(products), nil
}

func (s *productServiceImpl) Search(ctx context.Context, query string) ([]*dto.ProductResponse, error) {
	products, err := s.productRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	return toProductResponses(products), nil
}

func (s *productServiceImpl) Get(ctx context.Context, productID string) (*dto.ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}

	resp := toProductResponse(product)
	return &resp, nil
}

func toProductResponses(products []*model.Product) []*dto.ProductResponse {
	out := make([]*dto.ProductResponse, len(products))
	for i, p := range products {
		resp := toProductResponse(p)
		out[i] = &resp
	}
	return out
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Stock:       p.Stock,
		Prices:      []dto.PriceResponse{},
	}
	for _, pr := range p.Prices {
		resp.Prices = append(resp.Prices, dto.PriceResponse{
			Currency: pr.Currency,
			Amount:   pr.Amount.String(),
		})
	}
	return resp
}
