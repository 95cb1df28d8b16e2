package handlers

import (
	"github.com/BadhanCB/outfitex-backend/internal/api/dto"
	"github.com/BadhanCB/outfitex-backend/internal/domain"
)

func imageResponse(img domain.Image) *dto.ImageResponse {
	if img.Empty() {
		return nil
	}
	return &dto.ImageResponse{Data: img.Data, Type: img.Type}
}

func productSummary(p *domain.Product) dto.ProductSummary {
	return dto.ProductSummary{
		ID:         p.ID,
		Slug:       p.Slug,
		Name:       p.Name,
		Price:      p.Price,
		Category:   p.Category,
		Collection: p.Collection,
		Image:      imageResponse(p.Image),
		SellerID:   p.SellerID,
		SaleCount:  p.SaleCount,
	}
}

func productDetail(p *domain.Product) dto.ProductDetail {
	return dto.ProductDetail{
		ProductSummary: productSummary(p),
		Description:    p.Description,
		Featured:       p.Featured,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func principalResponse(p *domain.Principal) dto.PrincipalResponse {
	return dto.PrincipalResponse{
		ID:               p.ID,
		Role:             string(p.Role),
		Name:             p.Name,
		Username:         p.Username,
		Email:            p.Email,
		Phone:            p.Phone,
		ShippingAddress:  p.ShippingAddress,
		Address:          p.Address,
		CorporateAddress: p.CorporateAddress,
		NID:              p.NID,
		Slug:             p.Slug,
		Photo:            imageResponse(p.Photo),
		CreatedAt:        p.CreatedAt,
	}
}

func orderResponse(o *domain.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{ProductID: item.ProductID, Quantity: item.Quantity, Price: item.Price})
	}
	return dto.OrderResponse{
		ID:        o.ID,
		BuyerID:   o.BuyerID,
		Items:     items,
		Total:     o.Total(),
		CreatedAt: o.CreatedAt,
	}
}
