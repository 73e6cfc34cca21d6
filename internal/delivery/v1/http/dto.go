package http

import (
	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type ProductsResponse struct {
	Items []domain.Document `json:"items" swaggertype:"array,object"`
}

type SubscribeRequest struct {
	Email string `json:"email" example:"fan@example.com"`
}

type SubscribeResponse struct {
	Status string `json:"status" example:"ok"`
	ID     string `json:"id"`
}

type DiagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
	StoreDriver      string   `json:"store_driver"`
}

func toProductsResponse(res *usecase.ListProductsRes) *ProductsResponse {
	items := res.Items
	if items == nil {
		items = []domain.Document{}
	}

	return &ProductsResponse{Items: items}
}

func toSubscribeResponse(res *usecase.SubscribeRes) *SubscribeResponse {
	return &SubscribeResponse{Status: res.Status, ID: res.ID}
}

func toDiagnosticsResponse(report *usecase.DiagnosticsReport) *DiagnosticsResponse {
	collections := report.Collections
	if collections == nil {
		collections = []string{}
	}

	return &DiagnosticsResponse{
		Backend:          report.Backend,
		Database:         report.Database,
		DatabaseURL:      report.DatabaseURL,
		DatabaseName:     report.DatabaseName,
		ConnectionStatus: report.ConnectionStatus,
		Collections:      collections,
		StoreDriver:      report.StoreDriver,
	}
}
