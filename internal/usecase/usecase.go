package usecase

import "context"

type CatalogUC interface {
	ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error)
}

type SubscriptionUC interface {
	Subscribe(ctx context.Context, req *SubscribeReq) (*SubscribeRes, error)
}

type DiagnosticsUC interface {
	Diagnose(ctx context.Context) *DiagnosticsReport
	Healthy(ctx context.Context) bool
}
