package Iservices

import (
	"context"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
)

// IBusinessService resolves dialed numbers to tenants and serves the
// configuration API.
type IBusinessService interface {
	// Resolve maps the dialed number to a business. It never fails: any
	// lookup error or miss yields the fixed default tenant.
	Resolve(ctx context.Context, calledNumber string) entities.Business

	FindByNumber(ctx context.Context, number string) (entities.Business, error)
	FindByID(ctx context.Context, id string) (entities.Business, error)
	UpdateAIConfig(ctx context.Context, id string, cfg entities.AIConfig) (entities.Business, error)
}
