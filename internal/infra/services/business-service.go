package services

import (
	"context"
	"fmt"
	"time"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
	repo "github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/interfaces/repository"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/logger"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/util"
)

// BusinessService resolves dialed numbers to tenants from the business
// directory and serves the configuration API.
type BusinessService struct {
	BusinessRepository repo.Repository[entities.Business]
	Logger             *logger.Logger
}

func NewBusinessService(businessRepository repo.Repository[entities.Business], logger *logger.Logger) *BusinessService {
	return &BusinessService{
		BusinessRepository: businessRepository,
		Logger:             logger,
	}
}

// DefaultBusiness is the fixed tenant used when a dialed number is unknown or
// the directory is unreachable.
func DefaultBusiness() entities.Business {
	return entities.Business{
		ID:          "default",
		CompanyName: "Rayth Media Services",
		Industry:    entities.IndustryGeneric,
		Services:    []string{"general inquiries", "appointments", "quotes"},
		Schedule: entities.Schedule{
			WeekdayOpen:  "08:00",
			WeekdayClose: "18:00",
			WeekendOpen:  "09:00",
			WeekendClose: "14:00",
		},
	}
}

// Resolve maps a dialed number to its tenant. Every failure collapses to the
// default tenant; misconfiguration never surfaces to the caller, the call
// keeps going.
func (bs *BusinessService) Resolve(ctx context.Context, calledNumber string) entities.Business {
	business, err := bs.FindByNumber(ctx, calledNumber)
	if err != nil {
		bs.Logger.Warn(fmt.Sprintf("No business for number %s, using default tenant: %v", calledNumber, err))
		return DefaultBusiness()
	}
	return business
}

// FindByNumber looks up the tenant whose registered numbers contain the given
// E.164 number.
func (bs *BusinessService) FindByNumber(ctx context.Context, number string) (entities.Business, error) {
	if bs.BusinessRepository == nil {
		return entities.Business{}, fmt.Errorf("business directory unavailable")
	}

	normalized := util.NormalizeNumber(number)
	return bs.BusinessRepository.FindOne(ctx, repo.BusinessesCollection, repo.Filter{"phone_numbers": normalized})
}

// FindByID fetches a tenant for the configuration API.
func (bs *BusinessService) FindByID(ctx context.Context, id string) (entities.Business, error) {
	if bs.BusinessRepository == nil {
		return entities.Business{}, fmt.Errorf("business directory unavailable")
	}
	return bs.BusinessRepository.FindOne(ctx, repo.BusinessesCollection, repo.Filter{"_id": id})
}

// UpdateAIConfig replaces a tenant's assistant configuration.
func (bs *BusinessService) UpdateAIConfig(ctx context.Context, id string, cfg entities.AIConfig) (entities.Business, error) {
	business, err := bs.FindByID(ctx, id)
	if err != nil {
		return entities.Business{}, err
	}

	business.AIConfig = cfg
	business.UpdatedAt = time.Now()

	updated, err := bs.BusinessRepository.Upsert(ctx, repo.BusinessesCollection, repo.Filter{"_id": id}, business)
	if err != nil {
		bs.Logger.Error(fmt.Sprintf("Failed to update AI config for business %s: %v", id, err))
		return entities.Business{}, err
	}
	return updated, nil
}
