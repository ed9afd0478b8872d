package pantry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pantrypal/domain"
	"pantrypal/entities"
	"pantrypal/pkg/expiry"
	"pantrypal/pkg/notification"
)

type (
	PantryService interface {
		AddItem(ctx context.Context, req domain.AddPantryItemRequest, userID string) (domain.PantryItemResponse, error)
		GetItems(ctx context.Context, userID string, status string) ([]domain.PantryItemResponse, error)
		GetAlerts(ctx context.Context, userID string) (domain.PantryAlertsResponse, error)
		DeleteItem(ctx context.Context, id string, userID string) error
	}

	pantryService struct {
		pantryRepository PantryRepository
		now              func() time.Time
	}
)

func NewPantryService(pantryRepository PantryRepository) PantryService {
	return &pantryService{
		pantryRepository: pantryRepository,
		now:              time.Now,
	}
}

func (s *pantryService) AddItem(ctx context.Context, req domain.AddPantryItemRequest, userID string) (domain.PantryItemResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.ItemNameMaxLength {
		return domain.PantryItemResponse{}, domain.ErrInvalidItemName
	}
	if req.ShelfLifeDays < domain.ShelfLifeMinDays || req.ShelfLifeDays > domain.ShelfLifeMaxDays {
		return domain.PantryItemResponse{}, domain.ErrInvalidShelfLife
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.PantryItemResponse{}, domain.ErrParseUUID
	}

	item := &entities.PantryItem{
		ID:            uuid.New(),
		UserID:        userUUID,
		Name:          name,
		ShelfLifeDays: req.ShelfLifeDays,
		AddedDate:     s.now(),
	}

	if err := s.pantryRepository.AddItem(ctx, item); err != nil {
		return domain.PantryItemResponse{}, err
	}

	return s.toResponse(item, s.now()), nil
}

// GetItems returns the user's pantry classified against today and sorted
// soonest-to-expire first. The optional status filter matches the derived
// status, not a stored column.
func (s *pantryService) GetItems(ctx context.Context, userID string, status string) ([]domain.PantryItemResponse, error) {
	items, err := s.pantryRepository.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	classified := expiry.ClassifyAll(toEngineItems(items), today)
	expiry.SortByUrgency(classified)

	response := make([]domain.PantryItemResponse, 0, len(classified))
	for _, item := range classified {
		if status != "" && status != "all" && string(item.Status) != status {
			continue
		}
		response = append(response, domain.PantryItemResponse{
			ID:            item.ID,
			Name:          item.Name,
			ShelfLifeDays: item.ShelfLifeDays,
			AddedDate:     item.AddedDate,
			ExpiryDate:    item.ExpiryDate,
			RemainingDays: item.RemainingDays,
			Status:        item.Status,
			Label:         item.Label,
		})
	}
	return response, nil
}

// GetAlerts returns the alert bucket: every item whose status is not fresh,
// most urgent first.
func (s *pantryService) GetAlerts(ctx context.Context, userID string) (domain.PantryAlertsResponse, error) {
	items, err := s.pantryRepository.GetItems(ctx, userID)
	if err != nil {
		return domain.PantryAlertsResponse{}, err
	}

	today := s.now()
	classified := expiry.ClassifyAll(toEngineItems(items), today)
	expiry.SortByUrgency(classified)

	alerts := make([]domain.PantryItemResponse, 0)
	for _, item := range classified {
		if item.Status == expiry.StatusFresh {
			continue
		}
		alerts = append(alerts, domain.PantryItemResponse{
			ID:            item.ID,
			Name:          item.Name,
			ShelfLifeDays: item.ShelfLifeDays,
			AddedDate:     item.AddedDate,
			ExpiryDate:    item.ExpiryDate,
			RemainingDays: item.RemainingDays,
			Status:        item.Status,
			Label:         item.Label,
		})
	}

	return domain.PantryAlertsResponse{Alerts: alerts, Total: len(alerts)}, nil
}

func (s *pantryService) DeleteItem(ctx context.Context, id string, userID string) error {
	item, err := s.pantryRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrItemNotFound
		}
		return err
	}

	if item.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	return s.pantryRepository.DeleteItem(ctx, id)
}

func (s *pantryService) toResponse(item *entities.PantryItem, today time.Time) domain.PantryItemResponse {
	c := expiry.Classify(item.AddedDate, item.ShelfLifeDays, today)
	return domain.PantryItemResponse{
		ID:            item.ID.String(),
		Name:          item.Name,
		ShelfLifeDays: item.ShelfLifeDays,
		AddedDate:     item.AddedDate,
		ExpiryDate:    c.ExpiryDate,
		RemainingDays: c.RemainingDays,
		Status:        c.Status,
		Label:         c.Label,
	}
}

func toEngineItems(items []*entities.PantryItem) []expiry.Item {
	engineItems := make([]expiry.Item, 0, len(items))
	for _, item := range items {
		engineItems = append(engineItems, expiry.Item{
			ID:            item.ID.String(),
			Name:          item.Name,
			AddedDate:     item.AddedDate,
			ShelfLifeDays: item.ShelfLifeDays,
		})
	}
	return engineItems
}

// digestSource adapts the repository to the digest job's view of the store.
type digestSource struct {
	pantryRepository PantryRepository
}

func NewDigestSource(pantryRepository PantryRepository) notification.PantryLister {
	return &digestSource{pantryRepository: pantryRepository}
}

func (d *digestSource) GetAllPantries(ctx context.Context) ([]notification.UserPantry, error) {
	pantries, err := d.pantryRepository.GetAllPantries(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]notification.UserPantry, 0, len(pantries))
	for _, pantry := range pantries {
		result = append(result, notification.UserPantry{
			UserID: pantry.UserID,
			Items:  toEngineItems(pantry.Items),
		})
	}
	return result, nil
}
