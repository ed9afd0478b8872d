package pantry

import (
	"context"

	"gorm.io/gorm"

	"pantrypal/entities"
)

type (
	PantryRepository interface {
		AddItem(ctx context.Context, item *entities.PantryItem) error
		GetItemByID(ctx context.Context, id string) (*entities.PantryItem, error)
		GetItems(ctx context.Context, userID string) ([]*entities.PantryItem, error)
		DeleteItem(ctx context.Context, id string) error
		GetAllPantries(ctx context.Context) ([]UserItems, error)
	}

	// UserItems groups one user's items for the daily digest run.
	UserItems struct {
		UserID string
		Items  []*entities.PantryItem
	}

	pantryRepository struct {
		db *gorm.DB
	}
)

func NewPantryRepository(db *gorm.DB) PantryRepository {
	return &pantryRepository{db: db}
}

func (r *pantryRepository) AddItem(ctx context.Context, item *entities.PantryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *pantryRepository) GetItemByID(ctx context.Context, id string) (*entities.PantryItem, error) {
	var item entities.PantryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *pantryRepository) GetItems(ctx context.Context, userID string) ([]*entities.PantryItem, error) {
	var items []*entities.PantryItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *pantryRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.PantryItem{}).Error
}

func (r *pantryRepository) GetAllPantries(ctx context.Context) ([]UserItems, error) {
	var items []*entities.PantryItem
	if err := r.db.WithContext(ctx).
		Order("user_id asc, created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}

	var pantries []UserItems
	byUser := make(map[string]int)
	for _, item := range items {
		userID := item.UserID.String()
		idx, ok := byUser[userID]
		if !ok {
			pantries = append(pantries, UserItems{UserID: userID})
			idx = len(pantries) - 1
			byUser[userID] = idx
		}
		pantries[idx].Items = append(pantries[idx].Items, item)
	}
	return pantries, nil
}
