package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tableserve/entity"
	"tableserve/repository"
)

type RestaurantService struct {
	Repo *repository.RestaurantRepository
}

func NewRestaurantService(repo *repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{Repo: repo}
}

type CreateRestaurantReq struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	TableCount  int    `json:"tableCount" binding:"required,min=1"`
}

func (s *RestaurantService) Create(userID uint, req *CreateRestaurantReq) (*entity.Restaurant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrBadRequest)
	}
	if req.TableCount < 1 {
		return nil, fmt.Errorf("%w: tableCount must be at least 1", ErrBadRequest)
	}

	rest := &entity.Restaurant{
		Name:           strings.TrimSpace(req.Name),
		Address:        strings.TrimSpace(req.Address),
		PhoneNumber:    strings.TrimSpace(req.PhoneNumber),
		TableCount:     req.TableCount,
		IntegrationKey: uuid.NewString(),
		UserID:         userID,
	}
	if err := s.Repo.Create(rest); err != nil {
		return nil, err
	}
	return rest, nil
}

func (s *RestaurantService) ListForOwner(userID uint) ([]entity.Restaurant, error) {
	return s.Repo.ListForOwner(userID)
}

func (s *RestaurantService) GetForOwner(restID, userID uint) (*entity.Restaurant, error) {
	rest, err := s.Repo.GetForOwner(restID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: restaurant %d", ErrNotFound, restID)
		}
		return nil, err
	}
	return rest, nil
}

func (s *RestaurantService) GetByIntegrationKey(key string) (*entity.Restaurant, error) {
	rest, err := s.Repo.GetByIntegrationKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown integration key", ErrNotFound)
		}
		return nil, err
	}
	return rest, nil
}

func (s *RestaurantService) IsOwnedBy(restID, userID uint) (bool, error) {
	return s.Repo.IsOwnedBy(restID, userID)
}

type UpdateRestaurantReq struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phoneNumber"`
	TableCount  *int    `json:"tableCount"`
}

// Update patches only the provided fields. TableCount may grow but not
// shrink below the tables already generated; regeneration never happens.
func (s *RestaurantService) Update(restID, userID uint, req *UpdateRestaurantReq) (*entity.Restaurant, error) {
	rest, err := s.GetForOwner(restID, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrBadRequest)
		}
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.TableCount != nil {
		if *req.TableCount < 1 {
			return nil, fmt.Errorf("%w: tableCount must be at least 1", ErrBadRequest)
		}
		updates["table_count"] = *req.TableCount
	}
	if len(updates) == 0 {
		return rest, nil
	}

	if err := s.Repo.Update(rest, updates); err != nil {
		return nil, err
	}
	return s.GetForOwner(restID, userID)
}

func (s *RestaurantService) Delete(restID, userID uint) error {
	if _, err := s.GetForOwner(restID, userID); err != nil {
		return err
	}
	return s.Repo.Delete(restID)
}
