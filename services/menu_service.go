package services

import (
	"tableserve/entity"
	"tableserve/repository"
)

type MenuService struct {
	Repo *repository.MenuRepository
}

func NewMenuService(repo *repository.MenuRepository) *MenuService {
	return &MenuService{Repo: repo}
}

func (s *MenuService) ListByRestaurant(restID uint) ([]entity.MenuCategory, error) {
	return s.Repo.ListCategories(restID)
}
