package services

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"tableserve/entity"
	"tableserve/repository"
)

type TableService struct {
	DB       *gorm.DB
	Repo     *repository.TableRepository
	RestRepo *repository.RestaurantRepository
}

func NewTableService(db *gorm.DB, repo *repository.TableRepository, restRepo *repository.RestaurantRepository) *TableService {
	return &TableService{DB: db, Repo: repo, RestRepo: restRepo}
}

// List returns the restaurant's tables, generating them on first read.
func (s *TableService) List(restID uint) ([]entity.DiningTable, error) {
	rest, err := s.RestRepo.GetByID(restID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: restaurant %d", ErrNotFound, restID)
		}
		return nil, err
	}
	if err := s.ensureGenerated(rest); err != nil {
		return nil, err
	}
	return s.Repo.ListForRestaurant(restID)
}

// ensureGenerated creates tables 1..TableCount exactly once. The count
// check runs inside the insert transaction and the unique index on
// (restaurant_id, number) stops a concurrent first-read from doubling
// the set: the loser's insert fails and the whole batch rolls back.
func (s *TableService) ensureGenerated(rest *entity.Restaurant) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		cnt, err := s.Repo.CountForRestaurant(tx, rest.ID)
		if err != nil {
			return err
		}
		if cnt > 0 {
			return nil
		}
		tables := make([]entity.DiningTable, 0, rest.TableCount)
		for n := 1; n <= rest.TableCount; n++ {
			tables = append(tables, entity.DiningTable{RestaurantID: rest.ID, Number: n})
		}
		if len(tables) == 0 {
			return nil
		}
		return s.Repo.CreateBatch(tx, tables)
	})
}

// Resolve validates the restaurant/table ownership chain. A table that
// exists under a different restaurant is reported the same as a missing
// one.
func (s *TableService) Resolve(restID, tableID uint) (*entity.DiningTable, error) {
	rest, err := s.RestRepo.GetByID(restID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: restaurant %d", ErrNotFound, restID)
		}
		return nil, err
	}
	if err := s.ensureGenerated(rest); err != nil {
		return nil, err
	}
	t, err := s.Repo.GetForRestaurant(restID, tableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: table %d in restaurant %d", ErrNotFound, tableID, restID)
		}
		return nil, err
	}
	return t, nil
}

// QRCode renders a PNG pointing the diner's phone at the public widget
// for one table, identified by integration key rather than internal ids.
func (s *TableService) QRCode(rest *entity.Restaurant, number int, baseURL string) ([]byte, error) {
	t, err := s.Repo.GetByNumber(rest.ID, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: table number %d", ErrNotFound, number)
		}
		return nil, err
	}
	url := fmt.Sprintf("%s/widget?key=%s&table=%d", baseURL, rest.IntegrationKey, t.Number)
	return qrcode.Encode(url, qrcode.Medium, 256)
}
