package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tableserve/entity"
	"tableserve/repository"
)

// MenuUploadService replaces a restaurant's whole catalog from a CSV
// upload: validate every row first, then delete and recreate inside one
// transaction. A failure anywhere leaves the prior menu untouched.
type MenuUploadService struct {
	DB   *gorm.DB
	Repo *repository.MenuRepository
}

func NewMenuUploadService(db *gorm.DB, repo *repository.MenuRepository) *MenuUploadService {
	return &MenuUploadService{DB: db, Repo: repo}
}

const maxDescriptionLen = 500

type menuRow struct {
	name        string
	description string
	price       decimal.Decimal
	currency    string
	category    string
	isAvailable bool
	tags        string
	allergens   string
}

// ReplaceFromCSV parses and validates the upload, collecting every row
// error before failing, then swaps the menu atomically.
func (s *MenuUploadService) ReplaceFromCSV(restID uint, src io.Reader) (int, error) {
	rows, err := s.parse(src)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: file contains no menu rows", ErrBadRequest)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.DeleteMenuForRestaurant(tx, restID); err != nil {
			return err
		}
		// Find-or-create cache: one category row per distinct name.
		categories := map[string]uint{}
		for _, row := range rows {
			catID, ok := categories[row.category]
			if !ok {
				c := entity.MenuCategory{Name: row.category, RestaurantID: restID}
				if err := s.Repo.CreateCategory(tx, &c); err != nil {
					return err
				}
				catID = c.ID
				categories[row.category] = catID
			}
			item := entity.MenuItem{
				Name:        row.name,
				Description: row.description,
				Price:       row.price,
				Currency:    row.currency,
				IsAvailable: row.isAvailable,
				Tags:        row.tags,
				Allergens:   row.allergens,
				CategoryID:  catID,
			}
			if err := s.Repo.CreateItem(tx, &item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (s *MenuUploadService) parse(src io.Reader) ([]menuRow, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read CSV header: %v", ErrBadRequest, err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("%w: missing required column: name", ErrBadRequest)
	}
	if _, ok := cols["category"]; !ok {
		return nil, fmt.Errorf("%w: missing required column: category", ErrBadRequest)
	}
	if _, ok := cols["price"]; !ok {
		return nil, fmt.Errorf("%w: missing required column: price", ErrBadRequest)
	}

	field := func(record []string, name string) (string, bool) {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[i]), true
	}

	var rows []menuRow
	var problems []string
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			problems = append(problems, fmt.Sprintf("row %d: %v", line, err))
			continue
		}

		var row menuRow
		row.name, _ = field(record, "name")
		if row.name == "" {
			problems = append(problems, fmt.Sprintf("row %d: name is required", line))
		}
		row.category, _ = field(record, "category")
		if row.category == "" {
			problems = append(problems, fmt.Sprintf("row %d: category is required", line))
		}

		priceStr, _ := field(record, "price")
		price, perr := decimal.NewFromString(priceStr)
		if perr != nil || price.IsNegative() {
			problems = append(problems, fmt.Sprintf("row %d: price must be a non-negative number, got %q", line, priceStr))
		} else {
			row.price = price
		}

		if cur, present := field(record, "currency"); present && cur == "" {
			problems = append(problems, fmt.Sprintf("row %d: currency cannot be empty", line))
		} else {
			row.currency = cur
		}
		if row.currency == "" {
			row.currency = "USD"
		}

		row.description, _ = field(record, "description")
		if len(row.description) > maxDescriptionLen {
			problems = append(problems, fmt.Sprintf("row %d: description exceeds %d characters", line, maxDescriptionLen))
		}

		avail, present := field(record, "isavailable")
		row.isAvailable = parseAvailability(avail, present)

		row.tags, _ = field(record, "tags")
		row.allergens, _ = field(record, "allergens")

		rows = append(rows, row)
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: invalid menu file: %s", ErrBadRequest, strings.Join(problems, "; "))
	}
	return rows, nil
}

// parseAvailability accepts true/1/yes/available (case-insensitive) as
// true; an absent or empty field defaults to available.
func parseAvailability(v string, present bool) bool {
	if !present || v == "" {
		return true
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes", "available":
		return true
	default:
		return false
	}
}
