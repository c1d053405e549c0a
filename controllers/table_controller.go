package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tableserve/pkg/resp"
	"tableserve/repository"
	"tableserve/services"
	"tableserve/utils"
)

type TableController struct {
	Service     *services.TableService
	Restaurants *services.RestaurantService
	BaseURL     string
}

func NewTableController(db *gorm.DB, baseURL string) *TableController {
	restRepo := repository.NewRestaurantRepository(db)
	return &TableController{
		Service:     services.NewTableService(db, repository.NewTableRepository(db), restRepo),
		Restaurants: services.NewRestaurantService(restRepo),
		BaseURL:     baseURL,
	}
}

// GET /restaurants/:id/tables; the first read generates the tables.
func (tc *TableController) List(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if _, err := tc.Restaurants.GetForOwner(id, utils.CurrentUserID(c)); err != nil {
		respondErr(c, err)
		return
	}
	tables, err := tc.Service.List(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"items": tables})
}

// GET /restaurants/:id/qrcodes/:number; :number is the printed table
// number, not the table id.
func (tc *TableController) QRCode(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	number, ok := uintParam(c, "number")
	if !ok {
		return
	}
	rest, err := tc.Restaurants.GetForOwner(id, utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	if _, err := tc.Service.List(id); err != nil { // make sure tables exist
		respondErr(c, err)
		return
	}
	png, err := tc.Service.QRCode(rest, int(number), tc.BaseURL)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Data(200, "image/png", png)
}
