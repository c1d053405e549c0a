package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tableserve/pkg/resp"
	"tableserve/repository"
	"tableserve/services"
	"tableserve/utils"
)

type MenuController struct {
	Service     *services.MenuService
	Upload      *services.MenuUploadService
	Restaurants *services.RestaurantService
}

func NewMenuController(db *gorm.DB) *MenuController {
	menuRepo := repository.NewMenuRepository(db)
	return &MenuController{
		Service:     services.NewMenuService(menuRepo),
		Upload:      services.NewMenuUploadService(db, menuRepo),
		Restaurants: services.NewRestaurantService(repository.NewRestaurantRepository(db)),
	}
}

// GET /restaurants/:id/menu
func (mc *MenuController) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if _, err := mc.Restaurants.GetForOwner(id, utils.CurrentUserID(c)); err != nil {
		respondErr(c, err)
		return
	}
	categories, err := mc.Service.ListByRestaurant(id)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"categories": categories})
}

// POST /restaurants/:id/menu/upload, multipart field "file" holding the CSV.
func (mc *MenuController) UploadCSV(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if _, err := mc.Restaurants.GetForOwner(id, utils.CurrentUserID(c)); err != nil {
		respondErr(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		resp.BadRequest(c, "file is required")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	defer f.Close()

	count, err := mc.Upload.ReplaceFromCSV(id, f)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"imported": count})
}
