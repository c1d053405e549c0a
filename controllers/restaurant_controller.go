package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tableserve/pkg/resp"
	"tableserve/repository"
	"tableserve/services"
	"tableserve/utils"
)

type RestaurantController struct {
	Service *services.RestaurantService
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{
		Service: services.NewRestaurantService(repository.NewRestaurantRepository(db)),
	}
}

func (rc *RestaurantController) Create(c *gin.Context) {
	var req services.CreateRestaurantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := rc.Service.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.Created(c, rest)
}

func (rc *RestaurantController) List(c *gin.Context) {
	out, err := rc.Service.ListForOwner(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": out})
}

func (rc *RestaurantController) Detail(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	rest, err := rc.Service.GetForOwner(id, utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, rest)
}

func (rc *RestaurantController) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateRestaurantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := rc.Service.Update(id, utils.CurrentUserID(c), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, rest)
}

func (rc *RestaurantController) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := rc.Service.Delete(id, utils.CurrentUserID(c)); err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
