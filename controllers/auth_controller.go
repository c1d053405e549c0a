package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tableserve/pkg/resp"
	"tableserve/repository"
	"tableserve/services"
	"tableserve/utils"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(db *gorm.DB, jwtSecret string, jwtTTL time.Duration) *AuthController {
	return &AuthController{
		Service: services.NewAuthService(repository.NewUserRepository(db), jwtSecret, jwtTTL),
	}
}

type RegisterReq struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := ac.Service.Register(req.Email, req.Password, req.FirstName, req.LastName, req.PhoneNumber)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.Created(c, gin.H{"id": user.ID, "email": user.Email})
}

// GET /auth/verify?token=
func (ac *AuthController) Verify(c *gin.Context) {
	if err := ac.Service.VerifyEmail(c.Query("token")); err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"verified": true})
}

type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := ac.Service.Login(req.Email, req.Password)
	if err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.Service.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, user)
}
