package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"EPI_monitor/internal/auth"
	"EPI_monitor/internal/models"
)

// AuthHandlers обрабатывает регистрацию и вход пользователей
type AuthHandlers struct {
	db         *gorm.DB
	jwtService *auth.JWTService
}

func NewAuthHandlers(db *gorm.DB, jwtService *auth.JWTService) *AuthHandlers {
	return &AuthHandlers{
		db:         db,
		jwtService: jwtService,
	}
}

// RegisterRequest данные для регистрации
type RegisterRequest struct {
	Login    string `json:"login" binding:"required" example:"doctor.ivanova"`
	Password string `json:"password" binding:"required" example:"strong-password-123"`
	Role     string `json:"role" example:"clinician" enums:"clinician,researcher,admin"`
}

// LoginRequest данные для входа
type LoginRequest struct {
	Login    string `json:"login" binding:"required" example:"doctor.ivanova"`
	Password string `json:"password" binding:"required" example:"strong-password-123"`
}

// Register регистрирует нового пользователя
// @Summary Регистрация пользователя
// @Description Создает учетную запись и возвращает access токен
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Данные регистрации"
// @Success 201 {object} map[string]interface{} "Пользователь создан"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 409 {object} ErrorResponse "Логин уже занят"
// @Router /auth/register [post]
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Invalid registration request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := h.db.First(&existing, "login = ?", req.Login).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "login already taken"})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = "clinician"
	}

	user := models.User{
		Login:        req.Login,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	accessToken, err := h.jwtService.GenerateAccessToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	// Устанавливаем refresh token в HTTP-only cookie
	h.setRefreshTokenCookie(c, refreshToken)

	slog.Info("User registered", "login", user.Login, "role", user.Role)

	c.JSON(http.StatusCreated, gin.H{
		"message":      "User registered successfully",
		"user":         user,
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   h.jwtService.AccessTokenTTL(),
	})
}

// Login выполняет вход пользователя
// @Summary Вход пользователя
// @Description Проверяет пароль и возвращает access токен
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Данные входа"
// @Success 200 {object} map[string]interface{} "Вход выполнен"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 401 {object} ErrorResponse "Неверный логин или пароль"
// @Router /auth/login [post]
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.First(&user, "login = ?", req.Login).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid login or password"})
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		slog.Warn("Failed login attempt", "login", req.Login)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid login or password"})
		return
	}

	accessToken, err := h.jwtService.GenerateAccessToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	// Устанавливаем refresh token в HTTP-only cookie
	h.setRefreshTokenCookie(c, refreshToken)

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"user":         user,
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   h.jwtService.AccessTokenTTL(),
	})
}

// RefreshToken обновляет access токен по refresh cookie
// @Summary Обновление токена
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "Токен обновлен"
// @Failure 401 {object} ErrorResponse "Refresh токен отсутствует или невалиден"
// @Router /auth/refresh [post]
func (h *AuthHandlers) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token required"})
		return
	}

	claims, err := h.jwtService.ValidateToken(refreshToken)
	if err != nil {
		c.SetCookie("refresh_token", "", -1, "/", "", false, true)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	accessToken, err := h.jwtService.GenerateAccessToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	newRefreshToken, err := h.jwtService.GenerateRefreshToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	h.setRefreshTokenCookie(c, newRefreshToken)

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   h.jwtService.AccessTokenTTL(),
	})
}

// Logout завершает сеанс пользователя
// @Summary Выход пользователя
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "Выход выполнен"
// @Router /auth/logout [post]
func (h *AuthHandlers) Logout(c *gin.Context) {
	c.SetCookie("refresh_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetProfile возвращает профиль текущего пользователя
// @Summary Профиль пользователя
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Профиль"
// @Failure 401 {object} ErrorResponse "Не авторизован"
// @Router /auth/me [get]
func (h *AuthHandlers) GetProfile(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	currentUser := user.(*models.User)
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    currentUser.ID,
			"login": currentUser.Login,
			"role":  currentUser.Role,
		},
	})
}

// Установка refresh token в HTTP-only cookie
func (h *AuthHandlers) setRefreshTokenCookie(c *gin.Context, refreshToken string) {
	c.SetCookie(
		"refresh_token",
		refreshToken,
		7*24*60*60, // 7 дней
		"/",
		"",
		false, // secure (true для HTTPS)
		true,  // httpOnly
	)
}
