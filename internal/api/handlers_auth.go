package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/trackora/trackora/internal/models"
	"github.com/trackora/trackora/internal/services"
	"golang.org/x/crypto/bcrypt"
)

// Register creates the account, seeds the default catalog and an empty
// record for today, and opens a session.
func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if message := services.ValidateRegistrationInput(input.Name, input.Email, input.Password); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	email := services.NormalizeEmail(input.Email)
	exists, err := handler.authService.RegistrationEmailExists(email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "email already registered")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}

	now := time.Now().In(handler.location)
	user := models.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(passwordHash),
		Level:        1,
		CreatedAt:    now,
	}
	if err := handler.authService.CreateUser(&user); err != nil {
		return apiError(c, fiber.StatusConflict, "email already registered")
	}

	if _, err := handler.protocolService.SeedDefaults(user.ID, now); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to seed protocols")
	}
	if _, err := handler.progressService.SeedToday(user.ID, now, handler.location); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to seed progress")
	}

	if err := handler.setAuthCookie(c, &user, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login throttles failed attempts per client: passwords are only checked
// against bcrypt while the caller is under the limit.
func (handler *Handler) Login(c *fiber.Ctx) error {
	const loginAttemptsLimit = 8
	const loginAttemptsWindow = 15 * time.Minute

	now := time.Now().In(handler.location)
	limiterKey := requestLimiterKey(c)
	if handler.loginLimiter.blocked(limiterKey, now, loginAttemptsLimit, loginAttemptsWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		handler.loginLimiter.recordFailure(limiterKey, now, loginAttemptsWindow)
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if message := services.ValidateLoginInput(input.Email, input.Password); message != "" {
		handler.loginLimiter.recordFailure(limiterKey, now, loginAttemptsWindow)
		return apiError(c, fiber.StatusBadRequest, message)
	}

	user, err := handler.authService.FindByNormalizedEmail(services.NormalizeEmail(input.Email))
	if err != nil {
		handler.loginLimiter.recordFailure(limiterKey, now, loginAttemptsWindow)
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		handler.loginLimiter.recordFailure(limiterKey, now, loginAttemptsWindow)
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	handler.loginLimiter.clear(limiterKey)

	if err := handler.setAuthCookie(c, &user, input.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(user)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

// Me returns the freshly loaded user record backing the session.
func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(user)
}
