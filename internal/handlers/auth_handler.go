package handlers

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/repository"
	"github.com/baomythoi/leefit/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const minPasswordLength = 8

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type profileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
}

type AuthHandler struct {
	db          txBeginner
	userRepo    userStore
	profileRepo profileReader
	jwtSecret   string
}

func NewAuthHandler(db txBeginner, userRepo userStore, profileRepo profileReader, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jwtSecret:   jwtSecret,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	email, ok := normalizeEmail(req.Email)
	if !ok {
		return badRequest(c, "Invalid email format")
	}
	if len(req.Password) < minPasswordLength {
		return badRequest(c, "Password must be at least 8 characters")
	}

	existing, err := h.userRepo.GetByEmail(c.Context(), email)
	if err == nil && existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return internalError(c, "Failed to check email", err)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return internalError(c, "Failed to hash password", err)
	}

	user := &models.User{Email: email, PasswordHash: hashed}
	tx, err := h.db.Begin(c.Context())
	if err != nil {
		return internalError(c, "Failed to start registration transaction", err)
	}
	defer func() {
		_ = tx.Rollback(c.Context())
	}()

	if err := repository.NewUserRepository(tx).CreateUser(c.Context(), user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
		}
		return internalError(c, "Failed to create user", err)
	}
	if err := repository.NewUserProfileRepository(tx).CreateEmpty(c.Context(), user.ID); err != nil {
		return internalError(c, "Failed to create user profile", err)
	}
	if err := tx.Commit(c.Context()); err != nil {
		return internalError(c, "Failed to finalize registration", err)
	}

	return h.respondWithToken(c.Status(fiber.StatusCreated), user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	email, ok := normalizeEmail(req.Email)
	if !ok {
		return badRequest(c, "Invalid email format")
	}

	user, err := h.userRepo.GetByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
		}
		return internalError(c, "Failed to lookup user", err)
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	return h.respondWithToken(c, user)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	user, err := h.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return internalError(c, "Failed to fetch user", err)
	}

	profile, err := h.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return internalError(c, "Failed to fetch profile", err)
	}

	return c.JSON(fiber.Map{
		"user":                models.AuthUser{ID: user.ID, Email: user.Email},
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func (h *AuthHandler) respondWithToken(c *fiber.Ctx, user *models.User) error {
	token, err := utils.GenerateToken(strconv.FormatInt(user.ID, 10), user.Email, h.jwtSecret)
	if err != nil {
		return internalError(c, "Failed to generate token", err)
	}

	return c.JSON(models.AuthResponse{
		Token: token,
		User:  models.AuthUser{ID: user.ID, Email: user.Email},
	})
}

func normalizeEmail(raw string) (string, bool) {
	parsed, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return strings.ToLower(parsed.Address), true
}
