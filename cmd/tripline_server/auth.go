package main

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/vbelov/tripline/internal/model"
)

const userKey = "user"

type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

func (app *App) signToken(userID uint, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(app.config.TokenKey())
}

func (app *App) generateTokens(userID uint) (string, string, error) {
	access, err := app.signToken(userID, app.config.AccessTokenTTL())
	if err != nil {
		return "", "", err
	}

	refresh, err := app.signToken(userID, app.config.RefreshTokenTTL())
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

func (app *App) parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}

		return app.config.TokenKey(), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// userFromToken resolves a bearer token to a stored user, nil if the
// token is invalid or the user is gone.
func (app *App) userFromToken(tokenString string) *model.User {
	claims, err := app.parseToken(tokenString)
	if err != nil {
		return nil
	}

	return app.dbm.UserQuery().Id(claims.UserID).One()
}

func bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)

	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}

	return ""
}

func (app *App) Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := app.userFromToken(bearerToken(c))

		if user == nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		c.Locals(userKey, user)

		return c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present but lets
// anonymous requests through. Used by the invite acceptance endpoint.
func (app *App) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user := app.userFromToken(bearerToken(c)); user != nil {
			c.Locals(userKey, user)
		}

		return c.Next()
	}
}

func CurrentUser(c *fiber.Ctx) *model.User {
	if user, ok := c.Locals(userKey).(*model.User); ok {
		return user
	}

	return nil
}

func Username(c *fiber.Ctx) string {
	return CurrentUser(c).GetUsername()
}

func getSignupHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var dto struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		if dto.Username == "" || dto.Password == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username and password are required"})
		}

		if app.dbm.UserQuery().Username(dto.Username).Count() > 0 {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username is taken"})
		}

		user := &model.User{Username: dto.Username, Email: dto.Email}

		if err := user.SetPassword(dto.Password); err != nil {
			return err
		}

		if err := app.dbm.Create(user); err != nil {
			return err
		}

		return ctx.Status(fiber.StatusCreated).JSON(user.DTO())
	}
}

func getLoginHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var dto struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		user := app.dbm.UserQuery().Username(dto.Username).One()

		if user == nil || !user.CheckPassword(dto.Password) {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}

		access, refresh, err := app.generateTokens(user.ID)
		if err != nil {
			return err
		}

		return ctx.JSON(fiber.Map{"access": access, "refresh": refresh})
	}
}

func getRefreshHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var dto struct {
			Refresh string `json:"refresh"`
		}

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		user := app.userFromToken(dto.Refresh)

		if user == nil {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}

		access, refresh, err := app.generateTokens(user.ID)
		if err != nil {
			return err
		}

		return ctx.JSON(fiber.Map{"access": access, "refresh": refresh})
	}
}
