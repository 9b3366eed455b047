package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vbelov/tripline/internal/database"
	"github.com/vbelov/tripline/internal/model"
	"github.com/vbelov/tripline/internal/notify"
)

func addInviteRoutes(app *App, g fiber.Router) {
	g.Get("/invites", getInvitesHandler(app))
	g.Post("/invites", getInvitePostHandler(app))
}

func newInviteToken() (string, error) {
	b := make([]byte, 16)

	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

func getInvitesHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		tripID := queryID(ctx, "trip")

		if tripID == 0 {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "trip is required"})
		}

		if app.getVisibleTrip(user.GetID(), tripID) == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		invites := app.dbm.InviteQuery().Trip(tripID).Get()

		result := make([]*model.InviteDTO, 0, len(invites))

		for _, i := range invites {
			result = append(result, model.ToInviteDTO(i))
		}

		return ctx.JSON(result)
	}
}

func getInvitePostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		var dto model.InvitePostDTO

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		trip := app.getVisibleTrip(user.GetID(), dto.TripID)

		if trip == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		if dto.Email == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email is required"})
		}

		token, err := newInviteToken()
		if err != nil {
			return err
		}

		invite := &model.TripInvite{
			TripID: trip.ID,
			Email:  dto.Email,
			Token:  token,
		}

		if err := app.dbm.Create(invite); err != nil {
			return err
		}

		app.notifier.Enqueue(notify.InviteMail(invite.Email, trip.Name, invite.Token))

		return ctx.Status(fiber.StatusCreated).JSON(model.ToInviteDTO(invite))
	}
}

func getInviteAcceptHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := ctx.Query("token")

		if token == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "token is required"})
		}

		invite, err := app.dbm.AcceptInvite(token, CurrentUser(ctx).GetID())

		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return ctx.SendStatus(fiber.StatusNotFound)
			}

			return err
		}

		return ctx.JSON(fiber.Map{"detail": "Invite accepted", "trip": invite.TripID})
	}
}
