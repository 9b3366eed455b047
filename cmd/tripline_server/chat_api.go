package main

import (
	"strconv"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vbelov/tripline/internal/access"
	"github.com/vbelov/tripline/internal/model"
	"github.com/vbelov/tripline/internal/wshandler"
)

func addChatRoutes(app *App, g fiber.Router) {
	g.Get("/messages", getMessagesHandler(app))
	g.Post("/messages", getMessagePostHandler(app))
}

func getMessagesHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		tripID := queryID(ctx, "trip")

		if tripID == 0 {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "trip is required"})
		}

		if app.getVisibleTrip(user.GetID(), tripID) == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		q := app.dbm.MessageQuery().Trip(tripID)

		if afterID := queryID(ctx, "after_id"); afterID != 0 {
			q = q.After(afterID)
		}

		messages := q.Get()

		result := make([]*model.ChatMessageDTO, 0, len(messages))

		for _, m := range messages {
			result = append(result, model.ToChatMessageDTO(m))
		}

		return ctx.JSON(result)
	}
}

func getMessagePostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		var dto model.ChatMessagePostDTO

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		trip := app.getVisibleTrip(user.GetID(), dto.TripID)

		if trip == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		if dto.Content == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "content is required"})
		}

		msg := &model.ChatMessage{
			TripID:   trip.ID,
			SenderID: user.GetID(),
			Sender:   user,
			Content:  dto.Content,
		}

		if err := app.dbm.Create(msg); err != nil {
			return err
		}

		app.hub.Publish(trip.ID, model.NewChatEvent(msg))

		return ctx.Status(fiber.StatusCreated).JSON(model.ToChatMessageDTO(msg))
	}
}

func getChatWsHandler(app *App) fiber.Handler {
	return websocket.New(func(ws *websocket.Conn) {
		tripID, _ := strconv.Atoi(ws.Params("id"))

		user := app.userFromToken(ws.Query("token"))

		var trip *model.Trip

		if tripID > 0 {
			trip = app.dbm.TripQuery().Id(uint(tripID)).One()
		}

		if user == nil || trip == nil || !app.eval.Allowed(user.ID, trip, access.ActionRead) {
			_ = ws.Close()

			return
		}

		name := uuid.NewString()

		h := wshandler.NewHandler(app.logger.With("logger", "ws"), name, ws)

		app.logger.Debug("chat listener connected", "trip", trip.ID, "user", user.Username)
		app.hub.Subscribe(trip.ID, h)
		h.Listen()
		app.logger.Debug("chat listener disconnected", "trip", trip.ID)
		app.hub.Unsubscribe(trip.ID, name)
	})
}
