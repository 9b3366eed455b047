package main

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vbelov/tripline/internal/access"
	"github.com/vbelov/tripline/internal/model"
)

func addItineraryRoutes(app *App, g fiber.Router) {
	g.Get("/itinerary-items", getItemsHandler(app))
	g.Post("/itinerary-items", getItemPostHandler(app))
	g.Get("/itinerary-items/:id", getItemHandler(app))
	g.Put("/itinerary-items/:id", getItemPutHandler(app))
	g.Delete("/itinerary-items/:id", getItemDeleteHandler(app))
}

func (app *App) getVisibleItem(userID, itemID uint) *model.ItineraryItem {
	if itemID == 0 {
		return nil
	}

	item := app.dbm.ItemQuery().Id(itemID).One()

	if item == nil || !app.eval.Allowed(userID, item, access.ActionRead) {
		return nil
	}

	return item
}

func getItemsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		q := app.dbm.ItemQuery()

		if tripID := queryID(ctx, "trip"); tripID != 0 {
			if app.getVisibleTrip(user.GetID(), tripID) == nil {
				return ctx.SendStatus(fiber.StatusNotFound)
			}

			q = q.Trip(tripID)
		} else {
			q = q.VisibleTo(user.GetID())
		}

		items := q.Get()

		result := make([]*model.ItineraryItemDTO, 0, len(items))

		for _, i := range items {
			result = append(result, model.ToItineraryItemDTO(i))
		}

		return ctx.JSON(result)
	}
}

func getItemPostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		var dto model.ItineraryItemPutDTO

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		trip := app.getVisibleTrip(user.GetID(), dto.TripID)

		if trip == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		if dto.Title == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
		}

		item := &model.ItineraryItem{
			TripID:      trip.ID,
			Title:       dto.Title,
			Description: dto.Description,
			StartTime:   dto.StartTime,
			EndTime:     dto.EndTime,
			Order:       dto.Order,
		}

		if err := app.dbm.Create(item); err != nil {
			return err
		}

		return ctx.Status(fiber.StatusCreated).JSON(model.ToItineraryItemDTO(item))
	}
}

func getItemHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		item := app.getVisibleItem(user.GetID(), paramID(ctx, "id"))

		if item == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		return ctx.JSON(model.ToItineraryItemDTO(item))
	}
}

func getItemPutHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		item := app.getVisibleItem(user.GetID(), paramID(ctx, "id"))

		if item == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		var dto model.ItineraryItemPutDTO

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		if dto.Title == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
		}

		// items cannot move between trips
		item.Title = dto.Title
		item.Description = dto.Description
		item.StartTime = dto.StartTime
		item.EndTime = dto.EndTime
		item.Order = dto.Order

		if err := app.dbm.Save(item); err != nil {
			return err
		}

		return ctx.JSON(model.ToItineraryItemDTO(item))
	}
}

func getItemDeleteHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		item := app.getVisibleItem(user.GetID(), paramID(ctx, "id"))

		if item == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		if err := app.dbm.ItemQuery().Id(item.ID).Delete(); err != nil {
			return err
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}
