package main

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vbelov/tripline/internal/access"
	"github.com/vbelov/tripline/internal/model"
)

func addTripRoutes(app *App, g fiber.Router) {
	g.Get("/trips", getTripsHandler(app))
	g.Post("/trips", getTripPostHandler(app))
	g.Get("/trips/:id", getTripHandler(app))
	g.Put("/trips/:id", getTripPutHandler(app))
	g.Delete("/trips/:id", getTripDeleteHandler(app))
	g.Get("/trips/:id/collaborators", getCollaboratorsHandler(app))
	g.Post("/trips/:id/collaborators", getCollaboratorPostHandler(app))
	g.Post("/trips/:id/reorder-itinerary", getReorderHandler(app))
}

// getVisibleTrip hides trips the user has no business knowing about.
// An existing but inaccessible trip and a missing one both come back
// nil, so callers answer 404 for both.
func (app *App) getVisibleTrip(userID, tripID uint) *model.Trip {
	if tripID == 0 {
		return nil
	}

	trip := app.dbm.TripQuery().Id(tripID).Full().One()

	if trip == nil || !app.eval.Allowed(userID, trip, access.ActionRead) {
		return nil
	}

	return trip
}

func (app *App) tripDTO(t *model.Trip) *model.TripDTO {
	return model.ToTripDTO(t, app.dbm.CollaboratorQuery().Trip(t.ID).Full().Get())
}

func getTripsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		trips := app.dbm.TripQuery().VisibleTo(user.GetID()).Full().Get()

		result := make([]*model.TripDTO, 0, len(trips))

		for _, t := range trips {
			result = append(result, app.tripDTO(t))
		}

		return ctx.JSON(result)
	}
}

func getTripPostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		var dto model.TripPutDTO

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		if dto.Name == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}

		trip := &model.Trip{
			OwnerID:     user.GetID(),
			Owner:       user,
			Name:        dto.Name,
			Description: dto.Description,
			StartDate:   dto.StartDate,
			EndDate:     dto.EndDate,
		}

		if err := app.dbm.CreateTrip(trip); err != nil {
			return err
		}

		return ctx.Status(fiber.StatusCreated).JSON(app.tripDTO(trip))
	}
}

func getTripHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		trip := app.getVisibleTrip(user.GetID(), paramID(ctx, "id"))

		if trip == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		return ctx.JSON(app.tripDTO(trip))
	}
}

func getTripPutHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		trip := app.getVisibleTrip(user.GetID(), paramID(ctx, "id"))

		if trip == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		if !app.eval.Allowed(user.GetID(), trip, access.ActionUpdate) {
			return ctx.SendStatus(fiber.StatusForbidden)
		}

		var dto model.TripPutDTO

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		if dto.Name == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}

		trip.Name = dto.Name
		trip.Description = dto.Description
		trip.StartDate = dto.StartDate
		trip.EndDate = dto.EndDate

		if err := app.dbm.Save(trip); err != nil {
			return err
		}

		return ctx.JSON(app.tripDTO(trip))
	}
}

func getTripDeleteHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		trip := app.getVisibleTrip(user.GetID(), paramID(ctx, "id"))

		if trip == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		if !app.eval.Allowed(user.GetID(), trip, access.ActionDelete) {
			return ctx.SendStatus(fiber.StatusForbidden)
		}

		if err := app.dbm.DeleteTrip(trip.ID); err != nil {
			return err
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func getCollaboratorsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		trip := app.getVisibleTrip(user.GetID(), paramID(ctx, "id"))

		if trip == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		collaborators := app.dbm.CollaboratorQuery().Trip(trip.ID).Full().Get()

		result := make([]*model.CollaboratorDTO, 0, len(collaborators))

		for _, c := range collaborators {
			result = append(result, model.ToCollaboratorDTO(c))
		}

		return ctx.JSON(result)
	}
}

func getCollaboratorPostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		trip := app.getVisibleTrip(user.GetID(), paramID(ctx, "id"))

		if trip == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		if !app.eval.Allowed(user.GetID(), trip, access.ActionUpdate) {
			return ctx.SendStatus(fiber.StatusForbidden)
		}

		var dto model.CollaboratorPutDTO

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		if dto.Role == "" {
			dto.Role = model.ROLE_VIEWER
		}

		if !model.ValidRole(dto.Role) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid role"})
		}

		if dto.UserID == trip.OwnerID {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "owner is already a member"})
		}

		if app.dbm.UserQuery().Id(dto.UserID).One() == nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown user"})
		}

		if err := app.dbm.UpsertCollaborator(trip.ID, dto.UserID, dto.Role); err != nil {
			return err
		}

		c := app.dbm.CollaboratorQuery().Trip(trip.ID).User(dto.UserID).Full().One()

		return ctx.Status(fiber.StatusCreated).JSON(model.ToCollaboratorDTO(c))
	}
}

func getReorderHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		trip := app.getVisibleTrip(user.GetID(), paramID(ctx, "id"))

		if trip == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		var dto struct {
			Order []uint `json:"order"`
		}

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		if err := app.dbm.ReorderItinerary(trip.ID, dto.Order); err != nil {
			return err
		}

		return ctx.JSON(fiber.Map{"status": "ok"})
	}
}
