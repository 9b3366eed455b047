package main

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vbelov/tripline/internal/access"
	"github.com/vbelov/tripline/internal/database"
	"github.com/vbelov/tripline/internal/model"
)

func addPollRoutes(app *App, g fiber.Router) {
	g.Get("/polls", getPollsHandler(app))
	g.Post("/polls", getPollPostHandler(app))
	g.Get("/polls/:id", getPollHandler(app))
	g.Put("/polls/:id", getPollPutHandler(app))
	g.Delete("/polls/:id", getPollDeleteHandler(app))
	g.Post("/polls/:id/vote", getVoteHandler(app))
}

func (app *App) getVisiblePoll(userID, pollID uint) *model.Poll {
	if pollID == 0 {
		return nil
	}

	poll := app.dbm.PollQuery().Id(pollID).Full().One()

	if poll == nil || !app.eval.Allowed(userID, poll, access.ActionRead) {
		return nil
	}

	return poll
}

func (app *App) pollDTO(p *model.Poll) *model.PollDTO {
	return model.ToPollDTO(p, app.dbm.VoteCounts(p.ID))
}

func getPollsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		q := app.dbm.PollQuery().Full()

		if tripID := queryID(ctx, "trip"); tripID != 0 {
			if app.getVisibleTrip(user.GetID(), tripID) == nil {
				return ctx.SendStatus(fiber.StatusNotFound)
			}

			q = q.Trip(tripID)
		} else {
			q = q.VisibleTo(user.GetID())
		}

		polls := q.Get()

		result := make([]*model.PollDTO, 0, len(polls))

		for _, p := range polls {
			result = append(result, app.pollDTO(p))
		}

		return ctx.JSON(result)
	}
}

func getPollPostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		var dto model.PollPutDTO

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		trip := app.getVisibleTrip(user.GetID(), dto.TripID)

		if trip == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		if dto.Question == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "question is required"})
		}

		poll := &model.Poll{
			TripID:      trip.ID,
			Question:    dto.Question,
			CreatedByID: user.GetID(),
			CreatedBy:   user,
		}

		for _, o := range dto.Options {
			if o == nil || o.Text == "" {
				return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "option text is required"})
			}

			poll.Options = append(poll.Options, &model.PollOption{Text: o.Text})
		}

		if err := app.dbm.CreatePoll(poll); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		return ctx.Status(fiber.StatusCreated).JSON(app.pollDTO(poll))
	}
}

func getPollHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		poll := app.getVisiblePoll(user.GetID(), paramID(ctx, "id"))

		if poll == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		return ctx.JSON(app.pollDTO(poll))
	}
}

func getPollPutHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		poll := app.getVisiblePoll(user.GetID(), paramID(ctx, "id"))

		if poll == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		var dto model.PollPutDTO

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		if dto.Question != "" {
			poll.Question = dto.Question

			if err := app.dbm.PollQuery().Id(poll.ID).Update(map[string]any{"question": dto.Question}); err != nil {
				return err
			}
		}

		// a new option set wipes existing votes along with the options
		if dto.Options != nil {
			texts := make([]string, 0, len(dto.Options))

			for _, o := range dto.Options {
				if o == nil || o.Text == "" {
					return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "option text is required"})
				}

				texts = append(texts, o.Text)
			}

			if err := app.dbm.ReplacePollOptions(poll.ID, texts); err != nil {
				return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
		}

		return ctx.JSON(app.pollDTO(app.dbm.PollQuery().Id(poll.ID).Full().One()))
	}
}

func getPollDeleteHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		poll := app.getVisiblePoll(user.GetID(), paramID(ctx, "id"))

		if poll == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		if err := app.dbm.DeletePoll(poll.ID); err != nil {
			return err
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func getVoteHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)

		poll := app.getVisiblePoll(user.GetID(), paramID(ctx, "id"))

		if poll == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		var dto model.VotePostDTO

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		if err := app.dbm.CastVote(poll.ID, user.GetID(), dto.OptionID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return ctx.SendStatus(fiber.StatusNotFound)
			}

			return err
		}

		return ctx.JSON(fiber.Map{"status": "ok"})
	}
}
