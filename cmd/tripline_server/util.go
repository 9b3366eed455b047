package main

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func paramID(ctx *fiber.Ctx, name string) uint {
	n, err := ctx.ParamsInt(name)

	if err != nil || n <= 0 {
		return 0
	}

	return uint(n)
}

func queryID(ctx *fiber.Ctx, name string) uint {
	n, err := strconv.Atoi(ctx.Query(name))

	if err != nil || n <= 0 {
		return 0
	}

	return uint(n)
}
