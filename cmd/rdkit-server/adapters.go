package main

import (
	"context"

	"github.com/turtacn/rdkit-go/internal/bootstrap"
	"github.com/turtacn/rdkit-go/internal/interfaces/http/handlers"
)

// readinessCheckers adapts the loaded infrastructure to HealthChecker.
func readinessCheckers(infra *bootstrap.Infrastructure) []handlers.HealthChecker {
	checkers := []handlers.HealthChecker{
		handlers.CheckerFunc{Component: "rdkit", Fn: func(context.Context) error {
			_, err := infra.Handle.Version()
			return err
		}},
	}
	if infra.Redis != nil {
		checkers = append(checkers, handlers.CheckerFunc{Component: "redis", Fn: infra.Redis.Ping})
	}
	return checkers
}

//Personal.AI order the ending
