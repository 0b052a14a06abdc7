package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/habitboard/habitboard/internal/app"
	"github.com/habitboard/habitboard/internal/config"
	"github.com/habitboard/habitboard/internal/logger"
	"github.com/habitboard/habitboard/internal/model"
)

func loadConfig() *config.Config {
	cfg := config.Load()
	logger.Init(logger.Options{Development: true, LogFile: cfg.LogFile, Output: os.Stderr})
	return cfg
}

func openApp(ctx context.Context) (*app.App, error) {
	return app.New(ctx, loadConfig())
}

func userByEmail(a *app.App, email string) (*model.User, error) {
	if email == "" {
		return nil, fmt.Errorf("--email is required")
	}
	user, err := a.UserService.ByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", email, err)
	}
	return user, nil
}
