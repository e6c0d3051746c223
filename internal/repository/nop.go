package repository

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/entity"
)

// nopGame is used when no redis is configured.
type nopGame struct{}

func NewNopGameRepository() GameRepository {
	return nopGame{}
}

func (nopGame) CreateOrUpdate(context.Context, *entity.Game) error { return nil }

func (nopGame) GetByID(context.Context, string) (*entity.Game, error) {
	return &entity.Game{}, ErrGameNotFound
}

func (nopGame) DeleteByID(context.Context, string) error { return nil }

func (nopGame) Publish(context.Context, *entity.Event) error { return nil }
