package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/code-payments/reward-center/pkg/bank/accounts"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres accounts.Store
func New(db *sql.DB) accounts.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Get implements accounts.Store.Get
func (s *store) Get(ctx context.Context, address string) (*accounts.Record, error) {
	model, err := dbGet(ctx, s.db, address)
	if err != nil {
		return nil, err
	}
	return fromModel(model), nil
}

// GetMany implements accounts.Store.GetMany
func (s *store) GetMany(ctx context.Context, addresses ...string) ([]*accounts.Record, error) {
	models, err := dbGetMany(ctx, s.db, addresses...)
	if err != nil {
		return nil, err
	}

	res := make([]*accounts.Record, len(models))
	for i, model := range models {
		res[i] = fromModel(model)
	}
	return res, nil
}

// Apply implements accounts.Store.Apply
func (s *store) Apply(ctx context.Context, slot uint64, updates []*accounts.Record, deletes []string) error {
	if err := accounts.ValidateBatch(updates, deletes); err != nil {
		return err
	}

	models := make([]*model, len(updates))
	for i, update := range updates {
		model, err := toModel(update)
		if err != nil {
			return err
		}
		model.Slot = int64(slot)
		models[i] = model
	}

	if err := dbApply(ctx, s.db, models, deletes); err != nil {
		return err
	}

	for _, update := range updates {
		update.Slot = slot
	}
	return nil
}

// Count implements accounts.Store.Count
func (s *store) Count(ctx context.Context) (uint64, error) {
	return dbCount(ctx, s.db)
}
