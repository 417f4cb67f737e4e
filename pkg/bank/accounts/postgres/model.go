package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/code-payments/reward-center/pkg/bank/accounts"
	pgutil "github.com/code-payments/reward-center/pkg/database/postgres"
)

const (
	tableName = "bank__core_account"
)

type model struct {
	Address    string `db:"address"`
	Lamports   int64  `db:"lamports"`
	Owner      string `db:"owner"`
	Executable bool   `db:"executable"`
	Data       []byte `db:"data"`

	Slot          int64     `db:"slot"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}

func toModel(obj *accounts.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	data := obj.Data
	if data == nil {
		data = []byte{}
	}

	return &model{
		Address:    obj.Address,
		Lamports:   int64(obj.Lamports),
		Owner:      obj.Owner,
		Executable: obj.Executable,
		Data:       data,

		Slot: int64(obj.Slot),
	}, nil
}

func fromModel(obj *model) *accounts.Record {
	return &accounts.Record{
		Address:    obj.Address,
		Lamports:   uint64(obj.Lamports),
		Owner:      obj.Owner,
		Executable: obj.Executable,
		Data:       append([]byte{}, obj.Data...),

		Slot: uint64(obj.Slot),
	}
}

func (m *model) dbUpsert(ctx context.Context, tx *sqlx.Tx) error {
	query := `INSERT INTO ` + tableName + `
		(address, lamports, owner, executable, data, slot, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)

		ON CONFLICT(address)
		DO UPDATE
			SET lamports = $2, owner = $3, executable = $4, data = $5, slot = $6, last_updated_at = $7
			WHERE ` + tableName + `.address = $1`

	m.LastUpdatedAt = time.Now()

	_, err := tx.ExecContext(
		ctx,
		query,
		m.Address,
		m.Lamports,
		m.Owner,
		m.Executable,
		m.Data,
		m.Slot,
		m.LastUpdatedAt,
	)
	return err
}

func dbDelete(ctx context.Context, tx *sqlx.Tx, address string) error {
	query := `DELETE FROM ` + tableName + `
		WHERE address = $1
	`

	_, err := tx.ExecContext(ctx, query, address)
	return err
}

func dbGet(ctx context.Context, db *sqlx.DB, address string) (*model, error) {
	var res model

	query := `SELECT address, lamports, owner, executable, data, slot, last_updated_at FROM ` + tableName + `
		WHERE address = $1
	`

	err := db.GetContext(ctx, &res, query, address)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, accounts.ErrNotFound)
	}
	return &res, nil
}

func dbGetMany(ctx context.Context, db *sqlx.DB, addresses ...string) ([]*model, error) {
	res := []*model{}
	if len(addresses) == 0 {
		return res, nil
	}

	query, args, err := sqlx.In(`SELECT address, lamports, owner, executable, data, slot, last_updated_at FROM `+tableName+`
		WHERE address IN (?)
	`, addresses)
	if err != nil {
		return nil, err
	}

	err = db.SelectContext(ctx, &res, db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func dbApply(ctx context.Context, db *sqlx.DB, updates []*model, deletes []string) error {
	return pgutil.ExecuteRetryable(func() error {
		return pgutil.ExecuteInTx(ctx, db, sql.LevelRepeatableRead, func(tx *sqlx.Tx) error {
			for _, update := range updates {
				if err := update.dbUpsert(ctx, tx); err != nil {
					return err
				}
			}

			for _, address := range deletes {
				if err := dbDelete(ctx, tx, address); err != nil {
					return err
				}
			}

			return nil
		})
	})
}

func dbCount(ctx context.Context, db *sqlx.DB) (uint64, error) {
	var res uint64

	query := `SELECT COUNT(*) FROM ` + tableName

	err := db.GetContext(ctx, &res, query)
	if err != nil {
		return 0, err
	}
	return res, nil
}
