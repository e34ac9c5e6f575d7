package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/tx"
)

// Store is the persistence gateway used by the roast service. Every error it
// returns wraps model.ErrDatabase.
type Store struct {
	TX     *tx.Manager
	Users  *UserRepo
	Roasts *RoastRepo
	Outbox *OutboxRepo
	// EmitEvents writes a ROAST_CREATED outbox row with every roast.
	EmitEvents bool
}

func NewStore(db *sql.DB, emitEvents bool) *Store {
	return &Store{
		TX:         &tx.Manager{DB: db},
		Users:      &UserRepo{DB: db},
		Roasts:     &RoastRepo{DB: db},
		Outbox:     &OutboxRepo{},
		EmitEvents: emitEvents,
	}
}

func dbErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", model.ErrDatabase, op, err)
}

func (s *Store) GetOrCreateUser(ctx context.Context, username string) (*model.User, error) {
	var u *model.User
	err := s.TX.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		u, err = s.Users.GetOrCreate(ctx, tx, username)
		return err
	})
	if err != nil {
		return nil, dbErr("get or create user", err)
	}
	return u, nil
}

// CreateRoast appends a roast for user, with its outbox event in the same transaction.
func (s *Store) CreateRoast(ctx context.Context, user *model.User, text string, isMock bool) (*model.Roast, error) {
	var rs *model.Roast
	err := s.TX.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		rs, err = s.Roasts.Insert(ctx, tx, user.ID, text)
		if err != nil {
			return err
		}
		if !s.EmitEvents {
			return nil
		}

		payload, err := json.Marshal(model.RoastCreatedEvent{
			RoastID:    rs.ID,
			UserID:     user.ID,
			Username:   user.Username,
			Text:       text,
			IsMockData: isMock,
			CreatedAt:  rs.CreatedAt,
		})
		if err != nil {
			return err
		}
		return s.Outbox.Insert(ctx, tx, model.AggregateRoast, rs.ID, model.EventRoastCreate, payload)
	})
	if err != nil {
		return nil, dbErr("create roast", err)
	}
	return rs, nil
}

func (s *Store) CountRoasts(ctx context.Context, userID string) (int64, error) {
	n, err := s.Roasts.CountByUser(ctx, userID)
	if err != nil {
		return 0, dbErr("count roasts", err)
	}
	return n, nil
}

func (s *Store) RecentRoasts(ctx context.Context, userID string, limit int) ([]model.Roast, error) {
	out, err := s.Roasts.RecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, dbErr("recent roasts", err)
	}
	return out, nil
}

func (s *Store) Totals(ctx context.Context) (model.Totals, error) {
	users, err := s.Users.Count(ctx)
	if err != nil {
		return model.Totals{}, dbErr("count users", err)
	}
	roasts, err := s.Roasts.Count(ctx)
	if err != nil {
		return model.Totals{}, dbErr("count roasts", err)
	}
	return model.Totals{TotalUsers: users, TotalRoasts: roasts}, nil
}
