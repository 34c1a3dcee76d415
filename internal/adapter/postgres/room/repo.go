// Package room implements the room store on PostgreSQL. Answers and results
// live in their own tables keyed by room id.
package room

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/icebreaker-backend/internal/adapter/postgres"
	"github.com/heartmarshall/icebreaker-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repo provides room persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	tx   txManager
}

func New(pool *pgxpool.Pool, tx txManager) *Repo {
	return &Repo{pool: pool, tx: tx}
}

// ---------------------------------------------------------------------------
// Rooms
// ---------------------------------------------------------------------------

func (r *Repo) CreateRoom(ctx context.Context, room domain.Room) error {
	questions, err := json.Marshal(toQuestionRows(room.Questions))
	if err != nil {
		return fmt.Errorf("room %s marshal questions: %w", room.ID, err)
	}

	query, args, err := psql.Insert("rooms").
		Columns("id", "capacity", "questions", "status", "created_at").
		Values(room.ID, room.Capacity, questions, string(room.Status), room.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert room: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "room", room.ID)
	}
	return nil
}

func (r *Repo) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	query, args, err := psql.Select("id", "capacity", "questions", "status", "created_at").
		From("rooms").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select room: %w", err)
	}

	var (
		room      domain.Room
		questions []byte
		status    string
	)
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&room.ID, &room.Capacity, &questions, &status, &room.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "room", id)
	}

	var rows []questionRow
	if err := json.Unmarshal(questions, &rows); err != nil {
		return nil, fmt.Errorf("room %s unmarshal questions: %w", id, err)
	}
	room.Questions = toDomainQuestions(rows)
	room.Status = domain.RoomStatus(status)
	room.CreatedAt = room.CreatedAt.UTC()
	return &room, nil
}

// ---------------------------------------------------------------------------
// Answers
// ---------------------------------------------------------------------------

// AppendAnswer locks the room row, so concurrent appends to one room are
// serialized and the capacity check holds. It returns the count after the
// append.
func (r *Repo) AppendAnswer(ctx context.Context, roomID string, answer domain.Answer) (int, error) {
	qa, err := json.Marshal(toAnswerRows(answer.Answers))
	if err != nil {
		return 0, fmt.Errorf("answer for room %s marshal: %w", roomID, err)
	}

	var count int
	err = r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		lockQuery, lockArgs, err := psql.Select("capacity").
			From("rooms").
			Where(sq.Eq{"id": roomID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("build lock room: %w", err)
		}
		var capacity int
		if err := q.QueryRow(ctx, lockQuery, lockArgs...).Scan(&capacity); err != nil {
			return postgres.MapError(err, "room", roomID)
		}

		current, err := r.countAnswers(ctx, q, roomID)
		if err != nil {
			return err
		}
		if current >= capacity {
			count = current
			return domain.ErrRoomFull
		}

		insertQuery, insertArgs, err := psql.Insert("answers").
			Columns("room_id", "position", "name", "birthdate", "age", "hometown",
				"affiliation", "aspiration", "answers", "submitted_at").
			Values(roomID, current+1, answer.Name, answer.Birthdate, answer.Age, answer.Hometown,
				answer.Affiliation, answer.Aspiration, qa, answer.SubmittedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert answer: %w", err)
		}
		if _, err := q.Exec(ctx, insertQuery, insertArgs...); err != nil {
			return postgres.MapError(err, "answer for room", roomID)
		}
		count = current + 1
		return nil
	})
	if err != nil {
		return count, err
	}
	return count, nil
}

func (r *Repo) ListAnswers(ctx context.Context, roomID string) ([]domain.Answer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := r.ensureRoom(ctx, q, roomID); err != nil {
		return nil, err
	}

	query, args, err := psql.Select("name", "birthdate", "age", "hometown", "affiliation",
		"aspiration", "answers", "submitted_at").
		From("answers").
		Where(sq.Eq{"room_id": roomID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select answers: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "answers for room", roomID)
	}

	answers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Answer, error) {
		var (
			a  domain.Answer
			qa []byte
		)
		if err := row.Scan(&a.Name, &a.Birthdate, &a.Age, &a.Hometown, &a.Affiliation,
			&a.Aspiration, &qa, &a.SubmittedAt); err != nil {
			return domain.Answer{}, err
		}
		var qaRows []answerRow
		if err := json.Unmarshal(qa, &qaRows); err != nil {
			return domain.Answer{}, fmt.Errorf("unmarshal answers: %w", err)
		}
		a.Answers = toDomainAnswers(qaRows)
		a.SubmittedAt = a.SubmittedAt.UTC()
		return a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("answers for room %s: %w", roomID, err)
	}
	return answers, nil
}

func (r *Repo) CountAnswers(ctx context.Context, roomID string) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := r.ensureRoom(ctx, q, roomID); err != nil {
		return 0, err
	}
	return r.countAnswers(ctx, q, roomID)
}

func (r *Repo) countAnswers(ctx context.Context, q postgres.Querier, roomID string) (int, error) {
	query, args, err := psql.Select("count(*)").
		From("answers").
		Where(sq.Eq{"room_id": roomID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count answers: %w", err)
	}
	var n int
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "answers for room", roomID)
	}
	return n, nil
}

func (r *Repo) ensureRoom(ctx context.Context, q postgres.Querier, roomID string) error {
	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From("rooms").
		Where(sq.Eq{"id": roomID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return fmt.Errorf("build room exists: %w", err)
	}
	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return postgres.MapError(err, "room", roomID)
	}
	if !exists {
		return fmt.Errorf("room %s: %w", roomID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Results
// ---------------------------------------------------------------------------

// SaveResult inserts the room's result once. A second write is a no-op at the
// SQL level and is reported as ErrAlreadyExists.
func (r *Repo) SaveResult(ctx context.Context, roomID string, result domain.Result) error {
	assignments, err := json.Marshal(toAssignmentRows(result.Assignments))
	if err != nil {
		return fmt.Errorf("result for room %s marshal: %w", roomID, err)
	}

	query, args, err := psql.Insert("results").
		Columns("room_id", "source", "error_code", "error_message", "assignments", "generated_at").
		Values(roomID, string(result.Source), result.ErrorCode, result.ErrorMessage, assignments, result.GeneratedAt).
		Suffix("ON CONFLICT (room_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert result: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "result for room", roomID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("result for room %s: %w", roomID, domain.ErrAlreadyExists)
	}
	return nil
}

func (r *Repo) GetResult(ctx context.Context, roomID string) (*domain.Result, error) {
	query, args, err := psql.Select("source", "error_code", "error_message", "assignments", "generated_at").
		From("results").
		Where(sq.Eq{"room_id": roomID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select result: %w", err)
	}

	var (
		res         domain.Result
		source      string
		assignments []byte
		generatedAt time.Time
	)
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&source, &res.ErrorCode, &res.ErrorMessage, &assignments, &generatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "result for room", roomID)
	}

	var rows []assignmentRow
	if err := json.Unmarshal(assignments, &rows); err != nil {
		return nil, fmt.Errorf("result for room %s unmarshal: %w", roomID, err)
	}
	res.Assignments = toDomainAssignments(rows)
	res.Source = domain.AssignmentSource(source)
	res.GeneratedAt = generatedAt.UTC()
	return &res, nil
}

func (r *Repo) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

func (r *Repo) Close(context.Context) error {
	r.pool.Close()
	return nil
}
