package credstore

import (
	"context"
	"errors"

	"github.com/arimasna/pelajarin/internal/auth/entity"
	"github.com/arimasna/pelajarin/internal/pkg/goerror"
	"github.com/arimasna/pelajarin/internal/pkg/instrument"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Postgres is a Store backed by a pgx connection pool.
type Postgres struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

// NewPostgres constructs a postgres-backed store.
func NewPostgres(conn *pgxpool.Pool, ins instrument.Instrumentation) *Postgres {
	return &Postgres{conn: conn, ins: ins}
}

func (s *Postgres) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return goerror.ErrConflict
	}

	return err
}

func (s *Postgres) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.outbound.credstore").Start(ctx, name)
}

func (s *Postgres) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

const createQuery = `
INSERT INTO credentials (id, email, phone, full_name, password, role, language, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Create stores a new credential.
func (s *Postgres) Create(ctx context.Context, cred entity.Credential) (err error) {
	ctx, span := s.startSpan(ctx, "Create")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createQuery,
		cred.ID,
		cred.Email,
		cred.Phone,
		cred.FullName,
		cred.Password,
		int16(cred.Role),
		cred.Language,
		cred.CreatedAt,
	)

	err = s.mapError(err)
	return err
}

const getByEmailQuery = `
SELECT id, email, phone, full_name, password, role, language, created_at
FROM credentials
WHERE email = $1`

// GetByEmail returns the credential for an email.
func (s *Postgres) GetByEmail(ctx context.Context, email string) (_ *entity.Credential, err error) {
	ctx, span := s.startSpan(ctx, "GetByEmail")
	defer func() { s.endSpan(span, err) }()

	return s.scanOne(s.conn.QueryRow(ctx, getByEmailQuery, email))
}

const getByIDQuery = `
SELECT id, email, phone, full_name, password, role, language, created_at
FROM credentials
WHERE id = $1`

// GetByID returns the credential for an account id.
func (s *Postgres) GetByID(ctx context.Context, id int64) (_ *entity.Credential, err error) {
	ctx, span := s.startSpan(ctx, "GetByID")
	defer func() { s.endSpan(span, err) }()

	return s.scanOne(s.conn.QueryRow(ctx, getByIDQuery, id))
}

func (s *Postgres) scanOne(row pgx.Row) (*entity.Credential, error) {
	var cred entity.Credential
	var role int16

	err := row.Scan(
		&cred.ID,
		&cred.Email,
		&cred.Phone,
		&cred.FullName,
		&cred.Password,
		&role,
		&cred.Language,
		&cred.CreatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	cred.Role = entity.Role(role)
	return &cred, nil
}
