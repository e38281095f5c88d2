package user

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const userCols = `id, name, age, gender, blood_group, contact, email,
	password_hash, pin, emergency_contact, profile_image, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var ec []byte
	err := row.Scan(&u.ID, &u.Name, &u.Age, &u.Gender, &u.BloodGroup, &u.Contact, &u.Email,
		&u.PasswordHash, &u.PIN, &ec, &u.ProfileImage, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(ec) > 0 {
		u.EmergencyContact = &EmergencyContact{}
		if err := json.Unmarshal(ec, u.EmergencyContact); err != nil {
			return nil, err
		}
	}
	return &u, nil
}

func (r *repoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()

	var ec []byte
	if u.EmergencyContact != nil {
		var err error
		ec, err = json.Marshal(u.EmergencyContact)
		if err != nil {
			return err
		}
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, name, age, gender, blood_group, contact, email,
			password_hash, pin, emergency_contact, profile_image)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at, updated_at`,
		u.ID, u.Name, u.Age, u.Gender, u.BloodGroup, u.Contact, u.Email,
		u.PasswordHash, u.PIN, ec, u.ProfileImage).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id))
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE email = $1`, email))
}
