package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"loyalty-platform-backend/internal/features/user/models"
	"loyalty-platform-backend/internal/features/user/repository"
)

const uniqueViolation = "23505"

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.UserRepository {
	return &postgresRepository{db: db}
}

const userColumns = `id, username, password, telegram_id, points::text, referral_code, role, created_at`

func (r *postgresRepository) scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Password, &user.TelegramID,
		&user.Points, &user.ReferralCode, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create создает нового пользователя
func (r *postgresRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password, points, referral_code, role)
		VALUES ($1, $2, $3::numeric, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Password, user.Points, user.ReferralCode, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return repository.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID получает пользователя по ID
func (r *postgresRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByUsername получает пользователя по username
func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, userColumns)

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// GetByTelegramID получает пользователя по привязанному Telegram ID
func (r *postgresRepository) GetByTelegramID(ctx context.Context, telegramID string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE telegram_id = $1`, userColumns)

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, telegramID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by telegram id: %w", err)
	}

	return user, nil
}

// GetByReferralCode получает пользователя по реферальному коду
func (r *postgresRepository) GetByReferralCode(ctx context.Context, code string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE referral_code = $1`, userColumns)

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by referral code: %w", err)
	}

	return user, nil
}

// List возвращает всех пользователей
func (r *postgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY id`, userColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// UpdatePoints заменяет баланс пользователя
func (r *postgresRepository) UpdatePoints(ctx context.Context, id int, points string) (*models.User, error) {
	query := fmt.Sprintf(`
		UPDATE users SET points = $2::numeric
		WHERE id = $1
		RETURNING %s`, userColumns)

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, id, points))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update points: %w", err)
	}

	return user, nil
}

// UpdateTelegramID привязывает Telegram ID к пользователю
func (r *postgresRepository) UpdateTelegramID(ctx context.Context, id int, telegramID string) (*models.User, error) {
	query := fmt.Sprintf(`
		UPDATE users SET telegram_id = $2
		WHERE id = $1
		RETURNING %s`, userColumns)

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, id, telegramID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update telegram id: %w", err)
	}

	return user, nil
}
