package archive

import (
	"context"
	"fmt"

	"dungeon-master/internal/logger"
	"dungeon-master/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	recordResultQuery = `
		INSERT INTO game_results (
			id, session_id, variant, category, secret,
			questions_asked, question_limit, won, started_at, ended_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (session_id) DO NOTHING
	`
	statsQuery = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE won),
			COALESCE(AVG(questions_asked) FILTER (WHERE won), 0)
		FROM game_results
		WHERE variant = $1
	`
)

// PostgresRepository keeps finished games in PostgreSQL.
type PostgresRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresRepository connects to dsn, checks the connection and migrates the schema.
func NewPostgresRepository(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresRepository, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("error parsing archive DSN: %w", err)
	}
	poolCfg.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("error creating archive pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error connecting to archive: %w", err)
	}

	repo := NewPostgresRepositoryFromPool(pool, logger)
	if err := Migrate(pool, repo.logger); err != nil {
		pool.Close()
		return nil, err
	}
	return repo, nil
}

// NewPostgresRepositoryFromPool wraps an existing pool. The schema must already be migrated.
func NewPostgresRepositoryFromPool(pool *pgxpool.Pool, log *zap.Logger) *PostgresRepository {
	return &PostgresRepository{
		pool:   pool,
		logger: logger.Named(log, "PgArchiveRepo"),
	}
}

// Record stores a finished game.
func (r *PostgresRepository) Record(ctx context.Context, result Result) error {
	tag, err := r.pool.Exec(ctx, recordResultQuery,
		result.ID,
		result.SessionID,
		string(result.Variant),
		result.Category,
		result.Secret,
		result.QuestionsAsked,
		result.QuestionLimit,
		result.Won,
		result.StartedAt,
		result.EndedAt,
	)
	if err != nil {
		r.logger.Error("Error recording game result",
			zap.String("session_id", result.SessionID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("error recording game result %s: %w", result.SessionID, err)
	}

	r.logger.Debug("Game result recorded",
		zap.String("session_id", result.SessionID.String()),
		zap.Bool("won", result.Won),
		zap.Int64("rows_affected", tag.RowsAffected()),
	)
	return nil
}

// Stats aggregates the results of one variant.
func (r *PostgresRepository) Stats(ctx context.Context, variant models.Variant) (Stats, error) {
	var (
		stats Stats
		avg   float64
	)
	err := r.pool.QueryRow(ctx, statsQuery, string(variant)).Scan(&stats.Played, &stats.Won, &avg)
	if err != nil {
		r.logger.Error("Error reading game stats", zap.String("variant", string(variant)), zap.Error(err))
		return Stats{}, fmt.Errorf("error reading game stats: %w", err)
	}
	stats.AverageQuestions = avg
	return stats, nil
}

func (r *PostgresRepository) Close() {
	r.pool.Close()
}

var _ Repository = (*PostgresRepository)(nil)
