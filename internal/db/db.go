package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/fixia-ar/fixia/internal/config"
	"github.com/fixia-ar/fixia/internal/logger"
)

var Conn *pgxpool.Pool

// Init connects to Postgres and makes sure the schema pieces this service
// relies on exist.
func Init(cfg *config.Config) error {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return err
	}
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnIdleTime = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	Conn, err = pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return err
	}
	if err = Conn.Ping(ctx); err != nil {
		return err
	}
	logger.L.Info("connected to postgres",
		zap.String("host", cfg.DBHost),
		zap.String("db", cfg.DBName),
	)

	ensureUsersTable()
	ensureCategoriesTable()
	ensureProjectsTable()
	ensureProposalsTable()
	ensureJobsTable()
	ensureConversationsTable()
	ensureNotificationsTable()

	return nil
}

// Close releases the pool.
func Close() {
	if Conn != nil {
		Conn.Close()
	}
}

func ensureUsersTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            user_type TEXT NOT NULL DEFAULT 'client' CHECK (user_type IN ('client','professional','dual')),
            location TEXT,
            specialties TEXT[] NOT NULL DEFAULT '{}',
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
    `)
	if err != nil {
		logger.L.Warn("failed to ensure users table", zap.Error(err))
		return
	}
	// Older deployments predate the specialties column
	_, _ = Conn.Exec(ctx, `ALTER TABLE users ADD COLUMN IF NOT EXISTS specialties TEXT[] NOT NULL DEFAULT '{}'`)
}

func ensureCategoriesTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS categories (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            name TEXT NOT NULL UNIQUE
        );
    `)
	if err != nil {
		logger.L.Warn("failed to ensure categories table", zap.Error(err))
	}
}

func ensureProjectsTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS projects (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            client_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            category_id UUID NULL REFERENCES categories(id) ON DELETE SET NULL,
            budget_min NUMERIC(12,2) NULL,
            budget_max NUMERIC(12,2) NULL,
            deadline DATE NULL,
            location TEXT NULL,
            skills_required TEXT[] NOT NULL DEFAULT '{}',
            status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open','in_progress','completed','cancelled')),
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_projects_status_created ON projects(status, created_at DESC);
        CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id);
    `)
	if err != nil {
		logger.L.Warn("failed to ensure projects table", zap.Error(err))
	}
}

func ensureProposalsTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS proposals (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
            professional_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            message TEXT NOT NULL DEFAULT '',
            quoted_price NUMERIC(12,2) NOT NULL,
            delivery_time_days INTEGER NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','accepted','rejected','withdrawn')),
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            accepted_at TIMESTAMP WITH TIME ZONE NULL,
            rejected_at TIMESTAMP WITH TIME ZONE NULL
        );
        CREATE INDEX IF NOT EXISTS idx_proposals_project ON proposals(project_id);
        CREATE INDEX IF NOT EXISTS idx_proposals_professional ON proposals(professional_id);
    `)
	if err != nil {
		logger.L.Warn("failed to ensure proposals table", zap.Error(err))
	}
}

func ensureJobsTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS jobs (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
            client_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            professional_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            proposal_id UUID NOT NULL REFERENCES proposals(id) ON DELETE CASCADE,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            agreed_price NUMERIC(12,2) NOT NULL,
            currency TEXT NOT NULL DEFAULT 'ARS',
            delivery_date TIMESTAMP WITH TIME ZONE NULL,
            status TEXT NOT NULL DEFAULT 'not_started',
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            CONSTRAINT jobs_proposal_unique UNIQUE (proposal_id)
        );
        CREATE INDEX IF NOT EXISTS idx_jobs_project ON jobs(project_id);
    `)
	if err != nil {
		logger.L.Warn("failed to ensure jobs table", zap.Error(err))
	}
}

func ensureConversationsTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS conversations (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
            client_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            professional_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            last_message_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            CONSTRAINT conversations_project_unique UNIQUE (project_id)
        );
    `)
	if err != nil {
		logger.L.Warn("failed to ensure conversations table", zap.Error(err))
	}
}

func ensureNotificationsTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS notifications (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            type TEXT NOT NULL,
            title TEXT NOT NULL,
            body TEXT,
            action_url TEXT,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            read_at TIMESTAMP WITH TIME ZONE NULL
        );
        CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications(user_id, created_at);
        CREATE INDEX IF NOT EXISTS idx_notifications_user_unread ON notifications(user_id) WHERE read_at IS NULL;
    `)
	if err != nil {
		logger.L.Warn("failed to ensure notifications table", zap.Error(err))
	}
}
