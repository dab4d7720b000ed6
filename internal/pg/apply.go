package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// SQLSTATE duplicate_object: тип уже создан (например, миграциями prisma)
const codeDuplicateObject = "42710"

// ApplyDDL выполняет map[name]sql по именам в алфавитном порядке. Возвращает число применённых.
func ApplyDDL(ctx context.Context, db *sql.DB, ddl map[string]string, log *zap.Logger) (int, error) {
	if log == nil {
		log = zap.NewNop()
	}
	keys := make([]string, 0, len(ddl))
	for k := range ddl {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	applied := 0
	for _, k := range keys {
		sqlText := strings.TrimSpace(ddl[k])
		if sqlText == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, sqlText); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == codeDuplicateObject {
				log.Debug("DDL skipped (already exists)", zap.String("object", k), zap.String("message", pgErr.Message))
				continue
			}
			return applied, fmt.Errorf("DDL apply failed for %s: %w", k, err)
		}
		log.Info("DDL applied", zap.String("object", k))
		applied++
	}
	return applied, nil
}
