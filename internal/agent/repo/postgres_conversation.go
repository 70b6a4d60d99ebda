package repo

import (
	"context"
	"database/sql"

	"github.com/cloudwego/eino/schema"

	"github.com/Chative-flight-booking/server/internal/agent/model"
	errx "github.com/Chative-flight-booking/server/internal/core/error"
	logx "github.com/Chative-flight-booking/server/pkg/logger"
)

const conversationSchema = `
CREATE TABLE IF NOT EXISTS conversation_messages (
	id         BIGSERIAL PRIMARY KEY,
	user_id    TEXT NOT NULL,
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS conversation_messages_user_id_idx ON conversation_messages (user_id, id);
`

// PostgresConversationRepository stores one row per message. Order is the
// serial id, so messages written in the same instant stay in insertion order.
type PostgresConversationRepository struct {
	db *sql.DB
}

func NewPostgresConversationRepository(db *sql.DB) *PostgresConversationRepository {
	return &PostgresConversationRepository{db: db}
}

func (r *PostgresConversationRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, conversationSchema); err != nil {
		logx.Error().Err(err).Msg("failed to create conversation schema")
		return errx.WrapPostgres(err)
	}
	return nil
}

func (r *PostgresConversationRepository) AddMessage(ctx context.Context, userID string, message *schema.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO conversation_messages (user_id, role, content)
		VALUES ($1, $2, $3)
	`, userID, string(message.Role), message.Content)
	if err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("failed to insert message")
		return errx.WrapPostgres(err)
	}
	return nil
}

func (r *PostgresConversationRepository) LoadHistory(ctx context.Context, userID string) (*model.ConversationHistory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT role, content
		FROM conversation_messages
		WHERE user_id = $1
		ORDER BY id ASC
	`, userID)
	if err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("failed to load conversation history from postgres")
		return nil, errx.WrapPostgres(err)
	}
	defer rows.Close()

	msgs := []*schema.Message{}
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, errx.WrapPostgres(err)
		}
		msgs = append(msgs, &schema.Message{Role: schema.RoleType(role), Content: content})
	}
	if err := rows.Err(); err != nil {
		return nil, errx.WrapPostgres(err)
	}
	return &model.ConversationHistory{UserID: userID, Messages: msgs}, nil
}

func (r *PostgresConversationRepository) ClearHistory(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM conversation_messages WHERE user_id = $1`, userID); err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("failed to delete conversation history from postgres")
		return errx.WrapPostgres(err)
	}
	return nil
}

func (r *PostgresConversationRepository) GetMessageCount(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM conversation_messages WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, errx.WrapPostgres(err)
	}
	return n, nil
}

var _ model.ConversationRepository = (*PostgresConversationRepository)(nil)
