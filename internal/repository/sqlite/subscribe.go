package sqlite

import (
	"context"
	"fmt"
)

// SubscribeChat links the chat to userID's alerts, moving it away from any previous owner.
// It reports false when the chat was already subscribed for that user.
func (r *Repository) SubscribeChat(ctx context.Context, chatID int64, userID string) (bool, error) {
	const opn = "repository.sqlite.SubscribeChat"

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions (chat_id, user_id) VALUES (?, ?)
		ON CONFLICT (chat_id) DO UPDATE SET user_id = excluded.user_id
		WHERE subscriptions.user_id <> excluded.user_id`, chatID, userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", opn, err)
	}

	return rowsChanged(res, opn)
}

// UnsubscribeChat removes the chat from the alert recipients.
// It reports false when the chat was not subscribed.
func (r *Repository) UnsubscribeChat(ctx context.Context, chatID int64) (bool, error) {
	const opn = "repository.sqlite.UnsubscribeChat"

	res, err := r.db.ExecContext(ctx, "DELETE FROM subscriptions WHERE chat_id = ?", chatID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", opn, err)
	}

	return rowsChanged(res, opn)
}

// GetSubscribedChats returns the chats linked to userID.
func (r *Repository) GetSubscribedChats(ctx context.Context, userID string) ([]int64, error) {
	const opn = "repository.sqlite.GetSubscribedChats"

	rows, err := r.db.QueryContext(ctx,
		"SELECT chat_id FROM subscriptions WHERE user_id = ? ORDER BY chat_id", userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	defer rows.Close()

	var chatIDs []int64
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: failed to scan chat_id: %w", opn, err)
		}
		chatIDs = append(chatIDs, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return chatIDs, nil
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

func rowsChanged(res rowsAffecter, opn string) (bool, error) {
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: failed to get affected rows: %w", opn, err)
	}

	return affected > 0, nil
}
