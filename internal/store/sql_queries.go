package store

const (
	createAccount = `INSERT INTO accounts (username, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING account_id, username, email, password_hash, is_active, is_admin, created_at, updated_at;`

	ensureDefaultGroup = `INSERT INTO groups (name, description)
    VALUES ($1, $2)
    ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
    RETURNING group_id;`

	addGroupMembership = `INSERT INTO group_memberships (account_id, group_id)
    VALUES ($1, $2)
    ON CONFLICT DO NOTHING;`

	findAccountByID = `SELECT account_id, username, email, password_hash, is_active, is_admin, created_at, updated_at
    FROM accounts
    WHERE account_id = $1;`

	findAccountByUsername = `SELECT account_id, username, email, password_hash, is_active, is_admin, created_at, updated_at
    FROM accounts
    WHERE LOWER(username) = LOWER($1);`

	findAccountByEmail = `SELECT account_id, username, email, password_hash, is_active, is_admin, created_at, updated_at
    FROM accounts
    WHERE LOWER(email) = LOWER($1);`

	updateAccountPasswordHash = `UPDATE accounts
    SET password_hash = $2, updated_at = NOW()
    WHERE account_id = $1;`

	createSession = `INSERT INTO sessions (session_id, account_id, token_hash, expires_at)
    VALUES ($1, $2, $3, $4)
    RETURNING issued_at;`

	findSessionByTokenHash = `SELECT session_id, account_id, token_hash, issued_at, expires_at, revoked_at
    FROM sessions
    WHERE token_hash = $1;`

	revokeSessionByTokenHash = `UPDATE sessions
    SET revoked_at = NOW()
    WHERE token_hash = $1 AND revoked_at IS NULL;`

	revokeAllSessions = `UPDATE sessions
    SET revoked_at = NOW()
    WHERE account_id = $1 AND revoked_at IS NULL;`

	revokeOtherSessions = `UPDATE sessions
    SET revoked_at = NOW()
    WHERE account_id = $1 AND token_hash <> $2 AND revoked_at IS NULL;`

	createResetToken = `INSERT INTO password_reset_tokens (token_id, account_id, token_hash, expires_at)
    VALUES ($1, $2, $3, $4);`

	consumeResetToken = `UPDATE password_reset_tokens
    SET consumed_at = NOW()
    WHERE token_hash = $1 AND consumed_at IS NULL AND expires_at > NOW()
    RETURNING account_id;`

	// The dummy DO UPDATE lets RETURNING yield the pre-existing row on
	// conflict; updated_at is deliberately untouched, so a repeated add is
	// observationally a no-op.
	upsertSavedItem = `INSERT INTO saved_items (account_id, external_id, title, poster_url)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (account_id, external_id) DO UPDATE SET external_id = EXCLUDED.external_id
    RETURNING item_id, account_id, external_id, title, poster_url, status, rating, created_at, updated_at;`

	// Owner-gated mutations select the target row first, then apply the
	// change only when the caller matches the owner. Scanning the pair
	// (updated item_id, actual owner) lets the repository tell "no such
	// item" (no row at all) apart from "exists but not yours" (row with a
	// NULL updated id) without a second round trip.
	setSavedItemStatus = `WITH target_record AS (
        SELECT item_id, account_id FROM saved_items WHERE item_id = $1
    ), updated AS (
        UPDATE saved_items SET status = $3, updated_at = NOW()
        WHERE item_id = $1 AND account_id = $2
        RETURNING item_id
    )
    SELECT updated.item_id, target_record.account_id
    FROM target_record LEFT JOIN updated ON TRUE;`

	setSavedItemRating = `WITH target_record AS (
        SELECT item_id, account_id FROM saved_items WHERE item_id = $1
    ), updated AS (
        UPDATE saved_items SET rating = $3, updated_at = NOW()
        WHERE item_id = $1 AND account_id = $2
        RETURNING item_id
    )
    SELECT updated.item_id, target_record.account_id
    FROM target_record LEFT JOIN updated ON TRUE;`

	deleteSavedItem = `WITH target_record AS (
        SELECT item_id, account_id FROM saved_items WHERE item_id = $1
    ), deleted AS (
        DELETE FROM saved_items
        WHERE item_id = $1 AND account_id = $2
        RETURNING item_id
    )
    SELECT deleted.item_id, target_record.account_id
    FROM target_record LEFT JOIN deleted ON TRUE;`
)
