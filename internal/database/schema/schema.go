package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Users

CREATE TABLE IF NOT EXISTS users (
    user_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    username VARCHAR(50) UNIQUE NOT NULL,
    tickets INTEGER NOT NULL DEFAULT 0 CHECK (tickets >= 0),
    showcase_entries JSONB NOT NULL DEFAULT '[]',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Catalog

CREATE TABLE IF NOT EXISTS boxes (
    box_id SERIAL PRIMARY KEY,
    box_name VARCHAR(100) UNIQUE NOT NULL,
    description TEXT,
    ticket_cost INTEGER NOT NULL DEFAULT 1,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS items (
    item_id SERIAL PRIMARY KEY,
    item_name VARCHAR(100) NOT NULL,
    rarity VARCHAR(20) NOT NULL CHECK (rarity IN ('common','rare','epic','legendary','mythic')),
    box_id INTEGER NOT NULL REFERENCES boxes(box_id) ON DELETE CASCADE,
    base_points INTEGER NOT NULL DEFAULT 0,
    drop_weight DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (drop_weight >= 0),
    power INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_items_box ON items(box_id);

-- Inventory

CREATE TABLE IF NOT EXISTS inventory_entries (
    entry_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    item_id INTEGER NOT NULL REFERENCES items(item_id) ON DELETE CASCADE,
    kind VARCHAR(10) NOT NULL CHECK (kind IN ('stacked','unique')),
    quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1),
    points INTEGER NOT NULL DEFAULT 0,
    rarity_level INTEGER CHECK (rarity_level BETWEEN 1 AND 1000),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_inventory_user ON inventory_entries(user_id);
-- One stack per (user,item); unique entries are exempt.
CREATE UNIQUE INDEX IF NOT EXISTS idx_inventory_stack
    ON inventory_entries(user_id, item_id) WHERE kind = 'stacked';

-- Trades

CREATE TABLE IF NOT EXISTS trades (
    trade_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    proposer_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    counterparty_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    offered_entry_ids JSONB NOT NULL DEFAULT '[]',
    requested_entry_ids JSONB NOT NULL DEFAULT '[]',
    status VARCHAR(20) NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending','accepted','rejected','cancelled')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    resolved_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_trades_proposer ON trades(proposer_id, status);
CREATE INDEX IF NOT EXISTS idx_trades_counterparty ON trades(counterparty_id, status);

-- Missions

CREATE TABLE IF NOT EXISTS missions (
    mission_id SERIAL PRIMARY KEY,
    kind VARCHAR(20) NOT NULL CHECK (kind IN ('regular','daily_streak')),
    mission_name VARCHAR(100) NOT NULL,
    description TEXT,
    requirement TEXT,
    reward_tickets INTEGER NOT NULL DEFAULT 0,
    day_rewards JSONB NOT NULL DEFAULT '[]',
    active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS user_mission_progress (
    progress_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    mission_id INTEGER NOT NULL REFERENCES missions(mission_id) ON DELETE CASCADE,
    progress INTEGER NOT NULL DEFAULT 0 CHECK (progress BETWEEN 0 AND 100),
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    claimed BOOLEAN NOT NULL DEFAULT FALSE,
    claimed_days JSONB NOT NULL DEFAULT '[]',
    last_claim_at TIMESTAMPTZ,
    next_eligible_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, mission_id)
);

CREATE INDEX IF NOT EXISTS idx_progress_user ON user_mission_progress(user_id);

-- Event log (append-only audit of economy operations)

CREATE TABLE IF NOT EXISTS event_log (
    event_id BIGSERIAL PRIMARY KEY,
    event_type VARCHAR(100) NOT NULL,
    payload JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_event_log_type ON event_log(event_type, created_at);
`
