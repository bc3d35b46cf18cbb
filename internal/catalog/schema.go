package catalog

const schema = `
CREATE TABLE IF NOT EXISTS locations (
    uid       TEXT PRIMARY KEY,
    name      TEXT NOT NULL,
    aliases   TEXT,
    tags      TEXT,
    latitude  REAL NOT NULL DEFAULT 0,
    longitude REAL NOT NULL DEFAULT 0,
    address   TEXT
);

CREATE TABLE IF NOT EXISTS handbooks (
    uid       TEXT PRIMARY KEY,
    major     TEXT NOT NULL,
    aliases   TEXT,
    file_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS faq_responses (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    question TEXT NOT NULL,
    answer   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS locker_hours (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    college  TEXT NOT NULL,
    day      TEXT NOT NULL,
    basement TEXT NOT NULL,
    hours    TEXT NOT NULL,
    UNIQUE (college, day, basement)
);

CREATE TABLE IF NOT EXISTS servery_hours (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    college   TEXT NOT NULL,
    day       TEXT NOT NULL,
    meal_type TEXT NOT NULL,
    hours     TEXT NOT NULL,
    UNIQUE (college, day, meal_type)
);

CREATE INDEX IF NOT EXISTS idx_locker_hours_college ON locker_hours (college);
CREATE INDEX IF NOT EXISTS idx_servery_hours_college ON servery_hours (college);
`
