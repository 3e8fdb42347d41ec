package database

// migrationsSQL holds the schema migrations, applied in version order.
var migrationsSQL = map[int]string{
	1: migrationV1YearCodes,
	2: migrationV2LunarMonths,
	3: migrationV3MonthCodes,
}

// migrationV1YearCodes stores one packed year code per lunar year.
const migrationV1YearCodes = `
CREATE TABLE IF NOT EXISTS year_codes (
    year INTEGER PRIMARY KEY CHECK (year BETWEEN 1200 AND 2199),

    -- Packed code: leap month, month lengths, leap length, new year offset
    code INTEGER NOT NULL CHECK (code >= 0),

    -- Where the code came from: 'computed' or 'imported'
    source TEXT NOT NULL DEFAULT 'computed' CHECK (source IN ('computed', 'imported')),

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// migrationV2LunarMonths caches decoded month lists. Rows of a year are
// deleted whenever its year code changes.
const migrationV2LunarMonths = `
CREATE TABLE IF NOT EXISTS lunar_months (
    year INTEGER NOT NULL,

    -- Position of the month within its year, 0-12
    position INTEGER NOT NULL CHECK (position BETWEEN 0 AND 12),

    month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
    leap_month INTEGER NOT NULL DEFAULT 0 CHECK (leap_month IN (0, 1)),
    leap_year INTEGER NOT NULL DEFAULT 0 CHECK (leap_year IN (0, 1)),

    -- Julian Day Number of day 1
    jd INTEGER NOT NULL,
    length INTEGER NOT NULL CHECK (length IN (29, 30)),

    created_at TEXT NOT NULL DEFAULT (datetime('now')),

    PRIMARY KEY (year, position)
);

CREATE INDEX IF NOT EXISTS idx_lunar_months_jd ON lunar_months(jd);
`

// migrationV3MonthCodes tags cached months with the year code they were
// decoded from. Rows whose code differs from the one in use are misses.
const migrationV3MonthCodes = `
ALTER TABLE lunar_months ADD COLUMN code INTEGER NOT NULL DEFAULT -1;
`
