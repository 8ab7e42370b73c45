package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/denisok6893-rgb/property-compare/internal/domain"
)

var ErrNoPropertiesTable = errors.New("snapshot has no properties table")

// SQLiteStore reads a snapshot of the upstream tables. Nothing derived by
// the engine is ever written back.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens path for reading and writing, creating it if needed.
// Export tooling and tests use it together with EnsureSchema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	return openSQLite("file:" + path + "?_busy_timeout=5000")
}

// OpenSnapshot opens an existing snapshot file read-only.
func OpenSnapshot(path string) (*SQLiteStore, error) {
	return openSQLite("file:" + path + "?mode=ro&_busy_timeout=5000")
}

func openSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// EnsureSchema creates the upstream tables when missing, so an empty file
// can be used as a snapshot target by export tooling and tests.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS properties (
  id INTEGER PRIMARY KEY,
  project_id INTEGER NOT NULL,
  created_at TEXT NOT NULL,
  user_id TEXT,
  listing_title TEXT,
  url_link TEXT,
  agent_website TEXT,
  agent_email TEXT,
  agent_phone TEXT,
  notes TEXT,
  house_price REAL,
  floor_level REAL,
  walk_to_station REAL,
  walk_to_park REAL,
  lease_length REAL,
  energy_effeciency REAL,
  est_monthly_rent REAL,
  sc_gr_annual REAL,
  sq_metres REAL,
  interior TEXT,
  view TEXT,
  local_gym INTEGER,
  local_supermarket INTEGER,
  garden_balcony INTEGER,
  off_street_parking INTEGER,
  view_date TEXT,
  offered REAL
);
CREATE INDEX IF NOT EXISTS idx_properties_project ON properties(project_id);

CREATE TABLE IF NOT EXISTS project_commute_settings (
  id INTEGER PRIMARY KEY,
  project_id INTEGER NOT NULL,
  created_at TEXT,
  destination_1 TEXT, destination_2 TEXT, destination_3 TEXT, destination_4 TEXT,
  destination_5 TEXT, destination_6 TEXT, destination_7 TEXT, destination_8 TEXT
);

CREATE TABLE IF NOT EXISTS property_commute_scores (
  id INTEGER PRIMARY KEY,
  property_id INTEGER NOT NULL REFERENCES properties(id),
  created_at TEXT,
  destination_1 REAL, destination_2 REAL, destination_3 REAL, destination_4 REAL,
  destination_5 REAL, destination_6 REAL, destination_7 REAL, destination_8 REAL
);

CREATE TABLE IF NOT EXISTS user_likes_properties (
  property_id INTEGER NOT NULL REFERENCES properties(id),
  user_id TEXT NOT NULL,
  created_at TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (property_id, user_id)
);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// LoadDataset reads every row belonging to projectID. Only the properties
// table is required; older exports may lack the commute and likes tables.
func (s *SQLiteStore) LoadDataset(ctx context.Context, projectID int64) (*domain.Dataset, error) {
	ds := &domain.Dataset{ProjectID: projectID, Likes: make(domain.Likes)}

	tables, err := s.tables(ctx)
	if err != nil {
		return nil, err
	}
	if !tables["properties"] {
		return nil, ErrNoPropertiesTable
	}

	props, err := s.listProperties(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ds.Properties = props

	if tables["project_commute_settings"] {
		if ds.CommuteSettings, err = s.commuteSettings(ctx, projectID); err != nil {
			return nil, err
		}
	}
	if tables["property_commute_scores"] {
		if ds.CommuteScores, err = s.commuteScores(ctx, projectID); err != nil {
			return nil, err
		}
	}
	if tables["user_likes_properties"] {
		if ds.Likes, err = s.likes(ctx, projectID); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func (s *SQLiteStore) tables(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		out[name] = true
	}
	return out, rows.Err()
}

const propertyColumns = `id, project_id, created_at, user_id,
listing_title, url_link, agent_website, agent_email, agent_phone, notes,
house_price, floor_level, walk_to_station, walk_to_park, lease_length,
energy_effeciency, est_monthly_rent, sc_gr_annual, sq_metres,
interior, view, local_gym, local_supermarket, garden_balcony, off_street_parking,
view_date, offered`

func (s *SQLiteStore) listProperties(ctx context.Context, projectID int64) ([]domain.Property, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+propertyColumns+`
FROM properties
WHERE project_id = ?
ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer rows.Close()

	var out []domain.Property
	for rows.Next() {
		var (
			p                          domain.Property
			createdAt                  string
			userID, title, link        sql.NullString
			website, email, phone      sql.NullString
			notes, interior, view      sql.NullString
			viewDate                   sql.NullString
			price, floor, station      sql.NullFloat64
			park, lease, energy, rent  sql.NullFloat64
			charge, area, offered      sql.NullFloat64
			gym, shop, balcony, garage sql.NullBool
		)
		if err := rows.Scan(
			&p.ID, &p.ProjectID, &createdAt, &userID,
			&title, &link, &website, &email, &phone, &notes,
			&price, &floor, &station, &park, &lease,
			&energy, &rent, &charge, &area,
			&interior, &view, &gym, &shop, &balcony, &garage,
			&viewDate, &offered,
		); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}

		if p.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("property %d created_at: %w", p.ID, err)
		}
		if viewDate.Valid && viewDate.String != "" {
			t, err := parseTime(viewDate.String)
			if err != nil {
				return nil, fmt.Errorf("property %d view_date: %w", p.ID, err)
			}
			p.ViewDate = &t
		}

		p.UserID = nullString(userID)
		p.ListingTitle = nullString(title)
		p.URLLink = nullString(link)
		p.AgentWebsite = nullString(website)
		p.AgentEmail = nullString(email)
		p.AgentPhone = nullString(phone)
		p.Notes = nullString(notes)

		p.HousePrice = nullFloat(price)
		p.FloorLevel = nullFloat(floor)
		p.WalkToStation = nullFloat(station)
		p.WalkToPark = nullFloat(park)
		p.LeaseLength = nullFloat(lease)
		p.EnergyEfficiency = nullFloat(energy)
		p.EstMonthlyRent = nullFloat(rent)
		p.ScGrAnnual = nullFloat(charge)
		p.SqMetres = nullFloat(area)
		p.Offered = nullFloat(offered)

		p.Interior = nullQuality(interior)
		p.View = nullQuality(view)

		p.LocalGym = nullBool(gym)
		p.LocalSupermarket = nullBool(shop)
		p.GardenBalcony = nullBool(balcony)
		p.OffStreetParking = nullBool(garage)

		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) commuteSettings(ctx context.Context, projectID int64) (*domain.CommuteSettings, error) {
	var d [domain.SlotCount]sql.NullString
	err := s.db.QueryRowContext(ctx, `
SELECT destination_1, destination_2, destination_3, destination_4,
       destination_5, destination_6, destination_7, destination_8
FROM project_commute_settings
WHERE project_id = ?
ORDER BY id DESC
LIMIT 1`, projectID).Scan(&d[0], &d[1], &d[2], &d[3], &d[4], &d[5], &d[6], &d[7])
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query commute settings: %w", err)
	}
	return &domain.CommuteSettings{
		ProjectID:    projectID,
		Destination1: nullString(d[0]),
		Destination2: nullString(d[1]),
		Destination3: nullString(d[2]),
		Destination4: nullString(d[3]),
		Destination5: nullString(d[4]),
		Destination6: nullString(d[5]),
		Destination7: nullString(d[6]),
		Destination8: nullString(d[7]),
	}, nil
}

func (s *SQLiteStore) commuteScores(ctx context.Context, projectID int64) ([]domain.CommuteSample, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT c.property_id,
       c.destination_1, c.destination_2, c.destination_3, c.destination_4,
       c.destination_5, c.destination_6, c.destination_7, c.destination_8
FROM property_commute_scores c
JOIN properties p ON p.id = c.property_id
WHERE p.project_id = ?
ORDER BY c.id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query commute scores: %w", err)
	}
	defer rows.Close()

	var out []domain.CommuteSample
	for rows.Next() {
		var (
			id int64
			d  [domain.SlotCount]sql.NullFloat64
		)
		if err := rows.Scan(&id, &d[0], &d[1], &d[2], &d[3], &d[4], &d[5], &d[6], &d[7]); err != nil {
			return nil, fmt.Errorf("scan commute score: %w", err)
		}
		out = append(out, domain.CommuteSample{
			PropertyID:   id,
			Destination1: nullFloat(d[0]),
			Destination2: nullFloat(d[1]),
			Destination3: nullFloat(d[2]),
			Destination4: nullFloat(d[3]),
			Destination5: nullFloat(d[4]),
			Destination6: nullFloat(d[5]),
			Destination7: nullFloat(d[6]),
			Destination8: nullFloat(d[7]),
		})
	}
	return out, rows.Err()
}

func (s *SQLiteStore) likes(ctx context.Context, projectID int64) (domain.Likes, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT l.property_id, l.user_id
FROM user_likes_properties l
JOIN properties p ON p.id = l.property_id
WHERE p.project_id = ?
ORDER BY l.created_at, l.property_id, l.user_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query likes: %w", err)
	}
	defer rows.Close()

	out := make(domain.Likes)
	for rows.Next() {
		var (
			id   int64
			user string
		)
		if err := rows.Scan(&id, &user); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		out[id] = append(out[id], user)
	}
	return out, rows.Err()
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func nullBool(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	return &v.Bool
}

func nullQuality(v sql.NullString) *domain.Quality {
	if !v.Valid || strings.TrimSpace(v.String) == "" {
		return nil
	}
	q := domain.Quality(v.String)
	return &q
}
