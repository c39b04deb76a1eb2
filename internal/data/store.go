package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/HSchlagi/bess-simulation-sub000/internal/catalog"
	"github.com/HSchlagi/bess-simulation-sub000/internal/model"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// ErrNotFound is returned when a project does not exist.
var ErrNotFound = errors.New("not found")

// GlobalProjectID addresses the global price configuration.
const GlobalProjectID int64 = 0

const schema = `
CREATE TABLE IF NOT EXISTS project (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	bess_size_kwh REAL NOT NULL DEFAULT 0,
	bess_power_kw REAL NOT NULL DEFAULT 0,
	daily_cycles REAL NOT NULL DEFAULT 0,
	total_investment REAL NOT NULL DEFAULT 0,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS market_price_config (
	project_id INTEGER NOT NULL DEFAULT 0,
	price_key TEXT NOT NULL,
	value REAL NOT NULL,
	updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (project_id, price_key)
);

CREATE TABLE IF NOT EXISTS investment_cost (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
	component_type TEXT NOT NULL,
	cost_eur REAL NOT NULL,
	description TEXT,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS use_case (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	description TEXT,
	scenario_type TEXT,
	bess_size_mwh REAL NOT NULL DEFAULT 0,
	bess_power_mw REAL NOT NULL DEFAULT 0,
	annual_cycles REAL NOT NULL DEFAULT 0,
	efficiency REAL NOT NULL DEFAULT 0,
	market_participation TEXT,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`

// InvestmentCost is one capital expenditure line item of a project.
type InvestmentCost struct {
	ID            int64   `json:"id"`
	ProjectID     int64   `json:"project_id"`
	ComponentType string  `json:"component_type"`
	CostEUR       float64 `json:"cost_eur"`
	Description   string  `json:"description,omitempty"`
}

// Store keeps projects, their investment line items, use-case records and
// market price configuration in SQLite.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenStore opens (and migrates) the database at path. ":memory:" gives a
// private in-memory database.
func OpenStore(path string, log zerolog.Logger) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{
		db:  db,
		log: log.With().Str("component", "store").Logger(),
	}
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// SavePrices upserts price entries. projectID 0 writes the global table.
func (s *Store) SavePrices(ctx context.Context, projectID int64, prices model.MarketPriceTable) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO market_price_config (project_id, price_key, value)
		VALUES (?, ?, ?)
		ON CONFLICT (project_id, price_key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`
	for _, k := range prices.Keys() {
		if _, err := tx.ExecContext(ctx, q, projectID, string(k), prices[k]); err != nil {
			return fmt.Errorf("failed to save price %s: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit prices: %w", err)
	}

	s.log.Info().Int64("project_id", projectID).Int("entries", len(prices)).Msg("saved market prices")
	return nil
}

func (s *Store) pricesFor(ctx context.Context, projectID int64) (model.MarketPriceTable, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT price_key, value FROM market_price_config WHERE project_id = ?`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices: %w", err)
	}
	defer rows.Close()

	out := model.MarketPriceTable{}
	for rows.Next() {
		var key string
		var value float64
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		out[model.PriceKey(key)] = value
	}
	return out, rows.Err()
}

// ResolvePrices layers the project's prices over the global configuration,
// which in turn is layered over the reference prices.
func (s *Store) ResolvePrices(ctx context.Context, projectID int64) (model.MarketPriceTable, error) {
	global, err := s.pricesFor(ctx, GlobalProjectID)
	if err != nil {
		return nil, err
	}
	resolved := model.ReferencePrices().Merge(global)
	if projectID == GlobalProjectID {
		return resolved, nil
	}
	project, err := s.pricesFor(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return resolved.Merge(project), nil
}

func (s *Store) CreateProject(ctx context.Context, p catalog.Project) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO project (name, bess_size_kwh, bess_power_kw, daily_cycles, total_investment)
		VALUES (?, ?, ?, ?, ?)
	`, p.Name, p.SizeKWh, p.PowerKW, p.DailyCycles, p.TotalInvestment)
	if err != nil {
		return 0, fmt.Errorf("failed to insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert ID: %w", err)
	}
	s.log.Info().Int64("id", id).Str("name", p.Name).Msg("created project")
	return id, nil
}

// Project loads a project. Its TotalInvestment is the sum of its investment
// line items when any exist, otherwise the stored figure.
func (s *Store) Project(ctx context.Context, id int64) (catalog.Project, error) {
	var p catalog.Project
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, bess_size_kwh, bess_power_kw, daily_cycles, total_investment
		FROM project WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.SizeKWh, &p.PowerKW, &p.DailyCycles, &p.TotalInvestment)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Project{}, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return catalog.Project{}, fmt.Errorf("failed to load project %d: %w", id, err)
	}

	total, n, err := s.investmentTotal(ctx, id)
	if err != nil {
		return catalog.Project{}, err
	}
	if n > 0 {
		p.TotalInvestment = total
	}
	return p, nil
}

func (s *Store) AddInvestmentCost(ctx context.Context, c InvestmentCost) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO investment_cost (project_id, component_type, cost_eur, description)
		VALUES (?, ?, ?, ?)
	`, c.ProjectID, c.ComponentType, c.CostEUR, c.Description)
	if err != nil {
		return 0, fmt.Errorf("failed to insert investment cost: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) InvestmentCosts(ctx context.Context, projectID int64) ([]InvestmentCost, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, component_type, cost_eur, COALESCE(description, '')
		FROM investment_cost WHERE project_id = ? ORDER BY id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment costs: %w", err)
	}
	defer rows.Close()

	var out []InvestmentCost
	for rows.Next() {
		var c InvestmentCost
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.ComponentType, &c.CostEUR, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan investment cost: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// TotalInvestment sums the project's investment line items.
func (s *Store) TotalInvestment(ctx context.Context, projectID int64) (float64, error) {
	total, _, err := s.investmentTotal(ctx, projectID)
	return total, err
}

func (s *Store) investmentTotal(ctx context.Context, projectID int64) (float64, int, error) {
	var total float64
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(cost_eur), 0), COUNT(*) FROM investment_cost WHERE project_id = ?
	`, projectID).Scan(&total, &n)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum investment costs: %w", err)
	}
	return total, n, nil
}

func (s *Store) SaveUseCase(ctx context.Context, rec catalog.Record) (int64, error) {
	participation, err := json.Marshal(rec.MarketParticipation)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal market participation: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO use_case (
			project_id, name, description, scenario_type,
			bess_size_mwh, bess_power_mw, annual_cycles, efficiency, market_participation
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ProjectID, rec.Name, rec.Description, string(rec.ScenarioType),
		rec.SizeMWh, rec.PowerMW, rec.AnnualCycles, rec.Efficiency, string(participation))
	if err != nil {
		return 0, fmt.Errorf("failed to insert use case: %w", err)
	}
	return res.LastInsertId()
}

// UseCaseRecords returns the project's use-case records in insertion order.
func (s *Store) UseCaseRecords(ctx context.Context, projectID int64) ([]catalog.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, name, COALESCE(description, ''), COALESCE(scenario_type, ''),
		       bess_size_mwh, bess_power_mw, annual_cycles, efficiency,
		       COALESCE(market_participation, '')
		FROM use_case WHERE project_id = ? ORDER BY id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query use cases: %w", err)
	}
	defer rows.Close()

	var out []catalog.Record
	for rows.Next() {
		var rec catalog.Record
		var scenario, participation string
		if err := rows.Scan(&rec.ID, &rec.ProjectID, &rec.Name, &rec.Description, &scenario,
			&rec.SizeMWh, &rec.PowerMW, &rec.AnnualCycles, &rec.Efficiency, &participation); err != nil {
			return nil, fmt.Errorf("failed to scan use case: %w", err)
		}
		rec.ScenarioType = model.ScenarioType(scenario)
		if participation != "" && participation != "null" {
			if err := json.Unmarshal([]byte(participation), &rec.MarketParticipation); err != nil {
				s.log.Warn().Err(err).Int64("use_case_id", rec.ID).Msg("ignoring malformed market participation")
				rec.MarketParticipation = nil
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
