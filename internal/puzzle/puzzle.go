// Package puzzle stores a library of Hexuki puzzle positions in SQLite.
package puzzle

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Zoidburgh/hexuki/internal/board"
)

// Puzzle is one stored position with its solving metadata.
type Puzzle struct {
	ID        int64
	Name      string
	Position  string // position string, see board codec
	BestMove  string // optional known solution in "h<hex>:<tile>" notation
	Depth     int    // depth the solution was verified at
	CreatedAt time.Time
	Solved    int // times a solve was recorded with RecordSolve
}

// Store is a SQLite-backed puzzle library.
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary creates) the library at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create puzzle db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open puzzle db: %w", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS puzzles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		position TEXT NOT NULL,
		best_move TEXT,
		depth INTEGER,
		created_at DATETIME,
		solved INTEGER DEFAULT 0
	);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create puzzles table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the library.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add validates and stores a puzzle, returning its ID. The position string
// must parse to a position with at least one legal move unless it is a
// finished board.
func (s *Store) Add(name, position, bestMove string, depth int) (int64, error) {
	pos := board.ParsePosition(position)
	if pos.OccupiedCount() == 0 {
		return 0, fmt.Errorf("puzzle %q: empty position", name)
	}
	if !pos.IsGameOver() && len(pos.ValidMoves()) == 0 {
		return 0, fmt.Errorf("puzzle %q: position has no legal move", name)
	}
	if bestMove != "" {
		m, err := board.ParseMove(bestMove)
		if err != nil {
			return 0, fmt.Errorf("puzzle %q: %w", name, err)
		}
		if !pos.IsValidMove(m) {
			return 0, fmt.Errorf("puzzle %q: stored solution %s is not a valid move", name, m)
		}
	}

	res, err := s.db.Exec(
		`INSERT INTO puzzles (name, position, best_move, depth, created_at) VALUES (?, ?, ?, ?, ?)`,
		name, position, bestMove, depth, time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert puzzle %q: %w", name, err)
	}
	return res.LastInsertId()
}

// Get returns one puzzle by ID.
func (s *Store) Get(id int64) (*Puzzle, error) {
	row := s.db.QueryRow(
		`SELECT id, name, position, best_move, depth, created_at, solved FROM puzzles WHERE id = ?`, id)
	return scanPuzzle(row)
}

// List returns up to limit puzzles, newest first.
func (s *Store) List(limit int) ([]*Puzzle, error) {
	rows, err := s.db.Query(
		`SELECT id, name, position, best_move, depth, created_at, solved
		 FROM puzzles ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var puzzles []*Puzzle
	for rows.Next() {
		p, err := scanPuzzle(rows)
		if err != nil {
			return nil, err
		}
		puzzles = append(puzzles, p)
	}
	return puzzles, rows.Err()
}

// RecordSolve bumps the solve counter and updates the stored solution if the
// new one was verified at least as deep.
func (s *Store) RecordSolve(id int64, bestMove string, depth int) error {
	_, err := s.db.Exec(
		`UPDATE puzzles
		 SET solved = solved + 1,
		     best_move = CASE WHEN ? >= depth THEN ? ELSE best_move END,
		     depth = CASE WHEN ? >= depth THEN ? ELSE depth END
		 WHERE id = ?`,
		depth, bestMove, depth, depth, id,
	)
	return err
}

// Delete removes a puzzle.
func (s *Store) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM puzzles WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPuzzle(row rowScanner) (*Puzzle, error) {
	p := &Puzzle{}
	var bestMove sql.NullString
	var depth sql.NullInt64
	if err := row.Scan(&p.ID, &p.Name, &p.Position, &bestMove, &depth, &p.CreatedAt, &p.Solved); err != nil {
		return nil, err
	}
	p.BestMove = bestMove.String
	p.Depth = int(depth.Int64)
	return p, nil
}
