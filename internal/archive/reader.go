package archive

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/MeKo-Tech/colorengine/internal/colorconv"
)

// Reader serves sheets from an archive opened read-only.
type Reader struct {
	db   *sql.DB
	path string
}

// OpenReader opens an existing archive.
func OpenReader(path string) (*Reader, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro&immutable=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='swatches'").Scan(&count)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to verify schema: %w", err)
	}
	if count == 0 {
		db.Close()
		return nil, fmt.Errorf("database does not contain a swatches table")
	}

	return &Reader{db: db, path: path}, nil
}

// ReadSheet returns the decompressed PNG for base and suffix.
func (r *Reader) ReadSheet(base colorconv.Color, suffix string) ([]byte, error) {
	var compressed []byte
	err := r.db.QueryRow(
		"SELECT sheet_data FROM swatches WHERE base=? AND suffix=?",
		base.Hex(), suffix,
	).Scan(&compressed)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s%s", ErrNotFound, base, suffix)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sheet: %w", err)
	}

	data, err := gzipDecompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress sheet: %w", err)
	}
	return data, nil
}

// Colors lists the base colors stored at the given suffix, sorted by hex.
func (r *Reader) Colors(suffix string) ([]colorconv.Color, error) {
	rows, err := r.db.Query("SELECT base FROM swatches WHERE suffix=? ORDER BY base", suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to query colors: %w", err)
	}
	defer rows.Close()

	var colors []colorconv.Color
	for rows.Next() {
		var hex string
		if err := rows.Scan(&hex); err != nil {
			return nil, fmt.Errorf("failed to scan color: %w", err)
		}
		c, err := colorconv.ParseColor(hex)
		if err != nil {
			return nil, fmt.Errorf("corrupt archive entry: %w", err)
		}
		colors = append(colors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating colors: %w", err)
	}
	return colors, nil
}

// Metadata reads the archive metadata.
func (r *Reader) Metadata() (Metadata, error) {
	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var name string
		var value sql.NullString
		if err := rows.Scan(&name, &value); err != nil {
			return Metadata{}, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		values[name] = value.String
	}
	if err := rows.Err(); err != nil {
		return Metadata{}, fmt.Errorf("error iterating metadata: %w", err)
	}

	return metadataFromMap(values), nil
}

// Close closes the database connection.
func (r *Reader) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func gzipDecompress(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	return io.ReadAll(gr)
}
