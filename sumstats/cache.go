package sumstats

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/carbocation/gwasplot"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"

	// Pure-Go SQLite driver, registered as "sqlite"
	_ "modernc.org/sqlite"
)

// CacheSuffix is appended to the summary file's path to name its sidecar
// index cache when no other path is given.
const CacheSuffix = ".chridx"

var ErrNoCache = errors.New("no position cache")

// DefaultCachePath names the sidecar for filename. SQLite needs a local file,
// so the sidecar of a gs:// object goes in the working directory under the
// object's base name.
func DefaultCachePath(filename string) string {
	if gwasplot.IsGoogleStoragePath(filename) {
		return path.Base(filename) + CacheSuffix
	}

	return filename + CacheSuffix
}

// CacheMetadata conforms to the single row of the "metadata" table in a
// position cache. FileSize is the stored size of the summary file when the
// index was built, and is how a stale cache is recognized.
type CacheMetadata struct {
	Filename  string `db:"filename"`
	FileSize  int64  `db:"file_size"`
	DataStart int64  `db:"data_start"`
	CreatedAt string `db:"created_at"`
}

type cachedPosition struct {
	Chromosome int   `db:"chromosome"`
	Offset     int64 `db:"byte_offset"`
}

var cacheSchema = []string{
	`CREATE TABLE IF NOT EXISTS metadata (
		filename TEXT NOT NULL,
		file_size INTEGER NOT NULL,
		data_start INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS positions (
		chromosome INTEGER PRIMARY KEY,
		byte_offset INTEGER NOT NULL
	)`,
}

// SaveCache writes the index to a SQLite sidecar file, replacing any index
// already stored there.
func SaveCache(path string, meta CacheMetadata, positions ChromosomePositions) error {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range cacheSchema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM metadata"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM positions"); err != nil {
		return err
	}

	if _, err := tx.NamedExec(`INSERT INTO metadata (filename, file_size, data_start, created_at)
		VALUES (:filename, :file_size, :data_start, :created_at)`, meta); err != nil {
		return err
	}

	for _, chr := range positions.Chromosomes() {
		if _, err := tx.NamedExec(`INSERT INTO positions (chromosome, byte_offset) VALUES (:chromosome, :byte_offset)`,
			cachedPosition{Chromosome: chr, Offset: positions[chr]}); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadCache reads a sidecar written by SaveCache. A missing file is ErrNoCache.
func LoadCache(path string) (CacheMetadata, ChromosomePositions, error) {
	meta := CacheMetadata{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return meta, nil, fmt.Errorf("%s: %w", path, ErrNoCache)
	} else if err != nil {
		return meta, nil, err
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return meta, nil, err
	}
	defer db.Close()

	if err := db.Get(&meta, "SELECT filename, file_size, data_start, created_at FROM metadata LIMIT 1"); err != nil {
		return meta, nil, fmt.Errorf("%s: reading metadata: %w", path, err)
	}

	rows := []cachedPosition{}
	if err := db.Select(&rows, "SELECT chromosome, byte_offset FROM positions ORDER BY chromosome"); err != nil {
		return meta, nil, fmt.Errorf("%s: reading positions: %w", path, err)
	}

	positions := make(ChromosomePositions, len(rows))
	for _, row := range rows {
		positions[row.Chromosome] = row.Offset
	}

	return meta, positions, nil
}

// LoadOrBuildPositions uses the sidecar cache at cachePath when it matches
// this file, and otherwise builds the index and writes it to cachePath.
func (f *File) LoadOrBuildPositions(ctx context.Context, cachePath string) (ChromosomePositions, error) {
	meta, positions, err := LoadCache(cachePath)
	switch {
	case err == nil && meta.FileSize == f.source.Size && meta.DataStart == f.dataStart:
		if err := f.SetPositions(positions); err != nil {
			return nil, fmt.Errorf("%s: %w", cachePath, err)
		}
		log.Printf("Loaded chromosome positions for %s from %s", f.Path(), cachePath)
		return positions, nil
	case err == nil:
		log.Printf("Position cache %s was built for a %d byte file, but %s is %d bytes. Rebuilding.", cachePath, meta.FileSize, f.Path(), f.source.Size)
	case errors.Is(err, ErrNoCache):
	default:
		log.Warnf("Ignoring unreadable position cache: %v", err)
	}

	f.positions = nil
	positions, err = f.Positions(ctx)
	if err != nil {
		return nil, err
	}

	meta = CacheMetadata{
		Filename:  f.Path(),
		FileSize:  f.source.Size,
		DataStart: f.dataStart,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := SaveCache(cachePath, meta, positions); err != nil {
		return nil, fmt.Errorf("%s: writing position cache: %w", cachePath, err)
	}

	return positions, nil
}
