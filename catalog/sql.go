package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL 驱动
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/wfunc/songquiz/models"
)

// SQLSource reads the catalog through database/sql. Driver is "postgres" (lib/pq)
// or "sqlite" (modernc).
type SQLSource struct {
	db             *sql.DB
	driver         string
	songsPerArtist int
}

// NewSQLSource opens the catalog database. songsPerArtist caps how many of each
// artist's songs are eligible (by catalog rank); zero disables the cap.
func NewSQLSource(driver, dsn string, songsPerArtist int) (*SQLSource, error) {
	if driver != "postgres" && driver != "sqlite" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if driver == "sqlite" {
		// a single connection keeps ":memory:" databases alive between calls
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	return &SQLSource{db: db, driver: driver, songsPerArtist: songsPerArtist}, nil
}

// Migrate creates the catalog tables if they do not exist.
func (s *SQLSource) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS available_songs (
            link VARCHAR(32) PRIMARY KEY,
            song_name TEXT NOT NULL,
            original_song_name TEXT NOT NULL DEFAULT '',
            hangul_song_name TEXT NOT NULL DEFAULT '',
            artist_name TEXT NOT NULL,
            hangul_artist_name TEXT NOT NULL DEFAULT '',
            id_artist INTEGER NOT NULL,
            id_parent_artist INTEGER NOT NULL DEFAULT 0,
            members VARCHAR(16) NOT NULL,
            issolo BOOLEAN NOT NULL DEFAULT FALSE,
            publishedon DATE NOT NULL,
            views BIGINT NOT NULL DEFAULT 0,
            tags VARCHAR(32) NOT NULL DEFAULT '',
            vtype VARCHAR(16) NOT NULL DEFAULT 'main',
            rank INTEGER NOT NULL DEFAULT 0
        )
    `)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS artists (
            id INTEGER PRIMARY KEY,
            name TEXT NOT NULL,
            id_parentgroup INTEGER NOT NULL DEFAULT 0,
            collab_artist_ids TEXT NOT NULL DEFAULT ''
        )
    `)
	return err
}

// InsertSongs writes songs, replacing rows with the same link.
func (s *SQLSource) InsertSongs(ctx context.Context, songs []models.Song) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `INSERT INTO available_songs
        (link, song_name, original_song_name, hangul_song_name, artist_name, hangul_artist_name,
         id_artist, id_parent_artist, members, issolo, publishedon, views, tags, vtype, rank)
        VALUES (` + s.placeholders(15) + `)
        ON CONFLICT (link) DO UPDATE SET views = excluded.views, tags = excluded.tags`

	for _, song := range songs {
		_, err := tx.ExecContext(ctx, query,
			song.Key, song.Name, song.OriginalName, song.HangulName, song.ArtistName, song.HangulArtistName,
			song.ArtistID, song.ParentArtistID, string(song.Members), song.IsSolo,
			song.PublishDate.Format(time.DateOnly), song.Views, song.Tags, song.VideoType, song.Rank)
		if err != nil {
			return fmt.Errorf("insert song %s: %w", song.Key, err)
		}
	}
	return tx.Commit()
}

// InsertArtists writes artists, replacing rows with the same id.
func (s *SQLSource) InsertArtists(ctx context.Context, artists []models.Artist) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `INSERT INTO artists (id, name, id_parentgroup, collab_artist_ids)
        VALUES (` + s.placeholders(4) + `)
        ON CONFLICT (id) DO UPDATE SET name = excluded.name`

	for _, a := range artists {
		if _, err := tx.ExecContext(ctx, query, a.ID, a.Name, a.ParentID, joinIDs(a.CollabArtistIDs)); err != nil {
			return fmt.Errorf("insert artist %d: %w", a.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLSource) Load(ctx context.Context) (*Catalog, error) {
	songs, err := s.loadSongs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load songs: %w", err)
	}
	artists, err := s.loadArtists(ctx)
	if err != nil {
		return nil, fmt.Errorf("load artists: %w", err)
	}
	return &Catalog{Songs: songs, Artists: artists}, nil
}

func (s *SQLSource) loadSongs(ctx context.Context) ([]models.Song, error) {
	query := `SELECT link, song_name, original_song_name, hangul_song_name, artist_name, hangul_artist_name,
            id_artist, id_parent_artist, members, issolo, publishedon, views, tags, vtype, rank
        FROM available_songs`
	var args []any
	if s.songsPerArtist > 0 {
		query += ` WHERE rank <= ` + s.placeholders(1)
		args = append(args, s.songsPerArtist)
	}
	query += ` ORDER BY views DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		var (
			song      models.Song
			members   string
			published sql.NullTime
			raw       sql.NullString
		)
		dest := []any{
			&song.Key, &song.Name, &song.OriginalName, &song.HangulName, &song.ArtistName, &song.HangulArtistName,
			&song.ArtistID, &song.ParentArtistID, &members, &song.IsSolo,
		}
		// modernc returns DATE columns as text, lib/pq as time.Time
		if s.driver == "sqlite" {
			dest = append(dest, &raw)
		} else {
			dest = append(dest, &published)
		}
		dest = append(dest, &song.Views, &song.Tags, &song.VideoType, &song.Rank)

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		song.Members = models.Gender(members)
		if published.Valid {
			song.PublishDate = published.Time
		} else if raw.Valid {
			song.PublishDate, err = parseDate(raw.String)
			if err != nil {
				return nil, fmt.Errorf("song %s: %w", song.Key, err)
			}
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

func (s *SQLSource) loadArtists(ctx context.Context) ([]models.Artist, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, id_parentgroup, collab_artist_ids FROM artists ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []models.Artist
	for rows.Next() {
		var (
			a      models.Artist
			collab string
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.ParentID, &collab); err != nil {
			return nil, err
		}
		a.CollabArtistIDs, err = splitIDs(collab)
		if err != nil {
			return nil, fmt.Errorf("artist %d: %w", a.ID, err)
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

// Close 关闭数据库连接
func (s *SQLSource) Close() error {
	return s.db.Close()
}

func (s *SQLSource) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		if s.driver == "postgres" {
			parts[i] = "$" + strconv.Itoa(i+1)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}

func parseDate(v string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", v)
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func splitIDs(v string) ([]int, error) {
	if v == "" {
		return nil, nil
	}
	parts := strings.Split(v, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
