package progress

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"vncrypt-sim/internal/mission"
)

type profileRow struct {
	ID         string `gorm:"primaryKey"`
	Name       string
	Experience int
	Level      int
	UpdatedAt  time.Time
}

func (profileRow) TableName() string { return "profiles" }

type completionRow struct {
	ProfileID   string `gorm:"primaryKey"`
	MissionKey  string `gorm:"primaryKey"`
	CompletedAt time.Time
}

func (completionRow) TableName() string { return "completed_missions" }

type resultRow struct {
	ID                   uint   `gorm:"primaryKey"`
	ProfileID            string `gorm:"index"`
	MissionKey           string
	Score                int
	DetectionTimeSeconds int
	DataLoss             float64
	ToolsUsed            []mission.ToolID `gorm:"serializer:json"`
	Timestamp            time.Time
}

func (resultRow) TableName() string { return "mission_results" }

// SQLStore persists progress through gorm.
type SQLStore struct {
	db        *gorm.DB
	profileID string
	mu        sync.Mutex
}

// OpenSQLite opens a SQLite database. An empty path uses a shared in-memory database.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	if err := db.Exec("PRAGMA journal_mode = WAL;").Error; err != nil {
		return nil, fmt.Errorf("set pragma: %w", err)
	}
	return db, nil
}

// NewSQLStore migrates the schema and ensures the profile row exists.
func NewSQLStore(db *gorm.DB, id, name string) (*SQLStore, error) {
	if err := db.AutoMigrate(&profileRow{}, &completionRow{}, &resultRow{}); err != nil {
		return nil, fmt.Errorf("migrate progress schema: %w", err)
	}
	row := profileRow{ID: id, Name: name, Level: 1}
	if err := db.Where(profileRow{ID: id}).Attrs(row).FirstOrCreate(&row).Error; err != nil {
		return nil, fmt.Errorf("ensure profile %q: %w", id, err)
	}
	return &SQLStore{db: db, profileID: id}, nil
}

// Record implements Sink.
func (s *SQLStore) Record(ctx context.Context, d Delta, r RunResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p profileRow
		if err := tx.First(&p, "id = ?", s.profileID).Error; err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		p.Experience += d.ExperienceAwarded
		p.Level = LevelFor(p.Experience)
		if err := tx.Save(&p).Error; err != nil {
			return fmt.Errorf("save profile: %w", err)
		}

		done := completionRow{ProfileID: s.profileID, MissionKey: d.MissionKey, CompletedAt: r.Timestamp}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&done).Error; err != nil {
			return fmt.Errorf("mark completed: %w", err)
		}

		res := resultRow{
			ProfileID:            s.profileID,
			MissionKey:           r.MissionKey,
			Score:                r.Score,
			DetectionTimeSeconds: r.DetectionTimeSeconds,
			DataLoss:             r.DataLoss,
			ToolsUsed:            r.ToolsUsed,
			Timestamp:            r.Timestamp,
		}
		if err := tx.Create(&res).Error; err != nil {
			return fmt.Errorf("append result: %w", err)
		}
		return nil
	})
}

// Profile loads the stored profile.
func (s *SQLStore) Profile(ctx context.Context) (Profile, error) {
	db := s.db.WithContext(ctx)
	var p profileRow
	if err := db.First(&p, "id = ?", s.profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Profile{}, fmt.Errorf("profile %q not found: %w", s.profileID, err)
		}
		return Profile{}, err
	}
	var done []completionRow
	if err := db.Where("profile_id = ?", s.profileID).Order("completed_at, mission_key").Find(&done).Error; err != nil {
		return Profile{}, fmt.Errorf("load completed missions: %w", err)
	}
	out := Profile{ID: p.ID, Name: p.Name, Level: p.Level, Experience: p.Experience}
	for _, c := range done {
		out.CompletedMissions = append(out.CompletedMissions, c.MissionKey)
	}
	return out, nil
}

// Results returns stored runs oldest first.
func (s *SQLStore) Results(ctx context.Context) ([]RunResult, error) {
	var rows []resultRow
	if err := s.db.WithContext(ctx).Where("profile_id = ?", s.profileID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	out := make([]RunResult, 0, len(rows))
	for _, r := range rows {
		out = append(out, RunResult{
			MissionKey:           r.MissionKey,
			Score:                r.Score,
			DetectionTimeSeconds: r.DetectionTimeSeconds,
			DataLoss:             r.DataLoss,
			ToolsUsed:            r.ToolsUsed,
			Timestamp:            r.Timestamp,
		})
	}
	return out, nil
}

// Close releases the underlying connection pool.
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
