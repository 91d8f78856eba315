// Package store keeps a local history of damage evaluations so repeated runs
// of the same build can be compared over time.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/EDCD/coriolis/apps/damage_dealt/internal/damage"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var stLog = log.With().Str("module", "store").Logger()

// Evaluation is one stored run: build, target, range and totals.
type Evaluation struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	BuildName string `gorm:"index"`
	TargetID  string
	Target    string
	Hardness  float64
	Range     float64

	EffectiveDpsShields  float64
	SustainedDpsShields  float64
	EffectivenessShields float64
	EffectiveDpsHull     float64
	SustainedDpsHull     float64
	EffectivenessHull    float64
	NominalDps           float64

	Weapons []EvaluationWeapon `gorm:"constraint:OnDelete:CASCADE"`
}

// EvaluationWeapon is one weapon row of a stored run.
type EvaluationWeapon struct {
	ID           uint `gorm:"primarykey"`
	EvaluationID uint `gorm:"index"`

	Slot        int
	Label       string
	Mount       string
	Engineering string

	EffectiveDpsShields  float64
	SustainedDpsShields  float64
	EffectivenessShields float64
	EffectiveDpsHull     float64
	SustainedDpsHull     float64
	EffectivenessHull    float64
}

type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the sqlite history at path and migrates the schema.
// ":memory:" gives a throwaway database.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open history db %q: %w", path, err)
	}
	if err := db.AutoMigrate(&Evaluation{}, &EvaluationWeapon{}); err != nil {
		return nil, fmt.Errorf("migrate history db %q: %w", path, err)
	}
	stLog.Debug().Str("path", path).Msg("history db ready")
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewEvaluation converts an evaluation into a storable record. labels maps
// weapon slots to display names.
func NewEvaluation(buildName, targetID string, target damage.Target, ev damage.Evaluation, labels map[int]string, engineering func(damage.Weapon) string) Evaluation {
	rec := Evaluation{
		BuildName:            buildName,
		TargetID:             targetID,
		Target:               target.Name,
		Hardness:             target.Hardness,
		Range:                ev.Range,
		EffectiveDpsShields:  ev.Totals.EffectiveDpsShields,
		SustainedDpsShields:  ev.Totals.SustainedDpsShields,
		EffectivenessShields: ev.Totals.EffectivenessShields,
		EffectiveDpsHull:     ev.Totals.EffectiveDpsHull,
		SustainedDpsHull:     ev.Totals.SustainedDpsHull,
		EffectivenessHull:    ev.Totals.EffectivenessHull,
		NominalDps:           ev.Totals.NominalDps,
		Weapons:              make([]EvaluationWeapon, 0, len(ev.Weapons)),
	}
	for _, r := range ev.Weapons {
		row := EvaluationWeapon{
			Slot:                 r.Weapon.Slot,
			Label:                labels[r.Weapon.Slot],
			Mount:                string(r.Weapon.Mount),
			EffectiveDpsShields:  r.EffectiveDpsShields,
			SustainedDpsShields:  r.SustainedDpsShields,
			EffectivenessShields: r.EffectivenessShields,
			EffectiveDpsHull:     r.EffectiveDpsHull,
			SustainedDpsHull:     r.SustainedDpsHull,
			EffectivenessHull:    r.EffectivenessHull,
		}
		if engineering != nil {
			row.Engineering = engineering(r.Weapon)
		}
		rec.Weapons = append(rec.Weapons, row)
	}
	return rec
}

// Save inserts rec and its weapon rows.
func (s *Store) Save(ctx context.Context, rec *Evaluation) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("save evaluation: %w", err)
	}
	stLog.Debug().Uint("id", rec.ID).Str("build", rec.BuildName).Int("weapons", len(rec.Weapons)).Msg("evaluation saved")
	return nil
}

// Recent returns up to limit evaluations of build, newest first, with their
// weapon rows.
func (s *Store) Recent(ctx context.Context, build string, limit int) ([]Evaluation, error) {
	if limit <= 0 {
		return nil, nil
	}
	var out []Evaluation
	err := s.db.WithContext(ctx).
		Preload("Weapons", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("build_name = ?", build).
		Order("created_at desc").Order("id desc").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("load recent evaluations for %q: %w", build, err)
	}
	return out, nil
}
