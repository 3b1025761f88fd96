package services

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"donation-desk/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// BackupService writes periodic snapshots of the donation list
type BackupService struct {
	repo repositories.DonationRepository
	fs   afero.Fs
	dir  string
	cron *cron.Cron
	log  *zap.Logger
	now  func() time.Time
}

// NewBackupService creates a snapshot job writing into dir on fsys
func NewBackupService(repo repositories.DonationRepository, fsys afero.Fs, dir string, log *zap.Logger) *BackupService {
	return &BackupService{
		repo: repo,
		fs:   fsys,
		dir:  dir,
		cron: cron.New(),
		log:  log,
		now:  time.Now,
	}
}

// Start schedules the snapshot job. schedule is a cron spec such as "@daily".
func (s *BackupService) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.Snapshot(context.Background()); err != nil {
			s.log.Error("donation snapshot failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	s.log.Info("backup job started", zap.String("schedule", schedule))
	return nil
}

// Stop waits for a running snapshot to finish
func (s *BackupService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("backup job stopped")
}

// Snapshot writes the current donation list and returns the file name
func (s *BackupService) Snapshot(ctx context.Context) (string, error) {
	donations, err := s.repo.List(ctx)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(donations, "", "  ")
	if err != nil {
		return "", err
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("donations-%s.json", s.now().UTC().Format("20060102-150405"))
	if err := afero.WriteFile(s.fs, filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}

	s.log.Info("donation snapshot written", zap.String("file", name), zap.Int("count", len(donations)))
	return name, nil
}
