package entry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context, ownerID int) ([]Entry, error)
	Create(ctx context.Context, ownerID int, encryptedTitle, encryptedContent string) (Entry, error)
	Update(ctx context.Context, entryID, ownerID int, encryptedTitle, encryptedContent string) (Entry, error)
	Delete(ctx context.Context, entryID, ownerID int) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "entry_service"),
		now:  time.Now,
	}
}

// List returns all of ownerID's entries, most recently modified first.
func (s *Service) List(ctx context.Context, ownerID int) ([]Entry, error) {
	entries, err := s.repo.List(ctx, ownerID)
	if err != nil {
		s.log.Error("failed to list entries", "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

func (s *Service) Create(ctx context.Context, ownerID int, encryptedTitle, encryptedContent string) (Entry, error) {
	if err := validateBlobs(encryptedTitle, encryptedContent); err != nil {
		return Entry{}, err
	}

	now := s.now().UTC()
	e := Entry{
		UserID:           ownerID,
		EncryptedTitle:   encryptedTitle,
		EncryptedContent: encryptedContent,
		DateCreated:      now,
		DateModified:     now,
	}

	id, err := s.repo.Create(ctx, &e)
	if err != nil {
		s.log.Error("failed to create entry", "user_id", ownerID, "error", err)
		return Entry{}, fmt.Errorf("create entry: %w", err)
	}
	e.ID = id

	s.log.Info("entry created", "entry_id", id, "user_id", ownerID)
	return e, nil
}

// Update replaces both ciphertext fields wholesale and refreshes
// DateModified. DateCreated never changes.
func (s *Service) Update(ctx context.Context, entryID, ownerID int, encryptedTitle, encryptedContent string) (Entry, error) {
	if err := validateBlobs(encryptedTitle, encryptedContent); err != nil {
		return Entry{}, err
	}

	cur, err := s.getOwned(ctx, entryID, ownerID)
	if err != nil {
		return Entry{}, err
	}

	cur.EncryptedTitle = encryptedTitle
	cur.EncryptedContent = encryptedContent
	cur.DateModified = s.now().UTC()

	if err := s.repo.Update(ctx, &cur); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Entry{}, ErrNotFound
		}
		s.log.Error("failed to update entry", "entry_id", entryID, "user_id", ownerID, "error", err)
		return Entry{}, fmt.Errorf("update entry: %w", err)
	}

	s.log.Info("entry updated", "entry_id", entryID, "user_id", ownerID)
	return cur, nil
}

// Delete permanently removes the record. No tombstone is kept.
func (s *Service) Delete(ctx context.Context, entryID, ownerID int) error {
	if _, err := s.getOwned(ctx, entryID, ownerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, entryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to delete entry", "entry_id", entryID, "user_id", ownerID, "error", err)
		return fmt.Errorf("delete entry: %w", err)
	}

	s.log.Info("entry deleted", "entry_id", entryID, "user_id", ownerID)
	return nil
}

func (s *Service) getOwned(ctx context.Context, entryID, ownerID int) (Entry, error) {
	e, err := s.repo.Get(ctx, entryID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Entry{}, ErrNotFound
		}
		s.log.Error("failed to get entry", "entry_id", entryID, "error", err)
		return Entry{}, fmt.Errorf("get entry: %w", err)
	}
	if e.UserID != ownerID {
		return Entry{}, ErrForbidden
	}
	return e, nil
}

func validateBlobs(encryptedTitle, encryptedContent string) error {
	if encryptedTitle == "" || encryptedContent == "" {
		return ErrInvalidData
	}
	if len(encryptedTitle) > MaxTitleLen {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidData, MaxTitleLen)
	}
	return nil
}
