package implementation

import (
	"context"
	"errors"

	"moviematch-be/internal/entity"
	"moviematch-be/internal/mapper"
	"moviematch-be/internal/model"
	"moviematch-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, session *entity.Session) error {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	created, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*session = *created
	return nil
}

func (r *SessionRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var m model.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *SessionRepositoryImpl) FindByParticipants(ctx context.Context, userA, userB uuid.UUID) (*entity.Session, error) {
	var m model.Session
	err := r.db.WithContext(ctx).
		Where("(user_a = ? AND user_b = ?) OR (user_a = ? AND user_b = ?)", userA, userB, userB, userA).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

// Update is a compare-and-swap on the version column. Two clients racing to
// aggregate the same session: one wins, the other gets ErrVersionConflict and
// re-reads.
func (r *SessionRepositoryImpl) Update(ctx context.Context, session *entity.Session) error {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&model.Session{}).
		Where("id = ? AND version = ?", m.Id, m.Version).
		Updates(map[string]interface{}{
			"candidates":     m.Candidates,
			"progress":       m.Progress,
			"pending_voters": m.PendingVoters,
			"state":          m.State,
			"results":        m.Results,
			"version":        m.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contract.ErrVersionConflict
	}
	session.Version = m.Version + 1
	return nil
}

// Delete is idempotent: deleting an unknown id affects zero rows and is not
// an error.
func (r *SessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Session{}).Error
}

type MatchRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewMatchRepository(db *gorm.DB) contract.MatchRepository {
	return &MatchRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *MatchRepositoryImpl) Create(ctx context.Context, record *entity.MatchRecord) error {
	m, err := r.mapper.MatchRecordToModel(record)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	created, err := r.mapper.MatchRecordToEntity(m)
	if err != nil {
		return err
	}
	*record = *created
	return nil
}

func (r *MatchRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID) ([]*entity.MatchRecord, error) {
	var models []*model.MatchRecord
	err := r.db.WithContext(ctx).
		Where("user_a = ? OR user_b = ?", userId, userId).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	records := make([]*entity.MatchRecord, len(models))
	for i, m := range models {
		record, err := r.mapper.MatchRecordToEntity(m)
		if err != nil {
			return nil, err
		}
		records[i] = record
	}
	return records, nil
}
