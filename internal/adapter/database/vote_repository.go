package database

import (
	"context"
	"fmt"
	"time"

	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VoteRepository implementa repository.VoteRepository
type VoteRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	spans  spanner
}

func NewVoteRepository(db *gorm.DB, logger *zap.Logger) *VoteRepository {
	return &VoteRepository{
		db:     db,
		logger: logger,
		spans:  newSpanner("votos", "VoteRepository"),
	}
}

// voteDetailRow recebe a leitura votos ⋈ eleccions ⋈ candidaturas ⋈ users
type voteDetailRow struct {
	ID                uint
	UserID            uint `gorm:"column:userid"`
	VoterUsername     string
	ElectionID        uint `gorm:"column:eleccionid"`
	ElectionName      string
	CandidacyID       uint `gorm:"column:candidaturaid"`
	CandidateUsername string
	Proposal          string
	CreatedAt         time.Time
}

func (r *VoteRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("votos AS v").
		Select(`v.id, v.userid, voter.username AS voter_username,
			v.eleccionid, e.nombre AS election_name,
			v.candidaturaid, cand.username AS candidate_username,
			c.propuesta AS proposal, v.created_at`).
		Joins("LEFT JOIN eleccions e ON e.id = v.eleccionid").
		Joins("LEFT JOIN candidaturas c ON c.id = v.candidaturaid").
		Joins("LEFT JOIN users cand ON cand.id = c.userid").
		Joins("LEFT JOIN users voter ON voter.id = v.userid")
}

// Insert grava o voto; a unicidade de userid é garantida pelo índice
func (r *VoteRepository) Insert(ctx context.Context, vote *model.Vote) error {
	ctx, span := r.spans.start(ctx, "Insert", "insert",
		attribute.Int64("user.id", int64(vote.UserID)),
		attribute.Int64("eleccion.id", int64(vote.ElectionID)),
		attribute.Int64("candidatura.id", int64(vote.CandidacyID)))
	defer span.End()

	row := &model.VoteEntity{
		UserID:      vote.UserID,
		ElectionID:  vote.ElectionID,
		CandidacyID: vote.CandidacyID,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicateKey(err) {
			span.SetStatus(codes.Error, "vote exists")
			return repository.ErrVoteExists
		}
		recordError(span, err)
		r.logger.Error("falha ao gravar voto", zap.Uint("user_id", vote.UserID), zap.Error(err))
		return fmt.Errorf("falha ao gravar voto: %w", err)
	}

	vote.ID = row.ID
	vote.CreatedAt = row.CreatedAt
	return nil
}

func (r *VoteRepository) ExistsForUser(ctx context.Context, userID uint) (bool, error) {
	ctx, span := r.spans.start(ctx, "ExistsForUser", "select", attribute.Int64("user.id", int64(userID)))
	defer span.End()

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.VoteEntity{}).Where("userid = ?", userID).Limit(1).Count(&count).Error; err != nil {
		recordError(span, err)
		return false, fmt.Errorf("falha ao verificar voto: %w", err)
	}
	return count > 0, nil
}

func (r *VoteRepository) GetByUser(ctx context.Context, userID uint) (*model.Vote, error) {
	ctx, span := r.spans.start(ctx, "GetByUser", "select", attribute.Int64("user.id", int64(userID)))
	defer span.End()

	var row model.VoteEntity
	if err := r.db.WithContext(ctx).Where("userid = ?", userID).First(&row).Error; err != nil {
		if isNotFound(err) {
			recordNotFound(span)
			return nil, repository.ErrVoteNotFound
		}
		recordError(span, err)
		return nil, fmt.Errorf("falha ao buscar voto: %w", err)
	}

	return &model.Vote{
		ID:          row.ID,
		UserID:      row.UserID,
		ElectionID:  row.ElectionID,
		CandidacyID: row.CandidacyID,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func (r *VoteRepository) GetDetail(ctx context.Context, id uint) (*model.VoteDetail, error) {
	ctx, span := r.spans.start(ctx, "GetDetail", "select", attribute.Int64("voto.id", int64(id)))
	defer span.End()

	var rows []voteDetailRow
	if err := r.detailQuery(ctx).Where("v.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("falha ao buscar voto: %w", err)
	}
	if len(rows) == 0 {
		recordNotFound(span)
		return nil, repository.ErrVoteNotFound
	}

	detail := rows[0].toModel()
	return &detail, nil
}

// ListDetails retorna todos os votos em ordem de inserção
func (r *VoteRepository) ListDetails(ctx context.Context) ([]model.VoteDetail, error) {
	ctx, span := r.spans.start(ctx, "ListDetails", "select")
	defer span.End()

	var rows []voteDetailRow
	if err := r.detailQuery(ctx).Order("v.id").Scan(&rows).Error; err != nil {
		recordError(span, err)
		r.logger.Error("falha ao ler votos", zap.Error(err))
		return nil, fmt.Errorf("falha ao ler votos: %w", err)
	}

	out := make([]model.VoteDetail, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	span.SetAttributes(attribute.Int("votos.count", len(out)))
	return out, nil
}

func (r *VoteRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := r.spans.start(ctx, "Delete", "delete", attribute.Int64("voto.id", int64(id)))
	defer span.End()

	result := r.db.WithContext(ctx).Delete(&model.VoteEntity{}, id)
	if result.Error != nil {
		recordError(span, result.Error)
		return fmt.Errorf("falha ao remover voto: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrVoteNotFound
	}
	return nil
}

func (v *voteDetailRow) toModel() model.VoteDetail {
	return model.VoteDetail{
		ID:                v.ID,
		UserID:            v.UserID,
		VoterUsername:     v.VoterUsername,
		ElectionID:        v.ElectionID,
		ElectionName:      v.ElectionName,
		CandidacyID:       v.CandidacyID,
		CandidateUsername: v.CandidateUsername,
		Proposal:          v.Proposal,
		CreatedAt:         v.CreatedAt,
	}
}
