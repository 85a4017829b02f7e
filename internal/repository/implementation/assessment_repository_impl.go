package implementation

import (
	"context"

	"knowthee-be/internal/entity"
	"knowthee-be/internal/mapper"
	"knowthee-be/internal/model"
	"knowthee-be/internal/repository/contract"
	"knowthee-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssessmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AssessmentMapper
}

func NewAssessmentRepository(db *gorm.DB) contract.AssessmentRepository {
	return &AssessmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewAssessmentMapper(),
	}
}

func (r *AssessmentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AssessmentRepositoryImpl) Create(ctx context.Context, assessment *entity.Assessment) error {
	m := r.mapper.ToModel(assessment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*assessment = *r.mapper.ToEntity(m)
	return nil
}

func (r *AssessmentRepositoryImpl) CreateHoganScores(ctx context.Context, scores []*entity.HoganScore) error {
	if len(scores) == 0 {
		return nil
	}
	models := make([]*model.HoganScore, len(scores))
	for i, s := range scores {
		models[i] = &model.HoganScore{
			Id:           s.Id,
			AssessmentId: s.AssessmentId,
			Trait:        s.Trait,
			Score:        s.Score,
		}
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		scores[i].Id = m.Id
	}
	return nil
}

func (r *AssessmentRepositoryImpl) CreateIDIScores(ctx context.Context, scores []*entity.IDIScore) error {
	if len(scores) == 0 {
		return nil
	}
	models := make([]*model.IDIScore, len(scores))
	for i, s := range scores {
		models[i] = &model.IDIScore{
			Id:           s.Id,
			AssessmentId: s.AssessmentId,
			Category:     s.Category,
			Dimension:    s.Dimension,
			Score:        s.Score,
		}
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		scores[i].Id = m.Id
	}
	return nil
}

func (r *AssessmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Assessment, error) {
	var models []*model.Assessment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AssessmentRepositoryImpl) DeleteByEmployeeId(ctx context.Context, employeeId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("employee_id = ?", employeeId).Delete(&model.Assessment{}).Error
}

type traitScoreRow struct {
	EmployeeId   uuid.UUID
	EmployeeName string
	Trait        string
	Score        float64
}

func rowsToEntities(rows []traitScoreRow) []*entity.EmployeeTraitScore {
	out := make([]*entity.EmployeeTraitScore, len(rows))
	for i, row := range rows {
		out[i] = &entity.EmployeeTraitScore{
			EmployeeId:   row.EmployeeId,
			EmployeeName: row.EmployeeName,
			Trait:        row.Trait,
			Score:        row.Score,
		}
	}
	return out
}

// isHoganType reports whether the assessment type names one of the three
// Hogan instruments.
func isHoganType(assessmentType string) bool {
	switch assessmentType {
	case entity.AssessmentTypeHPI, entity.AssessmentTypeHDS, entity.AssessmentTypeMVPI:
		return true
	}
	return false
}

// hoganJoin scopes hogan_scores rows to live assessments and employees.
func (r *AssessmentRepositoryImpl) hoganJoin(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("hogan_scores").
		Select("employees.id as employee_id, employees.full_name as employee_name, hogan_scores.trait as trait, hogan_scores.score as score").
		Joins("JOIN employee_assessments ON employee_assessments.id = hogan_scores.assessment_id").
		Joins("JOIN employees ON employees.id = employee_assessments.employee_id").
		Where("employee_assessments.deleted_at IS NULL").
		Where("employees.deleted_at IS NULL")
}

func (r *AssessmentRepositoryImpl) idiJoin(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("idi_scores").
		Select("employees.id as employee_id, employees.full_name as employee_name, idi_scores.dimension as trait, idi_scores.score as score").
		Joins("JOIN employee_assessments ON employee_assessments.id = idi_scores.assessment_id").
		Joins("JOIN employees ON employees.id = employee_assessments.employee_id").
		Where("employee_assessments.deleted_at IS NULL").
		Where("employees.deleted_at IS NULL")
}

func (r *AssessmentRepositoryImpl) GetTraitScore(ctx context.Context, employeeId uuid.UUID, trait, assessmentType string) (*entity.EmployeeTraitScore, error) {
	var rows []traitScoreRow
	if assessmentType != entity.AssessmentTypeIDI {
		query := r.hoganJoin(ctx).
			Where("employees.id = ?", employeeId).
			Where("hogan_scores.trait ILIKE ?", trait)
		if isHoganType(assessmentType) {
			query = query.Where("employee_assessments.assessment_type = ?", assessmentType)
		}
		if err := query.Limit(1).Scan(&rows).Error; err != nil {
			return nil, err
		}
	}
	// Fall back to IDI dimensions unless the caller pinned a Hogan
	// instrument.
	if len(rows) == 0 && !isHoganType(assessmentType) {
		err := r.idiJoin(ctx).
			Where("employees.id = ?", employeeId).
			Where("idi_scores.dimension ILIKE ?", trait).
			Limit(1).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowsToEntities(rows)[0], nil
}

func (r *AssessmentRepositoryImpl) GetAllScores(ctx context.Context, employeeId uuid.UUID) ([]*entity.EmployeeTraitScore, error) {
	var hoganRows []traitScoreRow
	err := r.hoganJoin(ctx).
		Where("employees.id = ?", employeeId).
		Order("hogan_scores.trait ASC").
		Scan(&hoganRows).Error
	if err != nil {
		return nil, err
	}

	var idiRows []traitScoreRow
	err = r.idiJoin(ctx).
		Where("employees.id = ?", employeeId).
		Order("idi_scores.dimension ASC").
		Scan(&idiRows).Error
	if err != nil {
		return nil, err
	}

	return rowsToEntities(append(hoganRows, idiRows...)), nil
}

func (r *AssessmentRepositoryImpl) RankByTrait(ctx context.Context, trait, assessmentType string, limit int, desc bool) ([]*entity.EmployeeTraitScore, error) {
	if limit <= 0 {
		limit = 10
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}

	var rows []traitScoreRow
	if assessmentType != entity.AssessmentTypeIDI {
		query := r.hoganJoin(ctx).
			Where("hogan_scores.trait ILIKE ?", trait)
		if isHoganType(assessmentType) {
			query = query.Where("employee_assessments.assessment_type = ?", assessmentType)
		}
		err := query.
			Order("score " + direction + ", employee_id ASC").
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
	}

	if len(rows) == 0 && !isHoganType(assessmentType) {
		err := r.idiJoin(ctx).
			Where("idi_scores.dimension ILIKE ?", trait).
			Order("score " + direction + ", employee_id ASC").
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
	}

	return rowsToEntities(rows), nil
}

func (r *AssessmentRepositoryImpl) FindByCriteria(ctx context.Context, trait, assessmentType string, op contract.CriteriaOp, value float64, limit int) ([]*entity.EmployeeTraitScore, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []traitScoreRow
	if assessmentType != entity.AssessmentTypeIDI {
		comparison := "hogan_scores.score > ?"
		if op == contract.CriteriaLessThan {
			comparison = "hogan_scores.score < ?"
		}
		query := r.hoganJoin(ctx).
			Where("hogan_scores.trait ILIKE ?", trait).
			Where(comparison, value)
		if isHoganType(assessmentType) {
			query = query.Where("employee_assessments.assessment_type = ?", assessmentType)
		}
		err := query.
			Order("score DESC, employee_id ASC").
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
	}

	if len(rows) == 0 && !isHoganType(assessmentType) {
		comparison := "idi_scores.score > ?"
		if op == contract.CriteriaLessThan {
			comparison = "idi_scores.score < ?"
		}
		err := r.idiJoin(ctx).
			Where("idi_scores.dimension ILIKE ?", trait).
			Where(comparison, value).
			Order("score DESC, employee_id ASC").
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
	}

	return rowsToEntities(rows), nil
}
