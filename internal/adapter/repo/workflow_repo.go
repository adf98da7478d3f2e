package repo

import (
	"context"

	"donorpath/internal/domain"
	"donorpath/internal/infra"
	"donorpath/internal/sqlinline"
)

// WorkflowResponseRepositoryPG persists questionnaire answers. An answer
// is unique per (donor, user, step, question); saving again replaces it.
type WorkflowResponseRepositoryPG struct {
	db infra.SQLExecutor
}

func NewWorkflowResponseRepository(db infra.SQLExecutor) *WorkflowResponseRepositoryPG {
	return &WorkflowResponseRepositoryPG{db: db}
}

func (r *WorkflowResponseRepositoryPG) ListByDonor(ctx context.Context, donorID, userID string) ([]domain.WorkflowResponse, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListWorkflowResponses, donorID, userID)
	if err != nil {
		return nil, classify("list workflow responses", err)
	}
	defer rows.Close()

	var responses []domain.WorkflowResponse
	for rows.Next() {
		var wr domain.WorkflowResponse
		if err := rows.Scan(&wr.ID, &wr.DonorID, &wr.UserID, &wr.StepID, &wr.QuestionID, &wr.Response, &wr.CreatedAt, &wr.UpdatedAt); err != nil {
			return nil, classify("scan workflow response", err)
		}
		responses = append(responses, wr)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list workflow responses", err)
	}
	return responses, nil
}

func (r *WorkflowResponseRepositoryPG) Save(ctx context.Context, resp *domain.WorkflowResponse) error {
	row := r.db.QueryRow(ctx, sqlinline.QUpsertWorkflowResponse,
		resp.DonorID, resp.UserID, resp.StepID, resp.QuestionID, resp.Response)
	if err := row.Scan(&resp.ID, &resp.DonorID, &resp.UserID, &resp.StepID, &resp.QuestionID, &resp.Response, &resp.CreatedAt, &resp.UpdatedAt); err != nil {
		return classify("save workflow response", err)
	}
	return nil
}

var _ domain.WorkflowResponseRepository = (*WorkflowResponseRepositoryPG)(nil)
