package submission

import "onionornot/internal/models"

type SaveSubmissionsInput struct {
	Submissions []models.SubmissionRecord
}

type ListSubmissionsInput struct {
}

type ListSubmissionsOutput struct {
	Submissions []models.SubmissionRecord
}
