package dto

type ApplyRequest struct {
	PositionID  string `json:"position_id" binding:"required,uuid"`
	CoverLetter string `json:"cover_letter"`
	ResumePath  string `json:"resume_path"`
}
