package http

import (
	"resume-builder/internal/model"
	"resume-builder/internal/section"
)

type createSessionReq struct {
	Template string `json:"template" validate:"omitempty,oneof=blank sample"`
}

type addSectionReq struct {
	Key string `json:"key" validate:"required"`
}

type customSectionReq struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content"`
}

type orderReq struct {
	Order []string `json:"order"`
}

type moveReq struct {
	From *int `json:"from" validate:"required"`
	To   *int `json:"to" validate:"required"`
}

type personalInfoReq struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

func (r personalInfoReq) toModel() model.PersonalInfo {
	return model.PersonalInfo{
		Name:      r.Name,
		Title:     r.Title,
		Email:     r.Email,
		Phone:     r.Phone,
		Location:  r.Location,
		LinkedIn:  r.LinkedIn,
		GitHub:    r.GitHub,
		Portfolio: r.Portfolio,
	}
}

type summaryReq struct {
	Summary string `json:"summary"`
}

// textReq carries a bullet; empty bullets are allowed.
type textReq struct {
	Text string `json:"text"`
}

type skillReq struct {
	Skill string `json:"skill" validate:"required"`
}

type importTextReq struct {
	HTML string `json:"html" validate:"required"`
}

type analyzeReq struct {
	JobDescription string `json:"jobDescription" validate:"required"`
}

type rewriteReq struct {
	Text           string `json:"text" validate:"required"`
	Context        string `json:"context" validate:"required"`
	JobDescription string `json:"jobDescription"`
}

type credentialReq struct {
	APIKey string `json:"apiKey" validate:"required"`
}

type sectionsResp struct {
	Order     []section.Entry `json:"order"`
	Available []string        `json:"available"`
}
