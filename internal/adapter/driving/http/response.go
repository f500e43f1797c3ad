package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/devfolio/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// PortfolioResponse is the JSON representation of a loaded portfolio.
type PortfolioResponse struct {
	Username string               `json:"username"`
	Profile  *ProfileResponse     `json:"profile,omitempty"`
	Repos    []RepositoryResponse `json:"repos"`
	Notice   *NoticeResponse      `json:"notice,omitempty"`
}

// ProfileResponse is the JSON representation of a GitHub profile.
type ProfileResponse struct {
	Login       string `json:"login"`
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	HTMLURL     string `json:"html_url,omitempty"`
}

// RepositoryResponse is the JSON representation of one repository.
type RepositoryResponse struct {
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stargazers_count"`
	PushedAt    string `json:"pushed_at,omitempty"`
}

// NoticeResponse is the JSON representation of a degraded-mode notice.
type NoticeResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Fatal   bool   `json:"fatal"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
	Error  string `json:"error,omitempty"`
}

func toProfileResponse(p model.Profile) *ProfileResponse {
	return &ProfileResponse{
		Login:       p.Login,
		Name:        p.Name,
		DisplayName: p.DisplayName(),
		Bio:         p.Bio,
		AvatarURL:   p.AvatarURL,
		HTMLURL:     p.HTMLURL,
	}
}

func toRepositoryResponses(repos []model.RepositoryEntry) []RepositoryResponse {
	resp := make([]RepositoryResponse, 0, len(repos))
	for _, r := range repos {
		resp = append(resp, RepositoryResponse{
			Name:        r.Name,
			HTMLURL:     r.HTMLURL,
			Description: r.Description,
			Language:    r.Language,
			Stars:       r.Stars,
			PushedAt:    r.PushedAt,
		})
	}
	return resp
}

func toNoticeResponse(n model.Notice) *NoticeResponse {
	return &NoticeResponse{
		Message: n.Message,
		Detail:  n.Detail,
		Fatal:   n.Fatal,
	}
}
