package api

import "github.com/jask/communitydash/internal/database/repository"

type communityPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	UseCase     *string `json:"use_case,omitempty"`
}

type communityJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toCommunityJSON(c repository.Community) communityJSON {
	return communityJSON{ID: c.ID, Name: c.Name, Description: c.Description}
}

type scorerJSON struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type scorersResponse struct {
	OK            bool         `json:"ok"`
	CurrentScorer string       `json:"current_scorer"`
	Scorers       []scorerJSON `json:"scorers"`
}

type scorerPayload struct {
	ScorerType string `json:"scorer_type"`
}

type okResponse struct {
	OK bool `json:"ok"`
}
