package reqres

import "github.com/denchenko/userdir/internal/core/domain"

type apiUser struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Avatar    *string `json:"avatar"`
}

type support struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// userEnvelope is the body of GET users/{id}.
type userEnvelope struct {
	Data    *apiUser `json:"data"`
	Support *support `json:"support"`
}

// listEnvelope is the body of GET users?page=n. A null or missing data field decodes to a nil slice.
type listEnvelope struct {
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
	Total      int       `json:"total"`
	TotalPages int       `json:"total_pages"`
	Data       []apiUser `json:"data"`
	Support    *support  `json:"support"`
}

type listOptions struct {
	Page int `url:"page"`
}

func (u apiUser) toDomain() domain.User {
	user := domain.User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if u.Avatar != nil {
		user.Avatar = *u.Avatar
	}

	return user
}

func (e listEnvelope) toDomain() domain.Page {
	users := make([]domain.User, 0, len(e.Data))
	for _, u := range e.Data {
		users = append(users, u.toDomain())
	}

	return domain.Page{
		Number:     e.Page,
		PerPage:    e.PerPage,
		Total:      e.Total,
		TotalPages: e.TotalPages,
		Users:      users,
	}
}
