package reqres

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/denchenko/userdir/internal/core/domain"
	"github.com/denchenko/userdir/internal/log"
	"github.com/denchenko/userdir/internal/metrics"
	"github.com/google/go-querystring/query"
)

// Repository implements the app.Repository interface against the remote user directory API.
// It never caches; see the cached repository for that.
type Repository struct {
	transport Transport
	baseURL   string
	metrics   *metrics.Metrics
}

// NewRepository creates a new directory API repository.
// baseURL must end with a slash; resource paths are appended to it verbatim.
func NewRepository(transport Transport, baseURL string, m *metrics.Metrics) *Repository {
	if m == nil {
		m = metrics.NewNop()
	}

	return &Repository{
		transport: transport,
		baseURL:   baseURL,
		metrics:   m,
	}
}

// GetUserByID fetches a single user. A 404 or an empty data field reports the user as absent.
func (r *Repository) GetUserByID(ctx context.Context, id int) (domain.User, bool, error) {
	resp, err := r.get(ctx, r.baseURL+"users/"+strconv.Itoa(id))
	if err != nil {
		return domain.User{}, false, r.fail(domain.CauseTransport, fmt.Sprintf("error fetching user with ID %d", id), err)
	}

	if resp.StatusCode == http.StatusNotFound {
		log.Warnf("User with ID %d not found", id)

		return domain.User{}, false, nil
	}

	if !isSuccess(resp.StatusCode) {
		return domain.User{}, false, r.failStatus(fmt.Sprintf("error fetching user with ID %d", id), resp.StatusCode)
	}

	var envelope userEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return domain.User{}, false, r.fail(domain.CauseDecode, fmt.Sprintf("invalid data received for user ID %d", id), err)
	}

	if envelope.Data == nil {
		log.Warnf("No data returned for user ID %d", id)

		return domain.User{}, false, nil
	}

	return envelope.Data.toDomain(), true, nil
}

// GetAllUsers walks the listing pages in order and returns every user seen.
// The page count is re-read from each response; a page without data ends the walk early.
// Any failure discards the users accumulated so far.
func (r *Repository) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0)

	for page, totalPages := 1, 1; page <= totalPages; page++ {
		p, ok, err := r.GetPage(ctx, page)
		if err != nil {
			return nil, err
		}

		if !ok {
			log.Warnf("No users found on page %d", page)

			break
		}

		users = append(users, p.Users...)
		totalPages = p.TotalPages
	}

	return users, nil
}

// GetPage fetches one listing page. It reports false when the page carries no data field.
func (r *Repository) GetPage(ctx context.Context, page int) (domain.Page, bool, error) {
	values, err := query.Values(listOptions{Page: page})
	if err != nil {
		return domain.Page{}, false, fmt.Errorf("failed to encode page query: %w", err)
	}

	resp, err := r.get(ctx, r.baseURL+"users?"+values.Encode())
	if err != nil {
		return domain.Page{}, false, r.fail(domain.CauseTransport, "error fetching all users", err)
	}

	if !isSuccess(resp.StatusCode) {
		return domain.Page{}, false, r.failStatus("error fetching all users", resp.StatusCode)
	}

	var envelope listEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return domain.Page{}, false, r.fail(domain.CauseDecode, "invalid data received for users", err)
	}

	r.metrics.PagesFetched.Inc()

	if envelope.Data == nil {
		return domain.Page{}, false, nil
	}

	return envelope.toDomain(), true, nil
}

func (r *Repository) get(ctx context.Context, url string) (*Response, error) {
	header := http.Header{}
	header.Set("Accept", "application/json")

	resp, err := r.transport.Send(ctx, http.MethodGet, url, header)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (r *Repository) fail(cause domain.Cause, op string, err error) *domain.Error {
	log.Errorf("%s: %v", op, err)
	r.metrics.UpstreamErrors.WithLabelValues(cause.String()).Inc()

	return domain.NewExternalAPIError(cause, op, err)
}

func (r *Repository) failStatus(op string, statusCode int) *domain.Error {
	apiErr := r.fail(domain.CauseStatus, op, &domain.StatusError{StatusCode: statusCode})
	apiErr.StatusCode = statusCode

	return apiErr
}

func isSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
