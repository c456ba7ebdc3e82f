package locize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"locize-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// maxErrorBody bounds the response excerpt carried in errors.
const maxErrorBody = 200

// Config holds the locize project coordinates.
type Config struct {
	BaseURL   string
	ProjectID string
	APIKey    string
	Version   string
	Namespace string
	Timeout   time.Duration
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.Status, e.Body)
}

// Store talks to the locize API.
type Store struct {
	cfg    Config
	client *fiber.Client
	logger *zap.Logger
}

// NewStore creates a locize store.
func NewStore(cfg Config, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Version == "" {
		cfg.Version = "latest"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Store{
		cfg:    cfg,
		client: &fiber.Client{UserAgent: "locize-sync"},
		logger: logger,
	}
}

// Name returns the backend name.
func (s *Store) Name() string {
	return "locize"
}

// Languages fetches the project's languages in the order locize returns them.
func (s *Store) Languages(ctx context.Context) (reconcile.Languages, error) {
	endpoint := s.endpoint("languages", s.cfg.ProjectID)

	status, body, err := s.do(ctx, s.client.Get(endpoint))
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, statusError(fiber.MethodGet, endpoint, status, body)
	}

	return reconcile.ParseLanguages(body)
}

// Resources fetches the namespace of one language. 404 is an empty namespace.
func (s *Store) Resources(ctx context.Context, code string) (map[string]any, error) {
	endpoint := s.endpoint(s.cfg.ProjectID, s.cfg.Version, code, s.cfg.Namespace)

	status, body, err := s.do(ctx, s.client.Get(endpoint))
	if err != nil {
		return nil, err
	}
	if status == fiber.StatusNotFound {
		return map[string]any{}, nil
	}
	if !isSuccess(status) {
		return nil, statusError(fiber.MethodGet, endpoint, status, body)
	}

	doc := map[string]any{}
	if len(strings.TrimSpace(string(body))) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse namespace %s/%s: %w", code, s.cfg.Namespace, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// AddMissing posts entries to the missing endpoint as a flat object.
func (s *Store) AddMissing(ctx context.Context, code string, entries reconcile.ActionSet) error {
	endpoint := s.endpoint("missing", s.cfg.ProjectID, s.cfg.Version, code, s.cfg.Namespace)

	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}

	agent := s.client.Post(endpoint).
		Set(fiber.HeaderAuthorization, "Bearer "+s.cfg.APIKey).
		ContentType(fiber.MIMEApplicationJSON).
		Body(payload)

	status, body, err := s.do(ctx, agent)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return statusError(fiber.MethodPost, endpoint, status, body)
	}

	s.logger.Debug("Posted missing keys", zap.String("language", code), zap.Int("count", len(entries)))
	return nil
}

// do sends the request, bounded by the configured timeout and ctx's deadline.
func (s *Store) do(ctx context.Context, agent *fiber.Agent) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(agent)
		return 0, nil, err
	}

	timeout := s.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	status, body, errs := agent.Timeout(timeout).Bytes()
	if len(errs) > 0 {
		return 0, nil, fmt.Errorf("locize request failed: %w", errors.Join(errs...))
	}
	return status, body, nil
}

func (s *Store) endpoint(segments ...string) string {
	escaped := make([]string, 0, len(segments)+1)
	escaped = append(escaped, s.cfg.BaseURL)
	for _, segment := range segments {
		escaped = append(escaped, url.PathEscape(segment))
	}
	return strings.Join(escaped, "/")
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func statusError(method, endpoint string, status int, body []byte) error {
	excerpt := strings.TrimSpace(string(body))
	if len(excerpt) > maxErrorBody {
		excerpt = excerpt[:maxErrorBody] + "..."
	}
	return &StatusError{Method: method, URL: endpoint, Status: status, Body: excerpt}
}
