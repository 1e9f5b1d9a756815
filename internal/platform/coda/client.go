package coda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mfbarros/errata/internal/config"
	"github.com/mfbarros/errata/internal/domain"
	"github.com/mfbarros/errata/internal/redact"
)

const (
	// DefaultBaseURL is the public Coda REST API root.
	DefaultBaseURL = "https://coda.io/apis/v1"

	// pageSize is the maximum batch size the Coda list-rows endpoint
	// accepts per request.
	pageSize = 25

	// defaultTimeout bounds every round trip to the API.
	defaultTimeout = 10 * time.Second

	// doneColumnID is the column identifier of the "Flashcard Criado"
	// flag. Cell patches address columns by id, not by name.
	doneColumnID = "c-YGQq5IUq3f"

	// pendingQuery selects rows that have not been flashcarded yet.
	pendingQuery = "Flashcard Criado:false"
)

// Column names of the study-error table, as configured in the Coda doc.
const (
	colSubject    = "Assunto"
	colExam       = "Concurso"
	colDiscipline = "Disciplina"
	colResolution = "Resolução"
	colDone       = "Flashcard Criado"
	colErrorType  = "Tipo de Erro"
	colTask       = "Tarefa"
	colActivity   = "Atividade"
	colCreatedAt  = "Criado em"
)

// Client wraps the Coda.io rows API for one document table.
type Client struct {
	baseURL    string
	apiKey     string
	docID      string
	tableID    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Coda client from the application configuration.
// If logger is nil, the default logger is used.
func NewClient(cfg config.CodaConfig, logger *slog.Logger) *Client {
	return NewClientWithBaseURL(cfg, DefaultBaseURL, logger)
}

// NewClientWithBaseURL creates a Coda client pointed at a custom API
// root. Tests use this to target a local server.
func NewClientWithBaseURL(cfg config.CodaConfig, baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		docID:   cfg.DocID,
		tableID: cfg.TableID,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger.With(slog.String("component", "coda_client")),
	}
}

// rowsPath returns the API path of the table's rows collection.
func (c *Client) rowsPath() string {
	return fmt.Sprintf("docs/%s/tables/%s/rows", c.docID, c.tableID)
}

// listRowsResponse is the shape of the list-rows endpoint response.
type listRowsResponse struct {
	Items []rowPayload `json:"items"`
}

// rowPayload is one row as returned by the API with useColumnNames set.
type rowPayload struct {
	ID     string         `json:"id"`
	Values map[string]any `json:"values"`
}

// doRequest performs one authorized round trip and decodes the JSON
// response into out (when out is non-nil). Non-2xx statuses and
// malformed bodies are reported as ErrRequestFailed.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body, out any) error {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, path)
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal request body: %v", ErrRequestFailed, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Coda API returned an error status",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"body", redact.String(string(respBody)))
		return fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrRequestFailed, err)
	}

	return nil
}

// listQuery returns the query parameters shared by every row listing.
func listQuery() url.Values {
	q := url.Values{}
	q.Set("useColumnNames", "true")
	q.Set("valueFormat", "simple")
	return q
}

// FetchPending retrieves up to limit records that have not been
// flashcarded yet, paging through the table in batches of up to 25
// rows. A page shorter than requested signals exhaustion and stops the
// loop without an extra request. Transport failures propagate as
// ErrRequestFailed.
func (c *Client) FetchPending(ctx context.Context, limit int) ([]domain.StudyError, error) {
	records := make([]domain.StudyError, 0, limit)
	offset := 0

	for len(records) < limit {
		remaining := limit - len(records)
		batchSize := pageSize
		if remaining < batchSize {
			batchSize = remaining
		}

		q := listQuery()
		q.Set("query", pendingQuery)
		q.Set("limit", strconv.Itoa(batchSize))
		q.Set("offset", strconv.Itoa(offset))

		var page listRowsResponse
		if err := c.doRequest(ctx, http.MethodGet, c.rowsPath(), q, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list pending rows: %w", err)
		}

		for _, row := range page.Items {
			records = append(records, c.recordFromRow(ctx, row.ID, row.Values))
		}

		if len(page.Items) < batchSize {
			break
		}
		offset += batchSize
	}

	c.logger.InfoContext(ctx, "Fetched pending study errors", "count", len(records))
	return records, nil
}

// FetchByDiscipline retrieves up to limit records matching one
// discipline label in a single page, without pagination. Transport
// failures propagate as ErrRequestFailed.
//
// The filter is sent as an inline quoted expression, unlike the
// structured filter FetchPending uses; both forms go to the service
// verbatim.
func (c *Client) FetchByDiscipline(ctx context.Context, discipline string, limit int) ([]domain.StudyError, error) {
	q := listQuery()
	q.Set("query", fmt.Sprintf("%q:%q", colDiscipline, discipline))
	q.Set("limit", strconv.Itoa(limit))

	var page listRowsResponse
	if err := c.doRequest(ctx, http.MethodGet, c.rowsPath(), q, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to list rows for discipline %q: %w", discipline, err)
	}

	records := make([]domain.StudyError, 0, len(page.Items))
	for _, row := range page.Items {
		records = append(records, c.recordFromRow(ctx, row.ID, row.Values))
	}

	c.logger.InfoContext(ctx, "Fetched study errors by discipline",
		"discipline", discipline,
		"count", len(records))
	return records, nil
}

// FetchByID retrieves one record by its row identifier. This method
// never fails outward: any transport or parse failure is logged and
// reported as absence.
func (c *Client) FetchByID(ctx context.Context, id string) (*domain.StudyError, bool) {
	path := fmt.Sprintf("%s/%s", c.rowsPath(), id)

	var row struct {
		Values map[string]any `json:"values"`
	}
	if err := c.doRequest(ctx, http.MethodGet, path, listQuery(), nil, &row); err != nil {
		c.logger.ErrorContext(ctx, "Failed to fetch row by ID",
			"row_id", id,
			"error", err)
		return nil, false
	}

	record := c.recordFromRow(ctx, id, row.Values)
	return &record, true
}

// cellValue addresses one cell of a row update by column identifier.
type cellValue struct {
	Column string `json:"column"`
	Value  any    `json:"value"`
}

// cellPatch is the request body of a cell-level row update.
type cellPatch struct {
	Row struct {
		Cells []cellValue `json:"cells"`
	} `json:"row"`
}

// MarkDone flips the record's "Flashcard Criado" flag to true. This
// method never fails outward: failures are logged and reported as
// false so batch runs keep their partial progress.
func (c *Client) MarkDone(ctx context.Context, id string) bool {
	path := fmt.Sprintf("%s/%s", c.rowsPath(), id)

	var patch cellPatch
	patch.Row.Cells = []cellValue{
		{Column: doneColumnID, Value: true},
	}

	if err := c.doRequest(ctx, http.MethodPut, path, nil, patch, nil); err != nil {
		c.logger.ErrorContext(ctx, "Failed to mark record as done",
			"row_id", id,
			"error", err)
		return false
	}

	c.logger.InfoContext(ctx, "Marked record as done", "row_id", id)
	return true
}

// recordFromRow maps one row's cell values to a domain.StudyError.
// A malformed creation date is tolerated: the row is kept with a nil
// timestamp and a warning is logged.
func (c *Client) recordFromRow(ctx context.Context, id string, values map[string]any) domain.StudyError {
	record := domain.StudyError{
		ID:               id,
		Subject:          stringValue(values, colSubject),
		Exam:             stringValue(values, colExam),
		Discipline:       stringValue(values, colDiscipline),
		Resolution:       stringValue(values, colResolution),
		FlashcardCreated: boolValue(values, colDone),
		ErrorType:        stringValue(values, colErrorType),
		Task:             stringValue(values, colTask),
		Activity:         stringValue(values, colActivity),
	}

	if raw := stringValue(values, colCreatedAt); raw != "" {
		createdAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.logger.WarnContext(ctx, "Invalid creation date on row",
				"row_id", id,
				"value", raw)
		} else {
			record.CreatedAt = &createdAt
		}
	}

	return record
}

// stringValue extracts a string cell, returning "" for missing cells
// or non-string values.
func stringValue(values map[string]any, key string) string {
	if v, ok := values[key].(string); ok {
		return v
	}
	return ""
}

// boolValue extracts a boolean cell, returning false for missing cells
// or non-boolean values.
func boolValue(values map[string]any, key string) bool {
	if v, ok := values[key].(bool); ok {
		return v
	}
	return false
}
