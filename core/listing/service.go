package listing

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/tutoria/core"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat defaults to FormatCSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(core.CleanString(s, true /* lower */)); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", invalidQuery(fieldErr("format", "format must be one of [csv xlsx]"))
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// ExportEvent is published once an export has been serialized.
type ExportEvent struct {
	ID             string                 `json:"id"`
	TenantID       string                 `json:"tenantId"`
	ActorID        string                 `json:"actorId"`
	Resource       string                 `json:"resource"`
	Format         Format                 `json:"format"`
	RowCount       int                    `json:"rowCount"`
	TotalCount     int                    `json:"totalCount"`
	Truncated      bool                   `json:"truncated"`
	Search         string                 `json:"search,omitempty"`
	AppliedFilters map[string]interface{} `json:"appliedFilters"`
	CompletedAt    time.Time              `json:"completedAt"`
}

// EventPublisher is implemented by services/events.
type EventPublisher interface {
	PublishExport(ctx context.Context, evt ExportEvent) error
}

// ExportFile is a serialized export.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
	RowCount    int
	TotalCount  int
	Truncated   bool
}

// Service runs list & export requests for the registered resources.
type Service struct {
	registry *Registry
	parser   *Parser
	executor *Executor
	events   EventPublisher
	logger   core.Logger
	nowFunc  func() time.Time
}

// NewService returns a Service; events may be nil.
func NewService(registry *Registry, parser *Parser, executor *Executor, events EventPublisher, logger core.Logger) *Service {
	return &Service{
		registry: registry,
		parser:   parser,
		executor: executor,
		events:   events,
		logger:   logger,
		nowFunc:  time.Now,
	}
}

func (svc *Service) Registry() *Registry { return svc.registry }

func (svc *Service) prepare(key string, caller core.Caller, raw RawParams) (Resource, Query, error) {
	res, ok := svc.registry.Get(key)
	if !ok {
		return nil, Query{}, errors.Wrapf(ErrUnknownResource, "resource %q", key)
	}
	if caller.TenantID == "" {
		return nil, Query{}, ErrNoTenant
	}
	q, err := svc.parser.Parse(raw, res.Contract())
	if err != nil {
		return nil, Query{}, err
	}
	return res, q, nil
}

// List returns one page of the resource key, scoped to the caller's tenant.
func (svc *Service) List(ctx context.Context, key string, caller core.Caller, raw RawParams) (Result, error) {
	res, q, err := svc.prepare(key, caller, raw)
	if err != nil {
		return Result{}, err
	}
	return svc.executor.Execute(ctx, res, caller.TenantID, q)
}

// Export serializes what List would show (all pages, up to the export cap) in format.
func (svc *Service) Export(ctx context.Context, key string, caller core.Caller, raw RawParams, format Format) (ExportFile, error) {
	res, q, err := svc.prepare(key, caller, raw)
	if err != nil {
		return ExportFile{}, err
	}
	result, err := svc.executor.ExecuteExport(ctx, res, caller.TenantID, q)
	if err != nil {
		return ExportFile{}, err
	}

	var buf bytes.Buffer
	switch format {
	case FormatXLSX:
		err = WriteXLSX(&buf, key, res.Columns(), result.Rows)
	default:
		format = FormatCSV
		err = WriteCSV(&buf, res.Columns(), result.Rows)
	}
	if err != nil {
		return ExportFile{}, errors.Wrapf(err, "serializing %s export", key)
	}

	now := svc.nowFunc().UTC()
	file := ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", key, now.Format("20060102"), format),
		ContentType: format.ContentType(),
		Content:     buf.Bytes(),
		RowCount:    len(result.Rows),
		TotalCount:  result.TotalCount,
		Truncated:   result.Truncated(),
	}

	svc.publish(ctx, caller, ExportEvent{
		ID:             uuid.New().String(),
		TenantID:       caller.TenantID,
		ActorID:        caller.UserID,
		Resource:       key,
		Format:         format,
		RowCount:       file.RowCount,
		TotalCount:     file.TotalCount,
		Truncated:      file.Truncated,
		Search:         result.Search,
		AppliedFilters: result.AppliedFilters,
		CompletedAt:    now,
	})
	return file, nil
}

// publish never fails the export: the file is already built.
func (svc *Service) publish(ctx context.Context, caller core.Caller, evt ExportEvent) {
	if svc.events == nil {
		return
	}
	if err := svc.events.PublishExport(ctx, evt); err != nil && svc.logger != nil {
		msg := fmt.Sprintf("publishing export event %s", evt.ID)
		svc.logger.Error(msg, errors.Wrap(err, msg), caller)
	}
}
