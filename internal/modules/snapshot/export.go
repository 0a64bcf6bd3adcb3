package snapshot

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Exporter assembles full snapshots from the persistence store.
type Exporter struct {
	store      Store
	appVersion string
	buildInfo  map[string]interface{}
	logger     *zap.Logger
}

// ExporterOption customizes an Exporter.
type ExporterOption func(*Exporter)

func WithAppVersion(v string) ExporterOption {
	return func(e *Exporter) { e.appVersion = v }
}

func WithBuildInfo(info map[string]interface{}) ExporterOption {
	return func(e *Exporter) { e.buildInfo = info }
}

func WithExportLogger(logger *zap.Logger) ExporterOption {
	return func(e *Exporter) { e.logger = logger }
}

// NewExporter creates an Exporter over the given store.
func NewExporter(store Store, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		store:      store,
		appVersion: "dev",
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Named("SnapshotExport")
	return e
}

// CreateSnapshot builds a fresh document at CurrentSchemaVersion from every
// registered section. Sections never populated export as null; sensitive
// settings fields are stripped; excluded keys are never consulted at all.
func (e *Exporter) CreateSnapshot(ctx context.Context) (Document, error) {
	raw, err := e.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	doc := Document{
		FieldSchemaVersion: CurrentSchemaVersion,
		FieldExportDate:    time.Now().UTC().Format(time.RFC3339),
		FieldAppVersion:    e.appVersion,
	}
	if e.buildInfo != nil {
		doc[FieldBuildInfo] = e.buildInfo
	}

	stats := map[string]interface{}{}

	for i := range Sections {
		section := &Sections[i]
		value := raw[section.Key]

		if value == nil {
			doc[string(section.Key)] = nil
			continue
		}

		switch section.Kind {
		case KindScalarInt:
			n, err := strconv.Atoi(*value)
			if err != nil {
				e.logger.Warn("stored scalar is not numeric, exporting null",
					zap.String("section", string(section.Key)), zap.Error(err))
				doc[string(section.Key)] = nil
				continue
			}
			doc[string(section.Key)] = n

		case KindScalarString:
			doc[string(section.Key)] = *value

		default:
			payload := *value
			if section.Key == SectionSettings {
				clean, ok := stripSettingsPayload(payload, e.logger)
				if !ok {
					doc[string(section.Key)] = nil
					continue
				}
				payload = clean
			}
			doc[string(section.Key)] = payload

			if section.StatLabel != "" && section.decode != nil {
				count, err := section.decode([]byte(payload))
				if err != nil {
					e.logger.Warn("stored section payload failed to decode for statistics",
						zap.String("section", string(section.Key)), zap.Error(err))
					continue
				}
				if section.Kind == KindObject {
					stats[section.StatLabel] = count > 0
				} else {
					stats[section.StatLabel] = count
				}
			}
		}
	}

	doc[FieldStatistics] = stats
	return doc, nil
}

// CreateSnapshotDocument serializes a fresh snapshot into the primary export
// container: a compressed archive holding the canonical JSON entry.
func (e *Exporter) CreateSnapshotDocument(ctx context.Context) ([]byte, error) {
	text, err := e.snapshotText(ctx)
	if err != nil {
		return nil, err
	}
	return Encode(text)
}

// CreateSnapshotText serializes a fresh snapshot as bare JSON text, the
// secondary container for platforms without archive support.
func (e *Exporter) CreateSnapshotText(ctx context.Context) ([]byte, error) {
	text, err := e.snapshotText(ctx)
	if err != nil {
		return nil, err
	}
	return EncodePlain(text), nil
}

func (e *Exporter) snapshotText(ctx context.Context) (string, error) {
	doc, err := e.CreateSnapshot(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// sensitiveSettingsFields are settings object fields that must never appear
// in an exported artifact.
var sensitiveSettingsFields = []string{"api_key", "backup_folder_uri"}

// stripSettingsPayload removes credential and folder-handle fields from an
// exported settings payload. The strip operates on the raw object rather
// than the typed struct so unknown extra fields survive and the sensitive
// ones are removed even from payloads written by other schema revisions.
func stripSettingsPayload(payload string, logger *zap.Logger) (string, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &obj); err != nil {
		logger.Warn("settings payload failed to decode during export strip, exporting null", zap.Error(err))
		return "", false
	}
	for _, field := range sensitiveSettingsFields {
		delete(obj, field)
	}
	clean, err := json.Marshal(obj)
	if err != nil {
		return "", false
	}
	return string(clean), true
}
