package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/wellspring-app/core/internal/models"
	"go.uber.org/zap"
)

// Importer restores snapshots into the persistence store with per-section
// fault isolation: one corrupt section is recorded and skipped, never
// aborting its siblings.
type Importer struct {
	store  Store
	logger *zap.Logger
}

// NewImporter creates an Importer over the given store.
func NewImporter(store Store, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{store: store, logger: logger.Named("SnapshotImport")}
}

// RestoreFromBytes runs the full import pipeline: container decode, legacy
// bridge, admission validation, version gate, migration, structural
// validation, then the per-section resilient restore. Fatal errors before
// the section loop produce a completely failed outcome with no writes.
func (im *Importer) RestoreFromBytes(ctx context.Context, data []byte) *ImportOutcome {
	text, err := Decode(data)
	if err != nil {
		im.logger.Warn("backup container decode failed", zap.Error(err))
		return failedOutcome(err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		ferr := &FormatError{Reason: "document is not valid JSON", Err: err}
		im.logger.Warn("backup document parse failed", zap.Error(err))
		return failedOutcome(ferr)
	}

	if IsLegacyFormat(doc) {
		bridged, err := MigrateLegacy(doc)
		if err != nil {
			im.logger.Warn("legacy bridge failed", zap.Error(err))
			return failedOutcome(err)
		}
		doc = bridged
		im.logger.Info("legacy backup bridged to v1")
	}

	if !ValidateImportCandidate(doc) {
		return failedOutcome(&ValidationError{
			Reason: "file is not a recognizable backup; it may be corrupted or from an incompatible app",
		})
	}

	version, _ := doc.Version()
	if version > CurrentSchemaVersion {
		err := &IncompatibleVersionError{Found: version, Current: CurrentSchemaVersion}
		im.logger.Warn("backup schema is newer than this build",
			zap.Int("found", version), zap.Int("current", CurrentSchemaVersion))
		return failedOutcome(err)
	}

	if version < CurrentSchemaVersion {
		migrated, err := Migrate(doc)
		if err != nil {
			im.logger.Warn("backup migration failed", zap.Error(err))
			return failedOutcome(err)
		}
		doc = migrated
		im.logger.Info("backup migrated", zap.Int("from", version), zap.Int("to", CurrentSchemaVersion))
	}

	if !ValidateStructure(doc) {
		return failedOutcome(&ValidationError{
			Reason: "backup structure is invalid after migration; the file may be corrupted",
		})
	}

	outcome := &ImportOutcome{}
	for i := range Sections {
		section := &Sections[i]
		value, present := doc[string(section.Key)]
		if !present || value == nil {
			// Old backups predate newer sections; nothing to restore.
			continue
		}

		count, err := im.importSection(ctx, section, value)
		if err != nil {
			serr := &SectionImportError{Section: section.Key, Err: err}
			im.logger.Warn("section restore failed, continuing with siblings",
				zap.String("section", string(section.Key)), zap.Error(err))
			outcome.Items = append(outcome.Items, ImportItemResult{
				SectionKey:   section.Key,
				Success:      false,
				ErrorMessage: serr.Error(),
			})
			continue
		}
		outcome.Items = append(outcome.Items, ImportItemResult{
			SectionKey:  section.Key,
			Success:     true,
			RecordCount: count,
		})
	}

	outcome.finalize()
	im.logger.Info("restore finished",
		zap.Bool("overall_success", outcome.OverallSuccess),
		zap.Bool("partial_failure", outcome.PartialFailure),
		zap.String("summary", outcome.Message))
	return outcome
}

// importSection deserializes one section's payload and writes it to the
// store. Every failure mode surfaces as an error for the caller to record;
// nothing here may touch another section.
func (im *Importer) importSection(ctx context.Context, section *Section, value interface{}) (int, error) {
	switch section.Kind {
	case KindScalarInt:
		n, err := scalarInt(value)
		if err != nil {
			return 0, err
		}
		payload := strconv.Itoa(n)
		return 0, im.store.Save(ctx, section.Key, &payload)

	case KindScalarString:
		s, ok := value.(string)
		if !ok {
			return 0, fmt.Errorf("expected string payload, got %T", value)
		}
		return 0, im.store.Save(ctx, section.Key, &s)

	case KindObject:
		payload, ok := value.(string)
		if !ok {
			return 0, fmt.Errorf("expected encoded object payload, got %T", value)
		}
		if section.Key == SectionSettings {
			return im.importSettings(ctx, payload)
		}
		if _, err := section.decode([]byte(payload)); err != nil {
			return 0, err
		}
		return 1, im.store.Save(ctx, section.Key, &payload)

	default: // KindList
		payload, ok := value.(string)
		if !ok {
			return 0, fmt.Errorf("expected encoded list payload, got %T", value)
		}
		count, err := section.decode([]byte(payload))
		if err != nil {
			return 0, err
		}
		return count, im.store.Save(ctx, section.Key, &payload)
	}
}

// importSettings merges the imported settings object instead of overwriting:
// imported fields populate the result, then the locally-held fields are
// forced back to their current values and the folder-access handle is
// dropped no matter what the import carried. Imported data must never
// downgrade device-local security or backup configuration.
func (im *Importer) importSettings(ctx context.Context, payload string) (int, error) {
	var imported models.Settings
	if err := json.Unmarshal([]byte(payload), &imported); err != nil {
		return 0, err
	}

	var local models.Settings
	if raw, err := im.store.Load(ctx, SectionSettings); err != nil {
		return 0, err
	} else if raw != nil {
		if err := json.Unmarshal([]byte(*raw), &local); err != nil {
			im.logger.Warn("local settings unreadable during merge, treating as defaults", zap.Error(err))
			local = models.Settings{}
		}
	}

	merged := imported
	merged.APIKey = local.APIKey
	merged.OnboardingCompleted = local.OnboardingCompleted
	merged.AutoBackupEnabled = local.AutoBackupEnabled
	merged.BackupFolderURI = ""

	encoded, err := json.Marshal(merged)
	if err != nil {
		return 0, err
	}
	out := string(encoded)
	return 1, im.store.Save(ctx, SectionSettings, &out)
}

func scalarInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer payload, got fraction %v", v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("expected integer payload, got %T", value)
	}
}
