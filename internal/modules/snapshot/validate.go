package snapshot

// ValidateImportCandidate is the minimal admission gate run before any
// migration: the document must be a non-empty map carrying either a numeric
// schema version or a recognizable legacy shape. It rejects garbage early so
// the user sees "not a backup" instead of a migration stack trace.
func ValidateImportCandidate(doc Document) bool {
	if len(doc) == 0 {
		return false
	}
	if _, ok := doc.Version(); ok {
		return true
	}
	return IsLegacyFormat(doc)
}

// ValidateStructure is the post-migration sanity check: the document must be
// at the current version, every registered section key must be present (null
// is fine, absent is not — migration introduces defaults), and metadata
// fields must have their primitive types. Section contents are not inspected
// here; per-section deserialization during import is independently fault
// isolated.
func ValidateStructure(doc Document) bool {
	v, ok := doc.Version()
	if !ok || v != CurrentSchemaVersion {
		return false
	}

	for i := range Sections {
		if _, present := doc[string(Sections[i].Key)]; !present {
			return false
		}
	}

	if raw, ok := doc[FieldExportDate]; ok && raw != nil {
		if _, isString := raw.(string); !isString {
			return false
		}
	}
	if raw, ok := doc[FieldAppVersion]; ok && raw != nil {
		if _, isString := raw.(string); !isString {
			return false
		}
	}
	if raw, ok := doc[FieldBuildInfo]; ok && raw != nil {
		if _, isMap := raw.(map[string]interface{}); !isMap {
			return false
		}
	}
	if raw, ok := doc[FieldStatistics]; ok && raw != nil {
		if _, isMap := raw.(map[string]interface{}); !isMap {
			return false
		}
	}

	return true
}
