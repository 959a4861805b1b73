package oracle

import (
	"encoding/json"
	"time"

	apperrors "github.com/zatekoja/projectapi-e2e/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// normalize turns driver values into plain JSON values: object ids become
// hex strings, dates RFC 3339 strings, documents maps.
func normalize(v any) any {
	switch val := v.(type) {
	case primitive.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case primitive.M:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case primitive.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339Nano)
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case primitive.Decimal128:
		return val.String()
	case primitive.Null, primitive.Undefined:
		return nil
	default:
		return val
	}
}

// rename moves keys of a normalized document to the names the entities use
func rename(doc map[string]any, from, to string) {
	if v, ok := doc[from]; ok {
		delete(doc, from)
		doc[to] = v
	}
}

// projectDocument maps a stored project or template onto its API field names
func projectDocument(raw bson.M) map[string]any {
	doc := normalize(raw).(map[string]any)
	rename(doc, "_id", "id")
	// the stored report reference is an id; Report holds the resolved object
	if ref, ok := doc["report"].(string); ok {
		doc["reportID"] = ref
	}
	delete(doc, "report")
	return doc
}

// reportDocument maps a stored report onto its API field names
func reportDocument(raw bson.M) map[string]any {
	doc := normalize(raw).(map[string]any)
	rename(doc, "_id", "id")
	rename(doc, "project", "projectID")
	if snap, ok := doc["projectSnapshot"].(map[string]any); ok {
		rename(snap, "_id", "id")
		if ref, ok := snap["report"].(string); ok {
			snap["reportID"] = ref
		}
		delete(snap, "report")
	}
	return doc
}

// decode converts a normalized document into out through the same JSON
// decoding the API responses go through
func decode(doc map[string]any, out any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return apperrors.NewDecodeError("encode stored document", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return apperrors.NewDecodeError("decode stored document", err)
	}
	return nil
}
