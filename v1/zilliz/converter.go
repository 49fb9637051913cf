package zilliz

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"github.com/embedstack/std/v1/vectordb"
)

// ── Filter Conversion ────────────────────────────────────────────────────────
//
// Milvus filters are boolean expression strings rather than structured
// protobuf conditions. The conversion below renders a vectordb.FilterSet
// into one expression:
//
//	must    → all conditions joined with "and"
//	should  → conditions joined with "or", wrapped in parentheses
//	mustNot → the negation of each condition
//
// User-defined metadata fields live inside the JSON "meta" column and are
// addressed as meta["field"].

// buildFilterExpr converts a vectordb.FilterSet to a Milvus filter expression.
// A nil or empty filter set yields the empty string (no filtering).
func buildFilterExpr(filters *vectordb.FilterSet) (string, error) {
	if filters == nil {
		return "", nil
	}

	var clauses []string

	if filters.Must != nil {
		for _, c := range filters.Must.Conditions {
			expr, err := conditionExpr(c)
			if err != nil {
				return "", err
			}
			if expr != "" {
				clauses = append(clauses, expr)
			}
		}
	}

	if filters.Should != nil {
		var alternatives []string
		for _, c := range filters.Should.Conditions {
			expr, err := conditionExpr(c)
			if err != nil {
				return "", err
			}
			if expr != "" {
				alternatives = append(alternatives, expr)
			}
		}
		if len(alternatives) == 1 {
			clauses = append(clauses, alternatives[0])
		} else if len(alternatives) > 1 {
			clauses = append(clauses, "("+strings.Join(alternatives, " or ")+")")
		}
	}

	if filters.MustNot != nil {
		for _, c := range filters.MustNot.Conditions {
			expr, err := conditionExpr(c)
			if err != nil {
				return "", err
			}
			if expr != "" {
				clauses = append(clauses, "not ("+expr+")")
			}
		}
	}

	return strings.Join(clauses, " and "), nil
}

// conditionExpr renders a single filter condition as a Milvus expression.
func conditionExpr(c vectordb.FilterCondition) (string, error) {
	switch cond := c.(type) {
	case *vectordb.MatchCondition:
		key := resolveFieldKey(cond.Field, cond.FieldType)
		val, err := renderValue(cond.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s == %s", key, val), nil

	case *vectordb.MatchAnyCondition:
		if len(cond.Values) == 0 {
			return "", nil
		}
		key := resolveFieldKey(cond.Field, cond.FieldType)
		list, err := renderValueList(cond.Values)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s in %s", key, list), nil

	case *vectordb.MatchExceptCondition:
		if len(cond.Values) == 0 {
			return "", nil
		}
		key := resolveFieldKey(cond.Field, cond.FieldType)
		list, err := renderValueList(cond.Values)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s not in %s", key, list), nil

	case *vectordb.NumericRangeCondition:
		key := resolveFieldKey(cond.Field, cond.FieldType)
		var parts []string
		if cond.Gt != nil {
			parts = append(parts, fmt.Sprintf("%s > %s", key, formatFloat(*cond.Gt)))
		}
		if cond.Gte != nil {
			parts = append(parts, fmt.Sprintf("%s >= %s", key, formatFloat(*cond.Gte)))
		}
		if cond.Lt != nil {
			parts = append(parts, fmt.Sprintf("%s < %s", key, formatFloat(*cond.Lt)))
		}
		if cond.Lte != nil {
			parts = append(parts, fmt.Sprintf("%s <= %s", key, formatFloat(*cond.Lte)))
		}
		return strings.Join(parts, " and "), nil

	default:
		return "", fmt.Errorf("[Zilliz] unsupported filter condition %T", c)
	}
}

// resolveFieldKey returns the expression path for a field.
// Internal fields: "id" -> id
// User fields: "app_id" -> meta["app_id"]
func resolveFieldKey(key string, fieldType vectordb.FieldType) string {
	if fieldType == vectordb.UserField {
		return fmt.Sprintf("%s[%s]", fieldMeta, quoteString(key))
	}
	return key
}

// renderValue renders a Go value as a Milvus expression literal.
func renderValue(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return quoteString(val), nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return formatFloat(val), nil
	default:
		return "", fmt.Errorf("[Zilliz] unsupported filter value type %T", v)
	}
}

func renderValueList(values []any) (string, error) {
	rendered := make([]string, len(values))
	for i, v := range values {
		s, err := renderValue(v)
		if err != nil {
			return "", err
		}
		rendered[i] = s
	}
	return "[" + strings.Join(rendered, ", ") + "]", nil
}

// quoteString escapes and double-quotes a string literal for use in an
// expression.
func quoteString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ── Document Conversion ──────────────────────────────────────────────────────

// buildColumns converts a batch of documents into the column layout of the
// collection schema (id, text, meta, vector).
func buildColumns(docs []vectordb.Document) ([]column.Column, error) {
	ids := make([]string, len(docs))
	texts := make([]string, len(docs))
	metas := make([][]byte, len(docs))
	vectors := make([][]float32, len(docs))

	dim := 0
	for i, doc := range docs {
		ids[i] = doc.ID
		texts[i] = doc.Text
		vectors[i] = doc.Vector

		if dim == 0 {
			dim = len(doc.Vector)
		}

		meta := doc.Meta
		if meta == nil {
			meta = map[string]any{}
		}
		raw, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("[Zilliz] failed to encode metadata for '%s': %w", doc.ID, err)
		}
		metas[i] = raw
	}

	return []column.Column{
		column.NewColumnVarChar(fieldID, ids),
		column.NewColumnVarChar(fieldText, texts),
		column.NewColumnJSONBytes(fieldMeta, metas),
		column.NewColumnFloatVector(fieldVector, dim, vectors),
	}, nil
}

// ── Result Conversion ────────────────────────────────────────────────────────

// extractTexts pulls the stored text of every match out of one result set,
// preserving the backend's ranking order.
func extractTexts(set milvusclient.ResultSet) ([]string, error) {
	if set.ResultCount == 0 {
		return []string{}, nil
	}

	col := set.GetColumn(fieldText)
	if col == nil {
		return nil, ErrMissingTextField
	}

	texts := make([]string, 0, set.ResultCount)
	for i := 0; i < set.ResultCount; i++ {
		text, err := col.GetAsString(i)
		if err != nil {
			return nil, fmt.Errorf("[Zilliz] failed to read text at %d: %w", i, err)
		}
		texts = append(texts, text)
	}
	return texts, nil
}

// convertResults shapes raw result sets into scored results with payloads,
// one slice per query vector.
func convertResults(sets []milvusclient.ResultSet) ([][]vectordb.SearchResult, error) {
	results := make([][]vectordb.SearchResult, 0, len(sets))

	for _, set := range sets {
		converted := make([]vectordb.SearchResult, 0, set.ResultCount)

		textCol := set.GetColumn(fieldText)
		metaCol := set.GetColumn(fieldMeta)

		for i := 0; i < set.ResultCount; i++ {
			var result vectordb.SearchResult

			if set.IDs != nil {
				id, err := set.IDs.GetAsString(i)
				if err != nil {
					return nil, fmt.Errorf("[Zilliz] failed to read id at %d: %w", i, err)
				}
				result.ID = id
			}

			if i < len(set.Scores) {
				result.Score = set.Scores[i]
			}

			if textCol != nil {
				text, err := textCol.GetAsString(i)
				if err != nil {
					return nil, fmt.Errorf("[Zilliz] failed to read text at %d: %w", i, err)
				}
				result.Text = text
			}

			if jsonCol, ok := metaCol.(*column.ColumnJSONBytes); ok {
				raw, err := jsonCol.Value(i)
				if err != nil {
					return nil, fmt.Errorf("[Zilliz] failed to read metadata at %d: %w", i, err)
				}
				if len(raw) > 0 {
					var payload map[string]any
					if err := json.Unmarshal(raw, &payload); err != nil {
						return nil, fmt.Errorf("[Zilliz] failed to decode metadata at %d: %w", i, err)
					}
					result.Payload = payload
				}
			}

			converted = append(converted, result)
		}

		results = append(results, converted)
	}

	return results, nil
}

// toFloat32Vectors narrows embedder output to the element type the backend
// stores.
func toFloat32Vectors(vectors [][]float64) [][]float32 {
	out := make([][]float32, len(vectors))
	for i, vec := range vectors {
		narrowed := make([]float32, len(vec))
		for j, v := range vec {
			narrowed[j] = float32(v)
		}
		out[i] = narrowed
	}
	return out
}
