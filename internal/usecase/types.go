package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"resume-builder/internal/model"
	"resume-builder/pkg/apperror"
)

// NormalizeExtraction coerces the common shape drift in gateway output
// (single strings instead of lists, quoted booleans, nulls, single objects
// instead of arrays) so the map can be validated against the extraction
// schema. Ids and section order from the gateway are discarded; both are
// always assigned locally.
func NormalizeExtraction(m map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	if m == nil {
		return out
	}
	for k, v := range m {
		if v == nil || k == "sectionOrder" {
			continue
		}
		out[k] = v
	}

	if p, ok := out["personalInfo"].(map[string]interface{}); ok {
		out["personalInfo"] = stringFields(p)
	} else {
		delete(out, "personalInfo")
	}
	if s, ok := out["summary"]; ok {
		out["summary"] = asString(s)
	}
	if s, ok := out["skills"]; ok {
		out["skills"] = asStringList(s, ",")
	}

	out["experience"] = objectList(out["experience"], func(e map[string]interface{}) map[string]interface{} {
		r, hasResp := e["responsibilities"]
		cur, hasCur := e["isCurrent"]
		e = stringFields(withoutKeys(e, "responsibilities", "isCurrent"))
		if hasResp && r != nil {
			e["responsibilities"] = asStringList(r, "\n")
		}
		if hasCur && cur != nil {
			e["isCurrent"] = asBool(cur)
		}
		return e
	})
	out["education"] = objectList(out["education"], stringFields)
	out["projects"] = objectList(out["projects"], func(p map[string]interface{}) map[string]interface{} {
		ts, has := p["techStack"]
		p = stringFields(withoutKeys(p, "techStack"))
		if has && ts != nil {
			p["techStack"] = asStringList(ts, ",")
		}
		return p
	})
	out["certifications"] = objectList(out["certifications"], stringFields)
	out["customSections"] = objectList(out["customSections"], func(c map[string]interface{}) map[string]interface{} {
		c = stringFields(c)
		if strings.TrimSpace(asString(c["title"])) == "" {
			return nil
		}
		return c
	})

	for _, k := range []string{"experience", "education", "projects", "certifications", "customSections"} {
		if list, ok := out[k].([]interface{}); ok && len(list) == 0 {
			delete(out, k)
		} else if out[k] == nil {
			delete(out, k)
		}
	}
	return out
}

// PartialFromMap normalizes and validates an extraction response and decodes
// it into a Partial. Schema violations are gateway errors.
func PartialFromMap(m map[string]interface{}) (*model.Partial, error) {
	norm := NormalizeExtraction(m)
	if err := model.ValidateExtraction(norm); err != nil {
		return nil, apperror.NewGateway("the extraction result did not match the résumé structure", err)
	}
	var p model.Partial
	if err := remarshal(norm, &p); err != nil {
		return nil, apperror.NewGateway("the extraction result could not be decoded", err)
	}
	return &p, nil
}

// AnalysisFromMap normalizes and validates an analysis response.
func AnalysisFromMap(m map[string]interface{}) (*model.Analysis, error) {
	norm := map[string]interface{}{}
	for k, v := range m {
		if v != nil {
			norm[k] = v
		}
	}
	if s, ok := norm["score"].(string); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64); err == nil {
			norm["score"] = f
		}
	}
	for _, k := range []string{"missingKeywords", "weakPhrases"} {
		if v, ok := norm[k]; ok {
			norm[k] = asStringList(v, ",")
		}
	}
	if v, ok := norm["summarySuggestions"]; ok {
		norm["summarySuggestions"] = asString(v)
	}
	if v, ok := norm["experienceSuggestions"]; ok {
		norm["experienceSuggestions"] = objectList(v, func(s map[string]interface{}) map[string]interface{} {
			out := map[string]interface{}{}
			if id, ok := s["experienceId"]; ok && id != nil {
				out["experienceId"] = asString(id)
			}
			if sug, ok := s["suggestions"]; ok && sug != nil {
				out["suggestions"] = asStringList(sug, "\n")
			}
			return out
		})
	}

	if err := model.ValidateAnalysis(norm); err != nil {
		return nil, apperror.NewGateway("the analysis result did not match the expected structure", err)
	}
	var a model.Analysis
	if err := remarshal(norm, &a); err != nil {
		return nil, apperror.NewGateway("the analysis result could not be decoded", err)
	}
	return &a, nil
}

func remarshal(in interface{}, out interface{}) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// objectList accepts an array of objects or a single object. Non-object
// entries and entries fn rejects (returns nil for) are dropped.
func objectList(v interface{}, fn func(map[string]interface{}) map[string]interface{}) interface{} {
	var items []interface{}
	switch t := v.(type) {
	case nil:
		return nil
	case []interface{}:
		items = t
	case map[string]interface{}:
		items = []interface{}{t}
	default:
		return nil
	}
	out := make([]interface{}, 0, len(items))
	for _, it := range items {
		obj, ok := it.(map[string]interface{})
		if !ok {
			continue
		}
		if o := fn(obj); o != nil {
			out = append(out, o)
		}
	}
	return out
}

// stringFields drops nulls and ids and stringifies every other value.
func stringFields(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		if v == nil || k == "id" {
			continue
		}
		out[k] = asString(v)
	}
	return out
}

func withoutKeys(m map[string]interface{}, keys ...string) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

// asStringList turns a list or a sep-delimited string into a list of
// trimmed, non-empty strings. Leading bullet markers are removed.
func asStringList(v interface{}, sep string) []interface{} {
	var raw []string
	switch t := v.(type) {
	case string:
		raw = strings.Split(t, sep)
	case []interface{}:
		for _, it := range t {
			if it != nil {
				raw = append(raw, asString(it))
			}
		}
	default:
		raw = []string{asString(t)}
	}
	out := make([]interface{}, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		s = strings.TrimSpace(strings.TrimLeft(s, "-•*"))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asBool(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "1", "present", "current":
			return true
		}
	case float64:
		return t != 0
	}
	return false
}
