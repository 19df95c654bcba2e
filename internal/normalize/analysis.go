package normalize

import (
	"fmt"

	"docsync/internal/models"
)

// Result extracts the agent's result object from a success envelope's raw
// response. A missing or malformed result is fine: normalization of nil
// yields a fully-defaulted shape.
func Result(response map[string]interface{}) map[string]interface{} {
	if response == nil {
		return nil
	}
	result, _ := response["result"].(map[string]interface{})
	return result
}

// Analysis builds the strict AnalysisResult shape from a raw coordinator
// payload. The PR reference and analyzed-at stamp belong to the caller; only
// the agent-provided fields are normalized here.
func Analysis(raw map[string]interface{}) (models.AnalysisResult, []string) {
	d := &decoder{}

	report := d.object(raw, "change_report", "change_report")
	cats := d.object(report, "categories", "change_report.categories")
	documentation := d.object(raw, "documentation", "documentation")

	result := models.AnalysisResult{
		ChangeReport: models.ChangeReport{
			Summary:      d.str(report, "summary", "change_report.summary", "Analysis complete"),
			TotalChanges: d.num(report, "total_changes", "change_report.total_changes"),
			Categories: models.ChangeCategories{
				APIEndpoints: d.changeItems(cats, "api_endpoints"),
				Schemas:      d.changeItems(cats, "schemas"),
				Configs:      d.changeItems(cats, "configs"),
				Dependencies: d.changeItems(cats, "dependencies"),
				CodePatterns: d.changeItems(cats, "code_patterns"),
			},
		},
		Documentation: models.Documentation{
			APIDocs:        d.str(documentation, "api_docs", "documentation.api_docs", ""),
			ReadmeSections: d.str(documentation, "readme_sections", "documentation.readme_sections", ""),
			ChangelogEntry: d.str(documentation, "changelog_entry", "documentation.changelog_entry", ""),
			Summary:        d.str(documentation, "summary", "documentation.summary", ""),
		},
	}
	return result, d.warnings
}

func (d *decoder) changeItems(cats map[string]interface{}, key string) []models.ChangeItem {
	path := "change_report.categories." + key
	out := []models.ChangeItem{}
	for i, raw := range d.list(cats, key, path) {
		item, ok := raw.(map[string]interface{})
		if !ok {
			d.warn(fmt.Sprintf("%s[%d]", path, i), "not an object, skipped")
			continue
		}
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		out = append(out, models.ChangeItem{
			FilePath:    d.str(item, "file_path", itemPath+".file_path", ""),
			ChangeType:  d.str(item, "change_type", itemPath+".change_type", ""),
			Description: d.str(item, "description", itemPath+".description", ""),
			Impact:      d.str(item, "impact", itemPath+".impact", ""),
		})
	}
	return out
}
