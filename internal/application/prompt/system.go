package prompt

import (
	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/pkg/schema"
)

var preambles = map[domain.Stage]string{
	domain.StageSpec:    "You are a QA engineer who turns recorded browser sessions into clear Gherkin specifications.",
	domain.StageCode:    "You are a senior test automation engineer who writes maintainable Playwright tests.",
	domain.StageSuggest: "You are a BDD coach who reviews Gherkin specifications and rewrites them to be clearer and more complete.",
}

// SystemPreamble returns the fixed system instruction for stage.
func SystemPreamble(stage domain.Stage) string {
	return preambles[stage]
}

// CodeBundleSchema describes the object returned by the code stage.
func CodeBundleSchema() *schema.Schema {
	file := func(desc string) *schema.Schema {
		return schema.Object(map[string]*schema.Schema{
			"filename": schema.String().Describe("file name including extension"),
			"code":     schema.String().Describe("complete file contents"),
		}, "filename", "code").Describe(desc)
	}
	return schema.Object(map[string]*schema.Schema{
		string(domain.RolePageObject): file("Page Object Model class"),
		string(domain.RoleTestSpec):   file("Playwright test file"),
		string(domain.RoleTestData):   file("test data fixtures"),
	}, string(domain.RolePageObject), string(domain.RoleTestSpec), string(domain.RoleTestData))
}
