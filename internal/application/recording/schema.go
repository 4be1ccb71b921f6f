package recording

import (
	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/pkg/schema"
)

// StepSchema describes one raw recorder step.
func StepSchema() *schema.Schema {
	types := make([]string, 0, len(domain.StepTypes))
	for _, t := range domain.StepTypes {
		types = append(types, string(t))
	}

	return schema.Object(map[string]*schema.Schema{
		"type":       schema.String(types...),
		"url":        schema.String(),
		"selectors":  schema.Array(schema.Array(schema.String())),
		"value":      schema.String(),
		"key":        schema.String(),
		"expression": schema.String(),
		"timeout":    schema.Integer(),

		"offsetX": schema.Number(),
		"offsetY": schema.Number(),
		"x":       schema.Number(),
		"y":       schema.Number(),
		"deltaX":  schema.Number(),
		"deltaY":  schema.Number(),

		"width":             schema.Integer(),
		"height":            schema.Integer(),
		"deviceScaleFactor": schema.Number(),
		"isMobile":          schema.Boolean(),
		"hasTouch":          schema.Boolean(),
		"isLandscape":       schema.Boolean(),
	}, "type")
}

// RecordingSchema describes a full recorder export.
func RecordingSchema() *schema.Schema {
	return schema.Object(map[string]*schema.Schema{
		"title":   schema.String(),
		"steps":   schema.Array(StepSchema()),
		"timeout": schema.Integer(),
	}, "title", "steps")
}
