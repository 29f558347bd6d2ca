package swagger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/okian/arith/pkg/router"
)

// Info names the API in the document header.
type Info struct {
	Title   string
	Version string
}

// Build renders an OpenAPI 3 document for the mounted collections as YAML.
func Build(info Info, collections []router.Collection) ([]byte, error) {
	paths := map[string]any{}
	var tags []string

	for _, c := range collections {
		for _, t := range c.Tags {
			if !slices.Contains(tags, t) {
				tags = append(tags, t)
			}
		}
		for _, r := range c.Routes {
			item, _ := paths[r.Path].(map[string]any)
			if item == nil {
				item = map[string]any{}
				paths[r.Path] = item
			}
			item[strings.ToLower(r.Method)] = operation(c, r)
		}
	}

	tagObjs := make([]any, len(tags))
	for i, t := range tags {
		tagObjs[i] = map[string]any{"name": t}
	}

	doc := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   info.Title,
			"version": info.Version,
		},
		"tags":  tagObjs,
		"paths": paths,
	}

	out, err := yaml.Parser().Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuild, err)
	}
	return out, nil
}

func operation(c router.Collection, r router.Route) map[string]any {
	responses := map[string]any{
		"200": map[string]any{"description": "Successful Response"},
	}
	params := make([]any, len(r.Params))
	for i, p := range r.Params {
		params[i] = map[string]any{
			"name":        p.Name,
			"in":          "query",
			"required":    p.Required,
			"description": p.Description,
			"schema":      map[string]any{"type": "number"},
		}
	}
	if len(params) > 0 {
		responses["422"] = map[string]any{"description": "Validation Error"}
	}

	op := map[string]any{
		"operationId": c.Name + "_" + r.Name,
		"summary":     r.Summary,
		"responses":   responses,
	}
	if len(c.Tags) > 0 {
		op["tags"] = slices.Clone(c.Tags)
	}
	if len(params) > 0 {
		op["parameters"] = params
	}
	return op
}
