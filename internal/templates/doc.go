// Package templates provides project scaffolding templates.
//
// # Available Templates
//
//   - minimal: A config file and one template
//   - full: Document shell, stylesheet, asset manifest and watch mode
//
// # Usage
//
//	tmpl, err := templates.Get("full")
//	if err != nil {
//	    return err
//	}
//	err = tmpl.Create(projectDir, templates.Config{ProjectName: "shop"}, false)
//
// # Template Variables
//
// Templates use [[ ]] delimiters so that {{NAME}} placeholders pass
// through to the generated markup untouched:
//
//	[[.ProjectName]]  - Name of the project
//	[[.Selector]]     - App root tag
//	[[.Addr]]         - Listen address
package templates
